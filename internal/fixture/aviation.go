// Package fixture provides the small aviation dictionary and topic model
// shared by the engine tests and the demo command.
package fixture

import (
	"github.com/cognicore/topictrans/pkg/topictrans/dictionary"
	"github.com/cognicore/topictrans/pkg/topictrans/tags"
	"github.com/cognicore/topictrans/pkg/topictrans/topicmodel"
	"github.com/cognicore/topictrans/pkg/topictrans/vocab"
)

// WordsA is the English vocabulary, in id order.
var WordsA = []string{
	"plane", "aircraft", "airplane", "flyer", "airman", "airfoil",
	"wing", "deck", "hydrofoil", "foil", "bearing surface",
}

// WordsB is the German vocabulary, in id order.
var WordsB = []string{
	"Flugzeug", "Flieger", "Tragfläche", "Ebene", "Planum", "Platane", "Maschine",
	"Bremsberg", "Berg", "Fläche", "Luftfahrzeug", "Fluggerät", "Flugsystem", "Motorflugzeug",
}

var links = [][2]string{
	{"plane", "Flugzeug"}, {"plane", "Flieger"}, {"plane", "Tragfläche"}, {"plane", "Ebene"},
	{"plane", "Planum"}, {"plane", "Platane"}, {"plane", "Maschine"}, {"plane", "Bremsberg"},
	{"plane", "Berg"}, {"plane", "Fläche"}, {"plane", "Flieger"},
	{"aircraft", "Flugzeug"}, {"aircraft", "Flieger"}, {"aircraft", "Luftfahrzeug"},
	{"aircraft", "Fluggerät"}, {"aircraft", "Flugsystem"},
	{"airplane", "Flugzeug"}, {"airplane", "Flieger"}, {"airplane", "Motorflugzeug"},
	{"flyer", "Flieger"},
	{"airman", "Flieger"},
	{"airfoil", "Tragfläche"},
	{"wing", "Tragfläche"},
	{"deck", "Tragfläche"},
	{"hydrofoil", "Tragfläche"},
	{"foil", "Tragfläche"},
	{"bearing surface", "Tragfläche"},
}

// Links is the number of distinct dictionary links.
const Links = 26

var (
	aviat = tags.DomainAviat.Tag()
	engin = tags.DomainEngin.Tag()
	film  = tags.DomainFilm.Tag()
	comm  = tags.DomainComm.Tag()
	admin = tags.DomainAdmin.Tag()
	techn = tags.RegisterTechn.Tag()
)

// Fields is the tag selection used by the booster tests.
var Fields = []tags.Tag{aviat, engin, film, techn, tags.RegisterArchaic.Tag()}

// Dictionary builds the English to German aviation dictionary without
// metadata.
func Dictionary() *dictionary.Memory {
	d := dictionary.NewMemory("en", "de")
	for _, l := range links {
		d.Insert(l[0], l[1])
	}
	return d
}

// DictionaryWithMeta builds Dictionary and annotates plane, aircraft,
// Flugzeug and Ebene with domain and register tags from three sources.
func DictionaryWithMeta() *dictionary.Memory {
	d := Dictionary()
	a, b := d.MetadataA(), d.MetadataB()

	a.Add(0, "", aviat, engin)
	a.Add(0, "dict1", aviat, engin)
	a.Add(0, "dict2", engin)
	a.Add(0, "", techn)

	a.Add(1, "", aviat, engin)
	a.Add(1, "dict1", engin)
	a.Add(1, "dict2", engin)

	b.Add(0, "", aviat, engin)
	b.Add(0, "dict1", engin)
	b.Add(0, "dict2", aviat, engin)

	b.Add(3, "", aviat, engin, comm)
	b.Add(3, "dict2", aviat, engin)
	b.Add(3, "", admin, engin)
	b.Add(3, "dict2", aviat, engin)
	b.Add(3, "dict1", film)
	return d
}

// Topics are the unnormalised probabilities of the two topic model topics.
var Topics = [][]float64{
	{0.019, 0.018, 0.012, 0.009, 0.008, 0.008, 0.008, 0.008, 0.008, 0.008, 0.008},
	{0.002, 0.0001, 0.0001, 0.0001, 0.0001, 0.0001, 0.0001, 0.0001, 0.0001, 0.02, 0.0001},
}

// Counts are the word usage counts of the topic model.
var Counts = []uint64{10, 5, 8, 1, 2, 3, 1, 1, 1, 1, 2}

// Model returns the normalised two topic English model.
func Model() *topicmodel.Model {
	m, err := topicmodel.New(Topics, vocab.FromWords("en", WordsA), Counts)
	if err != nil {
		panic(err)
	}
	return m.Normalized()
}
