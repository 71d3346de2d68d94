package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/cognicore/topictrans/internal/seed"
	"github.com/cognicore/topictrans/pkg/topictrans"
	"github.com/cognicore/topictrans/pkg/topictrans/config"
	"github.com/cognicore/topictrans/pkg/topictrans/store/sqlite"
)

func main() {
	var (
		dbPath    = flag.String("db", "topictrans.db", "SQLite database path")
		dictPath  = flag.String("dict", "", "Dictionary entries as JSONL")
		dictName  = flag.String("name", "", "Name to store the dictionary under (required with --dict)")
		langA     = flag.String("lang-a", "", "Language of the dictionary's A side")
		langB     = flag.String("lang-b", "", "Language of the dictionary's B side")
		modelPath = flag.String("model", "", "Topic model as JSON")
		weightsA  = flag.String("weights-a", "", "YAML word weights for --lang-a")
		weightsB  = flag.String("weights-b", "", "YAML word weights for --lang-b")
	)
	flag.Parse()

	if *dictPath == "" && *modelPath == "" && *weightsA == "" && *weightsB == "" {
		log.Fatal("nothing to import: pass --dict, --model or --weights-a/--weights-b")
	}
	if *dictPath != "" && *dictName == "" {
		log.Fatal("--name required with --dict")
	}

	ctx := context.Background()
	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	engine := topictrans.New(topictrans.Options{Store: st})
	defer engine.Close()

	if *dictPath != "" {
		entries, err := seed.LoadEntriesJSONL(*dictPath)
		if err != nil {
			log.Fatalf("load dictionary: %v", err)
		}
		dict, err := seed.BuildDictionary(*langA, *langB, entries)
		if err != nil {
			log.Fatalf("build dictionary: %v", err)
		}
		if err := engine.ImportDictionary(ctx, *dictName, dict); err != nil {
			log.Fatalf("save dictionary: %v", err)
		}
		log.Printf("Imported dictionary %q: %d/%d words, %d links", *dictName, dict.LenA(), dict.LenB(), dict.Len())
	}

	if *modelPath != "" {
		model, err := seed.LoadModelJSON(*modelPath)
		if err != nil {
			log.Fatalf("load model: %v", err)
		}
		id, err := engine.ImportModel(ctx, model)
		if err != nil {
			log.Fatalf("save model: %v", err)
		}
		log.Printf("Imported model with %d topics over %d words", model.TopicCount(), model.Vocabulary().Len())
		fmt.Println(id)
	}

	importWeights(ctx, st, *langA, *weightsA)
	importWeights(ctx, st, *langB, *weightsB)
}

type weightSaver interface {
	SaveWordWeights(ctx context.Context, language string, weights map[string]float64) error
}

func importWeights(ctx context.Context, st weightSaver, lang, path string) {
	if path == "" {
		return
	}
	if lang == "" {
		log.Fatalf("language required for weights %s", path)
	}
	weights, err := config.LoadWeights(path)
	if err != nil {
		log.Fatalf("load weights: %v", err)
	}
	if err := st.SaveWordWeights(ctx, lang, weights); err != nil {
		log.Fatalf("save weights: %v", err)
	}
	log.Printf("Imported %d %s word weights", len(weights), lang)
}
