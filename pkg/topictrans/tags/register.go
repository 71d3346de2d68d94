package tags

// Register is the usage register (style, frequency, variant) of a dictionary entry.
type Register uint8

// Register values. The order is part of the tag index layout and must not change.
const (
	RegisterHumor Register = iota
	RegisterVulg
	RegisterTechn
	RegisterColl
	RegisterGeh
	RegisterSlang
	RegisterIron
	RegisterFormal
	RegisterEuphem
	RegisterLiterary
	RegisterDialect
	RegisterArchaic
	RegisterRare
	RegisterPejorativ
	RegisterFigurative
	RegisterAlsoFigurative
	RegisterSpellingVariant
	RegisterAdmin
	RegisterTransfer
	RegisterNetJargon
	RegisterInformal
	RegisterQuantityInformation
	RegisterIATEPreferred
	RegisterMiss
)

// RegisterCount is the number of Register values.
const RegisterCount = int(RegisterMiss) + 1

var registerNames = [RegisterCount]string{
	"Humor",
	"Vulg",
	"Techn",
	"Coll",
	"Geh",
	"Slang",
	"Iron",
	"Formal",
	"Euphem",
	"Literary",
	"Dialect",
	"Archaic",
	"Rare",
	"Pejorativ",
	"Figurative",
	"AlsoFigurative",
	"SpellingVariant",
	"Admin",
	"Transfer",
	"NetJargon",
	"Informal",
	"QuantityInformation",
	"IATEPreferred",
	"Miss",
}

func (r Register) String() string {
	if int(r) < RegisterCount {
		return registerNames[r]
	}
	return "Register(?)"
}

// Tag returns the meta tag index of the register. Registers are laid out after all domains.
func (r Register) Tag() Tag { return Tag(DomainCount + int(r)) }
