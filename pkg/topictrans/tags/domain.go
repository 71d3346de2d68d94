package tags

// Domain is a subject field a dictionary entry is tagged with.
type Domain uint8

// Domain values. The order is part of the tag index layout and must not change.
const (
	DomainAcad Domain = iota
	DomainAcc
	DomainAdmin
	DomainAgr
	DomainAnat
	DomainArchaeo
	DomainArchi
	DomainArmour
	DomainArt
	DomainAstrol
	DomainAstron
	DomainAstronau
	DomainAudio
	DomainAutomot
	DomainAviat
	DomainBibl
	DomainBike
	DomainBiochem
	DomainBiol
	DomainBiotech
	DomainBot
	DomainBrew
	DomainChem
	DomainClimbing
	DomainCloth
	DomainComics
	DomainComm
	DomainComp
	DomainConstr
	DomainCook
	DomainCosmet
	DomainCurr
	DomainDance
	DomainDent
	DomainDrugs
	DomainEcol
	DomainEcon
	DomainEduc
	DomainElectr
	DomainEngin
	DomainEntom
	DomainEquest
	DomainEsot
	DomainEthn
	DomainEu
	DomainF
	DomainFilm
	DomainFin
	DomainFireResc
	DomainFish
	DomainFoodInd
	DomainFor
	DomainFurn
	DomainGames
	DomainGastr
	DomainGeogr
	DomainGeol
	DomainHerald
	DomainHist
	DomainHort
	DomainHunting
	DomainHydro
	DomainIdiom
	DomainInd
	DomainInsur
	DomainInternet
	DomainJobs
	DomainJourn
	DomainLaw
	DomainLibr
	DomainLing
	DomainLit
	DomainMach
	DomainMarket
	DomainMaterial
	DomainMath
	DomainMed
	DomainMedTech
	DomainMeteo
	DomainMil
	DomainMineral
	DomainMining
	DomainMus
	DomainMycol
	DomainMyth
	DomainName
	DomainNaut
	DomainNeol
	DomainNucl
	DomainOenol
	DomainOptics
	DomainOrn
	DomainPharm
	DomainPhilat
	DomainPhilos
	DomainPhonet
	DomainPhoto
	DomainPhys
	DomainPol
	DomainPrint
	DomainProverb
	DomainPsych
	DomainPubl
	DomainQm
	DomainQuote
	DomainRadioTv
	DomainRail
	DomainRealEst
	DomainRelig
	DomainRhet
	DomainSchool
	DomainSociol
	DomainSpec
	DomainSports
	DomainStat
	DomainStocks
	DomainStud
	DomainT
	DomainTech
	DomainTelecom
	DomainTextil
	DomainTheatre
	DomainTools
	DomainToys
	DomainTrVocab
	DomainTraffic
	DomainTransp
	DomainTravel
	DomainUnit
	DomainUrban
	DomainUwh
	DomainVetMed
	DomainWatches
	DomainWeapons
	DomainZool
	DomainChild
	DomainYouth
	DomainScience
	DomainPoetry
	DomainCurrency
	DomainPhila
	DomainCommun
	DomainMedia
	DomainTour
	DomainAlchemy
	DomainAnime
	DomainBever
	DomainSex
	DomainPalaeo
	DomainMetal
	DomainMasonry
	DomainColour
	DomainMechanics
	DomainMoney
	DomainNatSci
	DomainPseudoSci
	DomainHumanities
)

// DomainCount is the number of Domain values.
const DomainCount = int(DomainHumanities) + 1

var domainNames = [DomainCount]string{
	"Acad",
	"Acc",
	"Admin",
	"Agr",
	"Anat",
	"Archaeo",
	"Archi",
	"Armour",
	"Art",
	"Astrol",
	"Astron",
	"Astronau",
	"Audio",
	"Automot",
	"Aviat",
	"Bibl",
	"Bike",
	"Biochem",
	"Biol",
	"Biotech",
	"Bot",
	"Brew",
	"Chem",
	"Climbing",
	"Cloth",
	"Comics",
	"Comm",
	"Comp",
	"Constr",
	"Cook",
	"Cosmet",
	"Curr",
	"Dance",
	"Dent",
	"Drugs",
	"Ecol",
	"Econ",
	"Educ",
	"Electr",
	"Engin",
	"Entom",
	"Equest",
	"Esot",
	"Ethn",
	"Eu",
	"F",
	"Film",
	"Fin",
	"FireResc",
	"Fish",
	"FoodInd",
	"For",
	"Furn",
	"Games",
	"Gastr",
	"Geogr",
	"Geol",
	"Herald",
	"Hist",
	"Hort",
	"Hunting",
	"Hydro",
	"Idiom",
	"Ind",
	"Insur",
	"Internet",
	"Jobs",
	"Journ",
	"Law",
	"Libr",
	"Ling",
	"Lit",
	"Mach",
	"Market",
	"Material",
	"Math",
	"Med",
	"MedTech",
	"Meteo",
	"Mil",
	"Mineral",
	"Mining",
	"Mus",
	"Mycol",
	"Myth",
	"Name",
	"Naut",
	"Neol",
	"Nucl",
	"Oenol",
	"Optics",
	"Orn",
	"Pharm",
	"Philat",
	"Philos",
	"Phonet",
	"Photo",
	"Phys",
	"Pol",
	"Print",
	"Proverb",
	"Psych",
	"Publ",
	"Qm",
	"Quote",
	"RadioTv",
	"Rail",
	"RealEst",
	"Relig",
	"Rhet",
	"School",
	"Sociol",
	"Spec",
	"Sports",
	"Stat",
	"Stocks",
	"Stud",
	"T",
	"Tech",
	"Telecom",
	"Textil",
	"Theatre",
	"Tools",
	"Toys",
	"TrVocab",
	"Traffic",
	"Transp",
	"Travel",
	"Unit",
	"Urban",
	"Uwh",
	"VetMed",
	"Watches",
	"Weapons",
	"Zool",
	"Child",
	"Youth",
	"Science",
	"Poetry",
	"Currency",
	"Phila",
	"Commun",
	"Media",
	"Tour",
	"Alchemy",
	"Anime",
	"Bever",
	"Sex",
	"Palaeo",
	"Metal",
	"Masonry",
	"Colour",
	"Mechanics",
	"Money",
	"NatSci",
	"PseudoSci",
	"Humanities",
}

func (d Domain) String() string {
	if int(d) < DomainCount {
		return domainNames[d]
	}
	return "Domain(?)"
}

// Tag returns the meta tag index of the domain.
func (d Domain) Tag() Tag { return Tag(d) }
