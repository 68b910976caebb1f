package knowledge

// Element is a periodic-table entry
type Element struct {
	Name   string
	Symbol string
	Number int
}

// Planets in order from the Sun
var Planets = []string{"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune"}

const (
	sunFact   = "The Sun is a G-type main-sequence star and our solar system's star"
	earthFact = "Earth is the third planet from the Sun and the only astronomical object known to harbor life"
)

// Elements is searched in slice order
var Elements = []Element{
	{Name: "hydrogen", Symbol: "H", Number: 1},
	{Name: "helium", Symbol: "He", Number: 2},
	{Name: "carbon", Symbol: "C", Number: 6},
	{Name: "nitrogen", Symbol: "N", Number: 7},
	{Name: "oxygen", Symbol: "O", Number: 8},
}

// BodySystems are the main human body systems
var BodySystems = []string{"Circulatory", "Respiratory", "Digestive", "Nervous", "Skeletal", "Muscular"}

// BodyFacts are short human body trivia
var BodyFacts = []string{
	"The human body contains approximately 37.2 trillion cells",
	"The human heart beats about 100,000 times per day",
	"The human brain has about 86 billion neurons",
}

// Term is a single topic-knowledge explanation
type Term struct {
	Term        string
	Explanation string
}

// Category groups terms; categories and terms are searched in slice order
type Category struct {
	Name  string
	Terms []Term
}

// Categories is the topic knowledge table
var Categories = []Category{
	{Name: "astronomy", Terms: []Term{
		{"black hole", "A black hole is a region of spacetime where gravity is so strong that nothing can escape from it, not even light."},
		{"galaxy", "A galaxy is a huge collection of gas, dust, and billions of stars held together by gravity."},
		{"star", "A star is a luminous ball of gas, mostly hydrogen and helium, held together by its own gravity."},
	}},
	{Name: "medicine", Terms: []Term{
		{"immune system", "The immune system is the body's defense against infections and diseases."},
		{"vaccination", "Vaccination is a way to trigger an immune response and protect against specific diseases."},
		{"antibiotics", "Antibiotics are medicines that fight bacterial infections."},
	}},
	{Name: "religion", Terms: []Term{
		{"bible", "The Bible is a collection of sacred texts or scriptures."},
		{"prayer", "Prayer is a communication with a divine power."},
		{"faith", "Faith is confidence or trust in a particular system of religious belief."},
	}},
	{Name: "technology", Terms: []Term{
		{"artificial intelligence", "AI is the simulation of human intelligence by machines."},
		{"blockchain", "Blockchain is a decentralized, distributed ledger technology."},
		{"quantum computing", "Quantum computing uses quantum mechanics to process information."},
	}},
}
