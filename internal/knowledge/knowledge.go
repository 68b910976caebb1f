// Package knowledge holds the static fact tables and the constrained arithmetic evaluator.
package knowledge

import (
	"fmt"
	"strings"
)

// factLookup answers from one fact category; checks run in slice order
type factLookup func(lower string) (string, bool)

// Base answers factual questions. All lookups are pure.
type Base struct {
	facts      []factLookup
	categories []Category
}

// NewBase returns a knowledge base over the package tables
func NewBase() *Base {
	return &Base{
		facts: []factLookup{
			planetsFact,
			containsFact("sun", sunFact),
			containsFact("earth", earthFact),
			elementFact,
			bodyFactsFact,
			bodySystemsFact,
		},
		categories: Categories,
	}
}

// Arithmetic answers "what is A <op> B"
func (b *Base) Arithmetic(message string) (string, bool) {
	return Evaluate(message)
}

// Fact looks the message up in the solar-system, element and human-body tables
func (b *Base) Fact(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, lookup := range b.facts {
		if answer, ok := lookup(lower); ok {
			return answer, true
		}
	}
	return "", false
}

// Explain looks the message up in the topic knowledge table
func (b *Base) Explain(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, category := range b.categories {
		for _, term := range category.Terms {
			if strings.Contains(lower, term.Term) {
				return term.Explanation, true
			}
		}
	}
	return "", false
}

// Answer runs arithmetic, then facts, then topic knowledge
func (b *Base) Answer(message string) (string, bool) {
	if answer, ok := b.Arithmetic(message); ok {
		return answer, true
	}
	if answer, ok := b.Fact(message); ok {
		return answer, true
	}
	return b.Explain(message)
}

func planetsFact(lower string) (string, bool) {
	if !strings.Contains(lower, "planet") {
		return "", false
	}
	return fmt.Sprintf("The planets in our solar system are: %s.", strings.Join(Planets, ", ")), true
}

func containsFact(needle, answer string) factLookup {
	return func(lower string) (string, bool) {
		if strings.Contains(lower, needle) {
			return answer, true
		}
		return "", false
	}
}

func elementFact(lower string) (string, bool) {
	if !strings.Contains(lower, "element") && !strings.Contains(lower, "atomic") && !strings.Contains(lower, "symbol") {
		return "", false
	}
	for _, el := range Elements {
		if strings.Contains(lower, el.Name) {
			name := strings.ToUpper(el.Name[:1]) + el.Name[1:]
			return fmt.Sprintf("%s (%s) is element number %d in the periodic table.", name, el.Symbol, el.Number), true
		}
	}
	return "", false
}

func bodyFactsFact(lower string) (string, bool) {
	if !strings.Contains(lower, "body fact") && !strings.Contains(lower, "fact about the body") && !strings.Contains(lower, "facts about the human body") {
		return "", false
	}
	return strings.Join(BodyFacts, ". ") + ".", true
}

func bodySystemsFact(lower string) (string, bool) {
	if !strings.Contains(lower, "human body") && !strings.Contains(lower, "body system") {
		return "", false
	}
	return fmt.Sprintf("The main systems of the human body are: %s. Would you like to learn more about any specific system?", strings.Join(BodySystems, ", ")), true
}
