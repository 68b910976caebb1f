package nodes

import (
	"fmt"

	"everywhere_bot/internal/core"
	"everywhere_bot/internal/nlu"
	"everywhere_bot/internal/onboarding"
	"everywhere_bot/internal/response"
)

// Deps are the collaborators of the default turn graph
type Deps struct {
	Analyzer   *nlu.Analyzer
	Names      *nlu.NameExtractor
	Onboarding *onboarding.Machine
	Generator  *response.Generator
}

// NewProcessor wires the default flow over deps
func NewProcessor(deps Deps) (*core.DefaultGraphProcessor, error) {
	processor := core.NewGraphProcessor(core.DefaultFlow())

	for _, node := range []core.Node{
		NewNLUNode(deps.Analyzer),
		NewRoutingNode(deps.Onboarding, deps.Names),
		NewOnboardingNode(deps.Onboarding),
		NewIntroductionNode(),
		NewResponseNode(deps.Generator),
	} {
		if err := processor.AddNode(node); err != nil {
			return nil, fmt.Errorf("failed to add node: %w", err)
		}
	}
	return processor, nil
}
