package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"everywhere_bot/internal/logger"
	"everywhere_bot/pkg"
)

// ErrNodeNotFound is returned when the flow names an unregistered node
var ErrNodeNotFound = errors.New("node not found")

// maxSteps bounds a single execution in case a flow contains a cycle
const maxSteps = 32

// DefaultGraphProcessor implements the GraphProcessor interface
type DefaultGraphProcessor struct {
	nodes map[string]Node
	flow  GraphFlow
}

// NewGraphProcessor creates a new graph processor running flow
func NewGraphProcessor(flow GraphFlow) *DefaultGraphProcessor {
	return &DefaultGraphProcessor{
		nodes: make(map[string]Node),
		flow:  flow,
	}
}

// Execute runs the graph flow for one turn
func (g *DefaultGraphProcessor) Execute(ctx context.Context, turn *Turn) (*ProcessorOutput, error) {
	startTime := time.Now()

	if turn.Metadata == nil {
		turn.Metadata = make(map[string]any)
	}
	output := &ProcessorOutput{
		Metadata: make(map[string]any),
	}

	currentNode := g.flow.StartNode
	for currentNode != "" && currentNode != NodeComplete {
		if len(output.ExecutionPath) >= maxSteps {
			return nil, fmt.Errorf("flow exceeded %d steps at node %s", maxSteps, currentNode)
		}
		output.ExecutionPath = append(output.ExecutionPath, currentNode)

		node, exists := g.nodes[currentNode]
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, currentNode)
		}

		nodeOutput, err := node.Execute(ctx, turn)
		if err != nil {
			logger.Error().Err(err).Str("node", currentNode).Msg("Node execution failed")
			return nil, fmt.Errorf("error executing node %s: %w", currentNode, err)
		}

		// Node errors are degraded state, not failures
		if nodeOutput.Error != nil {
			logger.Warn().Err(nodeOutput.Error).Str("node", currentNode).Msg("Node returned error")
			output.Errors = append(output.Errors, nodeOutput.Error.Error())
		}

		g.processNodeOutput(currentNode, nodeOutput, output, turn)

		if nodeOutput.Complete {
			break
		}

		nextNode := nodeOutput.NextNode
		if nextNode == "" {
			nextNode = g.getNextNode(currentNode, nodeOutput)
		}
		currentNode = nextNode
	}

	output.ProcessingTime = time.Since(startTime).Microseconds()
	logger.Debug().
		Strs("path", output.ExecutionPath).
		Str("route", output.Route).
		Int64("elapsed_us", output.ProcessingTime).
		Msg("Graph execution completed")

	return output, nil
}

// AddNode adds a node to the processor
func (g *DefaultGraphProcessor) AddNode(node Node) error {
	if node == nil {
		return fmt.Errorf("node cannot be nil")
	}

	nodeName := node.GetName()
	if nodeName == "" {
		return fmt.Errorf("node name cannot be empty")
	}

	g.nodes[nodeName] = node
	logger.Debug().Str("node", nodeName).Str("type", string(node.GetType())).Msg("Added node")
	return nil
}

// GetNode retrieves a node by name
func (g *DefaultGraphProcessor) GetNode(name string) (Node, error) {
	node, exists := g.nodes[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, name)
	}
	return node, nil
}

// SetFlow sets the execution flow
func (g *DefaultGraphProcessor) SetFlow(flow GraphFlow) error {
	if flow.StartNode == "" {
		return fmt.Errorf("start node cannot be empty")
	}
	g.flow = flow
	return nil
}

// processNodeOutput merges node data into the turn and the processor output
func (g *DefaultGraphProcessor) processNodeOutput(nodeName string, nodeOutput NodeOutput, output *ProcessorOutput, turn *Turn) {
	for key, value := range nodeOutput.Data {
		switch key {
		case KeyAnalysis:
			if analysis, ok := value.(*pkg.AnalyzedContext); ok {
				turn.Analysis = analysis
				output.Analysis = analysis
			}
		case KeyRoute:
			if route, ok := value.(string); ok {
				output.Route = route
			}
		case KeyReply:
			if reply, ok := value.(string); ok {
				output.Reply = reply
			}
		case KeyResponse:
			if resp, ok := value.(*pkg.Response); ok {
				output.Response = resp
			}
		default:
			output.Metadata[fmt.Sprintf("%s_%s", nodeName, key)] = value
			turn.Metadata[key] = value
		}
	}
}

// getNextNode picks the first edge, by priority, whose condition holds
func (g *DefaultGraphProcessor) getNextNode(currentNode string, nodeOutput NodeOutput) string {
	edges := g.flow.Edges[currentNode]
	if len(edges) == 0 {
		return NodeComplete
	}

	sorted := slices.Clone(edges)
	slices.SortStableFunc(sorted, func(a, b GraphEdge) int {
		return a.Priority - b.Priority
	})

	for _, edge := range sorted {
		if evaluateCondition(edge.Condition, nodeOutput) {
			return edge.To
		}
	}
	return edges[0].To
}

// evaluateCondition holds when every condition key equals the node's data value
func evaluateCondition(condition map[string]any, nodeOutput NodeOutput) bool {
	for key, expectedValue := range condition {
		actualValue, exists := nodeOutput.Data[key]
		if !exists || actualValue != expectedValue {
			return false
		}
	}
	return true
}
