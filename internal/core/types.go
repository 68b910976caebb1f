package core

import (
	"context"

	"everywhere_bot/pkg"
)

// Node represents a single processing unit in the turn graph
type Node interface {
	Execute(ctx context.Context, turn *Turn) (NodeOutput, error)
	GetName() string
	GetType() NodeType
}

// NodeType defines the different types of nodes in the graph
type NodeType string

const (
	NodeTypeNLU          NodeType = "nlu"
	NodeTypeRouting      NodeType = "routing"
	NodeTypeOnboarding   NodeType = "onboarding"
	NodeTypeIntroduction NodeType = "introduction"
	NodeTypeResponse     NodeType = "response"
)

// Node names used by the default flow
const (
	NodeNLU          = "nlu"
	NodeRouting      = "routing"
	NodeOnboarding   = "onboarding"
	NodeIntroduction = "introduction"
	NodeResponse     = "response"
	NodeComplete     = "complete"
)

// Data keys understood by the processor
const (
	KeyAnalysis = "analysis"
	KeyRoute    = "route"
	KeyReply    = "reply"
	KeyResponse = "response"
)

// Memory is the episodic log as seen by the nodes
type Memory interface {
	Add(ctx context.Context, topic pkg.Topic, content string, sentiment pkg.Emotion) (pkg.MemoryEntry, error)
	Recent(n int) []pkg.MemoryEntry
	ByTopic(topic pkg.Topic) (pkg.MemoryEntry, bool)
	Related(topic pkg.Topic, keywords []string) (pkg.MemoryEntry, bool)
}

// Turn carries one user message and the session state it may mutate.
// Nodes run sequentially, so no locking is needed.
type Turn struct {
	Message      string
	UserID       string
	Profile      *pkg.UserProfile
	Conversation *pkg.ConversationContext
	Memory       Memory
	Analysis     *pkg.AnalyzedContext
	Metadata     map[string]any
}

// NodeOutput contains the output data from a node
type NodeOutput struct {
	Data     map[string]any `json:"data"`
	NextNode string         `json:"next_node,omitempty"`
	Error    error          `json:"error,omitempty"`
	Complete bool           `json:"complete"`
}

// GraphProcessor orchestrates the execution of nodes in a graph flow
type GraphProcessor interface {
	Execute(ctx context.Context, turn *Turn) (*ProcessorOutput, error)
	AddNode(node Node) error
	GetNode(name string) (Node, error)
	SetFlow(flow GraphFlow) error
}

// ProcessorOutput is the result of one turn
type ProcessorOutput struct {
	Route          string               `json:"route"`
	Reply          string               `json:"reply"`
	Response       *pkg.Response        `json:"response,omitempty"`
	Analysis       *pkg.AnalyzedContext `json:"analysis,omitempty"`
	ExecutionPath  []string             `json:"execution_path"`
	Errors         []string             `json:"errors,omitempty"`
	ProcessingTime int64                `json:"processing_time_us"`
	Metadata       map[string]any       `json:"metadata"`
}

// GraphFlow defines the execution flow between nodes
type GraphFlow struct {
	StartNode string                 `json:"start_node"`
	Edges     map[string][]GraphEdge `json:"edges"` // node_name -> possible next nodes
}

// GraphEdge represents a connection between two nodes with conditions
type GraphEdge struct {
	To        string         `json:"to"`
	Condition map[string]any `json:"condition,omitempty"`
	Priority  int            `json:"priority"`
}

// Route values produced by the routing node
const (
	RouteOnboarding   = "onboarding"
	RouteIntroduction = "introduction"
	RouteResponse     = "response"
)

// DefaultFlow is nlu -> routing -> one of onboarding, introduction or response
func DefaultFlow() GraphFlow {
	return GraphFlow{
		StartNode: NodeNLU,
		Edges: map[string][]GraphEdge{
			NodeNLU: {{To: NodeRouting}},
			NodeRouting: {
				{To: NodeOnboarding, Condition: map[string]any{KeyRoute: RouteOnboarding}, Priority: 1},
				{To: NodeIntroduction, Condition: map[string]any{KeyRoute: RouteIntroduction}, Priority: 2},
				{To: NodeResponse, Priority: 3},
			},
		},
	}
}
