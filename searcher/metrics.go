package searcher

import "time"

// SearchMetric summarizes one completed search.
type SearchMetric struct {
	Iterations   int
	Strategy     Strategy
	Duration     time.Duration
	RolloutMoves int
	TreeNodes    int
}

// Collector gathers search metrics. The search is single-threaded, so no
// synchronization is needed.
type Collector interface {
	Start(iterations int, strategy Strategy)
	AddRolloutMove()
	SetTreeNodes(n int)
	Complete() SearchMetric
}

type collector struct {
	iterations   int
	strategy     Strategy
	startTime    time.Time
	rolloutMoves int
	treeNodes    int
}

// NewCollector returns a Collector that records real metrics.
func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(iterations int, strategy Strategy) {
	c.startTime = time.Now()
	c.iterations = iterations
	c.strategy = strategy
	c.rolloutMoves = 0
	c.treeNodes = 0
}

func (c *collector) AddRolloutMove() {
	c.rolloutMoves++
}

func (c *collector) SetTreeNodes(n int) {
	c.treeNodes = n
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Iterations:   c.iterations,
		Strategy:     c.strategy,
		Duration:     time.Since(c.startTime),
		RolloutMoves: c.rolloutMoves,
		TreeNodes:    c.treeNodes,
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a Collector that records nothing.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (dummyCollector) Start(iterations int, strategy Strategy) {}
func (dummyCollector) AddRolloutMove()                         {}
func (dummyCollector) SetTreeNodes(n int)                      {}
func (dummyCollector) Complete() SearchMetric                  { return SearchMetric{} }
