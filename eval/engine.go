package eval

import (
	"github.com/LdDl/motmetrics-go/mot"
)

// Engine is the tracking metrics capability used by the pipeline
type Engine interface {
	// Compare builds comparison unit of one sequence
	Compare(gt, test *mot.Table, metric mot.DistanceMetric, threshold float64) (*mot.Accumulator, error)
	// Aggregate computes benchmark metrics for every unit plus overall row
	Aggregate(units []*mot.Accumulator, names []string) (*mot.Summary, error)
	// Render formats summary as text
	Render(summary *mot.Summary) string
}

// MetricsEngine is Engine backed by package mot
type MetricsEngine struct {
	solver  mot.Solver
	metrics []mot.Metric
}

// NewMetricsEngine creates engine which uses given LAP solver and MOTChallenge metric set
func NewMetricsEngine(solver mot.Solver) *MetricsEngine {
	return &MetricsEngine{
		solver:  solver,
		metrics: mot.MOTChallengeMetrics,
	}
}

// Solver returns LAP solver used by engine
func (engine *MetricsEngine) Solver() mot.Solver {
	return engine.solver
}

// Compare runs per-frame assignment between ground truth and tracker output
func (engine *MetricsEngine) Compare(gt, test *mot.Table, metric mot.DistanceMetric, threshold float64) (*mot.Accumulator, error) {
	return mot.CompareToGroundTruth(gt, test, metric, threshold, engine.solver)
}

// Aggregate computes MOTChallenge metrics with overall row
func (engine *MetricsEngine) Aggregate(units []*mot.Accumulator, names []string) (*mot.Summary, error) {
	return mot.ComputeMany(units, names, engine.metrics, true)
}

// Render formats summary with default formatters and MOTChallenge column names
func (engine *MetricsEngine) Render(summary *mot.Summary) string {
	return mot.RenderSummary(summary, mot.DefaultFormatters(), mot.MOTChallengeMetricNames)
}
