package eval

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/LdDl/motmetrics-go/mot"
)

// writeFile creates file with all parent directories
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newTestLogger returns logger which keeps entries in memory
func newTestLogger() (*logrus.Logger, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

// warnings returns messages of warning entries
func warnings(hook *logtest.Hook) []string {
	messages := make([]string, 0)
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}

// stubEngine records calls and produces summaries without computing any metric
type stubEngine struct {
	compared   []*mot.Table
	metrics    []mot.DistanceMetric
	thresholds []float64
	aggregated []string
	compareErr error
}

func (engine *stubEngine) Compare(gt, test *mot.Table, metric mot.DistanceMetric, threshold float64) (*mot.Accumulator, error) {
	if engine.compareErr != nil {
		return nil, engine.compareErr
	}
	engine.compared = append(engine.compared, test)
	engine.metrics = append(engine.metrics, metric)
	engine.thresholds = append(engine.thresholds, threshold)
	return mot.NewAccumulator(mot.SolverGreedy), nil
}

func (engine *stubEngine) Aggregate(units []*mot.Accumulator, names []string) (*mot.Summary, error) {
	engine.aggregated = append([]string(nil), names...)
	summary := &mot.Summary{Metrics: []mot.Metric{mot.MetricNumFrames}}
	for _, name := range append(append([]string(nil), names...), mot.OverallName) {
		summary.Rows = append(summary.Rows, mot.SummaryRow{
			Name:   name,
			Values: map[mot.Metric]float64{mot.MetricNumFrames: 0},
		})
	}
	return summary, nil
}

func (engine *stubEngine) Render(summary *mot.Summary) string {
	return strings.Join(summary.Names(), "\n")
}

// stubParser returns prepared tables by path and remembers every call
type stubParser struct {
	tables  map[string]*mot.Table
	errs    map[string]error
	paths   []string
	formats []mot.Format
	options []int
}

func newStubParser() *stubParser {
	return &stubParser{
		tables: make(map[string]*mot.Table),
		errs:   make(map[string]error),
	}
}

func (parser *stubParser) Load(path string, format mot.Format, options ...mot.LoadOption) (*mot.Table, error) {
	parser.paths = append(parser.paths, path)
	parser.formats = append(parser.formats, format)
	parser.options = append(parser.options, len(options))
	if err, ok := parser.errs[path]; ok {
		return nil, err
	}
	if table, ok := parser.tables[path]; ok {
		return table, nil
	}
	return mot.NewTable(nil), nil
}

// datasetOf builds dataset where i-th table holds a single observation at frame i+1
func datasetOf(ids ...string) *Dataset {
	ds := NewDataset()
	for i, id := range ids {
		ds.Add(id, mot.NewTable([]mot.Observation{{FrameID: i + 1}}))
	}
	return ds
}

const (
	sampleGroundTruth = "1,1,11,11,20,20,1,-1,-1,-1\n2,1,13,11,20,20,1,-1,-1,-1\n2,2,101,101,20,20,1,-1,-1,-1\n"
	sampleTest        = "1,5,11,11,20,20,1,-1,-1,-1\n2,5,13,11,20,20,1,-1,-1,-1\n"
)
