package mot

import (
	"github.com/arthurkushman/go-hungarian"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Metric is name of a summary column
type Metric string

const (
	MetricNumFrames          Metric = "num_frames"
	MetricNumMatches         Metric = "num_matches"
	MetricNumSwitches        Metric = "num_switches"
	MetricNumTransfer        Metric = "num_transfer"
	MetricNumAscend          Metric = "num_ascend"
	MetricNumMigrate         Metric = "num_migrate"
	MetricNumFalsePositives  Metric = "num_false_positives"
	MetricNumMisses          Metric = "num_misses"
	MetricNumDetections      Metric = "num_detections"
	MetricNumObjects         Metric = "num_objects"
	MetricNumPredictions     Metric = "num_predictions"
	MetricNumUniqueObjects   Metric = "num_unique_objects"
	MetricMostlyTracked      Metric = "mostly_tracked"
	MetricPartiallyTracked   Metric = "partially_tracked"
	MetricMostlyLost         Metric = "mostly_lost"
	MetricNumFragmentations  Metric = "num_fragmentations"
	MetricMOTP               Metric = "motp"
	MetricMOTA               Metric = "mota"
	MetricPrecision          Metric = "precision"
	MetricRecall             Metric = "recall"
	MetricIDFP               Metric = "idfp"
	MetricIDFN               Metric = "idfn"
	MetricIDTP               Metric = "idtp"
	MetricIDP                Metric = "idp"
	MetricIDR                Metric = "idr"
	MetricIDF1               Metric = "idf1"
)

const (
	mostlyTrackedRatio = 0.8
	mostlyLostRatio    = 0.2
)

// OverallName is the name of synthesized row spanning all sequences
const OverallName = "OVERALL"

var (
	// ErrUnknownMetric is returned when metric name is not supported
	ErrUnknownMetric = errors.New("unknown metric")
)

// MOTChallengeMetrics is the standard benchmark metric set
var MOTChallengeMetrics = []Metric{
	MetricIDF1,
	MetricIDP,
	MetricIDR,
	MetricRecall,
	MetricPrecision,
	MetricNumUniqueObjects,
	MetricMostlyTracked,
	MetricPartiallyTracked,
	MetricMostlyLost,
	MetricNumFalsePositives,
	MetricNumMisses,
	MetricNumSwitches,
	MetricNumFragmentations,
	MetricMOTA,
	MetricMOTP,
	MetricNumTransfer,
	MetricNumAscend,
	MetricNumMigrate,
}

// MOTChallengeMetricNames maps metrics to MOTChallenge display names
var MOTChallengeMetricNames = map[Metric]string{
	MetricIDF1:              "IDF1",
	MetricIDP:               "IDP",
	MetricIDR:               "IDR",
	MetricRecall:            "Rcll",
	MetricPrecision:         "Prcn",
	MetricNumUniqueObjects:  "GT",
	MetricMostlyTracked:     "MT",
	MetricPartiallyTracked:  "PT",
	MetricMostlyLost:        "ML",
	MetricNumFalsePositives: "FP",
	MetricNumMisses:         "FN",
	MetricNumSwitches:       "IDs",
	MetricNumFragmentations: "FM",
	MetricMOTA:              "MOTA",
	MetricMOTP:              "MOTP",
	MetricNumTransfer:       "IDt",
	MetricNumAscend:         "IDa",
	MetricNumMigrate:        "IDm",
}

// Indices of base counts. Every metric is derived from these, so overall row is just their sum
const (
	cFrames = iota
	cMatches
	cSwitches
	cTransfer
	cAscend
	cMigrate
	cFalsePositives
	cMisses
	cUniqueObjects
	cMostlyTracked
	cPartiallyTracked
	cMostlyLost
	cFragmentations
	cDistanceSum
	cIDTP
	numCounts
)

// SummaryRow is metric values of one sequence (or of the overall row)
type SummaryRow struct {
	Name   string
	Values map[Metric]float64
}

// Summary is result of batch metric computation
type Summary struct {
	Metrics []Metric
	Rows    []SummaryRow
}

// Names returns row names in order
func (summary *Summary) Names() []string {
	names := make([]string, len(summary.Rows))
	for i, row := range summary.Rows {
		names[i] = row.Name
	}
	return names
}

// Row returns row by its name
func (summary *Summary) Row(name string) (SummaryRow, bool) {
	for _, row := range summary.Rows {
		if row.Name == name {
			return row, true
		}
	}
	return SummaryRow{}, false
}

// ComputeMany computes metrics for every accumulator. Row i is named names[i].
// When generateOverall is set, one more row named OverallName is appended: base counts of
// all accumulators are summed and ratios are recomputed from the sums.
func ComputeMany(accs []*Accumulator, names []string, metrics []Metric, generateOverall bool) (*Summary, error) {
	if len(accs) != len(names) {
		return nil, errors.Errorf("got %d accumulators but %d names", len(accs), len(names))
	}
	for _, m := range metrics {
		if _, err := metricValue(m, make([]float64, numCounts)); err != nil {
			return nil, err
		}
	}
	summary := &Summary{
		Metrics: append([]Metric(nil), metrics...),
		Rows:    make([]SummaryRow, 0, len(accs)+1),
	}
	total := make([]float64, numCounts)
	for i, acc := range accs {
		counts := acc.counts()
		floats.Add(total, counts)
		row, err := buildRow(names[i], counts, metrics)
		if err != nil {
			return nil, err
		}
		summary.Rows = append(summary.Rows, row)
	}
	if generateOverall {
		row, err := buildRow(OverallName, total, metrics)
		if err != nil {
			return nil, err
		}
		summary.Rows = append(summary.Rows, row)
	}
	return summary, nil
}

func buildRow(name string, counts []float64, metrics []Metric) (SummaryRow, error) {
	row := SummaryRow{
		Name:   name,
		Values: make(map[Metric]float64, len(metrics)),
	}
	for _, m := range metrics {
		v, err := metricValue(m, counts)
		if err != nil {
			return SummaryRow{}, err
		}
		row.Values[m] = v
	}
	return row, nil
}

func metricValue(m Metric, c []float64) (float64, error) {
	detections := c[cMatches] + c[cSwitches]
	objects := detections + c[cMisses]
	predictions := detections + c[cFalsePositives]
	switch m {
	case MetricNumFrames:
		return c[cFrames], nil
	case MetricNumMatches:
		return c[cMatches], nil
	case MetricNumSwitches:
		return c[cSwitches], nil
	case MetricNumTransfer:
		return c[cTransfer], nil
	case MetricNumAscend:
		return c[cAscend], nil
	case MetricNumMigrate:
		return c[cMigrate], nil
	case MetricNumFalsePositives:
		return c[cFalsePositives], nil
	case MetricNumMisses:
		return c[cMisses], nil
	case MetricNumDetections:
		return detections, nil
	case MetricNumObjects:
		return objects, nil
	case MetricNumPredictions:
		return predictions, nil
	case MetricNumUniqueObjects:
		return c[cUniqueObjects], nil
	case MetricMostlyTracked:
		return c[cMostlyTracked], nil
	case MetricPartiallyTracked:
		return c[cPartiallyTracked], nil
	case MetricMostlyLost:
		return c[cMostlyLost], nil
	case MetricNumFragmentations:
		return c[cFragmentations], nil
	case MetricMOTP:
		return quietDivide(c[cDistanceSum], detections), nil
	case MetricMOTA:
		return 1.0 - quietDivide(c[cMisses]+c[cSwitches]+c[cFalsePositives], objects), nil
	case MetricPrecision:
		return quietDivide(detections, predictions), nil
	case MetricRecall:
		return quietDivide(detections, objects), nil
	case MetricIDTP:
		return c[cIDTP], nil
	case MetricIDFN:
		return objects - c[cIDTP], nil
	case MetricIDFP:
		return predictions - c[cIDTP], nil
	case MetricIDP:
		return quietDivide(c[cIDTP], predictions), nil
	case MetricIDR:
		return quietDivide(c[cIDTP], objects), nil
	case MetricIDF1:
		return quietDivide(2*c[cIDTP], objects+predictions), nil
	default:
		return 0, errors.Wrapf(ErrUnknownMetric, "'%s'", m)
	}
}

// counts extracts base counts from accumulated events
func (acc *Accumulator) counts() []float64 {
	c := make([]float64, numCounts)
	c[cFrames] = float64(acc.frames)

	// Per object tracked/missed history in frame order
	history := make(map[int][]bool, len(acc.objectOrder))
	for _, ev := range acc.events {
		switch ev.Type {
		case EventMatch:
			c[cMatches]++
			c[cDistanceSum] += ev.Distance
			history[ev.ObjectID] = append(history[ev.ObjectID], true)
		case EventSwitch:
			c[cSwitches]++
			c[cDistanceSum] += ev.Distance
			history[ev.ObjectID] = append(history[ev.ObjectID], true)
		case EventMiss:
			c[cMisses]++
			history[ev.ObjectID] = append(history[ev.ObjectID], false)
		case EventFalsePositive:
			c[cFalsePositives]++
		case EventTransfer:
			c[cTransfer]++
		case EventAscend:
			c[cAscend]++
		case EventMigrate:
			c[cMigrate]++
		}
	}

	c[cUniqueObjects] = float64(len(acc.objectOrder))
	for _, oid := range acc.objectOrder {
		states := history[oid]
		tracked := 0
		for _, s := range states {
			if s {
				tracked++
			}
		}
		ratio := quietDivide(float64(tracked), float64(acc.objectFrames[oid]))
		switch {
		case ratio >= mostlyTrackedRatio:
			c[cMostlyTracked]++
		case ratio >= mostlyLostRatio:
			c[cPartiallyTracked]++
		default:
			c[cMostlyLost]++
		}
		c[cFragmentations] += float64(fragmentations(states))
	}

	c[cIDTP] = acc.identityTruePositives()
	return c
}

// fragmentations counts how many times tracked object became untracked between its first and last tracked frames
func fragmentations(states []bool) int {
	first, last := -1, -1
	for i, s := range states {
		if s {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return 0
	}
	frags := 0
	for i := first + 1; i <= last; i++ {
		if !states[i] && states[i-1] {
			frags++
		}
	}
	return frags
}

// identityTruePositives solves global one-to-one assignment between object and hypothesis
// identities maximizing number of frames where assigned pair is within distance threshold
func (acc *Accumulator) identityTruePositives() float64 {
	numObjects := len(acc.objectOrder)
	numHyps := len(acc.hypOrder)
	if numObjects == 0 || numHyps == 0 || len(acc.coOccurrences) == 0 {
		return 0
	}
	size := maxInt(numObjects, numHyps)
	matrix := make([][]float64, size)
	for i := range matrix {
		matrix[i] = make([]float64, size)
	}
	for i, oid := range acc.objectOrder {
		for j, hid := range acc.hypOrder {
			matrix[i][j] = float64(acc.coOccurrences[idPair{oid: oid, hid: hid}])
		}
	}
	assignmentsMap := hungarian.SolveMax(matrix)
	idtp := 0.0
	for row, rowMap := range assignmentsMap {
		for col := range rowMap {
			if row < numObjects && col < numHyps {
				idtp += float64(acc.coOccurrences[idPair{oid: acc.objectOrder[row], hid: acc.hypOrder[col]}])
			}
			break
		}
	}
	return idtp
}
