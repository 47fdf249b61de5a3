package mot

import (
	"bytes"
	"fmt"
	"math"
	"text/tabwriter"
)

// Formatter turns metric value into table cell
type Formatter func(v float64) string

// FormatPercent renders ratio as percent with one decimal, e.g. 0.4567 -> "45.7%"
func FormatPercent(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.1f%%", v*100.0)
}

// FormatFloat3 renders value with three decimals
func FormatFloat3(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.3f", v)
}

// FormatCount renders value as integer
func FormatCount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "nan"
	}
	return fmt.Sprintf("%d", int64(math.Round(v)))
}

// DefaultFormatters returns formatting rules for known metrics: ratios as percents, motp with three decimals, counts as integers
func DefaultFormatters() map[Metric]Formatter {
	formatters := map[Metric]Formatter{
		MetricIDF1:      FormatPercent,
		MetricIDP:       FormatPercent,
		MetricIDR:       FormatPercent,
		MetricRecall:    FormatPercent,
		MetricPrecision: FormatPercent,
		MetricMOTA:      FormatPercent,
		MetricMOTP:      FormatFloat3,
	}
	for _, m := range []Metric{
		MetricNumFrames, MetricNumMatches, MetricNumSwitches, MetricNumTransfer, MetricNumAscend,
		MetricNumMigrate, MetricNumFalsePositives, MetricNumMisses, MetricNumDetections, MetricNumObjects,
		MetricNumPredictions, MetricNumUniqueObjects, MetricMostlyTracked, MetricPartiallyTracked,
		MetricMostlyLost, MetricNumFragmentations, MetricIDFP, MetricIDFN, MetricIDTP,
	} {
		formatters[m] = FormatCount
	}
	return formatters
}

// RenderSummary renders summary as a text table: one line per row, one right-aligned column per metric.
// Metrics missing in formatters are printed with %v, missing in namemap are printed by their own name.
func RenderSummary(summary *Summary, formatters map[Metric]Formatter, namemap map[Metric]string) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 1, ' ', tabwriter.AlignRight)

	fmt.Fprint(w, "\t")
	for _, m := range summary.Metrics {
		name, ok := namemap[m]
		if !ok {
			name = string(m)
		}
		fmt.Fprintf(w, "%s\t", name)
	}
	fmt.Fprintln(w)

	for _, row := range summary.Rows {
		fmt.Fprintf(w, "%s\t", row.Name)
		for _, m := range summary.Metrics {
			v := row.Values[m]
			if format, ok := formatters[m]; ok {
				fmt.Fprintf(w, "%s\t", format(v))
			} else {
				fmt.Fprintf(w, "%v\t", v)
			}
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return buf.String()
}
