package eval

import (
	"github.com/pkg/errors"

	"github.com/LdDl/motmetrics-go/mot"
)

// Report is terminal output of a run
type Report struct {
	Summary *mot.Summary
	Text    string
}

// Aggregate computes summary over all units (plus overall row) and renders it.
// No units is not an error: the report then has the overall row only.
func Aggregate(engine Engine, units []*mot.Accumulator, names []string) (*Report, error) {
	summary, err := engine.Aggregate(units, names)
	if err != nil {
		return nil, errors.Wrap(err, "Can't compute metrics")
	}
	return &Report{
		Summary: summary,
		Text:    engine.Render(summary),
	}, nil
}
