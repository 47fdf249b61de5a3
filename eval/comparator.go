package eval

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/LdDl/motmetrics-go/mot"
)

const (
	// ComparisonDistance is distance metric used to pair ground truth and hypotheses
	ComparisonDistance = mot.DistanceIoU
	// ComparisonThreshold is maximum distance (1 - IoU) for a pair
	ComparisonThreshold = 0.5
)

// Compare builds one comparison unit per tracker output sequence which has ground truth, in tracker output order.
// Sequences without ground truth are logged and skipped.
func Compare(engine Engine, gt, ts *Dataset, log logrus.FieldLogger) ([]*mot.Accumulator, []string, error) {
	units := make([]*mot.Accumulator, 0, ts.Len())
	names := make([]string, 0, ts.Len())
	for _, id := range ts.IDs() {
		gtTable, ok := gt.Get(id)
		if !ok {
			warnUnmatched(log, id)
			continue
		}
		testTable, _ := ts.Get(id)
		log.Infof("Comparing %s...", id)
		unit, err := engine.Compare(gtTable, testTable, ComparisonDistance, ComparisonThreshold)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "Can't compare sequence '%s'", id)
		}
		units = append(units, unit)
		names = append(names, id)
	}
	return units, names, nil
}

func warnUnmatched(log logrus.FieldLogger, id string) {
	log.WithField("sequence", id).Warnf("No ground truth for %s, skipping.", id)
}
