package mot

import (
	"math"

	"github.com/pkg/errors"
)

// DistanceMetric is a way to measure distance between ground truth and hypothesis boxes
type DistanceMetric string

const (
	// DistanceIoU is 1 - IoU
	DistanceIoU DistanceMetric = "iou"
	// DistanceEuclidean is squared distance between box centers
	DistanceEuclidean DistanceMetric = "euc"
)

var (
	// ErrUnknownDistance is returned for unsupported distance metric
	ErrUnknownDistance = errors.New("unknown distance metric")
)

// Matrix builds distance matrix (rows = objects, columns = hypotheses) for the metric.
// Cells above threshold are NaN (pairing is not allowed).
func (metric DistanceMetric) Matrix(objs, hyps []Rectangle, threshold float64) ([][]float64, error) {
	switch metric {
	case DistanceIoU:
		return IoUMatrix(objs, hyps, threshold), nil
	case DistanceEuclidean:
		return EuclideanMatrix(objs, hyps, threshold), nil
	default:
		return nil, errors.Wrapf(ErrUnknownDistance, "'%s'", metric)
	}
}

// IoUMatrix computes 1 - IoU for every pair. Distances greater than maxIoU become NaN.
func IoUMatrix(objs, hyps []Rectangle, maxIoU float64) [][]float64 {
	distances := make([][]float64, len(objs))
	for i, obj := range objs {
		row := make([]float64, len(hyps))
		for j, hyp := range hyps {
			dist := 1.0 - IoU(obj, hyp)
			if dist > maxIoU {
				dist = math.NaN()
			}
			row[j] = dist
		}
		distances[i] = row
	}
	return distances
}

// EuclideanMatrix computes squared distance between centers. Distances greater than maxD2 become NaN.
func EuclideanMatrix(objs, hyps []Rectangle, maxD2 float64) [][]float64 {
	distances := make([][]float64, len(objs))
	for i, obj := range objs {
		row := make([]float64, len(hyps))
		for j, hyp := range hyps {
			dist := squaredDistance(obj.Center(), hyp.Center())
			if dist > maxD2 {
				dist = math.NaN()
			}
			row[j] = dist
		}
		distances[i] = row
	}
	return distances
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
