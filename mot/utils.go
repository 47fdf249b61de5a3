package mot

import "math"

// IoU calculates Intersection over Union between two rectangles.
// Returns 0 when rectangles do not overlap or both are degenerate.
func IoU(r1, r2 Rectangle) float64 {
	xA := maxFloat64(r1.X, r2.X)
	yA := maxFloat64(r1.Y, r2.Y)
	xB := minFloat64(r1.X+r1.Width, r2.X+r2.Width)
	yB := minFloat64(r1.Y+r1.Height, r2.Y+r2.Height)

	interArea := maxFloat64(0, xB-xA) * maxFloat64(0, yB-yA)
	if interArea == 0 {
		return 0.0
	}

	union := r1.Area() + r2.Area() - interArea
	if union <= 0 {
		return 0.0
	}
	return interArea / union
}

// quietDivide returns NaN for 0/0 and Inf for x/0 instead of panicking or erroring out
func quietDivide(a, b float64) float64 {
	if b == 0 {
		if a == 0 {
			return math.NaN()
		}
		return math.Inf(int(math.Copysign(1, a)))
	}
	return a / b
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
