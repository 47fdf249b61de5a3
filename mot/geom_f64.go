package mot

import (
	"math"
)

// Rectangle is an axis-aligned bounding box: top-left corner plus size.
type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(x, y, width, height float64) Rectangle {
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// Center returns center of the rectangle
func (r Rectangle) Center() Point {
	return Point{
		X: r.X + r.Width/2.0,
		Y: r.Y + r.Height/2.0,
	}
}

// Area returns area of the rectangle. Degenerate rectangles have zero area
func (r Rectangle) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Sqrt(squaredDistance(p1, p2))
}

func squaredDistance(p1, p2 Point) float64 {
	return math.Pow(p1.X-p2.X, 2) + math.Pow(p1.Y-p2.Y, 2)
}
