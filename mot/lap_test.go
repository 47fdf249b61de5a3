package mot

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestParseSolver(t *testing.T) {
	solver, err := ParseSolver("")
	if err != nil || solver != DefaultSolver {
		t.Errorf("Empty name should give default solver, got %v (%v)", solver, err)
	}
	solver, err = ParseSolver("greedy")
	if err != nil || solver != SolverGreedy {
		t.Errorf("Expected greedy solver, got %v (%v)", solver, err)
	}
	_, err = ParseSolver("lapjv")
	if !errors.Is(err, ErrUnknownSolver) {
		t.Errorf("Expected ErrUnknownSolver, got %v", err)
	}
}

func TestSolveMaximizesPairs(t *testing.T) {
	nan := math.NaN()
	costs := [][]float64{
		{0.1, 0.2},
		{0.15, nan},
	}
	// Cheapest cell first leaves second row without a pair
	greedy := SolverGreedy.Solve(costs)
	if !reflect.DeepEqual(greedy, [][2]int{{0, 0}}) {
		t.Errorf("Greedy: expected [[0 0]], got %v", greedy)
	}
	optimal := SolverHungarian.Solve(costs)
	if !reflect.DeepEqual(optimal, [][2]int{{0, 1}, {1, 0}}) {
		t.Errorf("Hungarian: expected [[0 1] [1 0]], got %v", optimal)
	}
}

func TestSolveMinimizesCost(t *testing.T) {
	costs := [][]float64{
		{0.4, 0.1, 0.3},
		{0.2, 0.3, 0.05},
	}
	for _, solver := range AvailableSolvers() {
		got := solver.Solve(costs)
		if !reflect.DeepEqual(got, [][2]int{{0, 1}, {1, 2}}) {
			t.Errorf("%s: expected [[0 1] [1 2]], got %v", solver, got)
		}
	}
}

func TestSolveRectangularAndForbidden(t *testing.T) {
	nan := math.NaN()
	costs := [][]float64{
		{nan},
		{0.3},
		{0.1},
	}
	for _, solver := range AvailableSolvers() {
		got := solver.Solve(costs)
		if !reflect.DeepEqual(got, [][2]int{{2, 0}}) {
			t.Errorf("%s: expected [[2 0]], got %v", solver, got)
		}
	}
	allForbidden := [][]float64{{nan, nan}, {nan, nan}}
	for _, solver := range AvailableSolvers() {
		if got := solver.Solve(allForbidden); len(got) != 0 {
			t.Errorf("%s: expected no pairs, got %v", solver, got)
		}
	}
	if got := SolverHungarian.Solve(nil); len(got) != 0 {
		t.Errorf("Expected no pairs for empty matrix, got %v", got)
	}
	if got := SolverHungarian.Solve([][]float64{{}, {}}); len(got) != 0 {
		t.Errorf("Expected no pairs for matrix without columns, got %v", got)
	}
}
