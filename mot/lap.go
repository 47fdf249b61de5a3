package mot

import (
	"container/heap"
	"math"
	"sort"

	"github.com/arthurkushman/go-hungarian"
	"github.com/pkg/errors"
)

// Solver is linear assignment problem (LAP) solver used to pair objects with hypotheses
type Solver string

const (
	// SolverHungarian uses the Hungarian algorithm (Kuhn-Munkres) for optimal assignment
	SolverHungarian Solver = "hungarian"
	// SolverGreedy pairs cheapest cells first. Faster but potentially suboptimal
	SolverGreedy Solver = "greedy"

	// DefaultSolver is used when nothing else is configured
	DefaultSolver = SolverHungarian

	// SCALE_FACTOR turns scores into integral values before handing them to Hungarian solver
	SCALE_FACTOR = 1_000_000.0
)

var (
	// ErrUnknownSolver is returned when solver name is not supported
	ErrUnknownSolver = errors.New("unknown LAP solver")
)

var knownSolvers = []Solver{SolverHungarian, SolverGreedy}

// AvailableSolvers returns list of supported solvers
func AvailableSolvers() []Solver {
	solvers := make([]Solver, len(knownSolvers))
	copy(solvers, knownSolvers)
	return solvers
}

// ParseSolver validates solver name. Empty name means DefaultSolver
func ParseSolver(name string) (Solver, error) {
	if name == "" {
		return DefaultSolver, nil
	}
	for _, s := range knownSolvers {
		if string(s) == name {
			return s, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownSolver, "'%s'", name)
}

// Solve finds assignment for cost matrix (rows x cols). NaN and Inf cells are forbidden.
// Returns pairs {row, col} sorted by row; every returned pair refers to a finite cell.
func (s Solver) Solve(costs [][]float64) [][2]int {
	rows := len(costs)
	if rows == 0 {
		return [][2]int{}
	}
	cols := len(costs[0])
	if cols == 0 {
		return [][2]int{}
	}
	var matches [][2]int
	switch s {
	case SolverGreedy:
		matches = solveGreedy(costs, rows, cols)
	default:
		matches = solveHungarian(costs, rows, cols)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i][0] < matches[j][0]
	})
	return matches
}

// solveHungarian maximizes number of pairs first and minimizes total cost second.
// Forbidden cells and padding get zero score, so they are never preferred over a real pair.
func solveHungarian(costs [][]float64, rows, cols int) [][2]int {
	maxCost := 0.0
	finiteCells := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if isFinite(costs[i][j]) {
				finiteCells++
				maxCost = maxFloat64(maxCost, math.Abs(costs[i][j]))
			}
		}
	}
	if finiteCells == 0 {
		return [][2]int{}
	}
	if maxCost == 0 {
		maxCost = 1.0
	}

	// Rectangular matrix - pad to make it square
	size := maxInt(rows, cols)
	bonus := float64(size) + 2.0
	paddedMatrix := make([][]float64, size)
	for i := 0; i < size; i++ {
		paddedMatrix[i] = make([]float64, size)
		if i >= rows {
			continue
		}
		for j := 0; j < cols; j++ {
			if isFinite(costs[i][j]) {
				normed := costs[i][j] / maxCost
				paddedMatrix[i][j] = math.Round((bonus - normed) * SCALE_FACTOR)
			}
		}
	}

	assignmentsMap := hungarian.SolveMax(paddedMatrix)
	matches := make([][2]int, 0, minInt(rows, cols))
	for row, rowMap := range assignmentsMap {
		for col := range rowMap {
			// Drop padding and forbidden cells
			if row < rows && col < cols && isFinite(costs[row][col]) {
				matches = append(matches, [2]int{row, col})
			}
			break
		}
	}
	return matches
}

// lapCell is a candidate pair for greedy matching
type lapCell struct {
	row  int
	col  int
	cost float64
}

// cellHeap implements heap.Interface for min-heap by cost
type cellHeap []lapCell

func (h cellHeap) Len() int { return len(h) }

func (h cellHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	if h[i].row != h[j].row {
		return h[i].row < h[j].row
	}
	return h[i].col < h[j].col
}

func (h cellHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cellHeap) Push(x any) {
	*h = append(*h, x.(lapCell))
}

func (h *cellHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// solveGreedy takes cheapest finite cells first, skipping rows and columns which are already reserved
func solveGreedy(costs [][]float64, rows, cols int) [][2]int {
	pq := &cellHeap{}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if isFinite(costs[i][j]) {
				*pq = append(*pq, lapCell{row: i, col: j, cost: costs[i][j]})
			}
		}
	}
	heap.Init(pq)

	// Prevent double assignment of rows and columns
	reservedRows := make(map[int]struct{})
	reservedCols := make(map[int]struct{})
	matches := make([][2]int, 0, minInt(rows, cols))
	for pq.Len() > 0 {
		cell := heap.Pop(pq).(lapCell)
		if _, ok := reservedRows[cell.row]; ok {
			continue
		}
		if _, ok := reservedCols[cell.col]; ok {
			continue
		}
		reservedRows[cell.row] = struct{}{}
		reservedCols[cell.col] = struct{}{}
		matches = append(matches, [2]int{cell.row, cell.col})
	}
	return matches
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
