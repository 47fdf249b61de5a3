package mot

import (
	"sort"
)

// Observation is a single row of an annotation file: one object seen in one frame.
type Observation struct {
	FrameID    int
	ObjectID   int
	Box        Rectangle
	Confidence float64
	ClassID    int
	Visibility float64
}

// Table is an in-memory annotation table grouped by frame.
// Frames are kept in ascending order, observations inside a frame keep file order.
type Table struct {
	frameIDs []int
	frames   map[int][]Observation
	size     int
}

// NewTable creates table from observations
func NewTable(observations []Observation) *Table {
	table := &Table{
		frameIDs: make([]int, 0),
		frames:   make(map[int][]Observation),
	}
	for _, obs := range observations {
		table.add(obs)
	}
	return table
}

func (table *Table) add(obs Observation) {
	if _, ok := table.frames[obs.FrameID]; !ok {
		idx := sort.SearchInts(table.frameIDs, obs.FrameID)
		table.frameIDs = append(table.frameIDs, 0)
		copy(table.frameIDs[idx+1:], table.frameIDs[idx:])
		table.frameIDs[idx] = obs.FrameID
	}
	table.frames[obs.FrameID] = append(table.frames[obs.FrameID], obs)
	table.size++
}

// Len returns total number of observations
func (table *Table) Len() int {
	if table == nil {
		return 0
	}
	return table.size
}

// FrameIDs returns frame identifiers in ascending order. Be careful: this is not copy, but reference
func (table *Table) FrameIDs() []int {
	if table == nil {
		return nil
	}
	return table.frameIDs
}

// Frame returns observations of the given frame (nil if frame is absent)
func (table *Table) Frame(frameID int) []Observation {
	if table == nil {
		return nil
	}
	return table.frames[frameID]
}

// unionFrameIDs merges frame ids of both tables into one ascending list
func unionFrameIDs(a, b *Table) []int {
	left, right := a.FrameIDs(), b.FrameIDs()
	result := make([]int, 0, maxInt(len(left), len(right)))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		switch {
		case left[i] < right[j]:
			result = append(result, left[i])
			i++
		case left[i] > right[j]:
			result = append(result, right[j])
			j++
		default:
			result = append(result, left[i])
			i++
			j++
		}
	}
	result = append(result, left[i:]...)
	result = append(result, right[j:]...)
	return result
}
