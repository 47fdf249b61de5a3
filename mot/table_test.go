package mot

import (
	"reflect"
	"testing"
)

func TestNewTableOrdersFrames(t *testing.T) {
	table := NewTable([]Observation{
		{FrameID: 3, ObjectID: 1},
		{FrameID: 1, ObjectID: 2},
		{FrameID: 1, ObjectID: 1},
		{FrameID: 2, ObjectID: 5},
	})
	if table.Len() != 4 {
		t.Errorf("Expected 4 observations, got %d", table.Len())
	}
	if !reflect.DeepEqual(table.FrameIDs(), []int{1, 2, 3}) {
		t.Errorf("Expected frames [1 2 3], got %v", table.FrameIDs())
	}
	frame := table.Frame(1)
	if len(frame) != 2 || frame[0].ObjectID != 2 || frame[1].ObjectID != 1 {
		t.Errorf("Observations inside frame should keep file order, got %v", frame)
	}
	if table.Frame(100) != nil {
		t.Error("Absent frame should be nil")
	}
}

func TestUnionFrameIDs(t *testing.T) {
	a := NewTable([]Observation{{FrameID: 1}, {FrameID: 3}, {FrameID: 5}})
	b := NewTable([]Observation{{FrameID: 2}, {FrameID: 3}, {FrameID: 6}})
	got := unionFrameIDs(a, b)
	if !reflect.DeepEqual(got, []int{1, 2, 3, 5, 6}) {
		t.Errorf("Expected [1 2 3 5 6], got %v", got)
	}
	if len(unionFrameIDs(nil, NewTable(nil))) != 0 {
		t.Error("Union of empty tables should be empty")
	}
}
