package mot

import (
	"math"

	"github.com/pkg/errors"
)

// EventType is kind of accumulator event
type EventType uint8

const (
	// EventMatch is object correctly paired with the same hypothesis as before (or for the first time)
	EventMatch EventType = iota
	// EventSwitch is object paired with a different hypothesis than last time
	EventSwitch
	// EventMiss is object without hypothesis
	EventMiss
	// EventFalsePositive is hypothesis without object
	EventFalsePositive
	// EventTransfer is hypothesis paired with a different object than last time
	EventTransfer
	// EventAscend is switch to a hypothesis never seen before
	EventAscend
	// EventMigrate is transfer to an object never matched before
	EventMigrate
)

func (et EventType) String() string {
	switch et {
	case EventMatch:
		return "MATCH"
	case EventSwitch:
		return "SWITCH"
	case EventMiss:
		return "MISS"
	case EventFalsePositive:
		return "FP"
	case EventTransfer:
		return "TRANSFER"
	case EventAscend:
		return "ASCEND"
	case EventMigrate:
		return "MIGRATE"
	default:
		return "UNKNOWN"
	}
}

// Event is a single accumulator record.
// ObjectID is meaningful for every type except EventFalsePositive, HypothesisID for every type except EventMiss.
type Event struct {
	FrameID      int
	Type         EventType
	ObjectID     int
	HypothesisID int
	Distance     float64
}

type idPair struct {
	oid int
	hid int
}

// Accumulator collects per-frame tracking events of one sequence.
// It is the unit consumed by ComputeMany.
type Accumulator struct {
	solver Solver
	events []Event
	frames int

	// Current object -> hypothesis correspondence
	m map[int]int
	// Current hypothesis -> object correspondence
	resM map[int]int
	// Frame of last MATCH/SWITCH per object
	lastMatch map[int]int
	// Frames where hypothesis was paired
	hypHistory map[int]int

	// Number of frames object is present in / paired in. Preserves first-seen order in objectOrder
	objectFrames  map[int]int
	objectOrder   []int
	hypFrames     map[int]int
	hypOrder      []int
	coOccurrences map[idPair]int
}

// NewAccumulator creates empty accumulator which uses given LAP solver
func NewAccumulator(solver Solver) *Accumulator {
	return &Accumulator{
		solver:        solver,
		events:        make([]Event, 0),
		m:             make(map[int]int),
		resM:          make(map[int]int),
		lastMatch:     make(map[int]int),
		hypHistory:    make(map[int]int),
		objectFrames:  make(map[int]int),
		objectOrder:   make([]int, 0),
		hypFrames:     make(map[int]int),
		hypOrder:      make([]int, 0),
		coOccurrences: make(map[idPair]int),
	}
}

// Events returns recorded events. Be careful: this is not copy, but reference
func (acc *Accumulator) Events() []Event {
	return acc.events
}

// NumFrames returns number of frames passed to Update
func (acc *Accumulator) NumFrames() int {
	return acc.frames
}

func (acc *Accumulator) push(frameID int, et EventType, oid, hid int, dist float64) {
	acc.events = append(acc.events, Event{
		FrameID:      frameID,
		Type:         et,
		ObjectID:     oid,
		HypothesisID: hid,
		Distance:     dist,
	})
}

// Update registers one frame: object ids, hypothesis ids and distance matrix (rows = objects, columns = hypotheses).
// NaN distance means that pair is not allowed.
func (acc *Accumulator) Update(frameID int, oids, hids []int, dists [][]float64) error {
	if len(dists) != len(oids) {
		return errors.Errorf("distance matrix has %d rows, expected %d", len(dists), len(oids))
	}
	for i := range dists {
		if len(dists[i]) != len(hids) {
			return errors.Errorf("distance matrix row %d has %d columns, expected %d", i, len(dists[i]), len(hids))
		}
	}
	acc.frames++

	// 0. Raw statistics for identity metrics
	for i, oid := range oids {
		if _, ok := acc.objectFrames[oid]; !ok {
			acc.objectOrder = append(acc.objectOrder, oid)
		}
		acc.objectFrames[oid]++
		for j, hid := range hids {
			if isFinite(dists[i][j]) {
				acc.coOccurrences[idPair{oid: oid, hid: hid}]++
			}
		}
	}
	for _, hid := range hids {
		if _, ok := acc.hypFrames[hid]; !ok {
			acc.hypOrder = append(acc.hypOrder, hid)
		}
		acc.hypFrames[hid]++
	}

	oidsMasked := make([]bool, len(oids))
	hidsMasked := make([]bool, len(hids))

	// 1. Try to re-establish tracks from previous correspondences
	for i, oid := range oids {
		hprev, ok := acc.m[oid]
		if !ok {
			continue
		}
		for j, hid := range hids {
			if hidsMasked[j] || hid != hprev {
				continue
			}
			if isFinite(dists[i][j]) {
				oidsMasked[i] = true
				hidsMasked[j] = true
				acc.m[oid] = hid
				acc.resM[hid] = oid
				acc.lastMatch[oid] = frameID
				acc.hypHistory[hid] = frameID
				acc.push(frameID, EventMatch, oid, hid, dists[i][j])
			}
			break
		}
	}

	// 2. Solve assignment for the rest of objects/hypotheses
	remaining := make([][]float64, len(oids))
	for i := range oids {
		row := make([]float64, len(hids))
		for j := range hids {
			if oidsMasked[i] || hidsMasked[j] {
				row[j] = math.NaN()
			} else {
				row[j] = dists[i][j]
			}
		}
		remaining[i] = row
	}
	for _, match := range acc.solver.Solve(remaining) {
		i, j := match[0], match[1]
		oid, hid := oids[i], hids[j]
		dist := remaining[i][j]
		oidsMasked[i] = true
		hidsMasked[j] = true

		prevHid, seenObject := acc.m[oid]
		if seenObject && prevHid != hid {
			if _, seenHyp := acc.hypHistory[hid]; !seenHyp {
				acc.push(frameID, EventAscend, oid, hid, dist)
			}
			acc.push(frameID, EventSwitch, oid, hid, dist)
		} else {
			acc.push(frameID, EventMatch, oid, hid, dist)
		}
		if prevOid, ok := acc.resM[hid]; ok && prevOid != oid {
			if _, everMatched := acc.lastMatch[oid]; !everMatched {
				acc.push(frameID, EventMigrate, oid, hid, dist)
			}
			acc.push(frameID, EventTransfer, oid, hid, dist)
		}

		acc.m[oid] = hid
		acc.resM[hid] = oid
		acc.lastMatch[oid] = frameID
		acc.hypHistory[hid] = frameID
	}

	// 3. All remaining objects are missed
	for i, oid := range oids {
		if !oidsMasked[i] {
			acc.push(frameID, EventMiss, oid, 0, math.NaN())
		}
	}

	// 4. All remaining hypotheses are false alarms
	for j, hid := range hids {
		if !hidsMasked[j] {
			acc.push(frameID, EventFalsePositive, 0, hid, math.NaN())
		}
	}
	return nil
}

// CompareToGroundTruth walks over union of frames of both tables and accumulates events.
// threshold is maximum distance for the pair to be considered (e.g. 0.5 for IoU).
func CompareToGroundTruth(gt, dt *Table, metric DistanceMetric, threshold float64, solver Solver) (*Accumulator, error) {
	acc := NewAccumulator(solver)
	for _, frameID := range unionFrameIDs(gt, dt) {
		objects := gt.Frame(frameID)
		hypotheses := dt.Frame(frameID)
		oids := make([]int, len(objects))
		objBoxes := make([]Rectangle, len(objects))
		for i, obs := range objects {
			oids[i] = obs.ObjectID
			objBoxes[i] = obs.Box
		}
		hids := make([]int, len(hypotheses))
		hypBoxes := make([]Rectangle, len(hypotheses))
		for j, obs := range hypotheses {
			hids[j] = obs.ObjectID
			hypBoxes[j] = obs.Box
		}
		dists, err := metric.Matrix(objBoxes, hypBoxes, threshold)
		if err != nil {
			return nil, err
		}
		if err := acc.Update(frameID, oids, hids, dists); err != nil {
			return nil, errors.Wrapf(err, "Can't update accumulator at frame %d", frameID)
		}
	}
	return acc, nil
}
