package eval

import "github.com/LdDl/motmetrics-go/mot"

// Dataset is an ordered mapping from sequence identifier to annotation table.
// Used both for ground truth and tracker outputs.
type Dataset struct {
	ids    []string
	tables map[string]*mot.Table
}

// NewDataset creates empty dataset
func NewDataset() *Dataset {
	return &Dataset{
		ids:    make([]string, 0),
		tables: make(map[string]*mot.Table),
	}
}

// Add stores table under identifier. Re-adding identifier replaces table but keeps its position
func (ds *Dataset) Add(id string, table *mot.Table) {
	if _, ok := ds.tables[id]; !ok {
		ds.ids = append(ds.ids, id)
	}
	ds.tables[id] = table
}

// Get returns table by identifier
func (ds *Dataset) Get(id string) (*mot.Table, bool) {
	table, ok := ds.tables[id]
	return table, ok
}

// IDs returns identifiers in insertion order
func (ds *Dataset) IDs() []string {
	ids := make([]string, len(ds.ids))
	copy(ids, ds.ids)
	return ids
}

// Len returns number of sequences
func (ds *Dataset) Len() int {
	return len(ds.ids)
}
