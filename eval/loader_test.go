package eval

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LdDl/motmetrics-go/mot"
)

func TestLoaderPreservesOrder(t *testing.T) {
	parser := newStubParser()
	tableB := mot.NewTable([]mot.Observation{{FrameID: 1, ObjectID: 2}})
	parser.tables["b.txt"] = tableB
	logger, _ := newTestLogger()
	progress := &bytes.Buffer{}

	loader := NewLoader(parser, progress, logger)
	sources := []Source{{ID: "c", Path: "c.txt"}, {ID: "b", Path: "b.txt"}, {ID: "a", Path: "a.txt"}}
	ds, err := loader.Load("Testing", sources, mot.FormatMOT15, mot.WithMinConfidence(1))
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "b", "a"}, ds.IDs())
	assert.Equal(t, []string{"c.txt", "b.txt", "a.txt"}, parser.paths)
	assert.Equal(t, []int{1, 1, 1}, parser.options)
	assert.Equal(t, []mot.Format{mot.FormatMOT15, mot.FormatMOT15, mot.FormatMOT15}, parser.formats)
	table, _ := ds.Get("b")
	assert.Same(t, tableB, table)
	assert.Contains(t, progress.String(), "Testing")
}

func TestLoaderFailureIsFatal(t *testing.T) {
	parser := newStubParser()
	parser.errs["b.txt"] = errors.New("broken line")
	logger, _ := newTestLogger()

	loader := NewLoader(parser, nil, logger)
	sources := []Source{{ID: "a", Path: "a.txt"}, {ID: "b", Path: "b.txt"}, {ID: "c", Path: "c.txt"}}
	ds, err := loader.Load("Ground truth", sources, mot.FormatMOT15)
	require.Error(t, err)
	assert.Nil(t, ds)
	assert.Contains(t, err.Error(), "b.txt")
	assert.Contains(t, err.Error(), "broken line")
	// Loading stops on first failure
	assert.Equal(t, []string{"a.txt", "b.txt"}, parser.paths)
}

func TestLoaderEmpty(t *testing.T) {
	logger, _ := newTestLogger()
	progress := &bytes.Buffer{}
	ds, err := NewLoader(newStubParser(), progress, logger).Load("Testing", nil, mot.FormatMOT15)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, progress.String())
}

func TestTextParser(t *testing.T) {
	path := t.TempDir() + "/seq.txt"
	writeFile(t, path, sampleGroundTruth)
	table, err := TextParser.Load(path, mot.FormatMOT15, mot.WithMinConfidence(1))
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}
