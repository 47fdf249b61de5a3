package eval

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LdDl/motmetrics-go/mot"
)

func TestAMOTGroundTruthPath(t *testing.T) {
	root := filepath.Join("data", "gt")
	cases := map[string]string{
		"A-B":       filepath.Join(root, "A", "gt", "B.csv"),
		"rink-cam1": filepath.Join(root, "rink", "gt", "cam1.csv"),
		"a-b-c":     filepath.Join(root, "a", "b", "gt", "c.csv"),
		"seq":       filepath.Join(root, "seq", "gt", "seq.csv"),
	}
	for id, want := range cases {
		assert.Equal(t, want, AMOTGroundTruthPath(root, id), id)
	}
}

func TestResolveAMOTDoesNotCheckExistence(t *testing.T) {
	testRoot := t.TempDir()
	gtRoot := filepath.Join(t.TempDir(), "missing")
	writeFile(t, filepath.Join(testRoot, "rink-cam1.txt"), sampleTest)
	writeFile(t, filepath.Join(testRoot, "alpha.txt"), sampleTest)
	writeFile(t, filepath.Join(testRoot, "notes.csv"), "")

	resolution, err := LayoutAMOT.Resolve(gtRoot, testRoot)
	require.NoError(t, err)
	want := []Sequence{
		{ID: "alpha", GroundTruthPath: filepath.Join(gtRoot, "alpha", "gt", "alpha.csv"), TestPath: filepath.Join(testRoot, "alpha.txt")},
		{ID: "rink-cam1", GroundTruthPath: filepath.Join(gtRoot, "rink", "gt", "cam1.csv"), TestPath: filepath.Join(testRoot, "rink-cam1.txt")},
	}
	if diff := cmp.Diff(want, resolution.Sequences); diff != "" {
		t.Errorf("Unexpected sequences (-want +got):\n%s", diff)
	}
	assert.Empty(t, resolution.Unmatched)
	assert.Equal(t, 2, resolution.TestFiles)
}

func TestResolveMOTChallengeIntersection(t *testing.T) {
	gtRoot := t.TempDir()
	testRoot := t.TempDir()
	writeFile(t, filepath.Join(gtRoot, "seq1", "gt", "gt.txt"), sampleGroundTruth)
	writeFile(t, filepath.Join(gtRoot, "seq2", "gt", "gt.txt"), sampleGroundTruth)
	writeFile(t, filepath.Join(gtRoot, "seq4", "det", "det.txt"), sampleGroundTruth)
	writeFile(t, filepath.Join(testRoot, "seq1.txt"), sampleTest)
	writeFile(t, filepath.Join(testRoot, "seq3.txt"), sampleTest)
	writeFile(t, filepath.Join(testRoot, "seq4.txt"), sampleTest)
	writeFile(t, filepath.Join(testRoot, "eval_seq2.txt"), "")
	writeFile(t, filepath.Join(testRoot, "evaluation.txt"), "")

	resolution, err := LayoutMOTChallenge.Resolve(gtRoot, testRoot)
	require.NoError(t, err)
	want := []Sequence{
		{ID: "seq1", GroundTruthPath: filepath.Join(gtRoot, "seq1", "gt", "gt.txt"), TestPath: filepath.Join(testRoot, "seq1.txt")},
	}
	if diff := cmp.Diff(want, resolution.Sequences); diff != "" {
		t.Errorf("Unexpected sequences (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"seq3", "seq4"}, resolution.Unmatched)
	assert.Equal(t, 2, resolution.GroundTruthFiles)
	assert.Equal(t, 3, resolution.TestFiles)
}

func TestResolveMOTChallengeOrderAndSymmetry(t *testing.T) {
	gtRoot := t.TempDir()
	testRoot := t.TempDir()
	for _, id := range []string{"c", "a", "b", "d"} {
		writeFile(t, filepath.Join(gtRoot, id, "gt", "gt.txt"), sampleGroundTruth)
	}
	for _, id := range []string{"b", "c", "a", "x"} {
		writeFile(t, filepath.Join(testRoot, id+".txt"), sampleTest)
	}

	resolution, err := LayoutMOTChallenge.Resolve(gtRoot, testRoot)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, resolution.IDs())

	gtIDs := make(map[string]struct{})
	testIDs := make(map[string]struct{})
	for _, seq := range resolution.Sequences {
		gtIDs[groundTruthID(seq.GroundTruthPath)] = struct{}{}
		testIDs[seq.ID] = struct{}{}
	}
	assert.Equal(t, gtIDs, testIDs)

	again, err := LayoutMOTChallenge.Resolve(gtRoot, testRoot)
	require.NoError(t, err)
	assert.Equal(t, resolution, again)
}

func TestResolveEmptyRoots(t *testing.T) {
	for _, layout := range []Layout{LayoutMOTChallenge, LayoutAMOT} {
		resolution, err := layout.Resolve(t.TempDir(), filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err, layout.String())
		assert.Empty(t, resolution.Sequences, layout.String())
		assert.Empty(t, resolution.Unmatched, layout.String())
	}
}

func TestResolutionSources(t *testing.T) {
	resolution := &Resolution{Sequences: []Sequence{
		{ID: "a", GroundTruthPath: "gt/a", TestPath: "ts/a"},
		{ID: "b", GroundTruthPath: "gt/b", TestPath: "ts/b"},
	}}
	assert.Equal(t, []Source{{ID: "a", Path: "gt/a"}, {ID: "b", Path: "gt/b"}}, resolution.GroundTruthSources())
	assert.Equal(t, []Source{{ID: "a", Path: "ts/a"}, {ID: "b", Path: "ts/b"}}, resolution.TestSources())
}

func TestLayoutFormats(t *testing.T) {
	assert.Equal(t, mot.FormatMOT15, LayoutMOTChallenge.DefaultFormat())
	assert.Equal(t, mot.FormatMOT16, LayoutMOTChallenge.TestFormat(mot.FormatMOT16))
	assert.Equal(t, mot.FormatAMOTD, LayoutAMOT.DefaultFormat())
	assert.Equal(t, mot.FormatAMOTDTest, LayoutAMOT.TestFormat(mot.FormatAMOTD))
	assert.Equal(t, "eval-motchallenge", LayoutMOTChallenge.CommandName())
	assert.Equal(t, "eval-amot", LayoutAMOT.CommandName())
}
