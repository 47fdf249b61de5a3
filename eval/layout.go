package eval

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/LdDl/motmetrics-go/mot"
)

// Layout is a directory convention for ground truth and tracker output files.
// Layouts differ only in how sequence identifiers are derived and matched.
type Layout uint8

const (
	// LayoutMOTChallenge expects <GT_ROOT>/<SEQ>/gt/gt.txt and <TEST_ROOT>/<SEQ>.txt.
	// Only sequences present on both sides are evaluated.
	LayoutMOTChallenge Layout = iota
	// LayoutAMOT expects <TEST_ROOT>/<A>-<B>.txt and reconstructs <GT_ROOT>/<A>/gt/<B>.csv from it.
	// Ground truth existence is not checked: missing file fails loading.
	LayoutAMOT
)

// ReservedTestPrefix marks files in test root which are evaluation outputs rather than tracker results
const ReservedTestPrefix = "eval"

const (
	testPattern        = "*.txt"
	groundTruthPattern = "*/gt/gt.txt"
)

func (layout Layout) String() string {
	switch layout {
	case LayoutMOTChallenge:
		return "motchallenge"
	case LayoutAMOT:
		return "amot"
	default:
		return "unknown"
	}
}

// DefaultFormat returns parser format used when nothing is configured
func (layout Layout) DefaultFormat() mot.Format {
	if layout == LayoutAMOT {
		return mot.FormatAMOTD
	}
	return mot.FormatMOT15
}

// TestFormat returns parser format for tracker outputs given configured format.
// AMOT tracker outputs always have their own format.
func (layout Layout) TestFormat(format mot.Format) mot.Format {
	if layout == LayoutAMOT {
		return mot.FormatAMOTDTest
	}
	return format
}

// Sequence is a matched triple: sequence identifier, ground truth file and tracker output file
type Sequence struct {
	ID              string
	GroundTruthPath string
	TestPath        string
}

// Resolution is result of layout resolution
type Resolution struct {
	// Matched sequences in tracker output encounter order
	Sequences []Sequence
	// Tracker output identifiers dropped because ground truth was not found
	Unmatched []string
	// Number of discovered files on each side, before matching
	GroundTruthFiles int
	TestFiles        int
}

// IDs returns identifiers of matched sequences
func (r *Resolution) IDs() []string {
	ids := make([]string, len(r.Sequences))
	for i, seq := range r.Sequences {
		ids[i] = seq.ID
	}
	return ids
}

// GroundTruthSources returns (id, path) pairs of ground truth files
func (r *Resolution) GroundTruthSources() []Source {
	sources := make([]Source, len(r.Sequences))
	for i, seq := range r.Sequences {
		sources[i] = Source{ID: seq.ID, Path: seq.GroundTruthPath}
	}
	return sources
}

// TestSources returns (id, path) pairs of tracker output files
func (r *Resolution) TestSources() []Source {
	sources := make([]Source, len(r.Sequences))
	for i, seq := range r.Sequences {
		sources[i] = Source{ID: seq.ID, Path: seq.TestPath}
	}
	return sources
}

// Resolve discovers files under both roots and matches them by sequence identifier
func (layout Layout) Resolve(groundTruthRoot, testRoot string) (*Resolution, error) {
	switch layout {
	case LayoutMOTChallenge:
		return resolveMOTChallenge(groundTruthRoot, testRoot)
	case LayoutAMOT:
		return resolveAMOT(groundTruthRoot, testRoot)
	default:
		return nil, errors.Errorf("unknown layout %d", layout)
	}
}

// resolveMOTChallenge intersects ground truth and tracker output identifiers
func resolveMOTChallenge(groundTruthRoot, testRoot string) (*Resolution, error) {
	gtFiles, err := discover(groundTruthRoot, groundTruthPattern)
	if err != nil {
		return nil, errors.Wrap(err, "Can't discover ground truth files")
	}
	testFiles, err := discover(testRoot, testPattern)
	if err != nil {
		return nil, errors.Wrap(err, "Can't discover test files")
	}

	gtByID := make(map[string]string, len(gtFiles))
	for _, f := range gtFiles {
		gtByID[groundTruthID(f)] = f
	}

	resolution := &Resolution{
		Sequences:        make([]Sequence, 0),
		Unmatched:        make([]string, 0),
		GroundTruthFiles: len(gtFiles),
	}
	for _, f := range testFiles {
		name := filepath.Base(f)
		if strings.HasPrefix(name, ReservedTestPrefix) {
			continue
		}
		resolution.TestFiles++
		id := strings.TrimSuffix(name, filepath.Ext(name))
		gtPath, ok := gtByID[id]
		if !ok {
			resolution.Unmatched = append(resolution.Unmatched, id)
			continue
		}
		resolution.Sequences = append(resolution.Sequences, Sequence{
			ID:              id,
			GroundTruthPath: gtPath,
			TestPath:        f,
		})
	}
	return resolution, nil
}

// resolveAMOT reconstructs ground truth path of every tracker output file without checking it exists
func resolveAMOT(groundTruthRoot, testRoot string) (*Resolution, error) {
	testFiles, err := discover(testRoot, testPattern)
	if err != nil {
		return nil, errors.Wrap(err, "Can't discover test files")
	}
	resolution := &Resolution{
		Sequences:        make([]Sequence, 0, len(testFiles)),
		Unmatched:        make([]string, 0),
		GroundTruthFiles: len(testFiles),
		TestFiles:        len(testFiles),
	}
	for _, f := range testFiles {
		id := strings.TrimSuffix(filepath.Base(f), ".txt")
		resolution.Sequences = append(resolution.Sequences, Sequence{
			ID:              id,
			GroundTruthPath: AMOTGroundTruthPath(groundTruthRoot, id),
			TestPath:        f,
		})
	}
	return resolution, nil
}

// AMOTGroundTruthPath decodes sequence identifier into ground truth location:
// every '-' is a directory separator and the last element is the file name.
// "A-B" -> <root>/A/gt/B.csv. Identifier without '-' is used as both directory and file name: "S" -> <root>/S/gt/S.csv
func AMOTGroundTruthPath(groundTruthRoot, id string) string {
	parts := strings.Split(id, "-")
	name := parts[len(parts)-1]
	dirs := parts[:len(parts)-1]
	if len(dirs) == 0 {
		dirs = []string{id}
	}
	elems := make([]string, 0, len(dirs)+3)
	elems = append(elems, groundTruthRoot)
	elems = append(elems, dirs...)
	elems = append(elems, "gt", name+".csv")
	return filepath.Join(elems...)
}

// groundTruthID is name of grandparent directory: <GT_ROOT>/<ID>/gt/gt.txt
func groundTruthID(gtPath string) string {
	return filepath.Base(filepath.Dir(filepath.Dir(gtPath)))
}

// discover returns regular files matching pattern under root in lexical order.
// Missing root yields no files.
func discover(root, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	files := make([]string, len(matches))
	for i, m := range matches {
		files[i] = filepath.Join(root, filepath.FromSlash(path.Clean(m)))
	}
	return files, nil
}
