package eval

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/LdDl/motmetrics-go/mot"
)

// Options defines command line options shared by both evaluation commands
type Options struct {
	LogLevel   string `long:"loglevel" description:"Log level (default: info)"`
	Format     string `long:"fmt" description:"Data format"`
	Solver     string `long:"solver" description:"LAP solver to use"`
	ConfigPath string `long:"config" description:"YAML file with evaluation settings"`
	Positional struct {
		GroundTruths string `positional-arg-name:"groundtruths" description:"Directory containing ground truth files."`
		Tests        string `positional-arg-name:"tests" description:"Directory containing tracker result files"`
	} `positional-args:"yes"`
}

const motChallengeDescription = `Compute metrics for trackers using MOTChallenge ground-truth data.

Layout for ground truth data
    <GT_ROOT>/<SEQUENCE_1>/gt/gt.txt
    <GT_ROOT>/<SEQUENCE_2>/gt/gt.txt
    ...

Layout for test data
    <TEST_ROOT>/<SEQUENCE_1>.txt
    <TEST_ROOT>/<SEQUENCE_2>.txt
    ...

Sequences of ground truth and test will be matched according to the <SEQUENCE_X> string.`

const amotDescription = `Compute metrics for trackers using AMOT ground-truth data.

Layout for test data
    <TEST_ROOT>/<SCENE>-<CAMERA>.txt
    ...

Ground truth for each test file is read from
    <GT_ROOT>/<SCENE>/gt/<CAMERA>.csv`

// CommandName returns executable name of layout's command
func (layout Layout) CommandName() string {
	return "eval-" + layout.String()
}

func (layout Layout) description() string {
	if layout == LayoutAMOT {
		return amotDescription
	}
	return motChallengeDescription
}

func newParser(layout Layout, opts *Options) *flags.Parser {
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = layout.CommandName()
	parser.Usage = "[OPTIONS] groundtruths tests"
	parser.LongDescription = layout.description()
	return parser
}

// ParseArgs builds run configuration from command line: defaults < --config file < flags.
// Log level given on command line is validated before any file is read.
func ParseArgs(layout Layout, args []string) (Config, error) {
	opts := Options{}
	if _, err := newParser(layout, &opts).ParseArgs(args); err != nil {
		return Config{}, err
	}
	if opts.LogLevel != "" {
		if _, err := ParseLogLevel(opts.LogLevel); err != nil {
			return Config{}, err
		}
	}

	cfg := DefaultConfig(layout)
	if opts.ConfigPath != "" {
		if err := LoadConfigFile(opts.ConfigPath, &cfg); err != nil {
			return Config{}, err
		}
	}
	if opts.Positional.GroundTruths != "" {
		cfg.GroundTruthRoot = opts.Positional.GroundTruths
	}
	if opts.Positional.Tests != "" {
		cfg.TestRoot = opts.Positional.Tests
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Format != "" {
		cfg.Format = opts.Format
	}
	if opts.Solver != "" {
		cfg.Solver = opts.Solver
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "Invalid configuration")
	}
	return cfg, nil
}

// Execute runs evaluation command of the layout. The report goes to stdout, logs and progress to stderr.
// Returns process exit code.
func Execute(layout Layout, args []string, stdout, stderr io.Writer) int {
	cfg, err := ParseArgs(layout, args)
	if err != nil {
		if flags.WroteHelp(err) {
			fmt.Fprintln(stdout, err)
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	// Both were validated by ParseArgs
	level, _ := ParseLogLevel(cfg.LogLevel)
	solver, _ := mot.ParseSolver(cfg.Solver)

	logger := NewLogger(level, stderr)
	log := logger.WithField("run_id", uuid.NewString())

	pipeline := NewPipeline(cfg, NewMetricsEngine(solver), TextParser, stderr, log)
	report, err := pipeline.Run()
	if err != nil {
		log.WithError(err).Error("Evaluation failed")
		return 1
	}
	fmt.Fprint(stdout, report.Text)
	return 0
}
