package eval

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/LdDl/motmetrics-go/mot"
)

// Pipeline runs resolution, loading, comparison and aggregation one after another
type Pipeline struct {
	cfg    Config
	engine Engine
	loader *Loader
	log    logrus.FieldLogger
}

// NewPipeline creates pipeline. cfg is expected to be validated
func NewPipeline(cfg Config, engine Engine, parser Parser, progress io.Writer, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		engine: engine,
		loader: NewLoader(parser, progress, log),
		log:    log.WithField("layout", cfg.Layout.String()),
	}
}

// Run evaluates every matched sequence and returns the report
func (p *Pipeline) Run() (*Report, error) {
	format, err := mot.ParseFormat(p.cfg.Format)
	if err != nil {
		return nil, err
	}
	solver, err := mot.ParseSolver(p.cfg.Solver)
	if err != nil {
		return nil, err
	}

	resolution, err := p.cfg.Layout.Resolve(p.cfg.GroundTruthRoot, p.cfg.TestRoot)
	if err != nil {
		return nil, errors.Wrap(err, "Can't resolve sequences")
	}
	for _, id := range resolution.Unmatched {
		warnUnmatched(p.log, id)
	}

	p.log.Infof("Found %d groundtruths and %d test files.", resolution.GroundTruthFiles, resolution.TestFiles)
	p.log.Infof("Available LAP solvers %v", mot.AvailableSolvers())
	p.log.Infof("Default LAP solver '%s'", solver)
	p.log.Info("Loading files.")

	p.log.Info("Loading ground truth files.")
	gt, err := p.loader.Load("Ground truth", resolution.GroundTruthSources(), format, mot.WithMinConfidence(p.cfg.MinConfidence))
	if err != nil {
		return nil, err
	}

	p.log.Info("Loading testing files")
	ts, err := p.loader.Load("Testing", resolution.TestSources(), p.cfg.Layout.TestFormat(format))
	if err != nil {
		return nil, err
	}

	units, names, err := Compare(p.engine, gt, ts, p.log)
	if err != nil {
		return nil, err
	}

	p.log.Info("Running metrics")
	report, err := Aggregate(p.engine, units, names)
	if err != nil {
		return nil, err
	}
	p.log.Info("Completed")
	return report, nil
}
