package eval

import (
	"io"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/LdDl/motmetrics-go/mot"
)

// Parser reads one annotation file into a table
type Parser interface {
	Load(path string, format mot.Format, options ...mot.LoadOption) (*mot.Table, error)
}

// ParserFunc adapts a function to Parser
type ParserFunc func(path string, format mot.Format, options ...mot.LoadOption) (*mot.Table, error)

// Load calls f
func (f ParserFunc) Load(path string, format mot.Format, options ...mot.LoadOption) (*mot.Table, error) {
	return f(path, format, options...)
}

// TextParser reads annotation text files from disk
var TextParser Parser = ParserFunc(mot.LoadText)

// Source is a file to be loaded under sequence identifier
type Source struct {
	ID   string
	Path string
}

// Loader loads files one by one, in order, into a Dataset
type Loader struct {
	parser   Parser
	progress io.Writer
	log      logrus.FieldLogger
}

// NewLoader creates loader. Progress bars are written to progress (nil disables them)
func NewLoader(parser Parser, progress io.Writer, log logrus.FieldLogger) *Loader {
	if progress == nil {
		progress = io.Discard
	}
	return &Loader{
		parser:   parser,
		progress: progress,
		log:      log.WithField("component", "loader"),
	}
}

// Load parses every source in order. The first failure aborts loading: partial datasets are never returned
func (loader *Loader) Load(description string, sources []Source, format mot.Format, options ...mot.LoadOption) (*Dataset, error) {
	dataset := NewDataset()
	bar := loader.newProgressBar(description, len(sources))
	for _, src := range sources {
		loader.log.WithFields(logrus.Fields{
			"sequence": src.ID,
			"path":     src.Path,
			"format":   format,
		}).Debug("Loading file")
		table, err := loader.parser.Load(src.Path, format, options...)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't load sequence '%s' from '%s'", src.ID, src.Path)
		}
		dataset.Add(src.ID, table)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return dataset, nil
}

func (loader *Loader) newProgressBar(description string, total int) *progressbar.ProgressBar {
	if total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(loader.progress),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(loader.progress, "\n")
		}),
	)
}
