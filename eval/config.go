package eval

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/LdDl/motmetrics-go/mot"
)

var (
	// ErrInvalidLogLevel is returned for unknown severity names
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// DefaultLogLevel is severity used when nothing is configured
const DefaultLogLevel = "info"

// DefaultMinConfidence filters ground truth rows which are not meant to be evaluated
const DefaultMinConfidence = 1.0

// Config is settings of a single evaluation run
type Config struct {
	GroundTruthRoot string  `yaml:"groundtruths"`
	TestRoot        string  `yaml:"tests"`
	LogLevel        string  `yaml:"loglevel"`
	Format          string  `yaml:"fmt"`
	Solver          string  `yaml:"solver"`
	MinConfidence   float64 `yaml:"min_confidence"`
	Layout          Layout  `yaml:"-"`
}

// DefaultConfig returns settings of given layout
func DefaultConfig(layout Layout) Config {
	return Config{
		LogLevel:      DefaultLogLevel,
		Format:        string(layout.DefaultFormat()),
		Solver:        string(mot.DefaultSolver),
		MinConfidence: DefaultMinConfidence,
		Layout:        layout,
	}
}

// LoadConfigFile overlays YAML file on top of cfg. Keys absent in file keep their values
func LoadConfigFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "Can't open config file")
	}
	defer file.Close()
	return DecodeConfig(file, cfg)
}

// DecodeConfig overlays YAML document on top of cfg
func DecodeConfig(r io.Reader, cfg *Config) error {
	layout := cfg.Layout
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return errors.Wrap(err, "Can't decode config")
	}
	cfg.Layout = layout
	return nil
}

// Validate checks every setting before any file is touched
func (cfg Config) Validate() error {
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.GroundTruthRoot == "" {
		return errors.New("ground truth directory is not set")
	}
	if cfg.TestRoot == "" {
		return errors.New("test directory is not set")
	}
	if _, err := mot.ParseFormat(cfg.Format); err != nil {
		return err
	}
	if _, err := mot.ParseSolver(cfg.Solver); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel converts severity name (case insensitive) to logrus level. "critical" is an alias of "fatal"
func ParseLogLevel(name string) (logrus.Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "critical" {
		normalized = "fatal"
	}
	level, err := logrus.ParseLevel(normalized)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidLogLevel, "'%s'", name)
	}
	return level, nil
}

// NewLogger creates text logger writing to out
func NewLogger(level logrus.Level, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "03:04:05",
	})
	return logger
}
