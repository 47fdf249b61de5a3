package mot

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Format is identifier of annotation file layout
type Format string

const (
	// FormatMOT15 is MOTChallenge 2D layout: frame,id,x,y,w,h,conf,x3d,y3d,z3d
	FormatMOT15 Format = "mot15-2D"
	// FormatMOT16 is MOTChallenge 2016+ layout: frame,id,x,y,w,h,conf,class,visibility
	FormatMOT16 Format = "mot16"
	// FormatAMOTD is ground truth layout of AMOT dataset (comma separated, optional header)
	FormatAMOTD Format = "amotd"
	// FormatAMOTDTest is tracker output layout used for AMOT evaluation
	FormatAMOTDTest Format = "amotd_test"
)

var (
	// ErrUnknownFormat is returned when format identifier is not supported
	ErrUnknownFormat = errors.New("unknown data format")
)

var knownFormats = []Format{FormatMOT15, FormatMOT16, FormatAMOTD, FormatAMOTDTest}

// AvailableFormats returns list of supported format identifiers
func AvailableFormats() []Format {
	formats := make([]Format, len(knownFormats))
	copy(formats, knownFormats)
	return formats
}

// ParseFormat validates format identifier
func ParseFormat(name string) (Format, error) {
	for _, f := range knownFormats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownFormat, "'%s'", name)
}

// allowsHeader tells whether first non-numeric line should be skipped
func (f Format) allowsHeader() bool {
	return f == FormatAMOTD || f == FormatAMOTDTest
}

// oneBased tells whether box corner is stored 1-based
func (f Format) oneBased() bool {
	return f == FormatMOT15 || f == FormatMOT16
}

type loadOptions struct {
	minConfidence    float64
	hasMinConfidence bool
}

// LoadOption configures parsing
type LoadOption func(*loadOptions)

// WithMinConfidence drops observations with confidence lower than given value
func WithMinConfidence(minConfidence float64) LoadOption {
	return func(opts *loadOptions) {
		opts.minConfidence = minConfidence
		opts.hasMinConfidence = true
	}
}

// LoadText reads annotation file of given format
func LoadText(path string, format Format, options ...LoadOption) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open annotation file")
	}
	defer file.Close()
	table, err := ParseText(file, format, options...)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't parse '%s'", path)
	}
	return table, nil
}

// ParseText parses annotations of given format from reader
func ParseText(r io.Reader, format Format, options ...LoadOption) (*Table, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	opts := loadOptions{}
	for _, option := range options {
		option(&opts)
	}

	observations := make([]Observation, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	seenData := false
	for scanner.Scan() {
		lineNo++
		fields := splitFields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if !seenData && format.allowsHeader() && !isNumeric(fields[0]) {
			seenData = true
			continue
		}
		seenData = true
		obs, err := parseObservation(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		if format.oneBased() {
			obs.Box.X -= 1
			obs.Box.Y -= 1
		}
		if opts.hasMinConfidence && obs.Confidence < opts.minConfidence {
			continue
		}
		observations = append(observations, obs)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Can't read annotations")
	}
	return NewTable(observations), nil
}

func splitFields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r'
	})
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// parseObservation reads frame,id,x,y,w,h[,conf[,class[,visibility]]]
func parseObservation(fields []string) (Observation, error) {
	if len(fields) < 6 {
		return Observation{}, errors.Errorf("expected at least 6 columns, got %d", len(fields))
	}
	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Observation{}, errors.Wrapf(err, "column %d", i+1)
		}
		values[i] = v
	}
	obs := Observation{
		FrameID:    int(math.Round(values[0])),
		ObjectID:   int(math.Round(values[1])),
		Box:        NewRect(values[2], values[3], values[4], values[5]),
		Confidence: 1.0,
		ClassID:    -1,
		Visibility: 1.0,
	}
	if len(values) > 6 {
		obs.Confidence = values[6]
	}
	if len(values) > 7 {
		obs.ClassID = int(math.Round(values[7]))
	}
	if len(values) > 8 {
		obs.Visibility = values[8]
	}
	return obs, nil
}
