package deorbit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Observation is one exported record of the simulation.
type Observation struct {
	Time     float64 // Elapsed time in seconds.
	Angle    float64 // Normalized polar angle in [0, 1).
	Altitude float64 // Altitude above the surface in meters.
	Speed    float64 // in m/s
}

// ToText converts to text for written output: time (s), angle, altitude (km) and speed (m/s).
func (o Observation) ToText() string {
	return fmt.Sprintf("%12.3f  %12.8f  %14.6f  %12.4f\n", o.Time, o.Angle, o.Altitude/1e3, o.Speed)
}

// FromText initializes from text.
// The `record` parameter must be an array of four items.
func (o *Observation) FromText(record []string) error {
	if len(record) != 4 {
		return fmt.Errorf("expected 4 fields, got %d", len(record))
	}
	vals := make([]float64, 4)
	for i, field := range record {
		val, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return err
		}
		vals[i] = val
	}
	o.Time, o.Angle, o.Altitude, o.Speed = vals[0], vals[1], vals[2]*1e3, vals[3]
	return nil
}

// ParseObservations reads back an exported record stream.
func ParseObservations(r io.Reader) ([]Observation, error) {
	var obs []Observation
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var o Observation
		if err := o.FromText(strings.Fields(line)); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		obs = append(obs, o)
	}
	return obs, scanner.Err()
}

// Exporter receives the observations in step order.
// Close must flush any pending data and is called exactly once.
type Exporter interface {
	Export(o Observation) error
	Close() error
}

// TextExporter writes observations as fixed width text records, without header.
type TextExporter struct {
	w       *bufio.Writer
	closer  io.Closer
	records uint64
}

// NewTextExporter returns an exporter writing to w. If w is an io.Closer, it is closed by Close.
func NewTextExporter(w io.Writer) *TextExporter {
	e := &TextExporter{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		e.closer = c
	}
	return e
}

// Export implements the Exporter interface.
func (e *TextExporter) Export(o Observation) error {
	if _, err := e.w.WriteString(o.ToText()); err != nil {
		return err
	}
	e.records++
	return nil
}

// Records returns the number of exported records.
func (e *TextExporter) Records() uint64 {
	return e.records
}

// Close implements the Exporter interface.
func (e *TextExporter) Close() error {
	err := e.w.Flush()
	if e.closer != nil {
		if cerr := e.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

type nopExporter struct{}

func (nopExporter) Export(Observation) error { return nil }
func (nopExporter) Close() error             { return nil }

// ExportConfig configures the exporting of the simulation.
type ExportConfig struct {
	Filename  string
	Dir       string
	Timestamp bool
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return c.Filename == ""
}

// Path returns the path of the data file.
func (c ExportConfig) Path() string {
	filename := c.Filename
	if c.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d", filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	return filepath.Join(c.Dir, filename+".dat")
}

// NewExporter opens the exporter for this configuration. Nothing is written if the config is useless.
func NewExporter(c ExportConfig) (Exporter, error) {
	if c.IsUseless() {
		return nopExporter{}, nil
	}
	f, err := os.Create(c.Path())
	if err != nil {
		return nil, err
	}
	return NewTextExporter(f), nil
}
