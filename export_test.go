package deorbit

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestObservationToText(t *testing.T) {
	o := Observation{Time: 1, Angle: 0.5, Altitude: 300e3, Speed: 7725.84}
	exp := "       1.000" + "  " + "  0.50000000" + "  " + "    300.000000" + "  " + "   7725.8400" + "\n"
	if txt := o.ToText(); txt != exp {
		t.Fatalf("invalid record:\n%q\n%q", txt, exp)
	}
	if fields := strings.Fields(o.ToText()); len(fields) != 4 {
		t.Fatalf("record must have four fields: %v", fields)
	}
}

func TestTextExporter(t *testing.T) {
	var buf bytes.Buffer
	e := NewTextExporter(&buf)
	obs := []Observation{
		{0, 0, 300e3, 7726.8043},
		{100, 0.01841289, 299.999e3, 7726.8051},
		{1234567.125, 0.99999999, 1.5, 0.0001},
	}
	for _, o := range obs {
		if err := e.Export(o); err != nil {
			t.Fatal(err)
		}
	}
	if buf.Len() != 0 {
		t.Fatal("records should be buffered until Close")
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if e.Records() != 3 {
		t.Fatalf("invalid record count %d", e.Records())
	}
	if strings.Count(buf.String(), "\n") != 3 || strings.HasPrefix(buf.String(), "#") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	parsed, err := ParseObservations(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for i, o := range parsed {
		if !scalar.EqualWithinAbs(o.Time, obs[i].Time, 1e-3) || !scalar.EqualWithinAbs(o.Angle, obs[i].Angle, 1e-8) ||
			!scalar.EqualWithinAbs(o.Altitude, obs[i].Altitude, 1e-3) || !scalar.EqualWithinAbs(o.Speed, obs[i].Speed, 1e-4) {
			t.Fatalf("record %d: %+v != %+v", i, o, obs[i])
		}
	}
}

func TestParseObservationsErrors(t *testing.T) {
	if _, err := ParseObservations(strings.NewReader("1 2 3\n")); err == nil {
		t.Fatal("three fields accepted")
	}
	if _, err := ParseObservations(strings.NewReader("1 2 3 four\n")); err == nil {
		t.Fatal("non numeric field accepted")
	}
}

func TestNewExporter(t *testing.T) {
	dir := t.TempDir()
	conf := ExportConfig{Filename: "sat", Dir: dir}
	if conf.Path() != filepath.Join(dir, "sat.dat") {
		t.Fatalf("invalid path %s", conf.Path())
	}
	e, err := NewExporter(conf)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Export(Observation{Time: 1, Angle: 0.25, Altitude: 1e3, Speed: 2}); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(conf.Path())
	if err != nil {
		t.Fatal(err)
	}
	if obs, err := ParseObservations(bytes.NewReader(data)); err != nil || len(obs) != 1 || obs[0].Angle != 0.25 {
		t.Fatalf("invalid file content %q: %v", data, err)
	}
	stamped := ExportConfig{Filename: "sat", Dir: dir, Timestamp: true}.Path()
	if !strings.HasPrefix(filepath.Base(stamped), "sat-") || !strings.HasSuffix(stamped, ".dat") {
		t.Fatalf("invalid timestamped path %s", stamped)
	}
}

func TestNewExporterUseless(t *testing.T) {
	e, err := NewExporter(ExportConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Export(Observation{}); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := NewExporter(ExportConfig{Filename: "sat", Dir: filepath.Join(t.TempDir(), "missing")}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a missing directory error, got %v", err)
	}
}
