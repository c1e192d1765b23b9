package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"math/cmplx"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/cwbudde/algo-nsor/acquisition"
	"github.com/cwbudde/algo-nsor/axis"
	"github.com/cwbudde/algo-nsor/configs"
	"github.com/cwbudde/algo-nsor/dsp/signal"
	"github.com/cwbudde/algo-nsor/dsp/zerofill"
	"github.com/cwbudde/algo-nsor/params"
)

func writeSynthetic(t *testing.T, path string, format acquisition.Format) {
	t.Helper()
	g := signal.NewGenerator(signal.WithSampleRate(2048))
	x, err := g.TimeAxis(2048)
	if err != nil {
		t.Fatalf("TimeAxis error = %v", err)
	}
	y, err := g.Sinusoid(300, 120, 1, 2048)
	if err != nil {
		t.Fatalf("Sinusoid error = %v", err)
	}
	acq, err := acquisition.New(x, y)
	if err != nil {
		t.Fatalf("acquisition.New error = %v", err)
	}
	if err := acquisition.Save(path, format, acq); err != nil {
		t.Fatalf("Save error = %v", err)
	}
}

func TestAnalyzeAutoPhase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.npy")
	writeSynthetic(t, path, acquisition.FormatNPY)

	c := configs.GetDefaultConfig()
	c.DataFormat = "npy"
	s, err := analyze(context.Background(), c, logging.NewDefaultLogger(), request{
		path:       path,
		freqCursor: "295 305",
		zeroFill:   zerofill.X2,
		autoPhase:  true,
	})
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	defer s.Close()

	st := s.Status()
	if st.Phase.Zeroth != 120 {
		t.Fatalf("auto phase = %d, want 120", st.Phase.Zeroth)
	}
	if st.FillSize != 4096 {
		t.Fatalf("transform size = %d, want 4096", st.FillSize)
	}
}

func TestAnalyzeTimeCursorWinsOverZeroFill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.bin")
	writeSynthetic(t, path, acquisition.FormatBin)

	c := configs.GetDefaultConfig()
	c.Workers = 4
	for run := range 20 {
		s, err := analyze(context.Background(), c, logging.NewDefaultLogger(), request{
			path:       path,
			timeCursor: "0 0.25",
			zeroFill:   zerofill.X2,
		})
		if err != nil {
			t.Fatalf("run %d: analyze error = %v", run, err)
		}
		if w := s.Window(axis.Time); w.Lo != 0 || w.Hi != 512 {
			s.Close()
			t.Fatalf("run %d: time window = %+v", run, w)
		}
		// 512 of 4096 samples at amplitude 1 on bin 600: 2/4096 * 256.
		got := cmplx.Abs(s.Spectrum().Bins[600])
		s.Close()
		if math.Abs(got-0.125) > 1e-6 {
			t.Fatalf("run %d: |X[600]| = %v, want 0.125 from the windowed signal", run, got)
		}
	}
}

func TestAnalyzeRejectsBadCursor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.bin")
	writeSynthetic(t, path, acquisition.FormatBin)

	_, err := analyze(context.Background(), configs.GetDefaultConfig(), logging.NewDefaultLogger(), request{
		path:       path,
		freqCursor: "low high",
		zeroFill:   zerofill.X1,
	})
	if err == nil {
		t.Fatal("expected error for non-numeric cursor")
	}
}

func TestWriteSeriesCSV(t *testing.T) {
	var buf bytes.Buffer
	s := series{header: []string{"freq", "phased"}, rows: [][]float64{{0, 1.5}, {10, -2}}}
	if err := writeSeries(&buf, "csv", 3, s); err != nil {
		t.Fatalf("writeSeries error = %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("csv read error = %v", err)
	}
	if len(recs) != 3 || recs[0][0] != "freq" || recs[2][1] != "-2.000E+00" {
		t.Fatalf("records = %v", recs)
	}
}

func TestWriteSeriesFormats(t *testing.T) {
	s := series{header: []string{"angle", "intensity"}, rows: [][]float64{{0, 1}}}
	for _, format := range []string{"table", "json", "yaml"} {
		var buf bytes.Buffer
		if err := writeSeries(&buf, format, 2, s); err != nil {
			t.Fatalf("writeSeries(%s) error = %v", format, err)
		}
		if !strings.Contains(buf.String(), "intensity") {
			t.Fatalf("%s output lacks header: %q", format, buf.String())
		}
	}
	if err := writeSeries(&bytes.Buffer{}, "xml", 2, s); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "run.bin")
	paramFile := filepath.Join(dir, "parameters.txt")

	run := func(args ...string) string {
		t.Helper()
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetArgs(append([]string{"--params", paramFile}, args...))
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return buf.String()
	}

	run("synth", "--samples", "1024", "--rate", "1024", "--freq", "100", "--phase", "30", data)

	run("params", "set", "freq_cursor", "95", "105")
	set, err := params.Read(paramFile)
	if err != nil {
		t.Fatalf("params.Read error = %v", err)
	}
	if set.Text("freq_cursor") != "95 105" {
		t.Fatalf("freq_cursor = %q", set.Text("freq_cursor"))
	}

	out := run("spectrum", "-o", "csv", "--limit", "99 101", "--phase", "30", data)
	recs, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("csv read error = %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("spectrum rows = %d, want header plus 3: %v", len(recs), recs)
	}
	peak, err := strconv.ParseFloat(recs[2][3], 64)
	if err != nil {
		t.Fatalf("phased column %q: %v", recs[2][3], err)
	}
	if math.Abs(peak-1) > 1e-4 {
		t.Fatalf("phased peak = %v, want 1", peak)
	}
	if got := strings.Join(recs[0], ","); got != "freq,re,im,phased,magnitude,power,phase_deg" {
		t.Fatalf("header = %q", got)
	}
	mag, _ := strconv.ParseFloat(recs[2][4], 64)
	pow, _ := strconv.ParseFloat(recs[2][5], 64)
	deg, _ := strconv.ParseFloat(recs[2][6], 64)
	if math.Abs(mag-1) > 1e-4 || math.Abs(pow-1) > 1e-4 {
		t.Fatalf("magnitude = %v power = %v, want 1", mag, pow)
	}
	// Unwrapping across near-zero bins adds whole turns; the printed value
	// keeps six significant digits.
	if d := math.Mod(deg-30, 360); math.Abs(d) > 1 && math.Abs(math.Abs(d)-360) > 1 {
		t.Fatalf("phase_deg = %v, want 30 modulo 360", deg)
	}

	out = run("autophase", "-o", "json", data)
	if !strings.Contains(out, "angle") {
		t.Fatalf("autophase output = %q", out)
	}

	out = run("inspect", "-o", "json", "--window", "exponential", "--lb", "2", data)
	for _, key := range []string{"crossing_freq", "decay_ratio", "peak_freq"} {
		if !strings.Contains(out, key) {
			t.Fatalf("inspect output missing %s: %q", key, out)
		}
	}
}
