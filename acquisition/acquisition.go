// Package acquisition reads and writes interleaved (x, y) sample files
// recorded by the NSOR instrument.
//
// Two encodings are supported: the legacy big-endian float64 stream written by
// the acquisition software ([FormatBin]) and NumPy .npy arrays
// ([FormatNPY]). Both store x0, y0, x1, y1, ... in a single flat array.
package acquisition

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/sbinet/npyio"
)

// ErrUnknownFormat is returned for unrecognized format names.
var ErrUnknownFormat = errors.New("unknown acquisition format")

// ErrTooShort is returned when an acquisition holds fewer than two samples,
// which is the minimum needed to derive the sampling interval.
var ErrTooShort = errors.New("acquisition needs at least two samples")

// Format identifies an on-disk encoding.
type Format int

const (
	FormatBin Format = iota
	FormatNPY
)

// String returns the format name as shown in the data type selector.
func (f Format) String() string {
	switch f {
	case FormatBin:
		return "bin"
	case FormatNPY:
		return "npy"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat accepts "bin", "npy" or ".npy".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "bin", "":
		return FormatBin, nil
	case "npy":
		return FormatNPY, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Acquisition is an immutable pair of parallel sample sequences.
type Acquisition struct {
	X []float64
	Y []float64
}

// New builds an acquisition from parallel x and y sequences.
func New(x, y []float64) (*Acquisition, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("acquisition x/y length mismatch: %d != %d", len(x), len(y))
	}
	return &Acquisition{X: x, Y: y}, nil
}

// Deinterleave splits x0, y0, x1, y1, ... into an acquisition. A trailing
// unpaired value is dropped.
func Deinterleave(values []float64) *Acquisition {
	n := len(values) / 2
	a := &Acquisition{X: make([]float64, n), Y: make([]float64, n)}
	for i := 0; i < n; i++ {
		a.X[i] = values[2*i]
		a.Y[i] = values[2*i+1]
	}
	return a
}

// Interleave flattens the acquisition back into x0, y0, x1, y1, ...
func (a *Acquisition) Interleave() []float64 {
	out := make([]float64, 2*len(a.X))
	for i := range a.X {
		out[2*i] = a.X[i]
		out[2*i+1] = a.Y[i]
	}
	return out
}

// Len returns the number of samples.
func (a *Acquisition) Len() int { return len(a.X) }

// Dt returns the sampling interval taken from the first two x values. The x
// axis is assumed uniformly spaced.
func (a *Acquisition) Dt() (float64, error) {
	if len(a.X) < 2 {
		return 0, ErrTooShort
	}
	dt := a.X[1] - a.X[0]
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return 0, fmt.Errorf("acquisition sampling interval must be > 0: %v", dt)
	}
	return dt, nil
}

// FMax returns the Nyquist frequency 1/(2*dt).
func (a *Acquisition) FMax() (float64, error) {
	dt, err := a.Dt()
	if err != nil {
		return 0, err
	}
	return 1 / (2 * dt), nil
}

// Load reads the acquisition stored at path.
func Load(path string, format Format) (*Acquisition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open acquisition: %w", err)
	}
	defer f.Close()

	a, err := Read(bufio.NewReader(f), format)
	if err != nil {
		return nil, fmt.Errorf("read acquisition %s: %w", path, err)
	}
	return a, nil
}

// Read decodes an acquisition from r.
func Read(r io.Reader, format Format) (*Acquisition, error) {
	var (
		values []float64
		err    error
	)
	switch format {
	case FormatBin:
		values, err = readBin(r)
	case FormatNPY:
		err = npyio.Read(r, &values)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return Deinterleave(values), nil
}

// Save writes a to path, creating or truncating the file.
func Save(path string, format Format, a *Acquisition) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create acquisition: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := Write(w, format, a); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write acquisition: %w", err)
	}
	return f.Close()
}

// Write encodes a to w.
func Write(w io.Writer, format Format, a *Acquisition) error {
	values := a.Interleave()
	switch format {
	case FormatBin:
		return binary.Write(w, binary.BigEndian, values)
	case FormatNPY:
		return npyio.Write(w, values)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

func readBin(r io.Reader) ([]float64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bin data: %w", err)
	}
	n := len(raw) / 8
	values := make([]float64, n)
	for i := range values {
		values[i] = math.Float64frombits(binary.BigEndian.Uint64(raw[8*i:]))
	}
	return values, nil
}
