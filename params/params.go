// Package params persists the on-screen text fields of the analysis tool in a
// flat JSON file.
//
// Each key maps either to a single string or to an array of strings. Arrays
// hold a numeric range such as a cursor pair or an axis limit and are shown
// to the user as "lo hi". The special key [FileName] remembers the last
// opened acquisition and is not an editable field.
package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cwbudde/algo-nsor/axis"
)

// FileName is the key holding the last opened acquisition path.
const FileName = "file_name"

// ErrNotNumeric is returned when a field that must hold numbers does not.
var ErrNotNumeric = errors.New("field must contain only numbers")

// Value is a scalar string or a list of strings.
type Value struct {
	parts []string
	list  bool
}

// Scalar returns a single-string value.
func Scalar(s string) Value {
	return Value{parts: []string{s}}
}

// List returns an array value.
func List(parts ...string) Value {
	return Value{parts: append([]string(nil), parts...), list: true}
}

// FromText splits edited field text on single spaces. One token is stored as
// a scalar, more tokens as a list.
func FromText(text string) Value {
	parts := strings.Split(text, " ")
	if len(parts) == 1 {
		return Scalar(parts[0])
	}
	return List(parts...)
}

// Text renders v the way it appears in an input field.
func (v Value) Text() string {
	return strings.Join(v.parts, " ")
}

// Parts returns a copy of the underlying strings.
func (v Value) Parts() []string {
	return append([]string(nil), v.parts...)
}

// IsList reports whether v is stored as a JSON array.
func (v Value) IsList() bool { return v.list }

// MarshalJSON implements [json.Marshaler].
func (v Value) MarshalJSON() ([]byte, error) {
	if v.list {
		return json.Marshal(v.parts)
	}
	if len(v.parts) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(v.parts[0])
}

// UnmarshalJSON implements [json.Unmarshaler].
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Scalar(s)
		return nil
	}
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parameter value must be a string or an array: %s", data)
	}
	parts := make([]string, len(raw))
	for i, p := range raw {
		switch t := p.(type) {
		case string:
			parts[i] = t
		case float64:
			parts[i] = strconv.FormatFloat(t, 'g', -1, 64)
		default:
			return fmt.Errorf("parameter array element %d has unsupported type %T", i, p)
		}
	}
	*v = Value{parts: parts, list: true}
	return nil
}

// Set is the decoded parameter file.
type Set map[string]Value

// Read loads the parameter file at path.
func Read(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parameters: %w", err)
	}
	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal parameters: %w", err)
	}
	if s == nil {
		s = Set{}
	}
	return s, nil
}

// Save re-reads the file at path, applies updates on top and rewrites it.
// Keys absent from updates are preserved. A missing file is created.
func Save(path string, updates Set) error {
	current, err := Read(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		current = Set{}
	}
	for k, v := range updates {
		current[k] = v
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal parameters: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write parameters: %w", err)
	}
	return nil
}

// Fields returns the editable keys of s in sorted order, excluding
// [FileName].
func (s Set) Fields() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		if k == FileName {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FieldsIn returns the editable keys belonging to domain d.
func (s Set) FieldsIn(d axis.Domain) []string {
	var out []string
	for _, k := range s.Fields() {
		if kd, _, ok := axis.ParseKey(k); ok && kd == d {
			out = append(out, k)
		}
	}
	return out
}

// Text returns the field text for key, or "" if absent.
func (s Set) Text(key string) string {
	v, ok := s[key]
	if !ok {
		return ""
	}
	return v.Text()
}

// ParseRange parses "lo hi" into two numbers. Extra tokens are rejected.
func ParseRange(text string) (lo, hi float64, err error) {
	vals, err := ParseNumbers(text)
	if err != nil {
		return 0, 0, err
	}
	if len(vals) != 2 {
		return 0, 0, fmt.Errorf("%w: expected two values, got %d", ErrNotNumeric, len(vals))
	}
	return vals[0], vals[1], nil
}

// ParseNumbers parses space-separated numbers.
func ParseNumbers(text string) ([]float64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrNotNumeric)
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNotNumeric, f)
		}
		out[i] = v
	}
	return out, nil
}

// FormatRange renders a range in the %.5E form written back after cursor and
// zoom drags.
func FormatRange(lo, hi float64) string {
	return fmt.Sprintf("%.5E %.5E", lo, hi)
}

var titleCaser = cases.Title(language.English)

// Label turns a key such as "time_x_limit" into "Time X Limit".
func Label(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}
