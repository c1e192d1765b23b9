// Package axis names the two plot domains of an acquisition and the field
// keys attached to them.
package axis

import (
	"fmt"
	"strings"
)

// Domain selects the time or frequency view.
type Domain int

const (
	Time Domain = iota
	Frequency
)

// Domains lists both domains in display order.
var Domains = []Domain{Time, Frequency}

// String returns the key prefix of d: "time" or "freq".
func (d Domain) String() string {
	switch d {
	case Time:
		return "time"
	case Frequency:
		return "freq"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// Field is the suffix of a per-domain parameter key.
type Field string

const (
	Cursor Field = "cursor"
	XLimit Field = "x_limit"
	YLimit Field = "y_limit"
)

// Key returns the parameter key for field f in d, e.g. "time_cursor".
func (d Domain) Key(f Field) string {
	return d.String() + "_" + string(f)
}

// ParseKey splits a parameter key into its domain and field. ok is false for
// keys without a "time_" or "freq_" prefix.
func ParseKey(key string) (d Domain, f Field, ok bool) {
	prefix, rest, found := strings.Cut(key, "_")
	if !found {
		return 0, "", false
	}
	switch prefix {
	case "time":
		d = Time
	case "freq":
		d = Frequency
	default:
		return 0, "", false
	}
	return d, Field(rest), true
}
