package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type looseKind uint8

const (
	looseAbsent looseKind = iota
	looseNull
	looseNumber
	looseString
	looseBool
)

// Loose holds a JSON scalar that clients send either as a number or as a
// string, so that 8 and "8" are both accepted for a score. It remembers
// whether the field was present at all, which partial updates depend on.
type Loose struct {
	Raw  string
	kind looseKind
}

func LooseString(s string) Loose {
	return Loose{Raw: s, kind: looseString}
}

func LooseNumber(f float64) Loose {
	return Loose{Raw: FormatNumber(f), kind: looseNumber}
}

func (l *Loose) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*l = Loose{kind: looseNull}
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*l = Loose{Raw: string(b), kind: looseBool}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = LooseString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected a number or a string, got %s", b)
		}
		f, err := n.Float64()
		if err != nil {
			return err
		}
		*l = LooseNumber(f)
	}
	return nil
}

func (l Loose) MarshalJSON() ([]byte, error) {
	switch l.kind {
	case looseNumber, looseBool:
		return []byte(l.Raw), nil
	case looseString:
		return json.Marshal(l.Raw)
	default:
		return []byte("null"), nil
	}
}

// Present reports whether the field was sent with a non-null value.
func (l Loose) Present() bool {
	return l.kind != looseAbsent && l.kind != looseNull
}

// Truthy follows JavaScript truthiness: absent, null, false, 0, NaN and the
// empty string are false. The string "0" is true.
func (l Loose) Truthy() bool {
	switch l.kind {
	case looseNumber:
		f, _ := strconv.ParseFloat(l.Raw, 64)
		return f != 0
	case looseString:
		return l.Raw != ""
	case looseBool:
		return l.Raw == "true"
	default:
		return false
	}
}

// Float converts the value to a number, falling back to 0 for anything that
// does not parse.
func (l Loose) Float() float64 {
	switch l.kind {
	case looseNumber, looseString:
		return ParseNumber(l.Raw)
	case looseBool:
		if l.Raw == "true" {
			return 1
		}
	}
	return 0
}

// OrDefault returns the stored text form of the value, or def when the value
// is not truthy.
func (l Loose) OrDefault(def string) string {
	if l.Truthy() {
		return l.Raw
	}
	return def
}

// ParseNumber parses s as a decimal number. Blank, malformed and non-finite
// input yield 0.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FormatNumber renders f in its shortest decimal form: 18, 8.5.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
