package grid

import (
	"regexp"
	"strconv"
	"strings"
)

// ValueKind tells what a cell holds.
type ValueKind int

const (
	Empty ValueKind = iota
	Text
	Number
)

// String returns the string representation of a ValueKind.
func (k ValueKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Text:
		return "text"
	case Number:
		return "number"
	default:
		return "unknown"
	}
}

// Value is the raw content of a spreadsheet cell.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
}

// TextValue returns a text value. Blank text is treated as empty.
func TextValue(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return Value{Kind: Text, Text: s}
}

// NumberValue returns a numeric value.
func NumberValue(n float64) Value {
	return Value{Kind: Number, Number: n}
}

// IsEmpty reports whether the cell has no content.
func (v Value) IsEmpty() bool {
	return v.Kind == Empty
}

// String formats the value the way a spreadsheet shows it.
func (v Value) String() string {
	switch v.Kind {
	case Text:
		return v.Text
	case Number:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return ""
	}
}

var plainInteger = regexp.MustCompile(`^[0-9]+$`)

// IsPlainInteger reports whether the displayed value is a bare run of digits.
// Numeric stall cells are recognised this way, whether they were typed as
// numbers or as text.
func (v Value) IsPlainInteger() bool {
	if v.Kind == Empty {
		return false
	}
	return plainInteger.MatchString(strings.TrimSpace(v.String()))
}

// Int returns the value as an integer when it is integral.
func (v Value) Int() (int, bool) {
	switch v.Kind {
	case Number:
		n := int(v.Number)
		if float64(n) != v.Number {
			return 0, false
		}
		return n, true
	case Text:
		n, err := strconv.Atoi(strings.TrimSpace(v.Text))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
