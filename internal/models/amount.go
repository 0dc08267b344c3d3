// internal/models/amount.go
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Amount is a monetary value in rupees. Every decoder normalizes through
// ParseAmount, so an Amount is always finite.
type Amount float64

func (a Amount) Float64() float64 { return float64(a) }

// NormalizeAmount converts a loosely typed monetary value to a finite number,
// falling back to 0.
func NormalizeAmount(v any) float64 {
	amount, _ := ParseAmount(v)
	return amount
}

// ParseAmount is NormalizeAmount that also reports whether the fallback was used.
// Strings keep only digits and the decimal point before parsing, so "₹1,234.50"
// reads as 1234.5.
func ParseAmount(v any) (float64, bool) {
	switch value := v.(type) {
	case nil:
		return 0, false
	case Amount:
		return finite(float64(value))
	case float64:
		return finite(value)
	case float32:
		return finite(float64(value))
	case int:
		return float64(value), true
	case int8:
		return float64(value), true
	case int16:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case uint:
		return float64(value), true
	case uint8:
		return float64(value), true
	case uint16:
		return float64(value), true
	case uint32:
		return float64(value), true
	case uint64:
		return float64(value), true
	case uintptr:
		return float64(value), true
	case json.Number:
		if f, err := value.Float64(); err == nil {
			return finite(f)
		}
		return parseAmountString(value.String())
	case string:
		return parseAmountString(value)
	case []byte:
		return parseAmountString(string(value))
	case *float64:
		if value == nil {
			return 0, false
		}
		return finite(*value)
	case *string:
		if value == nil {
			return 0, false
		}
		return parseAmountString(*value)
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseAmountString(raw string) (float64, bool) {
	var b strings.Builder
	seenDot := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			// a second point ends the number, like parseFloat("1.2.3") == 1.2
			if seenDot {
				return parseCleanedAmount(b.String())
			}
			seenDot = true
			b.WriteRune(r)
		}
	}
	return parseCleanedAmount(b.String())
}

func parseCleanedAmount(cleaned string) (float64, bool) {
	if cleaned == "" || cleaned == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		*a = Amount(NormalizeAmount(s))
		return nil
	}
	// numbers, null, and anything else go through the same fallback
	*a = Amount(NormalizeAmount(json.Number(data)))
	return nil
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		*a = 0
		return nil
	}
	if node.Tag == "!!int" || node.Tag == "!!float" {
		*a = Amount(NormalizeAmount(json.Number(node.Value)))
		return nil
	}
	*a = Amount(NormalizeAmount(node.Value))
	return nil
}

// Scan implements sql.Scanner for amount columns holding numbers or text.
func (a *Amount) Scan(src any) error {
	*a = Amount(NormalizeAmount(src))
	return nil
}
