package clinic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Numeric holds a number the way a form field does: as the text the user
// typed. It decodes from either a JSON number or a JSON string and encodes as a
// JSON number whenever the text parses.
type Numeric string

// Float64 parses the value. Surrounding whitespace is ignored; NaN and the
// infinities are rejected.
func (n Numeric) Float64() (float64, error) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}

// Valid reports whether the value parses as a finite number.
func (n Numeric) Valid() bool {
	_, err := n.Float64()
	return err == nil
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	if f, err := n.Float64(); err == nil {
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return json.Marshal(string(n))
}

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(s)
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("numeric field: %w", err)
		}
		*n = Numeric(num.String())
	}
	return nil
}
