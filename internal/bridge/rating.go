package bridge

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxRating is the best condition rating.
const MaxRating = 9

// Rating is an optional condition rating in [0,9]. The zero value is absent.
// A present 0 means failed/closed, which is not the same as absent.
type Rating struct {
	value int8
	set   bool
}

// NoRating is the absent rating.
var NoRating = Rating{}

// RatingOf returns a present rating, or NoRating when v is outside [0,9].
func RatingOf(v int) Rating {
	if v < 0 || v > MaxRating {
		return NoRating
	}
	return Rating{value: int8(v), set: true}
}

// ParseRating normalizes a loosely typed snapshot value. Numbers, numeric
// strings and nil are accepted; anything else ("N", "", out of range) is
// absent.
func ParseRating(v any) Rating {
	switch n := v.(type) {
	case nil:
		return NoRating
	case int:
		return RatingOf(n)
	case int64:
		return RatingOf(int(n))
	case float64:
		if n != math.Trunc(n) {
			return NoRating
		}
		return RatingOf(int(n))
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return NoRating
		}
		return RatingOf(int(i))
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return NoRating
		}
		return RatingOf(i)
	}
	return NoRating
}

// Get returns the value and whether it is present.
func (r Rating) Get() (int, bool) {
	return int(r.value), r.set
}

// Present reports whether the rating exists (0 included).
func (r Rating) Present() bool {
	return r.set
}

// Valid reports whether the rating can be scored, i.e. is in [1,9].
func (r Rating) Valid() bool {
	return r.set && r.value >= 1
}

func (r Rating) String() string {
	if !r.set {
		return "N/A"
	}
	return strconv.Itoa(int(r.value))
}

// MarshalJSON encodes absent ratings as null.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(r.value))), nil
}

// UnmarshalJSON accepts null, numbers and numeric strings.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*r = ParseRating(v)
	return nil
}

// MarshalYAML encodes absent ratings as null.
func (r Rating) MarshalYAML() (any, error) {
	if !r.set {
		return nil, nil
	}
	return int(r.value), nil
}

// UnmarshalYAML accepts null, integers and numeric strings.
func (r *Rating) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	*r = ParseRating(v)
	return nil
}
