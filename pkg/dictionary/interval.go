package dictionary

import (
	"math"
	"strconv"
)

const (
	// MinBound marks an interval open towards negative infinity.
	MinBound = math.MinInt
	// MaxBound marks an interval open towards positive infinity.
	MaxBound = math.MaxInt
)

// PluralizationInterval is an inclusive integer range. MinBound and MaxBound
// denote unbounded ends.
type PluralizationInterval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewInterval returns the interval [start, end] or ErrInvalidInterval when start > end.
func NewInterval(start, end int) (PluralizationInterval, error) {
	if start > end {
		return PluralizationInterval{}, ErrInvalidInterval
	}
	return PluralizationInterval{Start: start, End: end}, nil
}

// Contains reports whether value lies within the interval.
func (i PluralizationInterval) Contains(value int) bool {
	return IsInInterval(value, i)
}

func (i PluralizationInterval) String() string {
	start, end := "-inf", "+inf"
	if i.Start != MinBound {
		start = strconv.Itoa(i.Start)
	}
	if i.End != MaxBound {
		end = strconv.Itoa(i.End)
	}
	return "[" + start + ", " + end + "]"
}

// IsInInterval reports whether interval.Start <= value <= interval.End.
func IsInInterval(value int, interval PluralizationInterval) bool {
	return interval.Start <= value && value <= interval.End
}
