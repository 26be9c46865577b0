package kernel

import (
	"math"

	"dispatch/internal/pkg/errs"
)

// Distance is the length of a route. The unit is whatever the caller submits
// (the API documents kilometres); it must be finite and non-negative.
type Distance float64

func NewDistance(v float64) (Distance, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errs.NewValueIsInvalidError("distance")
	}
	if v < 0 {
		return 0, errs.NewValueIsOutOfRangeError("distance", v, 0, math.MaxFloat64)
	}
	return Distance(v), nil
}

func (d Distance) Float64() float64 {
	return float64(d)
}

// Minutes is an estimated travel time.
type Minutes int

func NewMinutes(v int) (Minutes, error) {
	if v < 0 || v > math.MaxInt32 {
		return 0, errs.NewValueIsOutOfRangeError("estimated time", v, 0, math.MaxInt32)
	}
	return Minutes(v), nil
}

func (m Minutes) Int() int {
	return int(m)
}
