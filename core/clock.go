package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/hoopstat/schema"
)

// ErrInvalidClock marks a countdown clock that does not match PT[<int>M]<real>S.
var ErrInvalidClock = errors.New("invalid clock")

// ParseClock returns the minutes remaining in a period for a clock such as
// "PT11M44.00S". The minutes component is optional.
func ParseClock(clock string) (float64, error) {
	rest, ok := strings.CutPrefix(clock, "PT")
	if !ok {
		return 0, fmt.Errorf("%w %q: missing PT prefix", ErrInvalidClock, clock)
	}

	minutes := 0
	secPart := rest
	if before, after, found := strings.Cut(rest, "M"); found {
		m, err := strconv.Atoi(before)
		if err != nil {
			return 0, fmt.Errorf("%w %q: minutes: %w", ErrInvalidClock, clock, err)
		}
		minutes = m
		secPart = after
	}

	secStr, ok := strings.CutSuffix(secPart, "S")
	if !ok {
		return 0, fmt.Errorf("%w %q: missing S marker", ErrInvalidClock, clock)
	}
	if strings.ContainsAny(secStr, "xXpP_") {
		return 0, fmt.Errorf("%w %q: seconds must be a decimal number", ErrInvalidClock, clock)
	}
	secs, err := strconv.ParseFloat(secStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: seconds: %w", ErrInvalidClock, clock, err)
	}
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("%w %q: seconds must be finite", ErrInvalidClock, clock)
	}
	return float64(minutes) + secs/60.0, nil
}

// ElapsedMinutes converts a countdown clock in the given period to minutes since
// tip-off. Overtime periods are treated as 12 minutes long like regulation ones.
func ElapsedMinutes(clock string, period int) (float64, error) {
	if period < 1 {
		return 0, fmt.Errorf("period must be at least 1 (received %d)", period)
	}
	remaining, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}
	length := schema.RegulationPeriodMinutes
	return float64(period-1)*length + (length - remaining), nil
}

// ComputeTimeAxis applies ElapsedMinutes element-wise to parallel slices.
func ComputeTimeAxis(clocks []string, periods []int) ([]float64, error) {
	if len(clocks) != len(periods) {
		return nil, fmt.Errorf("clock and period counts differ: %d clocks, %d periods", len(clocks), len(periods))
	}
	axis := make([]float64, len(clocks))
	for i := range clocks {
		v, err := ElapsedMinutes(clocks[i], periods[i])
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		axis[i] = v
	}
	return axis, nil
}

// BuildTimeAxis pairs every clock and period with its elapsed minutes.
func BuildTimeAxis(clocks []string, periods []int) ([]schema.TimeAxisPoint, error) {
	axis, err := ComputeTimeAxis(clocks, periods)
	if err != nil {
		return nil, err
	}
	points := make([]schema.TimeAxisPoint, len(axis))
	for i, v := range axis {
		points[i] = schema.TimeAxisPoint{Clock: clocks[i], Period: periods[i], ElapsedMinutes: v}
	}
	return points, nil
}
