package nbastats

import (
	"fmt"
	"strconv"
)

// resultSetsResp is the envelope shared by the v2 stats endpoints.
type resultSetsResp struct {
	ResultSets []resultSet `json:"resultSets"`
}

// resultSet is one named table: a header row plus positional rows.
type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// columns maps each header name to its position.
func (rs resultSet) columns() map[string]int {
	idx := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		idx[h] = i
	}
	return idx
}

// require checks that every named header is present.
func (rs resultSet) require(names ...string) error {
	idx := rs.columns()
	for _, n := range names {
		if _, ok := idx[n]; !ok {
			return fmt.Errorf("result set %q is missing column %s", rs.Name, n)
		}
	}
	return nil
}

// cell returns the raw value at row[col], or nil when out of range.
func cell(row []any, idx map[string]int, col string) any {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return nil
	}
	return row[i]
}

func maybe[T any](x any) *T {
	if x, ok := x.(T); ok {
		return &x
	}
	return nil
}

// asString renders a JSON scalar as text; numbers keep integer form when possible.
func asString(x any) string {
	switch v := x.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// asFloat returns a JSON number, or 0 for null and non-numbers.
func asFloat(x any) float64 {
	if f := maybe[float64](x); f != nil {
		return *f
	}
	return 0
}

// asInt returns a JSON number truncated to int, or 0 for null and non-numbers.
func asInt(x any) int {
	return int(asFloat(x))
}
