// Package filter implements the equality filter of the remote table's query grammar,
// where a single row is targeted with a parameter such as id=eq.42.
package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const eqPrefix = "eq."

// Eq returns query values selecting rows whose column equals value.
func Eq(column, value string) url.Values {
	return url.Values{column: []string{eqPrefix + value}}
}

// EqInt64 is Eq for integer columns.
func EqInt64(column string, value int64) url.Values {
	return Eq(column, strconv.FormatInt(value, 10))
}

// ParseEq extracts the operand of an equality filter on column. ok is false when the
// column is not filtered at all.
func ParseEq(values url.Values, column string) (value string, ok bool, err error) {
	raw, present := values[column]
	if !present || len(raw) == 0 {
		return "", false, nil
	}
	if len(raw) > 1 {
		return "", true, fmt.Errorf("column %q filtered more than once", column)
	}
	if !strings.HasPrefix(raw[0], eqPrefix) {
		return "", true, fmt.Errorf("unsupported operator in %s=%s", column, raw[0])
	}
	value = strings.TrimPrefix(raw[0], eqPrefix)
	if value == "" {
		return "", true, fmt.Errorf("empty operand for %s", column)
	}
	return value, true, nil
}

// ParseEqInt64 is ParseEq for integer columns.
func ParseEqInt64(values url.Values, column string) (int64, bool, error) {
	raw, ok, err := ParseEq(values, column)
	if err != nil || !ok {
		return 0, ok, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, true, fmt.Errorf("invalid integer for %s: %q", column, raw)
	}
	return n, true, nil
}
