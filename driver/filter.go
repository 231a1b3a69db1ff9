package driver

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterParams carries the structured filters of one search request into
// the engine's filter-expression syntax. Nil price bounds mean unbounded.
type FilterParams struct {
	Category string
	Location string
	MinPrice *float64
	MaxPrice *float64
}

// escapeFilterValue escapes special characters in filter values.
func escapeFilterValue(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	return value
}

// BuildFilter assembles the engine filter expression: exact-match clauses
// with quoted escaped values and numeric range clauses, conjoined with AND.
// Absent filters produce no clause; with no filters at all the result is
// the empty string, never a match-everything expression. Category values
// are upper-cased to match the storage convention.
func BuildFilter(p FilterParams) string {
	var clauses []string

	if p.Category != "" {
		clauses = append(clauses, fmt.Sprintf("category = \"%s\"", escapeFilterValue(strings.ToUpper(p.Category))))
	}
	if p.Location != "" {
		clauses = append(clauses, fmt.Sprintf("location = \"%s\"", escapeFilterValue(p.Location)))
	}
	if p.MinPrice != nil {
		clauses = append(clauses, "price_per_day >= "+formatPrice(*p.MinPrice))
	}
	if p.MaxPrice != nil {
		clauses = append(clauses, "price_per_day <= "+formatPrice(*p.MaxPrice))
	}

	return strings.Join(clauses, " AND ")
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
