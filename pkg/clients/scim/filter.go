package scim

import (
	"fmt"
	"strings"
)

type FilterOperator string

const (
	FilterOperatorEqual          FilterOperator = "eq"
	FilterOperatorContains       FilterOperator = "co"
	FilterOperatorStartsWith     FilterOperator = "sw"
	FilterOperatorGreater        FilterOperator = "gt"
	FilterOperatorGreaterOrEqual FilterOperator = "ge"
	FilterOperatorLess           FilterOperator = "lt"
	FilterOperatorLessOrEqual    FilterOperator = "le"
)

// FilterExpression renders a SCIM 1.1 filter. Pass its String() value as
// SearchParams.Filter.
type FilterExpression interface {
	String() string
}

// FilterComparison compares an attribute with a string value.
type FilterComparison struct {
	Attribute string
	Operator  FilterOperator
	Value     string
}

func (f FilterComparison) String() string {
	return fmt.Sprintf("%s %s %s", f.Attribute, f.Operator, quoteFilterValue(f.Value))
}

// FilterPresent matches resources that have a value for Attribute.
type FilterPresent struct {
	Attribute string
}

func (f FilterPresent) String() string {
	return f.Attribute + " pr"
}

// FilterLogicalGroupAnd represents a logical AND group of filter expressions.
type FilterLogicalGroupAnd struct {
	Expressions []FilterExpression
}

func (f FilterLogicalGroupAnd) String() string {
	return joinFilters(f.Expressions, " and ")
}

// FilterLogicalGroupOr represents a logical OR group of filter expressions.
type FilterLogicalGroupOr struct {
	Expressions []FilterExpression
}

func (f FilterLogicalGroupOr) String() string {
	return joinFilters(f.Expressions, " or ")
}

func joinFilters(expressions []FilterExpression, separator string) string {
	parts := make([]string, len(expressions))
	for i, expr := range expressions {
		parts[i] = expr.String()
	}

	return fmt.Sprintf("(%s)", strings.Join(parts, separator))
}

var filterValueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quoteFilterValue(value string) string {
	return `"` + filterValueEscaper.Replace(value) + `"`
}
