// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package tablequery builds OData filter expressions for table service queries.
package tablequery

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Comparison is an OData comparison operator.
type Comparison string

const (
	Equal              Comparison = "eq"
	NotEqual           Comparison = "ne"
	GreaterThan        Comparison = "gt"
	GreaterThanOrEqual Comparison = "ge"
	LessThan           Comparison = "lt"
	LessThanOrEqual    Comparison = "le"
)

// Property names every table entity carries.
const (
	PartitionKeyProperty = "PartitionKey"
	RowKeyProperty       = "RowKey"
	TimestampProperty    = "Timestamp"
)

// prefixUpperBound is appended to a prefix to form the exclusive upper bound of a prefix range.
const prefixUpperBound = "ÿ"

var (
	ErrEmptyProperty     = errors.New("the property name is empty")
	ErrUnknownComparison = errors.New("unknown comparison operator")
	ErrEmptyGUID         = errors.New("the GUID is empty")
	ErrUnsupportedValue  = errors.New("unsupported value type")
)

// Value is the set of Go types that map onto table property types.
type Value interface {
	~string | int32 | int64 | float64 | bool | []byte | time.Time | uuid.UUID
}

// Filter is an OData filter expression. The zero value is an empty filter.
type Filter struct {
	expression string
}

// String returns the expression, ready to be used as a query filter.
func (f Filter) String() string {
	return f.expression
}

// IsEmpty reports whether the filter has no expression.
func (f Filter) IsEmpty() bool {
	return f.expression == ""
}

// And combines f and other with the "and" operator. An empty side is dropped.
func (f Filter) And(other Filter) Filter {
	return f.combine("and", other)
}

// Or combines f and other with the "or" operator. An empty side is dropped.
func (f Filter) Or(other Filter) Filter {
	return f.combine("or", other)
}

func (f Filter) combine(operator string, other Filter) Filter {
	switch {
	case f.IsEmpty():
		return other
	case other.IsEmpty():
		return f
	}

	return Filter{expression: fmt.Sprintf("(%s) %s (%s)", f.expression, operator, other.expression)}
}

// Condition builds "<property> <op> <literal>" with the literal formatted for the type of value.
func Condition[V Value](property string, op Comparison, value V) (Filter, error) {
	if strings.TrimSpace(property) == "" {
		return Filter{}, ErrEmptyProperty
	}
	if !op.valid() {
		return Filter{}, errors.Wrapf(ErrUnknownComparison, "%q", string(op))
	}

	literal, err := formatLiteral(any(value))
	if err != nil {
		return Filter{}, errors.Wrapf(err, "property %s", property)
	}

	return Filter{expression: fmt.Sprintf("%s %s %s", property, op, literal)}, nil
}

// MustCondition is Condition for literal arguments known to be valid.
func MustCondition[V Value](property string, op Comparison, value V) Filter {
	f, err := Condition(property, op, value)
	if err != nil {
		panic(err)
	}
	return f
}

func (op Comparison) valid() bool {
	switch op {
	case Equal, NotEqual, GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual:
		return true
	default:
		return false
	}
}

func formatLiteral(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return quote(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10) + "L", nil
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s, nil
	case bool:
		return strconv.FormatBool(v), nil
	case []byte:
		return fmt.Sprintf("X'%s'", hex.EncodeToString(v)), nil
	case time.Time:
		return fmt.Sprintf("datetime'%s'", v.UTC().Format(time.RFC3339Nano)), nil
	case uuid.UUID:
		if v == uuid.Nil {
			return "", ErrEmptyGUID
		}
		return fmt.Sprintf("guid'%s'", v.String()), nil
	default:
		// named string types
		if s, ok := stringKind(value); ok {
			return quote(s), nil
		}
		return "", errors.Wrapf(ErrUnsupportedValue, "%T", value)
	}
}

func stringKind(value any) (string, bool) {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.String {
		return "", false
	}
	return v.String(), true
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
