// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package graph

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// dateFormat mirrors JavaScript's Date.toDateString output, which the
// original API exposed for birthdays.
const dateFormat = "Mon Jan 02 2006"

// coerceInt64 converts the value types graphql-go may hand a scalar
// into an int64. Returns false for anything non-numeric.
func coerceInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// BigInt carries 64-bit integers that overflow GraphQL's Int, such as
// pre-1970 unix timestamps, which are negative and large.
var BigInt = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "BigInt",
	Description: "A 64-bit signed integer.",
	Serialize: func(value any) any {
		if n, ok := coerceInt64(value); ok {
			return n
		}
		return nil
	},
	ParseValue: func(value any) any {
		if n, ok := coerceInt64(value); ok {
			return n
		}
		return nil
	},
	ParseLiteral: func(valueAST ast.Value) any {
		if lit, ok := valueAST.(*ast.IntValue); ok {
			if n, err := strconv.ParseInt(lit.Value, 10, 64); err == nil {
				return n
			}
		}
		return nil
	},
})

// DateTime serializes a unix timestamp to a human-readable date string.
// Values that are not valid timestamps serialize to null.
var DateTime = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "DateTime",
	Description: "A unix timestamp rendered as a date string.",
	Serialize: func(value any) any {
		n, ok := coerceInt64(value)
		if !ok {
			slog.Warn("value is not a valid timestamp", "value", value)
			return nil
		}
		return time.Unix(n, 0).UTC().Format(dateFormat)
	},
	ParseValue: func(value any) any {
		return value
	},
	ParseLiteral: func(valueAST ast.Value) any {
		if lit, ok := valueAST.(*ast.IntValue); ok {
			if n, err := strconv.ParseInt(lit.Value, 10, 64); err == nil {
				return n
			}
		}
		return nil
	},
})
