// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package tablequery

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type region string

func Test_Condition(t *testing.T) {
	timestamp := time.Date(2024, time.March, 5, 10, 30, 0, 0, time.FixedZone("CET", 3600))
	id := uuid.MustParse("6f1a3c52-9a8e-4a43-9e2a-6b5c0d2f7a11")

	tests := []struct {
		name     string
		build    func() (Filter, error)
		expected string
	}{
		{"String", func() (Filter, error) { return Condition("Name", Equal, "contoso") }, "Name eq 'contoso'"},
		{"StringWithQuote", func() (Filter, error) { return Condition("Name", Equal, "O'Brien") }, "Name eq 'O''Brien'"},
		{"NamedString", func() (Filter, error) { return Condition("Region", NotEqual, region("west")) }, "Region ne 'west'"},
		{"Int32", func() (Filter, error) { return Condition("Age", GreaterThan, int32(30)) }, "Age gt 30"},
		{"Int64", func() (Filter, error) { return Condition("Size", LessThan, int64(1024)) }, "Size lt 1024L"},
		{"WholeFloat", func() (Filter, error) { return Condition("Price", GreaterThanOrEqual, 10.0) }, "Price ge 10.0"},
		{"Float", func() (Filter, error) { return Condition("Price", LessThanOrEqual, 10.25) }, "Price le 10.25"},
		{"Bool", func() (Filter, error) { return Condition("Active", Equal, true) }, "Active eq true"},
		{"Binary", func() (Filter, error) { return Condition("Hash", Equal, []byte{0x0a, 0xff}) }, "Hash eq X'0aff'"},
		{
			"DateTime",
			func() (Filter, error) { return Condition("Created", GreaterThan, timestamp) },
			"Created gt datetime'2024-03-05T09:30:00Z'",
		},
		{
			"GUID",
			func() (Filter, error) { return Condition("Id", Equal, id) },
			"Id eq guid'6f1a3c52-9a8e-4a43-9e2a-6b5c0d2f7a11'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := tt.build()
			require.NoError(t, err)
			require.Equal(t, tt.expected, filter.String())
		})
	}
}

func Test_Condition_Errors(t *testing.T) {
	_, err := Condition(" ", Equal, "x")
	require.ErrorIs(t, err, ErrEmptyProperty)

	_, err = Condition("Name", Comparison("like"), "x")
	require.ErrorIs(t, err, ErrUnknownComparison)

	_, err = Condition("Id", Equal, uuid.Nil)
	require.ErrorIs(t, err, ErrEmptyGUID)

	require.Panics(t, func() { MustCondition("", Equal, "x") })
}

func Test_Filter_Combine(t *testing.T) {
	a := MustCondition("A", Equal, int32(1))
	b := MustCondition("B", Equal, int32(2))

	require.Equal(t, "(A eq 1) and (B eq 2)", a.And(b).String())
	require.Equal(t, "(A eq 1) or (B eq 2)", a.Or(b).String())
	require.Equal(t, "((A eq 1) and (B eq 2)) or (A eq 1)", a.And(b).Or(a).String())

	require.Equal(t, a, a.And(Filter{}))
	require.Equal(t, b, Filter{}.Or(b))
	require.True(t, Filter{}.IsEmpty())
}

func Test_KeyFilters(t *testing.T) {
	require.Equal(t, "PartitionKey eq 'customers'", PartitionKey(Equal, "customers").String())
	require.Equal(t, "(PartitionKey eq 'customers') and (RowKey eq '0001')",
		PartitionKeyRowKey("customers", "0001").String())
	require.Equal(t, "Timestamp ge datetime'2024-01-01T00:00:00Z'",
		Timestamp(GreaterThanOrEqual, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)).String())
	require.Equal(t, "(PartitionKey ge 'cust') and (PartitionKey lt 'custÿ')", PartitionKeyStartsWith("cust").String())

	filter, err := StartsWith("Name", "Jo")
	require.NoError(t, err)
	require.Equal(t, "(Name ge 'Jo') and (Name lt 'Joÿ')", filter.String())

	_, err = StartsWith("", "Jo")
	require.ErrorIs(t, err, ErrEmptyProperty)
}
