// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package tablequery

import "time"

// PartitionKey compares the partition key with value.
func PartitionKey(op Comparison, value string) Filter {
	return MustCondition(PartitionKeyProperty, op, value)
}

// RowKey compares the row key with value.
func RowKey(op Comparison, value string) Filter {
	return MustCondition(RowKeyProperty, op, value)
}

// Timestamp compares the entity timestamp with value.
func Timestamp(op Comparison, value time.Time) Filter {
	return MustCondition(TimestampProperty, op, value)
}

// PartitionKeyRowKey matches the single entity identified by its keys.
func PartitionKeyRowKey(partitionKey, rowKey string) Filter {
	return PartitionKey(Equal, partitionKey).And(RowKey(Equal, rowKey))
}

// StartsWith matches string values of property that begin with prefix.
func StartsWith(property, prefix string) (Filter, error) {
	lower, err := Condition(property, GreaterThanOrEqual, prefix)
	if err != nil {
		return Filter{}, err
	}

	upper, err := Condition(property, LessThan, prefix+prefixUpperBound)
	if err != nil {
		return Filter{}, err
	}

	return lower.And(upper), nil
}

// PartitionKeyStartsWith matches partition keys that begin with prefix.
func PartitionKeyStartsWith(prefix string) Filter {
	return PartitionKey(GreaterThanOrEqual, prefix).And(PartitionKey(LessThan, prefix+prefixUpperBound))
}
