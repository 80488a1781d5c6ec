// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package fields

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringHashed(t *testing.T) {
	upper := StringHashed(StorageAccount.Key, "MyAccount")
	lower := StringHashed(StorageAccount.Key, "myaccount")

	require.Equal(t, StorageAccount.Key, upper.Key)
	require.Equal(t, lower.Value.AsString(), upper.Value.AsString())
	require.Len(t, upper.Value.AsString(), 64)
	require.NotContains(t, upper.Value.AsString(), "account")
}
