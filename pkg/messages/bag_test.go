// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package messages

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func Test_Bag_AddOrRename(t *testing.T) {
	t.Run("UniqueKey", func(t *testing.T) {
		bag := New()
		key := bag.AddOrRename("K", "first")

		require.Equal(t, "K", key)
		value, has := bag.Get("K")
		require.True(t, has)
		require.Equal(t, "first", value)
	})

	t.Run("CollidingKeysAreRenamed", func(t *testing.T) {
		bag := New()
		first := bag.AddOrRename("K", "first")
		second := bag.AddOrRename("K", "second")
		third := bag.AddOrRename("K", "third")

		require.Equal(t, []string{"K", "K_1", "K_2"}, []string{first, second, third})
		require.Equal(t, 3, bag.Len())

		for key, expected := range map[string]string{"K": "first", "K_1": "second", "K_2": "third"} {
			value, has := bag.Get(key)
			require.True(t, has, key)
			require.Equal(t, expected, value)
		}
	})

	t.Run("SkipsSuffixAlreadyTaken", func(t *testing.T) {
		bag := New()
		bag.AddOrRename("K_1", "taken")
		bag.AddOrRename("K", "first")

		require.Equal(t, "K_2", bag.AddOrRename("K", "second"))
	})
}

func Test_Bag_Set(t *testing.T) {
	bag := FromPairs("A", "1", "B", "2")
	bag.Set("A", "updated")
	bag.Set("C", "3")

	require.Equal(t, []string{"A", "B", "C"}, bag.Keys())
	value, _ := bag.Get("A")
	require.Equal(t, "updated", value)
}

func Test_Bag_TryAdd(t *testing.T) {
	bag := New()
	require.True(t, bag.TryAdd("K", "first"))
	require.False(t, bag.TryAdd("K", "second"))

	value, _ := bag.Get("K")
	require.Equal(t, "first", value)
}

func Test_Bag_TryAddRange(t *testing.T) {
	tests := []struct {
		name            string
		action          KeyExistAction
		expectedKeys    []string
		expectedValues  map[string]string
		expectedSkipped []string
	}{
		{
			name:         "Rename",
			action:       Rename,
			expectedKeys: []string{"A", "B", "B_1", "C"},
			expectedValues: map[string]string{
				"A": "a", "B": "b", "B_1": "other-b", "C": "other-c",
			},
		},
		{
			name:         "Overwrite",
			action:       Overwrite,
			expectedKeys: []string{"A", "B", "C"},
			expectedValues: map[string]string{
				"A": "a", "B": "other-b", "C": "other-c",
			},
		},
		{
			name:         "Ignore",
			action:       Ignore,
			expectedKeys: []string{"A", "B", "C"},
			expectedValues: map[string]string{
				"A": "a", "B": "b", "C": "other-c",
			},
			expectedSkipped: []string{"B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := FromPairs("A", "a", "B", "b")
			other := FromPairs("B", "other-b", "C", "other-c")

			skipped := bag.TryAddRange(other, tt.action)

			require.Equal(t, tt.expectedSkipped, skipped)
			require.Equal(t, tt.expectedKeys, bag.Keys())
			require.Equal(t, tt.expectedValues, bag.Map())
			// the source bag is never modified
			require.Equal(t, []string{"B", "C"}, other.Keys())
		})
	}

	t.Run("NilOther", func(t *testing.T) {
		bag := FromPairs("A", "a")
		require.Nil(t, bag.TryAddRange(nil, Rename))
		require.Equal(t, 1, bag.Len())
	})

	t.Run("IntoItself", func(t *testing.T) {
		bag := FromPairs("A", "a")
		bag.TryAddRange(bag, Rename)
		require.Equal(t, []string{"A", "A_1"}, bag.Keys())
	})
}

func Test_Bag_NilReceiver(t *testing.T) {
	var bag *Bag

	value, has := bag.Get("K")
	require.False(t, has)
	require.Empty(t, value)
	require.Equal(t, 0, bag.Len())
	require.Empty(t, bag.Keys())
	require.Equal(t, 0, bag.Clone().Len())
}

func Test_Bag_Clone(t *testing.T) {
	bag := FromPairs("A", "a")
	clone := bag.Clone()
	clone.AddOrRename("B", "b")

	require.Equal(t, 1, bag.Len())
	require.Equal(t, []string{"A", "B"}, clone.Keys())
}

func Test_Bag_All(t *testing.T) {
	bag := FromPairs("Z", "26", "A", "1", "M", "13")

	var keys []string
	for key := range bag.All() {
		keys = append(keys, key)
	}

	require.Equal(t, []string{"Z", "A", "M"}, keys)
}

func Test_Bag_MarshalJSON(t *testing.T) {
	bag := FromPairs("Status", "Failure", "Message", "quote \" and newline\n")

	data, err := json.Marshal(bag)
	require.NoError(t, err)
	require.Equal(t, `{"Status":"Failure","Message":"quote \" and newline\n"}`, string(data))

	data, err = json.Marshal(New())
	require.NoError(t, err)
	require.Equal(t, `{}`, string(data))
}

func Test_Bag_MarshalLogObject(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	logger.Debug("failed", zap.Object("response", FromPairs("IsError", "true", "Status", "Failure")))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, map[string]interface{}{"IsError": "true", "Status": "Failure"}, fields["response"])
}

func Test_Bag_ConcurrentAdds(t *testing.T) {
	bag := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bag.AddOrRename("K", "v")
		}()
	}
	wg.Wait()

	require.Equal(t, 50, bag.Len())
}

func Test_FromPairs_OddArguments(t *testing.T) {
	require.Panics(t, func() {
		FromPairs("A")
	})
}
