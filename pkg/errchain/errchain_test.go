// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package errchain

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func Test_Messages(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		require.Empty(t, Messages(nil))
		require.Equal(t, "", JoinMessages(nil))
	})

	t.Run("WrapChain", func(t *testing.T) {
		root := errors.New("blob not found")
		err := fmt.Errorf("download failed: %w", root)

		require.Equal(t, []string{"download failed: blob not found", "blob not found"}, Messages(err))
		require.Equal(t, "download failed: blob not found --> blob not found", JoinMessages(err))
	})

	t.Run("Joined", func(t *testing.T) {
		first := errors.New("first")
		second := errors.New("second")
		err := errors.Join(first, second)

		require.Equal(t, []string{"first\nsecond", "first", "second"}, Messages(err))
	})

	t.Run("PkgErrorsWrapCollapsed", func(t *testing.T) {
		root := errors.New("root")
		err := pkgerrors.Wrap(root, "context")

		require.Equal(t, []string{"context: root", "root"}, Messages(err))
	})
}

func Test_StackTraces(t *testing.T) {
	t.Run("NoStack", func(t *testing.T) {
		require.Empty(t, StackTraces(errors.New("plain")))
		require.Equal(t, "", JoinStackTraces(errors.New("plain")))
	})

	t.Run("WithStack", func(t *testing.T) {
		err := pkgerrors.WithStack(errors.New("root"))

		traces := StackTraces(err)
		require.Len(t, traces, 1)
		require.Contains(t, traces[0], "Test_StackTraces")
	})
}

func Test_Walk_Stops(t *testing.T) {
	err := fmt.Errorf("outer: %w", fmt.Errorf("middle: %w", errors.New("inner")))

	visited := 0
	Walk(err, func(error) bool {
		visited++
		return visited < 2
	})

	require.Equal(t, 2, visited)
}

func Test_TypeName(t *testing.T) {
	require.Equal(t, "*errors.errorString", TypeName(errors.New("x")))
	require.Equal(t, "<nil>", TypeName(nil))
}
