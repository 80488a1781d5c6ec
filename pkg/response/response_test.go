// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package response

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func Test_Status(t *testing.T) {
	require.Equal(t, "response.Status.Failure", Failure.Qualified())
	require.Equal(t, "Warning", Warning.String())
	require.False(t, Status(7).IsValid())

	parsed, err := ParseStatus("Success")
	require.NoError(t, err)
	require.Equal(t, Success, parsed)

	_, err = ParseStatus("Unknown")
	require.Error(t, err)
}

func Test_New(t *testing.T) {
	r, err := New(Warning)
	require.NoError(t, err)
	require.True(t, r.IsWarning())
	require.False(t, r.HasErr())

	_, err = New(Status(42))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func Test_FailedFrom(t *testing.T) {
	t.Run("CarriesError", func(t *testing.T) {
		cause := errors.New("boom")
		r, err := FailedFrom(cause)
		require.NoError(t, err)
		require.True(t, r.IsFailure())
		require.Same(t, cause, r.Err())
	})

	t.Run("RejectsNilError", func(t *testing.T) {
		_, err := FailedFrom(nil)

		var argErr *ArgumentError
		require.ErrorAs(t, err, &argErr)
		require.Equal(t, "err", argErr.Param)
	})

	t.Run("FailureWithoutError", func(t *testing.T) {
		r := Failed()
		require.True(t, r.IsFailure())
		require.Nil(t, r.Err())
	})
}

func Test_AddMessage(t *testing.T) {
	r := Successful()

	key, err := r.AddMessage("Info", "first")
	require.NoError(t, err)
	require.Equal(t, "Info", key)

	key, err = r.AddMessage("Info", "second")
	require.NoError(t, err)
	require.Equal(t, "Info_1", key)

	_, err = r.AddMessage("", "value")
	require.ErrorIs(t, err, ErrInvalidArgument)

	require.True(t, r.HasMessages())
	require.Equal(t, []string{"Info", "Info_1"}, r.Messages().Keys())
}

func Test_FromFailure(t *testing.T) {
	t.Run("CopiesErrorAndMessages", func(t *testing.T) {
		cause := errors.New("boom")
		source := Must(FailedFrom(cause))
		_, _ = source.AddMessage("Reason", "gone")

		r, err := FromFailure(source)
		require.NoError(t, err)
		require.True(t, r.IsFailure())
		require.Same(t, cause, r.Err())
		value, has := r.Messages().Get("Reason")
		require.True(t, has)
		require.Equal(t, "gone", value)
	})

	t.Run("RejectsNonFailure", func(t *testing.T) {
		_, err := FromFailure(Successful())
		require.ErrorIs(t, err, ErrInvalidArgument)
		require.Contains(t, err.Error(), ReasonStatusIsNotFailure)
	})
}

func Test_BuildVerbose(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r := Successful()
		_, _ = r.AddMessage("Note", "all good")

		verbose := r.BuildVerbose()
		require.Equal(t,
			[]string{VerboseIsError, VerboseStatus, VerboseHasException, VerboseHasMessage, "Note"},
			verbose.Keys())
		require.Equal(t, map[string]string{
			VerboseIsError:      "false",
			VerboseStatus:       "response.Status.Success",
			VerboseHasException: "false",
			VerboseHasMessage:   "true",
			"Note":              "all good",
		}, verbose.Map())
	})

	t.Run("FailureWithWrappedError", func(t *testing.T) {
		inner := pkgerrors.New("disk full")
		outer := fmt.Errorf("upload failed: %w", inner)
		r := Must(FailedFrom(outer))

		verbose := r.BuildVerbose()
		require.Equal(t, []string{
			VerboseIsError,
			VerboseStatus,
			VerboseHasException,
			VerboseExceptionType,
			VerboseExceptionMessages,
			VerboseExceptionStackTrace,
			VerboseHasMessage,
		}, verbose.Keys())

		messagesValue, _ := verbose.Get(VerboseExceptionMessages)
		require.Equal(t, "upload failed: disk full --> disk full", messagesValue)

		typeName, _ := verbose.Get(VerboseExceptionType)
		require.Equal(t, "*fmt.wrapError", typeName)

		stack, _ := verbose.Get(VerboseExceptionStackTrace)
		require.Contains(t, stack, "Test_BuildVerbose")
	})

	t.Run("StackTraceUndefined", func(t *testing.T) {
		r := Must(FailedFrom(errors.New("plain")))

		stack, has := r.BuildVerbose().Get(VerboseExceptionStackTrace)
		require.True(t, has)
		require.Equal(t, VerboseStackTraceUndefined, stack)
	})

	t.Run("KeyOrder", func(t *testing.T) {
		require.Equal(t, []string{VerboseIsError, VerboseStatus, VerboseHasException, VerboseHasMessage},
			Successful().BuildVerbose().Keys())
	})

	t.Run("Deterministic", func(t *testing.T) {
		r := Must(FailedFrom(errors.New("plain")))
		_, _ = r.AddMessage("A", "1")

		require.Equal(t, r.BuildVerbose().String(), r.BuildVerbose().String())
	})
}
