// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package response

import (
	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/messages"
)

// Map converts the value of in with convert. Failures are propagated unchanged (see MapFromFailure),
// a Warning without a value stays empty, and messages are always carried over with Rename.
func Map[TIn, TOut any](in *ValueResult[TIn], convert func(TIn) TOut) (*ValueResult[TOut], error) {
	return MapWith(in, convert, messages.Rename)
}

// MapWith is Map with an explicit policy for carrying over message keys.
func MapWith[TIn, TOut any](
	in *ValueResult[TIn],
	convert func(TIn) TOut,
	action messages.KeyExistAction,
) (*ValueResult[TOut], error) {
	if in == nil {
		return nil, NilArgument("in")
	}
	if convert == nil {
		return nil, NilArgument("convert")
	}

	var out *ValueResult[TOut]
	switch in.Status() {
	case Failure:
		return mapFromFailure[TOut](in, action), nil
	case Success:
		converted, err := SuccessfulValue(convert(in.value))
		if err != nil {
			return nil, err
		}
		out = converted
	default:
		if in.hasValue {
			out = WarningValue(convert(in.value))
		} else {
			out = WarningEmpty[TOut]()
		}
	}

	out.AddMessages(in.Messages(), action)
	return out, nil
}

// MapFromFailure re-wraps a Failure of any shape into a value result of type TOut, keeping the error
// and the messages. Colliding message keys are renamed.
func MapFromFailure[TOut any](in Result) (*ValueResult[TOut], error) {
	if err := AssertFailure(in, "in"); err != nil {
		return nil, err
	}

	return mapFromFailure[TOut](in, messages.Rename), nil
}

// ResponseFromFailure re-wraps a Failure of any shape into a Response without a value.
func ResponseFromFailure(in Result) (*Response, error) {
	return FromFailure(in)
}

func mapFromFailure[TOut any](in Result, action messages.KeyExistAction) *ValueResult[TOut] {
	var zero TOut
	out := newValue(Failure, in.Err(), zero)
	out.hasValue = false
	out.AddMessages(in.Messages(), action)
	return out
}
