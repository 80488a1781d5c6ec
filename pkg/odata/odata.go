// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package odata extracts a service error code and message from Azure storage error payloads.
//
// Three sources are supported: the JSON OData envelope returned by the table service, the XML or
// JSON body (or the x-ms-error-code header) returned by the blob service, and the free-text message
// of an error that carries a structured error code. Extraction never fails loudly: a missing or
// unreadable payload is reported through the Outcome of the returned Extraction.
package odata

import (
	"strings"
)

// MessageValueSeparator splits a service message into segments. Line breaks are normalized to it
// and only the first segment is kept, which drops the RequestId and Time trailers Azure appends.
// It uses private-use code points so it never collides with service text.
const MessageValueSeparator = "\ue000\ue001\ue002"

// ErrorCodeHeader carries the service error code on responses without a body.
const ErrorCodeHeader = "x-ms-error-code"

// Outcome classifies an extraction attempt.
type Outcome int

const (
	// NotFound means the source was readable but did not hold a complete error.
	NotFound Outcome = iota
	// Found means both the error code and the message were recovered.
	Found
	// Malformed means the source could not be parsed.
	Malformed
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "Found"
	case Malformed:
		return "Malformed"
	default:
		return "NotFound"
	}
}

// StructuredError is a service error code with its message.
type StructuredError[C ~string] struct {
	Message   string
	ErrorCode C
}

// Extraction is the result of an extraction attempt. Error is only meaningful when Outcome is Found;
// Cause holds the parse error of a Malformed source.
type Extraction[C ~string] struct {
	Outcome Outcome
	Error   StructuredError[C]
	Cause   error
}

// Ok returns the extracted error and whether it was found.
func (e Extraction[C]) Ok() (StructuredError[C], bool) {
	return e.Error, e.Outcome == Found
}

func found[C ~string](code, message string) Extraction[C] {
	if code == "" || message == "" {
		return Extraction[C]{Outcome: NotFound}
	}

	return Extraction[C]{
		Outcome: Found,
		Error: StructuredError[C]{
			Message:   message,
			ErrorCode: C(code),
		},
	}
}

func notFound[C ~string]() Extraction[C] {
	return Extraction[C]{Outcome: NotFound}
}

func malformed[C ~string](cause error) Extraction[C] {
	return Extraction[C]{Outcome: Malformed, Cause: cause}
}

// FirstSegment normalizes line breaks to MessageValueSeparator and returns the text before the
// first separator.
func FirstSegment(message string) string {
	normalized := strings.ReplaceAll(message, "\n", MessageValueSeparator)
	first, _, _ := strings.Cut(normalized, MessageValueSeparator)
	return first
}
