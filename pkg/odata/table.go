// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package odata

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/tidwall/gjson"
)

// TableErrorEnvelope is the name of the root property of a table service error.
const TableErrorEnvelope = "odata.error"

var errInvalidJSON = errors.New("invalid JSON payload")

// TableErrorFromJSON extracts the error from a table service OData payload:
//
//	{"odata.error":{"code":"...","message":{"lang":"en-US","value":"..."}}}
//
// Only the first segment of message.value is kept. Raw line breaks inside the payload are accepted.
func TableErrorFromJSON(body string) Extraction[aztables.TableErrorCode] {
	if body == "" {
		return notFound[aztables.TableErrorCode]()
	}

	// the service text may contain raw line breaks, which are not valid inside JSON strings
	normalized := strings.ReplaceAll(body, "\n", MessageValueSeparator)
	if !gjson.Valid(normalized) {
		return malformed[aztables.TableErrorCode](errInvalidJSON)
	}

	root := gjson.Parse(normalized)
	if !root.IsObject() {
		return notFound[aztables.TableErrorCode]()
	}

	var envelope gjson.Result
	first := true
	root.ForEach(func(key, value gjson.Result) bool {
		if first && key.String() == TableErrorEnvelope {
			envelope = value
		}
		first = false
		return false
	})
	if !envelope.IsObject() {
		return notFound[aztables.TableErrorCode]()
	}

	var code, message string
	var cause error
	envelope.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case "code":
			if value.Type != gjson.String && value.Type != gjson.Null {
				cause = errors.New("'code' is not a string")
				return false
			}
			code = value.String()
		case "message":
			if !value.IsObject() {
				cause = errors.New("'message' is not an object")
				return false
			}
			text := value.Get("value")
			if text.Exists() && text.Type != gjson.String && text.Type != gjson.Null {
				cause = errors.New("'message.value' is not a string")
				return false
			}
			message = FirstSegment(text.String())
		}
		return true
	})
	if cause != nil {
		return malformed[aztables.TableErrorCode](cause)
	}

	return found[aztables.TableErrorCode](code, message)
}

// TableErrorFromResponse runs TableErrorFromJSON on the body of resp. The body is left readable.
func TableErrorFromResponse(resp *http.Response) Extraction[aztables.TableErrorCode] {
	if resp == nil || !hasBody(resp) {
		return notFound[aztables.TableErrorCode]()
	}

	body, err := readBody(resp)
	if err != nil {
		return malformed[aztables.TableErrorCode](err)
	}

	return TableErrorFromJSON(string(body))
}
