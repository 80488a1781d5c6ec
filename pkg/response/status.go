// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package response

import (
	"encoding/json"
	"fmt"
)

// Status is the terminal classification of an operation outcome.
type Status int

const (
	// Success means the operation completed and, for value results, produced a value.
	Success Status = iota
	// Warning means partial success: the operation completed but the value may be missing or degraded.
	Warning
	// Failure means the operation did not complete.
	Failure
)

func (s Status) String() string {
	switch s {
	case Success:
		return "Success"
	case Warning:
		return "Warning"
	case Failure:
		return "Failure"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// IsValid reports whether s is one of the defined statuses.
func (s Status) IsValid() bool {
	return s == Success || s == Warning || s == Failure
}

// Qualified returns the status prefixed with its type, e.g. "response.Status.Failure".
func (s Status) Qualified() string {
	return fmt.Sprintf("%T.%s", s, s)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ParseStatus converts a status name ("Success", "Warning", "Failure") into a Status.
func ParseStatus(value string) (Status, error) {
	switch value {
	case "Success":
		return Success, nil
	case "Warning":
		return Warning, nil
	case "Failure":
		return Failure, nil
	default:
		return 0, fmt.Errorf("unknown response status '%s'", value)
	}
}
