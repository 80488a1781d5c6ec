// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package odata

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

func hasBody(resp *http.Response) bool {
	return resp.Body != nil && resp.Body != http.NoBody
}

// withRewoundBody calls fn with a reader positioned at the start of the response body. Seekable
// bodies are rewound and their original position is restored when fn returns. Other bodies are
// buffered with runtime.Payload, which leaves a re-readable body on the response.
func withRewoundBody(resp *http.Response, fn func(body io.Reader) error) (err error) {
	if !hasBody(resp) {
		return fn(bytes.NewReader(nil))
	}

	if seeker, ok := resp.Body.(io.Seeker); ok {
		position, seekErr := seeker.Seek(0, io.SeekCurrent)
		if seekErr != nil {
			return fmt.Errorf("reading body position: %w", seekErr)
		}
		defer func() {
			if _, seekErr := seeker.Seek(position, io.SeekStart); seekErr != nil && err == nil {
				err = fmt.Errorf("restoring body position: %w", seekErr)
			}
		}()

		if _, seekErr := seeker.Seek(0, io.SeekStart); seekErr != nil {
			return fmt.Errorf("rewinding body: %w", seekErr)
		}

		return fn(resp.Body)
	}

	payload, err := runtime.Payload(resp)
	if err != nil {
		return fmt.Errorf("buffering body: %w", err)
	}

	return fn(bytes.NewReader(payload))
}

// readBody returns the whole body of resp without consuming it.
func readBody(resp *http.Response) ([]byte, error) {
	var data []byte
	err := withRewoundBody(resp, func(body io.Reader) error {
		var err error
		data, err = io.ReadAll(body)
		return err
	})

	return data, err
}
