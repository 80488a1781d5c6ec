// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package odata

import (
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/tidwall/gjson"
)

const (
	contentTypeXML  = "application/xml"
	contentTypeJSON = "application/json"
)

type xmlStorageError struct {
	Code    *string `xml:"Code"`
	Message *string `xml:"Message"`
}

// BlobErrorFromResponse extracts the error of a blob service response. A body with an XML or JSON
// content type is parsed:
//
//	<Error><Code>...</Code><Message>...</Message></Error>
//	{"error":{"code":"...","message":"..."}}
//
// A response without a body falls back to the x-ms-error-code header, which then stands for both
// the error code and the message. The body is left readable at its original position.
func BlobErrorFromResponse(resp *http.Response) Extraction[bloberror.Code] {
	if resp == nil {
		return notFound[bloberror.Code]()
	}

	contentType := resp.Header.Get("Content-Type")
	if !hasBody(resp) || contentType == "" {
		code := resp.Header.Get(ErrorCodeHeader)
		return found[bloberror.Code](code, code)
	}

	var code, message string
	err := withRewoundBody(resp, func(body io.Reader) error {
		var err error
		switch {
		case strings.Contains(contentType, contentTypeXML):
			code, message, err = parseXMLError(body)
		case strings.Contains(contentType, contentTypeJSON):
			code, message, err = parseJSONError(body)
		}
		return err
	})
	if err != nil {
		return malformed[bloberror.Code](err)
	}

	return found[bloberror.Code](code, message)
}

func parseXMLError(body io.Reader) (string, string, error) {
	var storageErr xmlStorageError
	if err := xml.NewDecoder(body).Decode(&storageErr); err != nil {
		return "", "", err
	}
	if storageErr.Code == nil || storageErr.Message == nil {
		return "", "", errors.New("missing 'Code' or 'Message' element")
	}

	return *storageErr.Code, *storageErr.Message, nil
}

func parseJSONError(body io.Reader) (string, string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", "", err
	}
	if !gjson.ValidBytes(data) {
		return "", "", errInvalidJSON
	}

	code := gjson.GetBytes(data, "error.code")
	message := gjson.GetBytes(data, "error.message")
	if !code.Exists() || !message.Exists() {
		return "", "", errors.New("missing 'error.code' or 'error.message' property")
	}

	return code.String(), message.String(), nil
}
