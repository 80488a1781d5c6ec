// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package mockhttp provides an in-memory policy.Transporter for SDK client tests.
package mockhttp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

type MockHttpClient struct {
	mu          sync.Mutex
	expressions []*HttpExpression
	requests    []*http.Request
}

type HttpExpression struct {
	http        *MockHttpClient
	predicateFn RequestPredicate
	response    *http.Response
	responseFn  RespondFn
	error       error
}

type RequestPredicate func(request *http.Request) bool
type RespondFn func(request *http.Request) (*http.Response, error)

func NewMockHttpClient() *MockHttpClient {
	return &MockHttpClient{
		expressions: []*HttpExpression{},
	}
}

// Do implements policy.Transporter. The latest registered expression matching the request wins.
func (c *MockHttpClient) Do(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)

	var match *HttpExpression
	for i := len(c.expressions) - 1; i >= 0; i-- {
		if c.expressions[i].predicateFn(req) {
			match = c.expressions[i]
			break
		}
	}
	c.mu.Unlock()

	if match == nil {
		panic(fmt.Sprintf("No mock found for request: '%s %s'", req.Method, req.URL))
	}

	// If the response function has been set, return the value
	if match.responseFn != nil {
		return match.responseFn(req)
	}

	if match.error != nil {
		return nil, match.error
	}

	response := *match.response
	response.Request = req
	return &response, nil
}

func (c *MockHttpClient) When(predicate RequestPredicate) *HttpExpression {
	expr := HttpExpression{
		http:        c,
		predicateFn: predicate,
	}

	c.mu.Lock()
	c.expressions = append(c.expressions, &expr)
	c.mu.Unlock()
	return &expr
}

// Requests returns the requests received so far, in order.
func (c *MockHttpClient) Requests() []*http.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*http.Request(nil), c.requests...)
}

func (c *MockHttpClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expressions = []*HttpExpression{}
	c.requests = nil
}

func (e *HttpExpression) Respond(response *http.Response) *MockHttpClient {
	e.response = response
	return e.http
}

func (e *HttpExpression) RespondFn(responseFn RespondFn) *MockHttpClient {
	e.responseFn = responseFn
	return e.http
}

func (e *HttpExpression) SetError(err error) *MockHttpClient {
	e.error = err
	return e.http
}

// Method matches requests with the given HTTP method whose URL path contains pathFragment.
func Method(method, pathFragment string) RequestPredicate {
	return func(req *http.Request) bool {
		return req.Method == method && strings.Contains(req.URL.Path, pathFragment)
	}
}

// Query matches requests whose raw query contains fragment.
func Query(method, fragment string) RequestPredicate {
	return func(req *http.Request) bool {
		return req.Method == method && strings.Contains(req.URL.RawQuery, fragment)
	}
}

// RespondFn builders create a fresh body on every call, so expressions can be matched repeatedly.

// WithStatus responds with an empty body.
func WithStatus(status int, headers map[string]string) RespondFn {
	return WithBody(status, "", "", headers)
}

// WithBody responds with body and the given content type.
func WithBody(status int, contentType, body string, headers map[string]string) RespondFn {
	return func(req *http.Request) (*http.Response, error) {
		header := http.Header{}
		if contentType != "" {
			header.Set("Content-Type", contentType)
		}
		for name, value := range headers {
			header.Set(name, value)
		}

		return &http.Response{
			StatusCode:    status,
			Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
			Header:        header,
			Body:          io.NopCloser(bytes.NewBufferString(body)),
			ContentLength: int64(len(body)),
			Request:       req,
		}, nil
	}
}
