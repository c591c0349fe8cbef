// Lantern: Content-source extensions and a host harness for manga readers.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package network

import (
	"bytes"
	"encoding/json"
	"strings"

	"Lantern/pkg/errors"
)

// GraphQLQuery is the JSON payload posted to a GraphQL endpoint
type GraphQLQuery struct {
	OperationName string                 `json:"operationName"`
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLError is a single entry of a response errors array
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// GraphQLErrors is returned when a response carries an errors field.
// It matches errors.ErrUpstream.
type GraphQLErrors struct {
	Errors []GraphQLError
}

func (e *GraphQLErrors) Error() string {
	if len(e.Errors) == 0 {
		return "graphql: response contains errors"
	}
	messages := make([]string, len(e.Errors))
	for i, gqlErr := range e.Errors {
		messages[i] = gqlErr.Message
	}
	return "graphql: " + strings.Join(messages, "; ")
}

func (e *GraphQLErrors) Is(target error) bool {
	return target == errors.ErrUpstream
}

type graphQLEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// NewGraphQLRequest builds the POST request for a query
func NewGraphQLRequest(endpoint string, query GraphQLQuery) (*Request, error) {
	if query.Variables == nil {
		query.Variables = map[string]interface{}{}
	}
	builder, err := NewRequest(endpoint).JSON(query)
	if err != nil {
		return nil, err
	}
	return builder.Build(), nil
}

// GraphQL decodes the data field of a GraphQL envelope into v.
// Any non-null errors field fails the call, whatever data holds.
func (r *Response) GraphQL(v interface{}) error {
	var envelope graphQLEnvelope
	if err := r.JSON(&envelope); err != nil {
		return err
	}

	if isPresent(envelope.Errors) {
		gqlErrors := &GraphQLErrors{}
		// A malformed errors field still counts as an upstream failure
		_ = json.Unmarshal(envelope.Errors, &gqlErrors.Errors)
		return errors.Track(gqlErrors).
			WithContext("url", r.URL).
			AsUpstream().
			Error()
	}

	if !isPresent(envelope.Data) {
		return errors.New("graphql response has no data").
			WithContext("url", r.URL).
			WithContext("response_preview", r.preview()).
			AsParser().Error()
	}

	if err := json.Unmarshal(envelope.Data, v); err != nil {
		return errors.Track(err).
			WithContext("url", r.URL).
			AsParser().Error()
	}
	return nil
}

func isPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
