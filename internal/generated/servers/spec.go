// Package servers holds the HTTP contract of the dispatch API: the embedded
// OpenAPI document, the wire types and the echo routing glue that binds
// path and query parameters before calling a ServerInterface.
package servers

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

// InvalidRequestMessageKey is the operation extension holding the error
// message returned when a request does not match the operation's contract.
const InvalidRequestMessageKey = "x-invalid-request-message"

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading spec: %w", err)
	}

	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("error validating spec: %w", err)
	}

	return doc, nil
}

// SpecJSON renders the embedded document as JSON for the Swagger UI.
func SpecJSON() ([]byte, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
