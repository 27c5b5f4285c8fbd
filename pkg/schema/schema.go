// Package schema turns registry schema documents into API model schemas.
//
// A registry export carries the event envelope (account, region, id, version,
// resources, time) and two registry annotations that producers posting to the
// API never send. Transform strips them, stamps the registry version into the
// marker field, and proves the result still compiles as a draft-04 schema.
// The marker is how a later run recovers the applied version from the
// published model alone.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/agentstation/schemasync/pkg/errors"
)

// MarkerField is the top-level key holding the applied registry version.
const MarkerField = "description"

// RegistryAnnotations are registry-only keys removed from the document root.
var RegistryAnnotations = []string{
	"x-amazon-events-detail-type",
	"x-amazon-events-source",
}

// EnvelopeFields are event envelope properties removed from properties and required.
var EnvelopeFields = []string{
	"account",
	"region",
	"id",
	"version",
	"resources",
	"time",
}

// resourceURL names the in-memory document handed to the compiler.
const resourceURL = "mem://schemasync/model.json"

// Transformed is a registry schema rewritten for an API model.
type Transformed struct {
	// Version is the registry version the document was derived from.
	Version int
	// Document is the decoded, rewritten schema.
	Document map[string]any
	// Body is the canonical JSON encoding published to the model.
	Body []byte

	compiled *jsonschema.Schema
}

// Transform rewrites raw for the API model and stamps version into the marker.
// It fails with SchemaInvalid when raw is not a JSON object or the result does
// not compile as a draft-04 schema; no partially-corrected document is returned.
func Transform(raw []byte, version int) (*Transformed, error) {
	if version < 1 {
		return nil, errors.NewValidationError(MarkerField, version, "version must be at least 1")
	}

	doc, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	doc[MarkerField] = strconv.Itoa(version)

	for _, key := range RegistryAnnotations {
		delete(doc, key)
	}

	if props, ok := doc["properties"].(map[string]any); ok {
		for _, field := range EnvelopeFields {
			delete(props, field)
		}
	}

	if required, ok := doc["required"].([]any); ok {
		kept := slices.DeleteFunc(slices.Clone(required), func(item any) bool {
			name, ok := item.(string)
			return ok && slices.Contains(EnvelopeFields, name)
		})
		switch {
		case len(kept) == len(required):
			// nothing stripped; an empty list is left for Compile to reject
		case len(kept) == 0:
			delete(doc, "required")
		default:
			doc["required"] = kept
		}
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.WrapValidation("document", err)
	}

	compiled, err := Compile(body)
	if err != nil {
		return nil, err
	}

	return &Transformed{
		Version:  version,
		Document: doc,
		Body:     body,
		compiled: compiled,
	}, nil
}

// Indented returns Body with two-space indentation.
func (t *Transformed) Indented() []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, t.Body, "", "  "); err != nil {
		return t.Body
	}
	return buf.Bytes()
}

// Validate checks a JSON payload against the transformed schema.
func (t *Transformed) Validate(payload []byte) error {
	return validate(t.compiled, payload)
}

// Compile compiles body as a draft-04 JSON schema.
func Compile(body []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft4

	if err := compiler.AddResource(resourceURL, bytes.NewReader(body)); err != nil {
		return nil, errors.WrapValidation("document", err)
	}
	compiled, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, errors.WrapValidation("document", err)
	}
	return compiled, nil
}

func validate(compiled *jsonschema.Schema, payload []byte) error {
	if compiled == nil {
		return errors.NewValidationError("schema", nil, "schema not compiled")
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var instance any
	if err := dec.Decode(&instance); err != nil {
		return errors.WrapValidation("payload", err)
	}
	if err := compiled.Validate(instance); err != nil {
		return errors.WrapValidation("payload", err)
	}
	return nil
}

// decodeObject decodes raw into a JSON object, keeping numbers verbatim.
func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.WrapValidation("document", err)
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, errors.NewValidationError("document", fmt.Sprintf("%T", v), "schema document must be a JSON object")
	}
	return doc, nil
}
