package proof

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/pilacorp/go-rdf-proof/errs"
)

// documentSchema describes the rendered layout. The proof block only accepts
// the five vocabulary fields, and jws is empty or upper-case hex pairs.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["@context", "description", "proof"],
  "additionalProperties": false,
  "properties": {
    "@context": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "description": {"type": "string"},
    "proof": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "type": {"type": "string"},
        "created": {"type": "string"},
        "verificationMethod": {"type": "string"},
        "proofPurpose": {"type": "string"},
        "jws": {"type": "string", "pattern": "^([0-9A-F]{2})*$"}
      }
    }
  }
}`

var schema = mustSchema(documentSchema)

func mustSchema(s string) *gojsonschema.Schema {
	sc, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic("proof: invalid document schema: " + err.Error())
	}
	return sc
}

// Validate checks doc against the proof document schema.
func Validate(doc []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return errs.Wrap(errs.KindParse, "proof.Validate", "document is not JSON", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return errs.New(errs.KindParse, "proof.Validate", strings.Join(msgs, "; "))
	}
	return nil
}
