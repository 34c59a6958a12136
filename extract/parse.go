package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/scout"
	"github.com/xeipuuv/gojsonschema"
)

// responseSchema describes an acceptable model answer. Every record field is
// optional and may be a string, null or a list of strings. Unknown keys are
// allowed and ignored.
var responseSchema = mustSchema(`{
  "type": "object",
  "properties": {
    "company_name": {"$ref": "#/definitions/value"},
    "website":      {"$ref": "#/definitions/value"},
    "email":        {"$ref": "#/definitions/value"},
    "phone":        {"$ref": "#/definitions/value"},
    "address":      {"$ref": "#/definitions/value"},
    "description":  {"$ref": "#/definitions/value"},
    "category":     {"$ref": "#/definitions/value"},
    "industry":     {"$ref": "#/definitions/value"}
  },
  "definitions": {
    "value": {
      "type": ["string", "null", "array"],
      "items": {"type": "string"}
    }
  }
}`)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(err)
	}
	return schema
}

// ParseError reports a model response that could not be read as a record.
type ParseError struct {
	// Raw is the response text as returned by the model.
	Raw string
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("unparsable model response: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldError lists the schema violations of a decoded response.
type FieldError struct {
	Violations []string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return "schema violations: " + strings.Join(e.Violations, "; ")
}

// ParseStrict reads text as a single JSON object matching the record schema.
// The returned record holds exactly the fields that carry a non-blank value.
// List values are joined with "; " after dropping repeated items.
func ParseStrict(text string) (*scout.CandidateRecord, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &doc); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}
	if doc == nil {
		return nil, &ParseError{Raw: text, Err: fmt.Errorf("response is null")}
	}

	result, err := responseSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}
	if !result.Valid() {
		fe := &FieldError{}
		for _, desc := range result.Errors() {
			fe.Violations = append(fe.Violations, desc.Field()+": "+desc.Description())
		}
		return nil, &ParseError{Raw: text, Err: fe}
	}

	rec := &scout.CandidateRecord{}
	for _, key := range scout.RecordFields {
		if v := value(doc[key]); v != "" {
			rec.Set(key, v)
		}
	}
	return rec, nil
}

// value flattens a schema-valid field value to a string.
func value(v any) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		seen := make(map[string]bool, len(v))
		for _, item := range v {
			s, ok := item.(string)
			s = strings.TrimSpace(s)
			if !ok || s == "" || seen[s] {
				continue
			}
			seen[s] = true
			parts = append(parts, s)
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

// StripWrapper removes formatting around a JSON object: markdown code
// fences and any prose before the first "{" or after the last "}".
// Text without braces is returned trimmed.
func StripWrapper(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Drop a language tag such as "json" on the fence line.
		if i := strings.IndexByte(text, '\n'); i >= 0 && !strings.Contains(text[:i], "{") {
			text = text[i+1:]
		}
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return strings.TrimSpace(text)
	}
	return text[start : end+1]
}
