package validation

import (
	"errors"
	"testing"
)

const testSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "body"],
    "properties": {
      "title": {"type": "string"},
      "body": {"type": "string", "minLength": 1}
    }
  }
}`

type item struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func TestSchemaValidateDocument(t *testing.T) {
	schema, err := Compile("items.json", []byte(testSchema))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if err := schema.ValidateDocument([]item{{Title: "a", Body: "b"}}); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}

	err = schema.ValidateDocument([]item{{Title: "a"}})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := Issues(err)
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %#v", issues)
	}
	if issues[0].Location != "/0/body" {
		t.Fatalf("expected location /0/body, got %q", issues[0].Location)
	}
}

func TestCompileRejectsInvalidSchema(t *testing.T) {
	_, err := Compile("bad.json", []byte(`{"type": 12}`))
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestPayloadValidationErrorMessage(t *testing.T) {
	err := &PayloadValidationError{Issues: []ValidationIssue{{Location: "/a", Message: "bad"}, {Location: ""}}}
	if got := err.Error(); got != "#/a: bad; #" {
		t.Fatalf("unexpected message %q", got)
	}
}
