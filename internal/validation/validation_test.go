package validation

import (
	"encoding/json"
	"errors"
	"testing"
)

type signUp struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type nested struct {
	Owner signUp `json:"owner"`
}

func TestStruct_Valid(t *testing.T) {
	v := New()

	if fields := v.Struct(signUp{Email: "a@x.com", Password: "password1"}); fields != nil {
		t.Fatalf("expected no field errors, got %+v", fields)
	}
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	fields := v.Struct(signUp{Email: "not-an-email", Password: "short"})
	if len(fields) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", fields)
	}

	found := map[string]FieldError{}
	for _, f := range fields {
		found[f.Field] = f
	}

	if found["email"].Rule != "email" || found["email"].Message != "must be a valid email address" {
		t.Fatalf("unexpected email error: %+v", found["email"])
	}
	if found["password"].Rule != "min" || found["password"].Param != "8" {
		t.Fatalf("unexpected password error: %+v", found["password"])
	}
	if found["password"].Message != "must have at least 8 characters" {
		t.Fatalf("unexpected password message: %q", found["password"].Message)
	}
}

func TestStruct_NestedPath(t *testing.T) {
	v := New()

	fields := v.Struct(nested{Owner: signUp{Email: "a@x.com"}})
	if len(fields) != 1 || fields[0].Field != "owner.password" || fields[0].Rule != "required" {
		t.Fatalf("unexpected nested errors: %+v", fields)
	}
}

func TestFromError_TypeMismatch(t *testing.T) {
	var out struct {
		Completed bool `json:"completed"`
	}
	err := json.Unmarshal([]byte(`{"completed":"yes"}`), &out)

	fields := FromError(err)
	if len(fields) != 1 || fields[0].Field != "completed" || fields[0].Rule != "type" {
		t.Fatalf("unexpected type mismatch fields: %+v", fields)
	}
}

func TestFromError_Unknown(t *testing.T) {
	if fields := FromError(errors.New("boom")); fields != nil {
		t.Fatalf("expected nil for unknown error, got %+v", fields)
	}
}
