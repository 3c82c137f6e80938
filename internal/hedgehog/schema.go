package hedgehog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/ubigu/hedgehog-map/internal/geo"
	"golang.org/x/text/unicode/norm"
)

// Input is the candidate shape accepted on creation. Pointers distinguish a
// missing field from its zero value. An id sent by the caller is ignored.
type Input struct {
	ID       *int64        `json:"id,omitempty" validate:"-"`
	Name     string        `json:"name" validate:"notblank"`
	Age      *int          `json:"age" validate:"required,gte=0,lte=15"`
	Gender   Gender        `json:"gender" validate:"required,oneof=female male unknown"`
	Location *geo.Geometry `json:"location" validate:"required"`
}

// Violation describes one failing field. Path holds JSON field names from the
// document root.
type Violation struct {
	Path    []string `json:"path"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Validate normalises in and checks every field, returning one violation per
// failing field. A nil result means in can be converted with NewHedgehog.
func Validate(in *Input) []Violation {
	in.Name = normalizeName(in.Name)

	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Violation{{Path: []string{}, Code: "custom", Message: err.Error()}}
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, violationFor(fe))
	}
	return violations
}

// ParseInput decodes a request body and validates it. Type mismatches reported
// by the decoder are merged with the field rules so every failing field shows
// up once.
func ParseInput(body []byte) (Input, []Violation) {
	var in Input

	dec := json.NewDecoder(bytes.NewReader(body))
	err := dec.Decode(&in)
	if err == nil && !errors.Is(dec.Decode(&struct{}{}), io.EOF) {
		return in, []Violation{{Path: []string{}, Code: "invalid_type", Message: "Expected object"}}
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
	case errors.As(err, &typeErr) && typeErr.Field != "":
		v := Violation{
			Path:    strings.Split(typeErr.Field, "."),
			Code:    "invalid_type",
			Message: fmt.Sprintf("Expected %s, received %s", jsonKind(typeErr.Type), typeErr.Value),
		}
		return in, mergeViolations([]Violation{v}, Validate(&in))
	default:
		return in, []Violation{{Path: []string{}, Code: "invalid_type", Message: "Expected object"}}
	}

	return in, Validate(&in)
}

// NewHedgehog converts an input that passed Validate.
func (in Input) NewHedgehog() NewHedgehog {
	return NewHedgehog{
		Name:     in.Name,
		Age:      *in.Age,
		Gender:   in.Gender,
		Location: *in.Location,
	}
}

func normalizeName(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func violationFor(fe validator.FieldError) Violation {
	path := strings.Split(fe.Namespace(), ".")[1:]
	field := strings.Join(path, ".")

	v := Violation{Path: path}
	switch fe.Tag() {
	case "required":
		v.Code, v.Message = "invalid_type", "Required"
	case "notblank":
		v.Code, v.Message = "too_small", "Name must not be blank"
	case "gte":
		v.Code, v.Message = "too_small", "Age must be zero or positive"
	case "lte":
		v.Code, v.Message = "too_big", fmt.Sprintf("Age must be at most %d", MaxAge)
	case "oneof":
		v.Code, v.Message = "invalid_enum_value", "Expected 'female' | 'male' | 'unknown'"
	case "eq":
		v.Code, v.Message = "invalid_literal", `Expected "Point"`
	case "len":
		v.Code = "too_small"
		if reflect.ValueOf(fe.Value()).Len() > 2 {
			v.Code = "too_big"
		}
		v.Message = "Coordinates must contain exactly 2 numbers"
	default:
		v.Code, v.Message = "custom", fmt.Sprintf("Invalid %s", field)
	}
	return v
}

func mergeViolations(first, rest []Violation) []Violation {
	seen := make(map[string]bool, len(first))
	for _, v := range first {
		seen[strings.Join(v.Path, ".")] = true
	}
	out := first
	for _, v := range rest {
		if !seen[strings.Join(v.Path, ".")] {
			out = append(out, v)
		}
	}
	return out
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int64:
		return "integer"
	case reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Slice:
		return "array"
	case reflect.Struct, reflect.Ptr:
		return "object"
	default:
		return t.String()
	}
}
