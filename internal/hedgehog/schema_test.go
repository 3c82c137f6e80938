package hedgehog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBody = `{"name":"Testi Siili","age":3,"gender":"male","location":{"type":"Point","coordinates":[385000,6670000]}}`

func pathsOf(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, strings.Join(v.Path, "."))
	}
	return out
}

func TestParseInputAcceptsValidPayload(t *testing.T) {
	in, violations := ParseInput([]byte(validBody))
	require.Empty(t, violations)

	n := in.NewHedgehog()
	assert.Equal(t, "Testi Siili", n.Name)
	assert.Equal(t, 3, n.Age)
	assert.Equal(t, GenderMale, n.Gender)
	assert.Equal(t, []float64{385000, 6670000}, n.Location.Coordinates)
}

func TestParseInputAgeBounds(t *testing.T) {
	for _, age := range []string{"0", "15"} {
		_, violations := ParseInput([]byte(`{"name":"a","age":` + age + `,"gender":"unknown","location":{"type":"Point","coordinates":[1,2]}}`))
		assert.Empty(t, violations, "age %s", age)
	}
}

func TestParseInputRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantPath string
		wantCode string
	}{
		{"negative age", `{"name":"a","age":-1,"gender":"male","location":{"type":"Point","coordinates":[1,2]}}`, "age", "too_small"},
		{"age above max", `{"name":"a","age":16,"gender":"male","location":{"type":"Point","coordinates":[1,2]}}`, "age", "too_big"},
		{"fractional age", `{"name":"a","age":2.5,"gender":"male","location":{"type":"Point","coordinates":[1,2]}}`, "age", "invalid_type"},
		{"age as string", `{"name":"a","age":"3","gender":"male","location":{"type":"Point","coordinates":[1,2]}}`, "age", "invalid_type"},
		{"missing age", `{"name":"a","gender":"male","location":{"type":"Point","coordinates":[1,2]}}`, "age", "invalid_type"},
		{"unknown gender", `{"name":"a","age":1,"gender":"cat","location":{"type":"Point","coordinates":[1,2]}}`, "gender", "invalid_enum_value"},
		{"missing gender", `{"name":"a","age":1,"location":{"type":"Point","coordinates":[1,2]}}`, "gender", "invalid_type"},
		{"blank name", `{"name":"   ","age":1,"gender":"male","location":{"type":"Point","coordinates":[1,2]}}`, "name", "too_small"},
		{"missing name", `{"age":1,"gender":"male","location":{"type":"Point","coordinates":[1,2]}}`, "name", "too_small"},
		{"missing location", `{"name":"a","age":1,"gender":"male"}`, "location", "invalid_type"},
		{"one coordinate", `{"name":"a","age":1,"gender":"male","location":{"type":"Point","coordinates":[1]}}`, "location.coordinates", "too_small"},
		{"three coordinates", `{"name":"a","age":1,"gender":"male","location":{"type":"Point","coordinates":[1,2,3]}}`, "location.coordinates", "too_big"},
		{"line string", `{"name":"a","age":1,"gender":"male","location":{"type":"LineString","coordinates":[1,2]}}`, "location.type", "invalid_literal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, violations := ParseInput([]byte(tt.body))
			require.NotEmpty(t, violations)

			var found *Violation
			for i := range violations {
				if strings.Join(violations[i].Path, ".") == tt.wantPath {
					found = &violations[i]
				}
			}
			require.NotNil(t, found, "no violation for %s in %v", tt.wantPath, pathsOf(violations))
			assert.Equal(t, tt.wantCode, found.Code)
			assert.NotEmpty(t, found.Message)
		})
	}
}

func TestParseInputReportsEveryFailingFieldOnce(t *testing.T) {
	_, violations := ParseInput([]byte(`{"name":"","age":"x","gender":"cat","location":{"type":"Point","coordinates":[]}}`))
	assert.ElementsMatch(t, []string{"name", "age", "gender", "location.coordinates"}, pathsOf(violations))
}

func TestParseInputRejectsNonObject(t *testing.T) {
	for _, body := range []string{`[]`, `"siili"`, `{`, ``} {
		_, violations := ParseInput([]byte(body))
		require.Len(t, violations, 1, "body %q", body)
		assert.Equal(t, "invalid_type", violations[0].Code)
	}
}

func TestParseInputRejectsTrailingData(t *testing.T) {
	for _, suffix := range []string{" garbage", " {}", "[]"} {
		_, violations := ParseInput([]byte(validBody + suffix))
		require.Len(t, violations, 1, "suffix %q", suffix)
		assert.Equal(t, "Expected object", violations[0].Message)
	}
	_, violations := ParseInput([]byte(validBody + "\n"))
	assert.Empty(t, violations)
}

func TestValidateNormalisesName(t *testing.T) {
	age := 2
	in := Input{
		Name:     "  Särkkä  ",
		Age:      &age,
		Gender:   GenderFemale,
		Location: &validGeometry,
	}
	require.Empty(t, Validate(&in))
	assert.Equal(t, "Särkkä", in.Name)
}

func TestInputIgnoresClientID(t *testing.T) {
	in, violations := ParseInput([]byte(`{"id":42,"name":"a","age":1,"gender":"male","location":{"type":"Point","coordinates":[1,2]}}`))
	require.Empty(t, violations)
	assert.Equal(t, "a", in.NewHedgehog().Name)
}
