package domain_test

import (
	"testing"

	"github.com/aretw0/canvass/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsAnswered(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"empty string", "", false},
		{"blank string", "   \t ", false},
		{"string", "yes", true},
		{"empty slice", []any{}, false},
		{"slice", []any{"a"}, true},
		{"typed empty slice", []string{}, false},
		{"zero number", float64(0), true},
		{"number", 4.5, true},
		{"false bool", false, true},
		{"object", map[string]any{"a": true}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.IsAnswered(tc.value))
		})
	}
}

func TestResponseSetAnswered(t *testing.T) {
	rs := domain.ResponseSet{
		"q1": {Value: "hello"},
		"q2": {Value: ""},
	}

	assert.True(t, rs.Answered("q1"))
	assert.False(t, rs.Answered("q2"), "blank value is not an answer")
	assert.False(t, rs.Answered("missing"))
}

func TestResponseSetClone(t *testing.T) {
	rs := domain.ResponseSet{"q1": {Value: "a"}}
	clone := rs.Clone()
	clone["q2"] = domain.Response{Value: "b"}

	assert.Len(t, rs, 1, "clone must not leak writes back")
	assert.Len(t, clone, 2)
}

func TestIdentityClaimsDisplay(t *testing.T) {
	var nilClaims *domain.IdentityClaims
	assert.Equal(t, "unknown", nilClaims.Display())

	assert.Equal(t, "unknown", (&domain.IdentityClaims{}).Display())
	assert.Equal(t, "Ada", (&domain.IdentityClaims{PreferredName: "Ada", Email: "a@b.c"}).Display())
	assert.Equal(t, "a@b.c", (&domain.IdentityClaims{Email: "a@b.c", Name: "Ada Lovelace"}).Display())
	assert.Equal(t, "Ada Lovelace", (&domain.IdentityClaims{Name: "Ada Lovelace"}).Display())
}
