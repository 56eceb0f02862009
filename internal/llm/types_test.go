package llm

import (
	"math"
	"testing"

	"admindash/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNormalizesRoles(t *testing.T) {
	req, err := Request{Model: " gpt-4o ", Messages: []Message{{Role: "Developer", Content: "x"}, {Role: "USER", Content: "y"}}}.Validate()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", req.Model)
	assert.Equal(t, RoleSystem, req.Messages[0].Role)
	assert.Equal(t, RoleUser, req.Messages[1].Role)
}

func TestValidateRejects(t *testing.T) {
	cases := []Request{
		{Messages: []Message{{Role: RoleUser}}},
		{Model: "m"},
		{Model: "m", Messages: []Message{{Role: "tool"}}},
		{Model: "m", Messages: []Message{{Role: RoleUser}}, MaxTokens: ptr(0)},
	}
	for _, c := range cases {
		_, err := c.Validate()
		assert.True(t, domain.IsValidation(err), "%+v", c)
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry(nil)
	assert.Equal(t, []string{"anthropic", "gemini", "openai"}, r.Providers())
	_, ok := r.Get(" OpenAI ")
	assert.True(t, ok)
	_, ok = r.Get("mistral")
	assert.False(t, ok)
}

func TestValidateCapsMaxTokens(t *testing.T) {
	base := Request{Model: "m", Messages: []Message{{Role: RoleUser, Content: "x"}}}

	base.MaxTokens = ptr(math.MaxInt32 + 1)
	_, err := base.Validate()
	var ve domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "maxTokens", ve.Field)

	base.MaxTokens = ptr(math.MaxInt32)
	_, err = base.Validate()
	assert.NoError(t, err)
}
