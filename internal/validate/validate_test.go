package validate_test

import (
	"strings"
	"testing"

	"github.com/mkvarda/agora/internal/validate"
	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.NoError(t, validate.Name("Spreadsheet Summariser"))
	assert.NoError(t, validate.Name("агент"))

	assert.ErrorIs(t, validate.Name(""), validate.ErrInvalidName)
	assert.ErrorIs(t, validate.Name("   "), validate.ErrInvalidName)
	assert.ErrorIs(t, validate.Name("null\x00byte"), validate.ErrInvalidName)
	assert.ErrorIs(t, validate.Name(strings.Repeat("n", validate.MaxNameLength+1)), validate.ErrInvalidName)
}

func TestAuthor(t *testing.T) {
	assert.NoError(t, validate.Author(""))
	assert.NoError(t, validate.Author("alice"))

	assert.ErrorIs(t, validate.Author("a\x00b"), validate.ErrInvalidAuthor)
	assert.ErrorIs(t, validate.Author(strings.Repeat("a", validate.MaxAuthorLength+1)), validate.ErrInvalidAuthor)
}

func TestDescription(t *testing.T) {
	assert.NoError(t, validate.Description(""))
	assert.NoError(t, validate.Description("plain markdown **text**"))

	long := strings.Repeat("d", validate.MaxDescriptionLength+1)
	assert.ErrorIs(t, validate.Description(long), validate.ErrContentTooLarge)
}

func TestTerms(t *testing.T) {
	assert.NoError(t, validate.Terms("keyword", nil))
	assert.NoError(t, validate.Terms("keyword", []string{"etl", "finance"}))

	assert.ErrorIs(t, validate.Terms("keyword", []string{""}), validate.ErrInvalidTerm)
	assert.ErrorIs(t, validate.Terms("category", []string{"ok", " "}), validate.ErrInvalidTerm)
	assert.ErrorIs(t, validate.Terms("keyword", []string{"a\x00b"}), validate.ErrInvalidTerm)
	assert.ErrorIs(t, validate.Terms("keyword", []string{strings.Repeat("t", validate.MaxTermLength+1)}), validate.ErrInvalidTerm)

	many := make([]string, validate.MaxTerms+1)
	for i := range many {
		many[i] = "k"
	}
	assert.ErrorIs(t, validate.Terms("keyword", many), validate.ErrInvalidTerm)
}

func TestGraph(t *testing.T) {
	assert.NoError(t, validate.Graph(nil))
	assert.NoError(t, validate.Graph([]byte(`{"nodes":[]}`)))

	huge := make([]byte, validate.MaxGraphBytes+1)
	assert.ErrorIs(t, validate.Graph(huge), validate.ErrContentTooLarge)
}
