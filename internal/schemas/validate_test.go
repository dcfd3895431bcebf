package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"score": {"type": "number"}
	},
	"required": ["name", "score"]
}`

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": "octocat", "score": 88}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_MissingRequiredField(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": "octocat"}`)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Error(), "score")
}

func TestValidateJSONString_WrongType(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": 42, "score": "high"}`)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 2)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(testSchema, `not json at all`)
	assert.Error(t, err)
}
