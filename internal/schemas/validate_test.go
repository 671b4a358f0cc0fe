package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedSchemas(t *testing.T) {
	for _, name := range []string{SerpAPINews, SerperNews} {
		schema, err := Load(name)
		require.NoError(t, err, name)
		assert.Contains(t, schema, "\"properties\"")
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("missing.schema.json")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidatePayload_SerpAPI(t *testing.T) {
	valid := `{"news_results":[{"title":"A","snippet":"s","date":"1 day ago","link":"https://a.example"}]}`
	assert.NoError(t, ValidatePayload(SerpAPINews, []byte(valid)))

	errPayload := `{"error":"Invalid API key.","error_details":"check dashboard"}`
	assert.NoError(t, ValidatePayload(SerpAPINews, []byte(errPayload)))

	empty := `{"search_metadata":{"status":"Success"}}`
	assert.NoError(t, ValidatePayload(SerpAPINews, []byte(empty)))
}

func TestValidatePayload_WrongType(t *testing.T) {
	payload := `{"news_results":"not a list"}`

	err := ValidatePayload(SerpAPINews, []byte(payload))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, SerpAPINews, validationErr.Schema)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "news_results", validationErr.Errors[0].Field)
	assert.Contains(t, err.Error(), SerpAPINews)
}

func TestValidatePayload_Serper(t *testing.T) {
	valid := `{"news":[{"title":"A","link":"https://a.example","snippet":"s","date":"2 hours ago"}]}`
	assert.NoError(t, ValidatePayload(SerperNews, []byte(valid)))

	invalid := `{"news":[{"title":42}]}`
	assert.Error(t, ValidatePayload(SerperNews, []byte(invalid)))
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	schema, err := Load(SerperNews)
	require.NoError(t, err)

	err = ValidateJSONString(schema, `{not json`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
