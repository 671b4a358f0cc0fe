package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPageMeta_OpenGraph(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="Ada Lovelace honored">
		<meta property="og:description" content="A new statue in London.">
		<meta property="og:site_name" content="Daily Example">
		<meta property="og:url" content="https://news.example/ada">
		<title>ignored</title>
	</head><body><p>Body</p></body></html>`

	meta, err := ExtractPageMeta(html)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace honored", meta.Title)
	assert.Equal(t, "A new statue in London.", meta.Description)
	assert.Equal(t, "Daily Example", meta.SiteName)
	assert.Equal(t, "https://news.example/ada", meta.URL)
}

func TestExtractPageMeta_Fallback(t *testing.T) {
	html := `<html><head>
		<title>  Plain   title </title>
		<meta name="description" content="Plain description.">
	</head><body></body></html>`

	meta, err := ExtractPageMeta(html)
	require.NoError(t, err)

	assert.Equal(t, "Plain title", meta.Title)
	assert.Equal(t, "Plain description.", meta.Description)
	assert.Empty(t, meta.SiteName)
}
