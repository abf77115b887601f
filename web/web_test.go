package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl := Templates()
	require.NotNil(t, tmpl.Lookup("index.html"))
	require.NotNil(t, tmpl.Lookup("dashboard.html"))
}

func TestIndexEscapesError(t *testing.T) {
	var buf bytes.Buffer
	err := Templates().ExecuteTemplate(&buf, "index.html", map[string]any{
		"Error": "<script>x</script>",
		"Form":  map[string]string{},
	})
	require.NoError(t, err)
	assert.False(t, strings.Contains(buf.String(), "<script>x</script>"))
	assert.Contains(t, buf.String(), `id="error"`)
}
