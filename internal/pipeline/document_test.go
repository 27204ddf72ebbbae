package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essay.txt")
	require.NoError(t, os.WriteFile(path, []byte("Texto de teste suficientemente longo."), 0o644))

	doc, err := NewLoader(nil, nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
	assert.Equal(t, "Texto de teste suficientemente longo.", doc.Text)
}

func TestLoader_Stdin(t *testing.T) {
	l := NewLoader(nil, nil)
	l.stdin = strings.NewReader("from stdin")

	doc, err := l.Load(context.Background(), "-")
	require.NoError(t, err)
	assert.Equal(t, "stdin", doc.Source)
	assert.Equal(t, "from stdin", doc.Text)
}

func TestLoader_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, `<html><head><title>Notas</title><script>var x = 1;</script></head>
			<body><nav>Menu</nav><p>Deep learning utiliza redes neurais artificiais.</p></body></html>`)
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, "test-agent", 1<<20, false, "", "", "")
	doc, err := NewLoader(fetcher, nil).Load(context.Background(), server.URL+"/notas")
	require.NoError(t, err)

	assert.Equal(t, server.URL+"/notas", doc.Source)
	assert.Equal(t, "Notas", doc.Title)
	assert.Equal(t, "Deep learning utiliza redes neurais artificiais.", doc.Text)
}

func TestLoader_URLWithoutFetcher(t *testing.T) {
	_, err := NewLoader(nil, nil).Load(context.Background(), "https://example.com")
	assert.Error(t, err)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader(nil, nil).Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://pt.wikipedia.org/wiki/Python"))
	assert.True(t, IsURL("http://localhost:8080/doc"))
	assert.False(t, IsURL("docs/essay.txt"))
	assert.False(t, IsURL("-"))
}
