package textract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodypapa/autosar-pdf/internal/config"
)

// Test Plan for the text provider:
// - The plain backend passes file content through unchanged
// - A second read of the same path is served from the cache
// - A missing path yields ErrSourceNotFound
// - Forcing an unknown backend yields ErrBackendUnavailable
// - normalizePageMarkers drops markers for empty pages

func testProvider(t *testing.T, backend string) *Provider {
	t.Helper()
	cfg := config.Default().Extraction
	cfg.Backend = backend
	p, err := NewProvider(cfg)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

func TestProvider_PlainBackend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	content := "Class CanCluster\fPackage M2.Fibex4Can\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p := testProvider(t, "plain")
	text, err := p.ReadText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestProvider_CachesByPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o644))

	p := testProvider(t, "plain")
	text, err := p.ReadText(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "first", text)

	// A changed file is not re-read within the same provider lifetime
	require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))
	text, err = p.ReadText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "first", text)
}

func TestProvider_SourceNotFound(t *testing.T) {
	t.Parallel()

	p := testProvider(t, "plain")
	_, err := p.ReadText(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	require.ErrorIs(t, err, ErrSourceNotFound)
}

func TestProvider_ForcedBackendNotInPriority(t *testing.T) {
	t.Parallel()

	cfg := config.Default().Extraction
	cfg.Backend = "plain"
	cfg.Priority = []string{"pdf"}
	p, err := NewProvider(cfg)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err = p.ReadText(context.Background(), path)
	require.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestProvider_UnknownBackendName(t *testing.T) {
	t.Parallel()

	cfg := config.Default().Extraction
	cfg.Priority = []string{"tesseract"}
	_, err := NewProvider(cfg)
	require.Error(t, err)
}

func TestNormalizePageMarkers(t *testing.T) {
	t.Parallel()

	// pdftotext emits a form feed after every page, including blank ones
	in := "page one\f\f  \n\fpage two\f"
	assert.Equal(t, "page one\fpage two", normalizePageMarkers(in))

	assert.Equal(t, "", normalizePageMarkers("\f\f"))
	assert.Equal(t, "only", normalizePageMarkers("only"))
}
