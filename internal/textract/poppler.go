package textract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// popplerBackend shells out to poppler's pdftotext, which handles some
// scanned-layout documents better than the pure-Go reader.
type popplerBackend struct{}

func (b *popplerBackend) Name() string { return "pdftotext" }

func (b *popplerBackend) Available() bool {
	_, err := exec.LookPath("pdftotext")
	return err == nil
}

func (b *popplerBackend) ReadText(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", path, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	return normalizePageMarkers(stdout.String()), nil
}

// normalizePageMarkers drops markers emitted for pages with no text.
// pdftotext writes a form feed after every page, including empty ones.
func normalizePageMarkers(text string) string {
	raw := strings.Split(text, "\f")
	var pages []string
	for _, page := range raw {
		if strings.TrimSpace(page) == "" {
			continue
		}
		pages = append(pages, page)
	}
	return strings.Join(pages, PageMarker)
}
