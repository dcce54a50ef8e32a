package textract

import (
	"context"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfBackend extracts text with the pure-Go ledongthuc/pdf reader.
// It needs no external tooling, so it is always available.
type pdfBackend struct{}

func (b *pdfBackend) Name() string    { return "pdf" }
func (b *pdfBackend) Available() bool { return true }

func (b *pdfBackend) ReadText(ctx context.Context, path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var pages []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", err
		}

		var sb strings.Builder
		for _, row := range rows {
			line := joinRow(row)
			if line == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}

		// An empty page contributes no page marker
		pageText := sb.String()
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, PageMarker), nil
}

// joinRow concatenates the text chunks of a row into one line.
// Chunks already separated by whitespace are joined as-is; otherwise a
// single space keeps adjacent words from fusing.
func joinRow(row *pdf.Row) string {
	var sb strings.Builder
	for _, word := range row.Content {
		s := word.S
		if s == "" {
			continue
		}
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), " ") && !strings.HasPrefix(s, " ") {
			sb.WriteString(" ")
		}
		sb.WriteString(s)
	}
	return strings.TrimSpace(sb.String())
}
