package textract

import (
	"context"
	"os"
)

// plainBackend passes through text files unchanged. It exists for
// pre-extracted documents and for tests; page markers already present
// in the file are preserved.
type plainBackend struct{}

func (b *plainBackend) Name() string    { return "plain" }
func (b *plainBackend) Available() bool { return true }

func (b *plainBackend) ReadText(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
