package extract

import (
	"fmt"
	"os"
)

// extractText reads a plain-text file as UTF-8 verbatim.
func extractText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(b), nil
}
