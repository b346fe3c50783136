package reconcile

import (
	"io"
	"os"

	"github.com/kapu/subtitle-vocab-go/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReferenceSource points at a transcript file for one episode label.
type ReferenceSource struct {
	Label string
	Path  string
}

// LoadReferences reads every source in order. A file that cannot be read
// becomes an empty reference, which never matches; the failure is logged and
// loading continues.
func LoadReferences(sources []ReferenceSource, logger *zap.Logger) []domain.Reference {
	refs := make([]domain.Reference, 0, len(sources))
	for _, src := range sources {
		text, err := readTranscript(src.Path)
		if err != nil {
			logger.Error("Failed to read reference transcript",
				zap.String("label", src.Label),
				zap.String("path", src.Path),
				zap.Error(err),
			)
			text = ""
		} else {
			logger.Info("Reference transcript loaded",
				zap.String("label", src.Label),
				zap.String("path", src.Path),
				zap.Int("bytes", len(text)),
			)
		}
		refs = append(refs, domain.Reference{Label: src.Label, Text: text})
	}
	return refs
}

// readTranscript returns the file as UTF-8 with any byte order mark removed.
// UTF-16 files carrying a BOM are converted.
func readTranscript(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(file, decoder))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
