package extract

import (
	"context"
	"time"
)

// TextSource is Stage 1: file -> raw text. Implementations may use a PDF
// text layer, OCR, or anything else; the engine only sees the text, which
// may be noisy or empty.
type TextSource interface {
	Extract(ctx context.Context, path string) (TextResult, error)
}

type TextResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr"
	Duration   time.Duration
	Warnings   []string
}
