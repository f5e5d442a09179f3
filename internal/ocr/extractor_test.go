package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/joseph-ayodele/invoice-ledger/constants"
)

type stubRunner struct {
	stdout map[string]string // keyed on binary name
	err    error
}

func (s stubRunner) Run(_ context.Context, name string, _ ...string) ([]byte, []byte, error) {
	if s.err != nil {
		return nil, []byte("boom"), s.err
	}
	return []byte(s.stdout[name]), nil, nil
}

func TestExtractPDFTextLayer(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	e.runner = stubRunner{stdout: map[string]string{
		"pdftotext": "Invoice No: 1523\fpage two",
	}}

	res, err := e.Extract(context.Background(), "/in/invoice.pdf")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Method != "pdf-text" {
		t.Errorf("method = %q, want pdf-text", res.Method)
	}
	if res.SourceType != constants.PDF {
		t.Errorf("source_type = %q, want PDF", res.SourceType)
	}
	if res.Pages != 2 {
		t.Errorf("pages = %d, want 2", res.Pages)
	}
	if !strings.Contains(res.Text, "Invoice No: 1523") {
		t.Errorf("text = %q", res.Text)
	}
}

func TestExtractImage(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	e.runner = stubRunner{stdout: map[string]string{
		"tesseract": "TOTAL: 100.00",
	}}

	res, err := e.Extract(context.Background(), "/in/scan.png")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Method != "image-ocr" || res.Pages != 1 {
		t.Errorf("method = %q pages = %d, want image-ocr / 1", res.Method, res.Pages)
	}
	if res.Text != "TOTAL: 100.00" {
		t.Errorf("text = %q", res.Text)
	}
}

func TestExtractImageToolFailure(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	e.runner = stubRunner{err: errors.New("exit status 1")}

	if _, err := e.Extract(context.Background(), "/in/scan.jpg"); err == nil {
		t.Error("expected an error when tesseract fails")
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	if _, err := e.Extract(context.Background(), "/in/notes.docx"); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}

func TestNewExtractorDefaults(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	if e.cfg.Pdftotext != "pdftotext" || e.cfg.Tesseract != "tesseract" {
		t.Errorf("binary defaults not applied: %+v", e.cfg)
	}
	if e.cfg.DPI != 300 || e.cfg.TesseractLang != "eng" {
		t.Errorf("dpi/lang defaults not applied: %+v", e.cfg)
	}
}
