// Package resume pulls plain text out of uploaded resumes.
package resume

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"

	MaxSize = 5 << 20
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyResume         = errors.New("empty resume text")
	ErrTooLarge            = errors.New("resume file too large")
)

// Document is the text extracted from one upload.
type Document struct {
	Filename string
	MimeType string
	Text     string
}

// Extract sniffs the content type and returns the document text. PDF, DOCX
// and plain text are supported; anything else yields ErrUnsupportedFileType.
func Extract(filename string, data []byte) (*Document, error) {
	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}

	kind := detect(filename, data)

	var (
		text string
		err  error
	)
	switch kind {
	case MimePDF:
		text, err = pdfText(data)
	case MimeDOCX:
		text, err = docxText(data)
	case MimeText:
		text = string(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, mimetype.Detect(data).String())
	}
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyResume
	}
	return &Document{Filename: filename, MimeType: kind, Text: text}, nil
}

func detect(filename string, data []byte) string {
	m := mimetype.Detect(data)
	switch {
	case m.Is(MimePDF):
		return MimePDF
	case m.Is(MimeDOCX):
		return MimeDOCX
	case m.Is("application/zip") && strings.EqualFold(filepath.Ext(filename), ".docx"):
		return MimeDOCX
	}
	for p := m; p != nil; p = p.Parent() {
		if p.Is(MimeText) {
			return MimeText
		}
	}
	return ""
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

// docxText reads word/document.xml and joins the w:t runs, one line per
// paragraph.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("%w: docx without word/document.xml", ErrUnsupportedFileType)
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	var (
		sb     strings.Builder
		inText bool
	)
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
