// Package textextract recovers plain text from uploaded résumé files.
package textextract

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf, docx and txt are allowed")
	ErrTextTooShort      = errors.New("extracted text is too short")
	ErrUnreadable        = errors.New("file could not be read")
)

var (
	reTags    = regexp.MustCompile(`<[^>]+>`)
	reBreak   = regexp.MustCompile(`<w:(?:br|cr)\b[^>]*/>`)
	reBlanks  = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewline = regexp.MustCompile(`\n+`)
)

// Supported reports whether the file extension can be extracted.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".txt":
		return true
	}
	return false
}

// Extract returns the plain text of a .pdf, .docx or .txt file.
func Extract(filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = fromPDF(data)
	case ".docx":
		text, err = fromDocx(data)
	case ".txt":
		return Normalize(strings.ToValidUTF8(string(data), "")), nil
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return text, nil
}

// CheckLength rejects text with fewer than min characters once trimmed.
func CheckLength(text string, min int) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(text)); n < min {
		return fmt.Errorf("%w: %d characters, need %d", ErrTextTooShort, n, min)
	}
	return nil
}

func fromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return Normalize(buf.String()), nil
}

func fromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		break
	}
	if len(docXML) == 0 {
		return "", errors.New("no document.xml found in docx")
	}
	xml := string(docXML)
	// Paragraph and line breaks become newlines so section headings stay on their own line.
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = reBreak.ReplaceAllString(xml, "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	txt := reTags.ReplaceAllString(xml, "")
	return Normalize(html.UnescapeString(txt)), nil
}

// Normalize collapses horizontal whitespace and blank-line runs, keeping
// line structure intact.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = reBlanks.ReplaceAllString(s, " ")
	s = reNewline.ReplaceAllString(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
