package ingestion

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported resume file format, named by its extension.
type Format string

// Resume formats accepted for upload.
const (
	FormatTXT  Format = "txt"
	FormatPDF  Format = "pdf"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
)

var allowedFormats = map[Format]bool{
	FormatTXT:  true,
	FormatPDF:  true,
	FormatDOC:  true,
	FormatDOCX: true,
}

var (
	// ErrUnsupportedFormat is returned for extensions outside the allowed set
	// and for legacy binary .doc files, which are accepted but cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyDocument is returned when a file decodes to no text.
	ErrEmptyDocument = errors.New("document contains no text")
)

// FormatOf returns the lower-cased extension of filename without the dot.
func FormatOf(filename string) Format {
	return Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")))
}

// AllowedExtension reports whether filename has an extension accepted for upload.
func AllowedExtension(filename string) bool {
	return allowedFormats[FormatOf(filename)]
}

// ExtractText decodes a resume by extension and returns cleaned plain text.
func ExtractText(filename string, data []byte) (string, error) {
	format := FormatOf(filename)

	var (
		raw string
		err error
	)
	switch format {
	case FormatTXT:
		raw = string(data)
	case FormatPDF:
		raw, err = extractPDFText(data)
	case FormatDOCX:
		raw, err = extractDocxText(data)
	case FormatDOC:
		return "", fmt.Errorf("%w: legacy .doc files cannot be read, save as .docx or .pdf", ErrUnsupportedFormat)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return "", err
	}

	text := CleanText(raw)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// IngestFromFile reads a resume file, decodes it and returns cleaned text with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	name := filepath.Base(path)
	text, err := ExtractText(name, content)
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract text from %s: %w", name, err)
	}
	return text, NewMetadata(name, FormatOf(name), len(content), text), nil
}

func extractPDFText(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return documentXMLText(doc.Editable().GetContent())
}

// documentXMLText collects the character data of a WordprocessingML body,
// ending a line at each paragraph and converting tabs and breaks.
func documentXMLText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse docx body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br", "cr":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
