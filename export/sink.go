// Package export renders pipeline documents to downloadable files.
package export

import (
	"fmt"
	"strings"

	"github.com/yeremiapane/kitchenlog/pipeline"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatXLSX, "excel", "spreadsheet":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// Asset is an image drawn on every page, typically the store logo.
type Asset struct {
	Name      string
	ImageType string // "PNG", "JPG" or "GIF"
	Data      []byte
}

type File struct {
	Name        string
	ContentType string
	Data        []byte
	// Rows is the number of records the file carries.
	Rows int
}

type Sink interface {
	Render(doc pipeline.Document, logo *Asset) ([]byte, error)
	ContentType() string
	Extension() string
}

func SinkFor(f Format) (Sink, error) {
	switch f {
	case FormatPDF:
		return PDFSink{}, nil
	case FormatXLSX:
		return SheetSink{}, nil
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}
