package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/yeremiapane/kitchenlog/pipeline"
)

const logoImage = "logo"

type rgb struct{ r, g, b int }

var (
	headerFill   = rgb{41, 128, 185}
	criticalFill = rgb{255, 204, 204}
	criticalText = rgb{200, 0, 0}
)

// PDFSink lays a document out on A4 pages. Top-level sections that contain
// sub-sections each start on a fresh page, and their title is repeated on
// every page they spill onto.
type PDFSink struct {
	uncompressed bool
}

func (PDFSink) ContentType() string { return "application/pdf" }
func (PDFSink) Extension() string   { return string(FormatPDF) }

func (p PDFSink) Render(doc pipeline.Document, logo *Asset) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!p.uncompressed)
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	var logoOpts fpdf.ImageOptions
	hasLogo := false
	if logo != nil && len(logo.Data) > 0 {
		logoOpts = fpdf.ImageOptions{ImageType: logo.ImageType, ReadDpi: true}
		pdf.RegisterImageOptionsReader(logoImage, logoOpts, bytes.NewReader(logo.Data))
		if pdf.Ok() {
			hasLogo = true
		} else {
			// a broken asset must not sink the export
			pdf.ClearError()
		}
	}

	w := &pdfWriter{pdf: pdf, tr: tr, columns: doc.TableColumns}
	pdf.SetHeaderFunc(func() {
		if hasLogo {
			pdf.ImageOptions(logoImage, 7, 7, 0, 20, false, logoOpts, 0, "")
		}
		pdf.SetY(14)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, tr(doc.Title), "", 1, "C", false, 0, "")
		if doc.Subtitle != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(0, 6, tr(doc.Subtitle), "", 1, "C", false, 0, "")
		}
		pdf.SetY(40)
		if w.continuing != "" {
			pdf.SetFont("Helvetica", "B", 16)
			pdf.CellFormat(0, 10, tr(w.continuing), "", 1, "C", false, 0, "")
		}
	})

	for i, sec := range doc.Sections {
		w.continuing = ""
		if i == 0 || len(sec.Sections) > 0 {
			pdf.AddPage()
		}
		w.section(sec, 0)
	}
	if len(doc.Sections) == 0 {
		pdf.AddPage()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	columns []string
	// continuing is the top-level title redrawn by the page header once that
	// section's tables spill onto further pages.
	continuing string
}

func (w *pdfWriter) section(sec pipeline.Section, depth int) {
	pdf := w.pdf
	pdf.SetTextColor(0, 0, 0)
	if depth == 0 && len(sec.Sections) > 0 {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, w.tr(sec.Title), "", 1, "C", false, 0, "")
		w.continuing = sec.Title
	} else {
		w.ensureSpace(20)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, w.tr(sec.Title), "", 1, "L", false, 0, "")
	}

	if len(sec.Rows) > 0 {
		w.table(sec.Rows)
	}
	for _, sub := range sec.Sections {
		w.section(sub, depth+1)
	}
	pdf.Ln(6)
}

func (w *pdfWriter) table(rows []pipeline.Row) {
	pdf := w.pdf
	w.header()
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		if w.ensureSpace(6) {
			w.header()
			pdf.SetFont("Helvetica", "", 9)
		}
		fill, text := rgb{255, 255, 255}, rgb{0, 0, 0}
		if row.Critical {
			fill, text = criticalFill, criticalText
		}
		pdf.SetFillColor(fill.r, fill.g, fill.b)
		pdf.SetTextColor(text.r, text.g, text.b)
		colW := w.columnWidth()
		for _, cell := range row.Cells(w.columns) {
			pdf.CellFormat(colW, 6, w.fit(w.tr(cell), colW), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetTextColor(0, 0, 0)
}

func (w *pdfWriter) header() {
	pdf := w.pdf
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
	pdf.SetTextColor(255, 255, 255)
	colW := w.columnWidth()
	for _, name := range w.columns {
		pdf.CellFormat(colW, 7, w.fit(w.tr(name), colW), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func (w *pdfWriter) columnWidth() float64 {
	pageW, _ := w.pdf.GetPageSize()
	left, _, right, _ := w.pdf.GetMargins()
	if len(w.columns) == 0 {
		return pageW - left - right
	}
	return (pageW - left - right) / float64(len(w.columns))
}

// ensureSpace starts a new page when fewer than h millimetres remain.
func (w *pdfWriter) ensureSpace(h float64) bool {
	_, pageH := w.pdf.GetPageSize()
	_, _, _, bottom := w.pdf.GetMargins()
	if w.pdf.GetY()+h > pageH-bottom {
		w.pdf.AddPage()
		return true
	}
	return false
}

// fit truncates s so that it stays inside a cell of width colW.
func (w *pdfWriter) fit(s string, colW float64) string {
	limit := colW - 2
	if w.pdf.GetStringWidth(s) <= limit {
		return s
	}
	for len(s) > 0 && w.pdf.GetStringWidth(s+"...") > limit {
		s = s[:len(s)-1]
	}
	return s + "..."
}
