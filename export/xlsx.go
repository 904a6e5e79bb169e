package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yeremiapane/kitchenlog/pipeline"
)

// SheetSink writes the flat rows of a document to a single worksheet. The
// logo is not used.
type SheetSink struct{}

func (SheetSink) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (SheetSink) Extension() string { return string(FormatXLSX) }

func (SheetSink) Render(doc pipeline.Document, _ *Asset) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(doc.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	ncols := len(doc.Columns)
	if ncols == 0 {
		ncols = 1
	}
	lastCol, err := excelize.ColumnNumberToName(ncols)
	if err != nil {
		return nil, err
	}

	row := 1
	banner := func(text string, style int) error {
		first := fmt.Sprintf("A%d", row)
		last := fmt.Sprintf("%s%d", lastCol, row)
		if err := f.SetCellValue(sheet, first, text); err != nil {
			return err
		}
		if ncols > 1 {
			if err := f.MergeCell(sheet, first, last); err != nil {
				return err
			}
		}
		row++
		return f.SetCellStyle(sheet, first, last, style)
	}

	if doc.Title != "" {
		if err := banner(doc.Title, styles.title); err != nil {
			return nil, fmt.Errorf("write title: %w", err)
		}
	}
	if doc.Subtitle != "" {
		if err := banner(doc.Subtitle, styles.subtitle); err != nil {
			return nil, fmt.Errorf("write subtitle: %w", err)
		}
	}

	if err := writeRow(f, sheet, row, doc.Columns, styles.header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	row++

	for _, r := range doc.FlatRows() {
		style := 0
		if r.Critical {
			style = styles.critical
		}
		if err := writeRow(f, sheet, row, r.Cells(doc.Columns), style); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	if err := f.SetColWidth(sheet, "A", lastCol, 24); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	title, subtitle, header, critical int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	if s.subtitle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2980B9"}, Pattern: 1},
	}); err != nil {
		return s, err
	}
	if s.critical, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "C80000"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFCCCC"}, Pattern: 1},
	}); err != nil {
		return s, err
	}
	return s, nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []string, style int) error {
	if len(cells) == 0 {
		return nil
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	first := fmt.Sprintf("A%d", row)
	if err := f.SetSheetRow(sheet, first, &values); err != nil {
		return err
	}
	if style == 0 {
		return nil
	}
	lastCol, err := excelize.ColumnNumberToName(len(cells))
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, fmt.Sprintf("%s%d", lastCol, row), style)
}

// sheetName trims a title to what Excel accepts as a worksheet name.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return -1
		}
		return r
	}, title)
	name = strings.TrimSpace(name)
	if name == "" {
		return "Sheet1"
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
