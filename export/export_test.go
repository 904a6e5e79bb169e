package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yeremiapane/kitchenlog/pipeline"
)

func sampleDocument() pipeline.Document {
	row := func(date, loc, at, temp string, critical bool) pipeline.Row {
		return pipeline.Row{
			Values: map[string]string{
				"Date": date, "Location": loc, "Recorded At": at, "Name": "Navi", "Temperature": temp,
			},
			Critical: critical,
		}
	}
	return pipeline.Document{
		Title:        pipeline.TemperatureReportTitle,
		Subtitle:     "From: 2024-06-01 To: 2024-06-02",
		Columns:      []string{"Date", "Location", "Recorded At", "Name", "Temperature"},
		TableColumns: []string{"Recorded At", "Name", "Temperature"},
		Sections: []pipeline.Section{
			{
				Title: "Sunday, 2024-06-02",
				Sections: []pipeline.Section{
					{Title: "Big Freezer", Rows: []pipeline.Row{row("Sunday, 2024-06-02", "Big Freezer", "2024-06-02 09:00 AM PDT", "-15°C", true)}},
					{Title: "Deli Cooler", Rows: []pipeline.Row{row("Sunday, 2024-06-02", "Deli Cooler", "2024-06-02 08:00 AM PDT", "3°C", false)}},
				},
			},
			{
				Title: "Saturday, 2024-06-01",
				Sections: []pipeline.Section{
					{Title: "Big Freezer", Rows: []pipeline.Row{row("Saturday, 2024-06-01", "Big Freezer", "2024-06-01 09:00 AM PDT", "DEFROST", false)}},
				},
			},
		},
	}
}

func pngLogo(t *testing.T) *Asset {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &Asset{Name: "logo.png", ImageType: "PNG", Data: buf.Bytes()}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("docx")
	assert.Error(t, err)
}

func TestPDFSink_Render(t *testing.T) {
	data, err := PDFSink{}.Render(sampleDocument(), pngLogo(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestPDFSink_BrokenLogoFallsBack(t *testing.T) {
	broken := &Asset{Name: "logo.png", ImageType: "PNG", Data: []byte("not a png")}

	data, err := PDFSink{}.Render(sampleDocument(), broken)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestPDFSink_ManyRowsPaginate(t *testing.T) {
	doc := sampleDocument()
	leaf := &doc.Sections[0].Sections[0]
	for i := 0; i < 200; i++ {
		leaf.Rows = append(leaf.Rows, leaf.Rows[0])
	}

	data, err := PDFSink{uncompressed: true}.Render(doc, nil)
	require.NoError(t, err)

	pages := bytes.Count(data, []byte("/Type /Page\n"))
	require.Greater(t, pages, 3)
	// The spilled day repeats its heading on each of its pages; the
	// second day starts on a page of its own.
	assert.Equal(t, pages-1, bytes.Count(data, []byte("(Sunday, 2024-06-02)")))
	assert.Equal(t, 1, bytes.Count(data, []byte("(Saturday, 2024-06-01)")))
}

func TestSheetSink_Render(t *testing.T) {
	data, err := SheetSink{}.Render(sampleDocument(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	sheet := sheets[0]
	assert.Equal(t, pipeline.TemperatureReportTitle, sheet)

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 6) // title, subtitle, header, three records

	assert.Equal(t, pipeline.TemperatureReportTitle, rows[0][0])
	assert.Equal(t, "From: 2024-06-01 To: 2024-06-02", rows[1][0])
	assert.Equal(t, []string{"Date", "Location", "Recorded At", "Name", "Temperature"}, rows[2])
	assert.Equal(t, "-15°C", rows[3][4])
	assert.Equal(t, "DEFROST", rows[5][4])

	critical, err := f.GetCellStyle(sheet, "E4")
	require.NoError(t, err)
	normal, err := f.GetCellStyle(sheet, "E5")
	require.NoError(t, err)
	assert.NotEqual(t, critical, normal)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName(""))
	assert.Equal(t, "ab", sheetName("a/b"))
	assert.Len(t, sheetName("a very long title that will not fit in excel"), 31)
}
