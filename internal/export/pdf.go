package export

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Helvetica"
	pdfLineHeight = 6.0
	pdfHeaderPad  = 4.0
)

// PageSizes lists the PDF page sizes the exporter can lay out.
var PageSizes = []string{"A1", "A2", "A3", "A4", "A5", "A6", "Letter", "Legal", "Tabloid"}

// ValidPageSize reports whether size names one of PageSizes, ignoring case.
func ValidPageSize(size string) bool {
	for _, s := range PageSizes {
		if strings.EqualFold(s, size) {
			return true
		}
	}
	return false
}

// rowChunk is the slice of a row's wrapped lines drawn on one page.
type rowChunk struct {
	row     int
	first   int
	count   int
	newPage bool
}

// planChunks lays rows out onto pages holding perPage lines each. A row that
// does not fit on a partly used page moves to the next one; a row taller than
// a whole page is split across as many pages as it needs.
func planChunks(rowLines []int, perPage int) []rowChunk {
	if perPage < 1 {
		perPage = 1
	}
	var chunks []rowChunk
	used := 0
	for row, n := range rowLines {
		if n < 1 {
			n = 1
		}
		breakNext := false
		if used > 0 && used+n > perPage {
			breakNext = true
			used = 0
		}
		for first := 0; first < n; {
			if used == perPage {
				breakNext = true
				used = 0
			}
			count := min(n-first, perPage-used)
			chunks = append(chunks, rowChunk{row: row, first: first, count: count, newPage: breakNext})
			breakNext = false
			used += count
			first += count
		}
	}
	return chunks
}

// writePDF draws a grid table and repeats the header on every page.
func writePDF(w io.Writer, header []string, rows [][]string, pageSize string) error {
	pdf := fpdf.New("L", "mm", pageSize, "")
	if pdf.Err() {
		return pdf.Error()
	}
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 10)
	pdf.SetTitle("Contractor Leads", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(header))

	drawHeader := func() {
		pdf.SetFont(pdfFont, "B", 10)
		pdf.SetFillColor(128, 128, 128)
		pdf.SetTextColor(245, 245, 245)
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.3)
		for _, title := range header {
			pdf.CellFormat(colW, pdfLineHeight+pdfHeaderPad, tr(title), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont(pdfFont, "", 9)
		pdf.SetFillColor(245, 245, 220)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.AddPage()
	drawHeader()
	if pdf.Err() {
		return pdf.Error()
	}

	// Wrapped lines per cell, measured in the body font.
	lines := make([][][][]byte, len(rows))
	rowLines := make([]int, len(rows))
	for r, row := range rows {
		lines[r] = make([][][]byte, len(row))
		rowLines[r] = 1
		for i, cell := range row {
			lines[r][i] = pdf.SplitLines([]byte(tr(cell)), colW)
			rowLines[r] = max(rowLines[r], len(lines[r][i]))
		}
	}

	perPage := int((pageH - bottom - pdf.GetY()) / pdfLineHeight)
	for _, c := range planChunks(rowLines, perPage) {
		if c.newPage {
			pdf.AddPage()
			drawHeader()
		}

		x, y := pdf.GetXY()
		chunkH := float64(c.count) * pdfLineHeight
		for i, cell := range lines[c.row] {
			cellX := x + float64(i)*colW
			pdf.Rect(cellX, y, colW, chunkH, "FD")
			for j := c.first; j < c.first+c.count && j < len(cell); j++ {
				pdf.SetXY(cellX, y+float64(j-c.first)*pdfLineHeight)
				pdf.CellFormat(colW, pdfLineHeight, string(cell[j]), "", 0, "C", false, 0, "")
			}
		}
		pdf.SetXY(x, y+chunkH)
	}

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.Output(w)
}
