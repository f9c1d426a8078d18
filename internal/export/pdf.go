package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/kingcapco/salesops-backend/pkg/db/models"
	"github.com/kingcapco/salesops-backend/pkg/enums"
	pkgerrors "github.com/kingcapco/salesops-backend/pkg/errors"
	"github.com/kingcapco/salesops-backend/pkg/types"
)

// DesignQuotePDF renders a saved quote's cached snapshot as a one-page PDF.
func (e *Exporter) DesignQuotePDF(ctx context.Context, design *models.Design, quote *models.DesignQuote) (*Document, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("King Cap - Design Quote", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "King Cap - Design Quote", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, d := range designQuoteDetails(design, quote) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, d[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, d[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(74, 85, 104)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(40, 7, "Quantity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Per Piece", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Total", "1", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	for _, brk := range quote.CachedPriceBreaks {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(40, 7, comma(brk.Quantity)+"+", "1", 0, "L", false, 0, "")
		if brk.PerPieceCents == nil {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.CellFormat(80, 7, moqCellText, "1", 1, "C", false, 0, "")
			continue
		}
		pdf.CellFormat(40, 7, pdfMoney(*brk.PerPieceCents), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, pdfMoney(*brk.TotalCents), "1", 1, "R", false, 0, "")
	}

	if quote.CachedTotalCents != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 7, fmt.Sprintf("Total at %s", comma(quote.Quantity)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, pdfMoney(deref64(quote.CachedPerPiece)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, pdfMoney(*quote.CachedTotalCents), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 5, "* All prices shown are per piece at each quantity break", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing pdf")
	}
	e.metrics.IncExported(enums.ExportFormatPDF.String())

	return &Document{
		Filename:    fmt.Sprintf("design_quote_%s.pdf", slug(design.Name)),
		ContentType: ContentTypePDF,
		Data:        buf.Bytes(),
	}, nil
}

func pdfMoney(cents int64) string {
	return "$" + types.MoneyFromCents(cents).String()
}

func deref64(value *int64) int64 {
	if value == nil {
		return 0
	}
	return *value
}
