package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kingcapco/salesops-backend/internal/pricing"
	"github.com/kingcapco/salesops-backend/pkg/db/models"
	"github.com/kingcapco/salesops-backend/pkg/enums"
	pkgerrors "github.com/kingcapco/salesops-backend/pkg/errors"
)

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()
	engine, err := pricing.NewEngine(pricing.Default())
	require.NoError(t, err)
	exporter, err := NewExporter(engine, nil, nil)
	require.NoError(t, err)
	return exporter
}

func openWorkbook(t *testing.T, doc *Document) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func strOpt(s string) *string { return &s }

func TestDomesticQuoteXLSX(t *testing.T) {
	exporter := newTestExporter(t)

	doc, err := exporter.DomesticQuoteXLSX(context.Background(), pricing.DomesticRequest{
		StyleNumber:     "ST100",
		Quantity:        144,
		FrontDecoration: strOpt("Embroidery"),
		NumDSTFiles:     1,
	}, "D-1001")
	require.NoError(t, err)

	assert.Equal(t, "domestic_quote_d-1001_ST100_144.xlsx", doc.Filename)
	assert.Equal(t, ContentTypeXLSX, doc.ContentType)

	f := openWorkbook(t, doc)
	require.Equal(t, []string{"Domestic Quote"}, f.GetSheetList())

	title, err := f.GetCellValue("Domestic Quote", "A1")
	require.NoError(t, err)
	assert.Equal(t, "King Cap - Domestic Quote", title)

	rows, err := f.GetRows("Domestic Quote", excelize.Options{RawCellValue: true})
	require.NoError(t, err)

	var sawBlank, sawFront, sawDigitizing, sawTotal bool
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		switch {
		case row[0] == "Blank Hat":
			sawBlank = true
			require.GreaterOrEqual(t, len(row), 4)
			assert.Equal(t, "8.45", row[1])
			assert.Equal(t, "144", row[2])
		case row[0] == "Front Decoration (Embroidery)":
			sawFront = true
			assert.Equal(t, "2.85", row[1])
		case row[0] == "Digitizing Fee":
			sawDigitizing = true
		case row[0] == "Total":
			sawTotal = true
			assert.Equal(t, "11.3", row[1])
			assert.Equal(t, "1627.2", row[3])
		}
	}
	assert.True(t, sawBlank, "missing blank hat row")
	assert.True(t, sawFront, "missing front decoration row")
	assert.False(t, sawDigitizing, "digitizing is waived at 144 and must not render")
	assert.True(t, sawTotal, "missing total row")
}

func TestDomesticQuoteXLSX_DigitizingRow(t *testing.T) {
	exporter := newTestExporter(t)

	doc, err := exporter.DomesticQuoteXLSX(context.Background(), pricing.DomesticRequest{
		StyleNumber: "ST100",
		Quantity:    100,
		NumDSTFiles: 2,
	}, "")
	require.NoError(t, err)

	f := openWorkbook(t, doc)
	rows, err := f.GetRows("Domestic Quote", excelize.Options{RawCellValue: true})
	require.NoError(t, err)

	found := false
	for _, row := range rows {
		if len(row) >= 4 && row[0] == "Digitizing Fee" {
			found = true
			// Digitizing is a flat charge: quantity column reads 1.
			assert.Equal(t, "1", row[2])
			assert.Equal(t, "16", row[1])
		}
	}
	assert.True(t, found, "digitizing row expected below the waiver quantity")
}

func TestDomesticQuoteXLSX_ValidationPassesThrough(t *testing.T) {
	exporter := newTestExporter(t)

	_, err := exporter.DomesticQuoteXLSX(context.Background(), pricing.DomesticRequest{
		StyleNumber: "NOPE",
		Quantity:    144,
	}, "")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestOverseasQuoteXLSX(t *testing.T) {
	exporter := newTestExporter(t)

	doc, err := exporter.OverseasQuoteXLSX(context.Background(), pricing.OverseasRequest{
		HatType:        "Classic",
		Quantity:       5040,
		ShippingMethod: "FOB CA",
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "overseas_quote_classic.xlsx", doc.Filename)

	f := openWorkbook(t, doc)
	require.Equal(t, []string{"Overseas Quote"}, f.GetSheetList())

	rows, err := f.GetRows("Overseas Quote")
	require.NoError(t, err)

	var gridHeader, hatRow []string
	for i, row := range rows {
		if len(row) > 0 && row[0] == "Line Item" {
			gridHeader = row
			if i+1 < len(rows) {
				hatRow = rows[i+1]
			}
		}
	}
	require.NotNil(t, gridHeader, "tier grid header missing")
	assert.Equal(t, []string{"Line Item", "144+", "288+", "576+", "1,008+", "2,880+", "5,040+"}, gridHeader)

	require.NotNil(t, hatRow, "hat row missing")
	assert.Equal(t, "Hat", hatRow[0])
	// FOB CA's MOQ is 288 so the 144 tier renders the placeholder.
	assert.Equal(t, moqCellText, hatRow[1])
	assert.NotEqual(t, moqCellText, hatRow[2])
}

func TestQuoteSheetXLSX_ContinuesPastFailures(t *testing.T) {
	exporter := newTestExporter(t)

	doc, err := exporter.QuoteSheetXLSX(context.Background(), []SheetQuote{
		{
			DesignNumber: "D-1",
			Channel:      enums.QuoteChannelDomestic,
			Domestic:     &pricing.DomesticRequest{StyleNumber: "ST100", Quantity: 144},
		},
		{
			DesignNumber: "D-2",
			Channel:      enums.QuoteChannelDomestic,
			Domestic:     &pricing.DomesticRequest{StyleNumber: "NOPE", Quantity: 144},
		},
		{
			DesignNumber: "D-3",
			Channel:      enums.QuoteChannelOverseas,
			Overseas:     &pricing.OverseasRequest{HatType: "Basic", Quantity: 1008, ShippingMethod: "Air Express"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "quote_sheet.xlsx", doc.Filename)

	f := openWorkbook(t, doc)
	rows, err := f.GetRows("Quote Sheet")
	require.NoError(t, err)

	var sawFirst, sawError, sawThird bool
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		switch {
		case row[0] == "Design: D-1":
			sawFirst = true
		case strings.HasPrefix(row[0], "Error processing D-2:"):
			sawError = true
		case row[0] == "Design: D-3":
			sawThird = true
		}
	}
	assert.True(t, sawFirst, "first design missing")
	assert.True(t, sawError, "failing design should leave an error row")
	assert.True(t, sawThird, "designs after a failure must still render")
}

func TestQuoteSheetXLSX_EmptyRejected(t *testing.T) {
	exporter := newTestExporter(t)

	_, err := exporter.QuoteSheetXLSX(context.Background(), nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDesignQuoteXLSX_FromCachedSnapshot(t *testing.T) {
	exporter := newTestExporter(t)

	perPiece := int64(5125)
	total := int64(25830000)
	design := &models.Design{Name: "Summer Trucker", CustomerName: "Ridge Valley Brewing"}
	quote := &models.DesignQuote{
		Channel:        enums.QuoteChannelOverseas,
		Quantity:       5040,
		HatType:        "Classic",
		ShippingMethod: "FOB CA",
		CachedPriceBreaks: []models.CachedPriceBreak{
			{Quantity: 144},
			{Quantity: 5040, MeetsMOQ: true, PerPieceCents: &perPiece, TotalCents: &total},
		},
		CachedTotalCents: &total,
		CachedPerPiece:   &perPiece,
	}

	doc, err := exporter.DesignQuoteXLSX(context.Background(), design, quote)
	require.NoError(t, err)
	assert.Equal(t, "design_quote_summer_trucker.xlsx", doc.Filename)

	f := openWorkbook(t, doc)
	rows, err := f.GetRows("Design Quote")
	require.NoError(t, err)

	var sawUnpriced, sawPriced, sawTotal bool
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		switch row[0] {
		case "144+":
			sawUnpriced = true
			assert.Equal(t, moqCellText, row[1])
		case "5,040+":
			sawPriced = true
		case "Total at 5,040":
			sawTotal = true
		}
	}
	assert.True(t, sawUnpriced)
	assert.True(t, sawPriced)
	assert.True(t, sawTotal)
}

func TestDesignQuoteDispatch(t *testing.T) {
	exporter := newTestExporter(t)
	design := &models.Design{Name: "Dispatch"}
	quote := &models.DesignQuote{Channel: enums.QuoteChannelDomestic, Quantity: 144, StyleNumber: "ST100"}

	xlsxDoc, err := exporter.DesignQuote(context.Background(), enums.ExportFormatXLSX, design, quote)
	require.NoError(t, err)
	assert.Equal(t, ContentTypeXLSX, xlsxDoc.ContentType)

	pdfDoc, err := exporter.DesignQuote(context.Background(), enums.ExportFormatPDF, design, quote)
	require.NoError(t, err)
	assert.Equal(t, ContentTypePDF, pdfDoc.ContentType)

	_, err = exporter.DesignQuote(context.Background(), enums.ExportFormat("csv"), design, quote)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
