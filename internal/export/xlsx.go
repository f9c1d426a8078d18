package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"

	"github.com/kingcapco/salesops-backend/internal/pricing"
	"github.com/kingcapco/salesops-backend/pkg/db/models"
	"github.com/kingcapco/salesops-backend/pkg/enums"
	pkgerrors "github.com/kingcapco/salesops-backend/pkg/errors"
)

const moqCellText = "Does not meet MOQ"

// sheetStyles holds the style IDs registered on one workbook.
type sheetStyles struct {
	title        int
	header       int
	bold         int
	currency     int
	boldCurrency int
	moq          int
	note         int
	failure      int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	currencyFmt := `"$"#,##0.00`

	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return sheetStyles{}, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4A5568"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return sheetStyles{}, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return sheetStyles{}, err
	}
	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
	if err != nil {
		return sheetStyles{}, err
	}
	boldCurrency, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &currencyFmt,
	})
	if err != nil {
		return sheetStyles{}, err
	}
	moq, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true, Color: "888888"}})
	if err != nil {
		return sheetStyles{}, err
	}
	note, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true, Color: "666666"}})
	if err != nil {
		return sheetStyles{}, err
	}
	failure, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "FF0000"}})
	if err != nil {
		return sheetStyles{}, err
	}
	return sheetStyles{
		title:        title,
		header:       header,
		bold:         bold,
		currency:     currency,
		boldCurrency: boldCurrency,
		moq:          moq,
		note:         note,
		failure:      failure,
	}, nil
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}

// setCurrency writes a dollar cell, or the MOQ placeholder when cents is nil.
func setCurrency(f *excelize.File, sheet, cell string, cents *int64, st sheetStyles) {
	if cents == nil {
		f.SetCellValue(sheet, cell, moqCellText)
		f.SetCellStyle(sheet, cell, cell, st.moq)
		return
	}
	f.SetCellValue(sheet, cell, dollars(*cents))
	f.SetCellStyle(sheet, cell, cell, st.currency)
}

func writeDetails(f *excelize.File, sheet string, st sheetStyles, row int, details [][2]string) int {
	for _, d := range details {
		label := cellName(1, row)
		f.SetCellValue(sheet, label, d[0])
		f.SetCellStyle(sheet, label, label, st.bold)
		f.SetCellValue(sheet, cellName(2, row), d[1])
		row++
	}
	return row
}

type lineItem struct {
	label    string
	perPiece int64
	quantity int
}

func domesticLineItems(quote *pricing.DomesticQuote) []lineItem {
	b := quote.Break
	items := []lineItem{{label: "Blank Hat", perPiece: b.BlankCents, quantity: quote.Quantity}}
	if quote.FrontDecoration != nil {
		items = append(items, lineItem{fmt.Sprintf("Front Decoration (%s)", *quote.FrontDecoration), b.FrontCents, quote.Quantity})
	}
	if quote.LeftDecoration != nil {
		items = append(items, lineItem{fmt.Sprintf("Left Decoration (%s)", *quote.LeftDecoration), b.LeftCents, quote.Quantity})
	}
	if quote.RightDecoration != nil {
		items = append(items, lineItem{fmt.Sprintf("Right Decoration (%s)", *quote.RightDecoration), b.RightCents, quote.Quantity})
	}
	if quote.BackDecoration != nil {
		items = append(items, lineItem{fmt.Sprintf("Back Decoration (%s)", *quote.BackDecoration), b.BackCents, quote.Quantity})
	}
	if b.RushFeeCents > 0 {
		items = append(items, lineItem{"Rush Fee", b.RushFeeCents, quote.Quantity})
	}
	if quote.IncludeRope && b.RopeCents > 0 {
		items = append(items, lineItem{"Rope", b.RopeCents, quote.Quantity})
	}
	if b.DigitizingCents > 0 {
		items = append(items, lineItem{"Digitizing Fee", b.DigitizingCents, 1})
	}
	return items
}

// writeDomesticTable renders the line-item table plus the total row and
// returns the row after the table.
func writeDomesticTable(f *excelize.File, sheet string, st sheetStyles, row int, quote *pricing.DomesticQuote) int {
	for col, header := range []string{"Line Item", "Per Piece", "Qty", "Total"} {
		cell := cellName(col+1, row)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, st.header)
	}
	row++

	for _, item := range domesticLineItems(quote) {
		perPiece := item.perPiece
		total := item.perPiece * int64(item.quantity)
		f.SetCellValue(sheet, cellName(1, row), item.label)
		setCurrency(f, sheet, cellName(2, row), &perPiece, st)
		f.SetCellValue(sheet, cellName(3, row), item.quantity)
		setCurrency(f, sheet, cellName(4, row), &total, st)
		row++
	}

	b := quote.Break
	totalLabel := cellName(1, row)
	f.SetCellValue(sheet, totalLabel, "Total")
	f.SetCellStyle(sheet, totalLabel, totalLabel, st.bold)
	setCurrency(f, sheet, cellName(2, row), &b.PerPieceCents, st)
	f.SetCellValue(sheet, cellName(3, row), quote.Quantity)
	totalCell := cellName(4, row)
	f.SetCellValue(sheet, totalCell, dollars(b.TotalCents))
	f.SetCellStyle(sheet, totalCell, totalCell, st.boldCurrency)
	return row + 1
}

// writeOverseasGrid renders the tier grid (header, Hat row, Shipping row) and
// returns the row after the grid.
func writeOverseasGrid(f *excelize.File, sheet string, st sheetStyles, row int, quote *pricing.OverseasQuote) int {
	headerCell := cellName(1, row)
	f.SetCellValue(sheet, headerCell, "Line Item")
	f.SetCellStyle(sheet, headerCell, headerCell, st.header)
	for i, brk := range quote.Breaks {
		cell := cellName(i+2, row)
		f.SetCellValue(sheet, cell, comma(brk.QuantityBreak)+"+")
		f.SetCellStyle(sheet, cell, cell, st.header)
	}
	row++

	f.SetCellValue(sheet, cellName(1, row), "Hat")
	for i, brk := range quote.Breaks {
		var hatCents *int64
		if brk.MeetsMOQ() {
			hatCents = &brk.Priced.HatSubtotalCents
		}
		setCurrency(f, sheet, cellName(i+2, row), hatCents, st)
	}
	row++

	f.SetCellValue(sheet, cellName(1, row), "Shipping")
	for i, brk := range quote.Breaks {
		var shippingCents *int64
		if brk.MeetsMOQ() {
			shippingCents = &brk.Priced.ShippingCents
		}
		setCurrency(f, sheet, cellName(i+2, row), shippingCents, st)
	}
	return row + 1
}

func overseasDetails(quote *pricing.OverseasQuote, designNumber string) [][2]string {
	var details [][2]string
	if designNumber != "" {
		details = append(details, [2]string{"Design #:", designNumber})
	}
	details = append(details,
		[2]string{"Hat Type:", quote.HatType},
		[2]string{"Shipping:", quote.ShippingMethod},
	)
	decorations := []struct {
		label string
		value *string
	}{
		{"Front:", quote.FrontDecoration},
		{"Left:", quote.LeftDecoration},
		{"Right:", quote.RightDecoration},
		{"Back:", quote.BackDecoration},
		{"Visor:", quote.VisorDecoration},
	}
	for _, d := range decorations {
		if d.value != nil {
			details = append(details, [2]string{d.label, *d.value})
		}
	}
	if len(quote.Addons) > 0 {
		details = append(details, [2]string{"Add-ons:", strings.Join(quote.Addons, ", ")})
	}
	if len(quote.Accessories) > 0 {
		details = append(details, [2]string{"Accessories:", strings.Join(quote.Accessories, ", ")})
	}
	return details
}

// DomesticQuoteXLSX prices the request and renders the single-tier workbook.
func (e *Exporter) DomesticQuoteXLSX(ctx context.Context, req pricing.DomesticRequest, designNumber string) (*Document, error) {
	quote, err := e.engine.QuoteDomestic(req)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Domestic Quote"
	f.SetSheetName("Sheet1", sheet)
	st, err := newSheetStyles(f)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "registering workbook styles")
	}

	f.MergeCell(sheet, "A1", "D1")
	f.SetCellValue(sheet, "A1", "King Cap - Domestic Quote")
	f.SetCellStyle(sheet, "A1", "A1", st.title)

	row := 3
	var details [][2]string
	if designNumber != "" {
		details = append(details, [2]string{"Design #:", designNumber})
	}
	details = append(details,
		[2]string{"Style:", fmt.Sprintf("%s - %s", quote.StyleNumber, quote.StyleName)},
		[2]string{"Collection:", quote.Collection},
		[2]string{"Quantity:", comma(quote.Quantity)},
		[2]string{"Shipping:", quote.ShippingSpeed},
	)
	row = writeDetails(f, sheet, st, row, details)

	row++
	writeDomesticTable(f, sheet, st, row, quote)

	f.SetColWidth(sheet, "A", "A", 35)
	f.SetColWidth(sheet, "B", "B", 15)
	f.SetColWidth(sheet, "C", "C", 10)
	f.SetColWidth(sheet, "D", "D", 15)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing workbook")
	}
	e.metrics.IncExported(enums.ExportFormatXLSX.String())

	part := ""
	if designNumber != "" {
		part = "_" + slug(designNumber)
	}
	return &Document{
		Filename:    fmt.Sprintf("domestic_quote%s_%s_%d.xlsx", part, quote.StyleNumber, quote.Quantity),
		ContentType: ContentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}

// OverseasQuoteXLSX prices the request and renders the tier-grid workbook.
func (e *Exporter) OverseasQuoteXLSX(ctx context.Context, req pricing.OverseasRequest, designNumber string) (*Document, error) {
	quote, err := e.engine.QuoteOverseas(req)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Overseas Quote"
	f.SetSheetName("Sheet1", sheet)
	st, err := newSheetStyles(f)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "registering workbook styles")
	}

	f.MergeCell(sheet, "A1", "H1")
	f.SetCellValue(sheet, "A1", "King Cap - Overseas Quote")
	f.SetCellStyle(sheet, "A1", "A1", st.title)

	row := writeDetails(f, sheet, st, 3, overseasDetails(quote, designNumber))

	row++
	row = writeOverseasGrid(f, sheet, st, row, quote)

	f.SetColWidth(sheet, "A", "A", 20)
	lastCol, _ := excelize.ColumnNumberToName(len(quote.Breaks) + 1)
	f.SetColWidth(sheet, "B", lastCol, 18)

	row++
	noteCell := cellName(1, row)
	f.SetCellValue(sheet, noteCell, "* All prices shown are per piece at each quantity break")
	f.SetCellStyle(sheet, noteCell, noteCell, st.note)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing workbook")
	}
	e.metrics.IncExported(enums.ExportFormatXLSX.String())

	part := ""
	if designNumber != "" {
		part = "_" + slug(designNumber)
	}
	return &Document{
		Filename:    fmt.Sprintf("overseas_quote%s_%s.xlsx", part, slug(quote.HatType)),
		ContentType: ContentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}

// QuoteSheetXLSX renders a combined workbook for several designs. A design
// whose quote fails to price becomes an inline error row instead of sinking
// the whole sheet.
func (e *Exporter) QuoteSheetXLSX(ctx context.Context, quotes []SheetQuote) (*Document, error) {
	if len(quotes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no quotes provided")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Quote Sheet"
	f.SetSheetName("Sheet1", sheet)
	st, err := newSheetStyles(f)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "registering workbook styles")
	}

	f.MergeCell(sheet, "A1", "H1")
	f.SetCellValue(sheet, "A1", "King Cap - Combined Quote Sheet")
	f.SetCellStyle(sheet, "A1", "A1", st.title)

	row := 3
	var failed error
	for _, item := range quotes {
		next, err := e.writeSheetEntry(f, sheet, st, row, item)
		if err != nil {
			cell := cellName(1, row)
			f.SetCellValue(sheet, cell, fmt.Sprintf("Error processing %s: %s", item.DesignNumber, errMessage(err)))
			f.SetCellStyle(sheet, cell, cell, st.failure)
			next = row + 1
			failed = multierr.Append(failed, fmt.Errorf("design %s: %w", item.DesignNumber, err))
		}
		row = next + 2
	}
	if failed != nil && e.logg != nil {
		e.logg.Error(ctx, "quote sheet export skipped failing designs", failed)
	}

	f.SetColWidth(sheet, "A", "A", 35)
	f.SetColWidth(sheet, "B", "B", 15)
	f.SetColWidth(sheet, "C", "C", 10)
	f.SetColWidth(sheet, "D", "D", 15)
	f.SetColWidth(sheet, "E", "K", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing workbook")
	}
	e.metrics.IncExported(enums.ExportFormatXLSX.String())

	return &Document{
		Filename:    "quote_sheet.xlsx",
		ContentType: ContentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}

func (e *Exporter) writeSheetEntry(f *excelize.File, sheet string, st sheetStyles, row int, item SheetQuote) (int, error) {
	switch item.Channel {
	case enums.QuoteChannelDomestic:
		if item.Domestic == nil {
			return row, pkgerrors.New(pkgerrors.CodeValidation, "domestic quote entry missing its request")
		}
		quote, err := e.engine.QuoteDomestic(*item.Domestic)
		if err != nil {
			return row, err
		}
		return e.writeSheetDomestic(f, sheet, st, row, item.DesignNumber, quote), nil
	case enums.QuoteChannelOverseas:
		if item.Overseas == nil {
			return row, pkgerrors.New(pkgerrors.CodeValidation, "overseas quote entry missing its request")
		}
		quote, err := e.engine.QuoteOverseas(*item.Overseas)
		if err != nil {
			return row, err
		}
		return e.writeSheetOverseas(f, sheet, st, row, item.DesignNumber, quote), nil
	}
	return row, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown quote channel %q", item.Channel))
}

func (e *Exporter) writeSheetDomestic(f *excelize.File, sheet string, st sheetStyles, row int, designNumber string, quote *pricing.DomesticQuote) int {
	header := cellName(1, row)
	f.SetCellValue(sheet, header, fmt.Sprintf("Design: %s", designNumber))
	f.SetCellStyle(sheet, header, header, st.title)
	f.MergeCell(sheet, header, cellName(4, row))
	row++

	row = writeDetails(f, sheet, st, row, [][2]string{
		{"Type:", "Domestic"},
		{"Style:", fmt.Sprintf("%s - %s", quote.StyleNumber, quote.StyleName)},
		{"Quantity:", comma(quote.Quantity)},
	})

	row++
	return writeDomesticTable(f, sheet, st, row, quote)
}

func (e *Exporter) writeSheetOverseas(f *excelize.File, sheet string, st sheetStyles, row int, designNumber string, quote *pricing.OverseasQuote) int {
	header := cellName(1, row)
	f.SetCellValue(sheet, header, fmt.Sprintf("Design: %s", designNumber))
	f.SetCellStyle(sheet, header, header, st.title)
	f.MergeCell(sheet, header, cellName(len(quote.Breaks)+1, row))
	row++

	row = writeDetails(f, sheet, st, row, [][2]string{
		{"Type:", "Overseas"},
		{"Hat Type:", quote.HatType},
		{"Shipping:", quote.ShippingMethod},
	})

	row++
	return writeOverseasGrid(f, sheet, st, row, quote)
}

// DesignQuoteXLSX renders a saved quote's cached snapshot without repricing.
func (e *Exporter) DesignQuoteXLSX(ctx context.Context, design *models.Design, quote *models.DesignQuote) (*Document, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Design Quote"
	f.SetSheetName("Sheet1", sheet)
	st, err := newSheetStyles(f)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "registering workbook styles")
	}

	f.MergeCell(sheet, "A1", "D1")
	f.SetCellValue(sheet, "A1", "King Cap - Design Quote")
	f.SetCellStyle(sheet, "A1", "A1", st.title)

	row := writeDetails(f, sheet, st, 3, designQuoteDetails(design, quote))

	row++
	for col, header := range []string{"Quantity", "Per Piece", "Total"} {
		cell := cellName(col+1, row)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, st.header)
	}
	row++
	for _, brk := range quote.CachedPriceBreaks {
		f.SetCellValue(sheet, cellName(1, row), comma(brk.Quantity)+"+")
		setCurrency(f, sheet, cellName(2, row), brk.PerPieceCents, st)
		setCurrency(f, sheet, cellName(3, row), brk.TotalCents, st)
		row++
	}

	if quote.CachedTotalCents != nil {
		label := cellName(1, row)
		f.SetCellValue(sheet, label, fmt.Sprintf("Total at %s", comma(quote.Quantity)))
		f.SetCellStyle(sheet, label, label, st.bold)
		setCurrency(f, sheet, cellName(2, row), quote.CachedPerPiece, st)
		totalCell := cellName(3, row)
		f.SetCellValue(sheet, totalCell, dollars(*quote.CachedTotalCents))
		f.SetCellStyle(sheet, totalCell, totalCell, st.boldCurrency)
	}

	f.SetColWidth(sheet, "A", "A", 25)
	f.SetColWidth(sheet, "B", "C", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing workbook")
	}
	e.metrics.IncExported(enums.ExportFormatXLSX.String())

	return &Document{
		Filename:    fmt.Sprintf("design_quote_%s.xlsx", slug(design.Name)),
		ContentType: ContentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}

func designQuoteDetails(design *models.Design, quote *models.DesignQuote) [][2]string {
	details := [][2]string{
		{"Design:", design.Name},
	}
	if design.CustomerName != "" {
		details = append(details, [2]string{"Customer:", design.CustomerName})
	}
	details = append(details,
		[2]string{"Channel:", quote.Channel.String()},
		[2]string{"Quantity:", comma(quote.Quantity)},
	)
	if quote.Channel == enums.QuoteChannelDomestic {
		details = append(details, [2]string{"Style:", quote.StyleNumber})
		if quote.ShippingSpeed != "" {
			details = append(details, [2]string{"Shipping:", quote.ShippingSpeed})
		}
	} else {
		details = append(details, [2]string{"Hat Type:", quote.HatType})
		if quote.ShippingMethod != "" {
			details = append(details, [2]string{"Shipping:", quote.ShippingMethod})
		}
	}
	decorations := [][2]string{
		{"Front:", quote.FrontDecoration},
		{"Left:", quote.LeftDecoration},
		{"Right:", quote.RightDecoration},
		{"Back:", quote.BackDecoration},
		{"Visor:", quote.VisorDecoration},
	}
	for _, d := range decorations {
		if d[1] != "" {
			details = append(details, d)
		}
	}
	if len(quote.Addons) > 0 {
		details = append(details, [2]string{"Add-ons:", strings.Join(quote.Addons, ", ")})
	}
	if len(quote.Accessories) > 0 {
		details = append(details, [2]string{"Accessories:", strings.Join(quote.Accessories, ", ")})
	}
	return details
}

// DesignQuote dispatches a saved-quote export to the requested format.
func (e *Exporter) DesignQuote(ctx context.Context, format enums.ExportFormat, design *models.Design, quote *models.DesignQuote) (*Document, error) {
	switch format {
	case enums.ExportFormatXLSX:
		return e.DesignQuoteXLSX(ctx, design, quote)
	case enums.ExportFormatPDF:
		return e.DesignQuotePDF(ctx, design, quote)
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported export format %q", format))
}

func errMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Message()
	}
	return err.Error()
}
