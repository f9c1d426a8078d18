package export

import (
	"fmt"
	"strings"

	"github.com/kingcapco/salesops-backend/internal/pricing"
	"github.com/kingcapco/salesops-backend/pkg/enums"
	"github.com/kingcapco/salesops-backend/pkg/logger"
	"github.com/kingcapco/salesops-backend/pkg/metrics"
)

// Content types served with exported documents.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// Document is a rendered export ready to stream to the client.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SheetQuote is one entry of a combined quote-sheet export. Exactly one of
// Domestic or Overseas is set, matching Channel.
type SheetQuote struct {
	DesignNumber string
	Channel      enums.QuoteChannel
	Domestic     *pricing.DomesticRequest
	Overseas     *pricing.OverseasRequest
}

// Exporter renders quotes into downloadable documents. Metrics and logger
// are optional.
type Exporter struct {
	engine  *pricing.Engine
	metrics *metrics.QuoteMetrics
	logg    *logger.Logger
}

// NewExporter builds an exporter bound to the pricing engine.
func NewExporter(engine *pricing.Engine, quoteMetrics *metrics.QuoteMetrics, logg *logger.Logger) (*Exporter, error) {
	if engine == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	return &Exporter{engine: engine, metrics: quoteMetrics, logg: logg}, nil
}

// dollars converts integer cents to the float value a spreadsheet currency
// cell expects.
func dollars(cents int64) float64 {
	return float64(cents) / 100
}

// slug lowercases a label for use in a filename.
func slug(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "_")
}

// comma renders an integer with thousands separators, e.g. 5040 -> "5,040".
func comma(n int) string {
	digits := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + comma(-n)
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
