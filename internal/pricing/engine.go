package pricing

import (
	"fmt"
	"strings"

	"github.com/kingcapco/salesops-backend/pkg/errors"
)

// Engine computes quotes against an injected immutable rate table. It holds
// no mutable state; methods are safe for unbounded concurrent use.
type Engine struct {
	table *RateTable
}

// NewEngine validates the table once and returns an engine bound to it.
func NewEngine(table *RateTable) (*Engine, error) {
	if table == nil {
		return nil, fmt.Errorf("rate table is required")
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("rate table invalid: %w", err)
	}
	return &Engine{table: table}, nil
}

// DomesticRequest is a validated-shape domestic quote input. Decoration slots
// holding nil, "", or "0" mean no decoration at that location.
type DomesticRequest struct {
	StyleNumber     string
	Quantity        int
	FrontDecoration *string
	LeftDecoration  *string
	RightDecoration *string
	BackDecoration  *string
	ShippingSpeed   string
	IncludeRope     bool
	NumDSTFiles     int
}

// OverseasRequest is the overseas quote input.
type OverseasRequest struct {
	HatType         string
	Quantity        int
	FrontDecoration *string
	LeftDecoration  *string
	RightDecoration *string
	BackDecoration  *string
	VisorDecoration *string
	Addons          []string
	Accessories     []string
	ShippingMethod  string
}

// DomesticBreak is the single resolved domestic tier. All unit fields are
// cents per piece; DigitizingCents is a flat one-time charge folded into
// TotalCents only.
type DomesticBreak struct {
	QuantityBreak   int
	BlankCents      int64
	FrontCents      int64
	LeftCents       int64
	RightCents      int64
	BackCents       int64
	RushFeeCents    int64
	RopeCents       int64
	PerPieceCents   int64
	DigitizingCents int64
	SubtotalCents   int64
	TotalCents      int64
}

// DomesticQuote is the full domestic computation with normalized inputs
// echoed back so persistence and export need not re-derive them.
type DomesticQuote struct {
	StyleNumber     string
	StyleName       string
	Collection      string
	Quantity        int
	FrontDecoration *string
	LeftDecoration  *string
	RightDecoration *string
	BackDecoration  *string
	ShippingSpeed   string
	IncludeRope     bool
	NumDSTFiles     int
	Break           DomesticBreak
}

// PricedBreak holds every overseas line for one tier that met MOQ.
// PerPieceCents includes shipping; HatSubtotalCents does not.
type PricedBreak struct {
	BlankCents       int64
	FrontCents       int64
	LeftCents        int64
	RightCents       int64
	BackCents        int64
	VisorCents       int64
	AddonsCents      int64
	AccessoriesCents int64
	HatSubtotalCents int64
	ShippingCents    int64
	PerPieceCents    int64
	TotalCents       int64
}

// OverseasBreak is one tier row. Priced is nil when the tier sits below the
// configuration's effective MOQ; the quantity is still carried so callers can
// render "Does not meet MOQ" at that tier.
type OverseasBreak struct {
	QuantityBreak int
	Priced        *PricedBreak
}

// MeetsMOQ reports whether the tier was priceable.
func (b OverseasBreak) MeetsMOQ() bool {
	return b.Priced != nil
}

// OverseasQuote is the full overseas computation: every published tier,
// each independently MOQ-checked.
type OverseasQuote struct {
	HatType         string
	Quantity        int
	FrontDecoration *string
	LeftDecoration  *string
	RightDecoration *string
	BackDecoration  *string
	VisorDecoration *string
	Addons          []string
	Accessories     []string
	ShippingMethod  string
	Breaks          []OverseasBreak
}

// ApplicableBreak returns the largest priced tier at or below the requested
// quantity, for cached totals on saved quotes.
func (q *OverseasQuote) ApplicableBreak() *OverseasBreak {
	var applicable *OverseasBreak
	for i := range q.Breaks {
		brk := &q.Breaks[i]
		if brk.QuantityBreak > q.Quantity || !brk.MeetsMOQ() {
			continue
		}
		applicable = brk
	}
	return applicable
}

// normalizeDecoration maps absent-ish slot values (nil, blank, literal "0")
// to nil so they never reach pricing and echo back as null.
func normalizeDecoration(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" || trimmed == "0" {
		return nil
	}
	return &trimmed
}

func errInvalid(format string, args ...any) *errors.Error {
	return errors.New(errors.CodeValidation, fmt.Sprintf(format, args...))
}

func errDataMissing(format string, args ...any) *errors.Error {
	return errors.New(errors.CodePricingData, fmt.Sprintf(format, args...))
}
