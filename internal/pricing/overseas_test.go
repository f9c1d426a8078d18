package pricing

import (
	"reflect"
	"testing"

	"github.com/kingcapco/salesops-backend/pkg/errors"
)

func TestQuoteOverseas_ScenarioClassicFOB(t *testing.T) {
	engine := newTestEngine(t)

	quote, err := engine.QuoteOverseas(OverseasRequest{
		HatType:        "Classic",
		Quantity:       5040,
		ShippingMethod: "FOB CA",
	})
	if err != nil {
		t.Fatalf("QuoteOverseas failed: %v", err)
	}

	wantBreaks := []int{144, 288, 576, 1008, 2880, 5040}
	if len(quote.Breaks) != len(wantBreaks) {
		t.Fatalf("got %d breaks, want %d", len(quote.Breaks), len(wantBreaks))
	}

	table := Default()
	for i, brk := range quote.Breaks {
		if brk.QuantityBreak != wantBreaks[i] {
			t.Fatalf("break[%d].quantity = %d, want %d", i, brk.QuantityBreak, wantBreaks[i])
		}
		// FOB CA's MOQ is 288, so the 144 tier is unpriced.
		if brk.QuantityBreak < 288 {
			if brk.MeetsMOQ() {
				t.Fatalf("break %d should be below MOQ", brk.QuantityBreak)
			}
			continue
		}
		if !brk.MeetsMOQ() {
			t.Fatalf("break %d should be priced", brk.QuantityBreak)
		}
		wantBlank := table.Overseas.HatTypes["Classic"].BlankPrices[brk.QuantityBreak]
		if brk.Priced.BlankCents != wantBlank {
			t.Fatalf("break %d blank = %d, want %d", brk.QuantityBreak, brk.Priced.BlankCents, wantBlank)
		}
		wantShipping := table.Overseas.Shipping["FOB CA"].Prices[brk.QuantityBreak]
		if brk.Priced.ShippingCents != wantShipping {
			t.Fatalf("break %d shipping = %d, want %d", brk.QuantityBreak, brk.Priced.ShippingCents, wantShipping)
		}
	}
}

func TestQuoteOverseas_MOQNullability(t *testing.T) {
	engine := newTestEngine(t)

	// Gift Box's MOQ is 576, the strictest of the selections.
	quote, err := engine.QuoteOverseas(OverseasRequest{
		HatType:        "Basic",
		Quantity:       1008,
		Accessories:    []string{"Gift Box"},
		ShippingMethod: "Air Express",
	})
	if err != nil {
		t.Fatalf("QuoteOverseas failed: %v", err)
	}

	for _, brk := range quote.Breaks {
		if brk.QuantityBreak < 576 {
			if brk.Priced != nil {
				t.Fatalf("break %d priced despite Gift Box MOQ", brk.QuantityBreak)
			}
			if brk.QuantityBreak == 0 {
				t.Fatal("unpriced break lost its quantity value")
			}
		} else if brk.Priced == nil {
			t.Fatalf("break %d unpriced, want priced", brk.QuantityBreak)
		}
	}
}

func TestQuoteOverseas_LineMath(t *testing.T) {
	engine := newTestEngine(t)

	quote, err := engine.QuoteOverseas(OverseasRequest{
		HatType:         "Comfort",
		Quantity:        1008,
		FrontDecoration: strPtr("Embroidery"),
		VisorDecoration: strPtr("Woven Label"),
		Addons:          []string{"Inner Taping", "Hang Tag"},
		Accessories:     []string{"Polybag"},
		ShippingMethod:  "Air Express",
	})
	if err != nil {
		t.Fatalf("QuoteOverseas failed: %v", err)
	}

	for _, brk := range quote.Breaks {
		if !brk.MeetsMOQ() {
			continue
		}
		p := brk.Priced
		wantSubtotal := p.BlankCents + p.FrontCents + p.LeftCents + p.RightCents + p.BackCents + p.VisorCents + p.AddonsCents + p.AccessoriesCents
		if p.HatSubtotalCents != wantSubtotal {
			t.Fatalf("break %d hat subtotal %d != %d", brk.QuantityBreak, p.HatSubtotalCents, wantSubtotal)
		}
		if p.PerPieceCents != p.HatSubtotalCents+p.ShippingCents {
			t.Fatalf("break %d per piece excludes shipping", brk.QuantityBreak)
		}
		if p.TotalCents != p.PerPieceCents*int64(quote.Quantity) {
			t.Fatalf("break %d total %d != per piece x quantity", brk.QuantityBreak, p.TotalCents)
		}
	}
}

func TestQuoteOverseas_DefaultShippingMethod(t *testing.T) {
	engine := newTestEngine(t)

	quote, err := engine.QuoteOverseas(OverseasRequest{HatType: "Basic", Quantity: 288})
	if err != nil {
		t.Fatalf("QuoteOverseas failed: %v", err)
	}
	if quote.ShippingMethod != DefaultShippingMethod {
		t.Fatalf("shipping method = %q, want %q", quote.ShippingMethod, DefaultShippingMethod)
	}
}

func TestQuoteOverseas_ApplicableBreak(t *testing.T) {
	engine := newTestEngine(t)

	quote, err := engine.QuoteOverseas(OverseasRequest{
		HatType:        "Classic",
		Quantity:       1200,
		ShippingMethod: "FOB CA",
	})
	if err != nil {
		t.Fatalf("QuoteOverseas failed: %v", err)
	}

	applicable := quote.ApplicableBreak()
	if applicable == nil {
		t.Fatal("expected an applicable break")
	}
	if applicable.QuantityBreak != 1008 {
		t.Fatalf("applicable break = %d, want 1008", applicable.QuantityBreak)
	}

	// With every break below MOQ there is no applicable break.
	low, err := engine.QuoteOverseas(OverseasRequest{
		HatType:        "Classic",
		Quantity:       144,
		ShippingMethod: "FOB CA",
	})
	if err != nil {
		t.Fatalf("QuoteOverseas failed: %v", err)
	}
	if low.ApplicableBreak() != nil {
		t.Fatal("quantity 144 under FOB CA MOQ should have no applicable break")
	}
}

func TestQuoteOverseas_Validation(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name string
		req  OverseasRequest
	}{
		{name: "unknown hat type", req: OverseasRequest{HatType: "Mystery", Quantity: 288}},
		{name: "below minimum", req: OverseasRequest{HatType: "Basic", Quantity: 100}},
		{name: "unknown shipping", req: OverseasRequest{HatType: "Basic", Quantity: 288, ShippingMethod: "Drone"}},
		{name: "unknown decoration", req: OverseasRequest{HatType: "Basic", Quantity: 288, FrontDecoration: strPtr("Hologram")}},
		{name: "unknown addon", req: OverseasRequest{HatType: "Basic", Quantity: 288, Addons: []string{"Glitter"}}},
		{name: "unknown accessory", req: OverseasRequest{HatType: "Basic", Quantity: 288, Accessories: []string{"Cape"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.QuoteOverseas(tt.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestQuoteOverseas_PricingDataMissing(t *testing.T) {
	engine := newTestEngine(t)
	delete(engine.table.Overseas.HatTypes["Basic"].BlankPrices, 5040)

	_, err := engine.QuoteOverseas(OverseasRequest{HatType: "Basic", Quantity: 288, ShippingMethod: "Air Express"})
	if err == nil {
		t.Fatal("expected missing table entry to fail")
	}
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodePricingData {
		t.Fatalf("expected pricing data error, got %v", err)
	}
}

func TestQuoteOverseas_Deterministic(t *testing.T) {
	engine := newTestEngine(t)
	req := OverseasRequest{
		HatType:         "Sport",
		Quantity:        2880,
		FrontDecoration: strPtr("3D Embroidery"),
		Addons:          []string{"Custom Woven Label"},
		ShippingMethod:  "Ocean Freight",
	}

	first, err := engine.QuoteOverseas(req)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := engine.QuoteOverseas(req)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical requests produced different quotes")
	}
}
