package designquotes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kingcapco/salesops-backend/internal/pricing"
	"github.com/kingcapco/salesops-backend/pkg/enums"
	"github.com/kingcapco/salesops-backend/pkg/errors"
	"gorm.io/gorm"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()

	db := setupQuotesTestDB(t)
	repo := NewRepository(db)
	engine, err := pricing.NewEngine(pricing.Default())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	svc, err := NewService(repo, gormTxRunner{db: db}, engine, nil, nil)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc, repo
}

func strRef(s string) *string { return &s }

func TestService_SaveQuoteRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	design, err := svc.CreateDesign(ctx, uuid.New(), CreateDesignInput{Name: "Fairway Rope Hat"})
	if err != nil {
		t.Fatalf("CreateDesign failed: %v", err)
	}

	saved, err := svc.SaveQuote(ctx, design.ID, design.CreatedByID, QuoteInput{
		Channel:         enums.QuoteChannelDomestic,
		Quantity:        144,
		StyleNumber:     "ST100",
		FrontDecoration: strRef("Embroidery"),
		ShippingSpeed:   pricing.ShippingSpeedStandard,
		NumDSTFiles:     1,
	})
	if err != nil {
		t.Fatalf("SaveQuote failed: %v", err)
	}

	cached, err := svc.GetQuote(ctx, design.ID)
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}
	if cached.ID != saved.ID {
		t.Fatalf("GetQuote returned a different row: %s vs %s", cached.ID, saved.ID)
	}

	// The stored snapshot must equal a fresh computation for the same input.
	engine, err := pricing.NewEngine(pricing.Default())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	fresh, err := engine.QuoteDomestic(pricing.DomesticRequest{
		StyleNumber:     "ST100",
		Quantity:        144,
		FrontDecoration: strRef("Embroidery"),
		ShippingSpeed:   pricing.ShippingSpeedStandard,
		NumDSTFiles:     1,
	})
	if err != nil {
		t.Fatalf("QuoteDomestic failed: %v", err)
	}
	if cached.CachedTotalCents == nil || *cached.CachedTotalCents != fresh.Break.TotalCents {
		t.Fatalf("cached total %v != recomputed %d", cached.CachedTotalCents, fresh.Break.TotalCents)
	}
	if cached.CachedPerPiece == nil || *cached.CachedPerPiece != fresh.Break.PerPieceCents {
		t.Fatalf("cached per piece %v != recomputed %d", cached.CachedPerPiece, fresh.Break.PerPieceCents)
	}
	if len(cached.CachedPriceBreaks) != 1 || cached.CachedPriceBreaks[0].Quantity != fresh.Break.QuantityBreak {
		t.Fatalf("cached breaks %+v do not match resolved break %d", cached.CachedPriceBreaks, fresh.Break.QuantityBreak)
	}
	if cached.HatType != "" || cached.ShippingMethod != "" {
		t.Fatal("domestic quote stored overseas-only fields")
	}
}

func TestService_SaveQuoteReplaces(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	design, err := svc.CreateDesign(ctx, uuid.New(), CreateDesignInput{Name: "Harbor Snapback"})
	if err != nil {
		t.Fatalf("CreateDesign failed: %v", err)
	}

	first, err := svc.SaveQuote(ctx, design.ID, design.CreatedByID, QuoteInput{
		Channel:     enums.QuoteChannelDomestic,
		Quantity:    144,
		StyleNumber: "ST100",
	})
	if err != nil {
		t.Fatalf("first SaveQuote failed: %v", err)
	}

	second, err := svc.SaveQuote(ctx, design.ID, design.CreatedByID, QuoteInput{
		Channel:        enums.QuoteChannelOverseas,
		Quantity:       1008,
		HatType:        "Classic",
		ShippingMethod: "Air Express",
	})
	if err != nil {
		t.Fatalf("second SaveQuote failed: %v", err)
	}

	if second.ID != first.ID {
		t.Fatal("replacing a quote must keep its identity")
	}
	if second.Channel != enums.QuoteChannelOverseas {
		t.Fatalf("channel = %s, want overseas", second.Channel)
	}
	if second.StyleNumber != "" {
		t.Fatalf("overseas quote kept style number %q", second.StyleNumber)
	}
	if len(second.CachedPriceBreaks) != 6 {
		t.Fatalf("got %d cached breaks, want all 6", len(second.CachedPriceBreaks))
	}
}

func TestService_PatchQuoteRecomputes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	design, err := svc.CreateDesign(ctx, uuid.New(), CreateDesignInput{Name: "Canyon Camper"})
	if err != nil {
		t.Fatalf("CreateDesign failed: %v", err)
	}

	_, err = svc.SaveQuote(ctx, design.ID, design.CreatedByID, QuoteInput{
		Channel:         enums.QuoteChannelDomestic,
		Quantity:        144,
		StyleNumber:     "ST100",
		FrontDecoration: strRef("Embroidery"),
		NumDSTFiles:     2,
	})
	if err != nil {
		t.Fatalf("SaveQuote failed: %v", err)
	}

	qty := 100
	patched, err := svc.PatchQuote(ctx, design.ID, QuotePatch{Quantity: &qty})
	if err != nil {
		t.Fatalf("PatchQuote failed: %v", err)
	}

	if patched.Quantity != 100 {
		t.Fatalf("quantity = %d, want 100", patched.Quantity)
	}
	// Untouched fields survive the merge.
	if patched.StyleNumber != "ST100" || patched.FrontDecoration != "Embroidery" {
		t.Fatalf("patch dropped unrelated fields: %+v", patched)
	}
	// Dropping below the waiver quantity brings digitizing back into the total.
	if patched.CachedPriceBreaks[0].Quantity != 24 {
		t.Fatalf("resolved break = %d, want 24", patched.CachedPriceBreaks[0].Quantity)
	}
	if patched.CachedTotalCents == nil || *patched.CachedTotalCents <= *patched.CachedPerPiece*100 {
		t.Fatalf("total %v should include digitizing on top of %d x 100", patched.CachedTotalCents, *patched.CachedPerPiece)
	}

	// Clearing a decoration slot uses the "0" sentinel.
	cleared, err := svc.PatchQuote(ctx, design.ID, QuotePatch{FrontDecoration: strRef("0")})
	if err != nil {
		t.Fatalf("PatchQuote clear failed: %v", err)
	}
	if cleared.FrontDecoration != "" {
		t.Fatalf("front decoration = %q, want cleared", cleared.FrontDecoration)
	}
}

func TestService_PatchQuoteInvalidLeavesStored(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	design, err := svc.CreateDesign(ctx, uuid.New(), CreateDesignInput{Name: "Delta Dad Hat"})
	if err != nil {
		t.Fatalf("CreateDesign failed: %v", err)
	}
	_, err = svc.SaveQuote(ctx, design.ID, design.CreatedByID, QuoteInput{
		Channel:     enums.QuoteChannelDomestic,
		Quantity:    144,
		StyleNumber: "ST100",
	})
	if err != nil {
		t.Fatalf("SaveQuote failed: %v", err)
	}

	bad := 3
	_, err = svc.PatchQuote(ctx, design.ID, QuotePatch{Quantity: &bad})
	if err == nil {
		t.Fatal("expected below-minimum patch to fail")
	}
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	stored, err := svc.GetQuote(ctx, design.ID)
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}
	if stored.Quantity != 144 {
		t.Fatalf("failed patch mutated stored quantity to %d", stored.Quantity)
	}
}

func TestService_NotFoundMapping(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetQuote(ctx, uuid.New())
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = svc.SaveQuote(ctx, uuid.New(), uuid.New(), QuoteInput{
		Channel:     enums.QuoteChannelDomestic,
		Quantity:    144,
		StyleNumber: "ST100",
	})
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeNotFound {
		t.Fatalf("expected not found for missing design, got %v", err)
	}

	if err := svc.DeleteDesign(ctx, uuid.New()); err == nil {
		t.Fatal("expected delete of missing design to fail")
	}

	_, err = svc.GetDesign(ctx, uuid.New())
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeNotFound {
		t.Fatalf("expected not found design, got %v", err)
	}
}

func TestService_SaveQuoteValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	design, err := svc.CreateDesign(ctx, uuid.New(), CreateDesignInput{Name: "Valid Design"})
	if err != nil {
		t.Fatalf("CreateDesign failed: %v", err)
	}

	tests := []struct {
		name  string
		input QuoteInput
	}{
		{name: "unknown channel", input: QuoteInput{Channel: "martian", Quantity: 144}},
		{name: "domestic without style", input: QuoteInput{Channel: enums.QuoteChannelDomestic, Quantity: 144}},
		{name: "overseas without hat type", input: QuoteInput{Channel: enums.QuoteChannelOverseas, Quantity: 288}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveQuote(ctx, design.ID, design.CreatedByID, tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestService_DeleteDesignCascades(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	design, err := svc.CreateDesign(ctx, uuid.New(), CreateDesignInput{Name: "Retired Design"})
	if err != nil {
		t.Fatalf("CreateDesign failed: %v", err)
	}
	_, err = svc.SaveQuote(ctx, design.ID, design.CreatedByID, QuoteInput{
		Channel:     enums.QuoteChannelDomestic,
		Quantity:    144,
		StyleNumber: "ST100",
	})
	if err != nil {
		t.Fatalf("SaveQuote failed: %v", err)
	}

	if err := svc.DeleteDesign(ctx, design.ID); err != nil {
		t.Fatalf("DeleteDesign failed: %v", err)
	}

	_, err = svc.GetQuote(ctx, design.ID)
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeNotFound {
		t.Fatalf("expected cascaded quote delete, got %v", err)
	}
}
