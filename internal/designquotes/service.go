package designquotes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kingcapco/salesops-backend/internal/pricing"
	"github.com/kingcapco/salesops-backend/pkg/db/models"
	"github.com/kingcapco/salesops-backend/pkg/enums"
	pkgerrors "github.com/kingcapco/salesops-backend/pkg/errors"
	"github.com/kingcapco/salesops-backend/pkg/logger"
	"github.com/kingcapco/salesops-backend/pkg/metrics"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes design and design-quote operations.
type Service interface {
	CreateDesign(ctx context.Context, createdBy uuid.UUID, input CreateDesignInput) (*models.Design, error)
	GetDesign(ctx context.Context, id uuid.UUID) (*models.Design, error)
	ListDesigns(ctx context.Context, limit, offset int) ([]models.Design, error)
	DeleteDesign(ctx context.Context, id uuid.UUID) error

	SaveQuote(ctx context.Context, designID, createdBy uuid.UUID, input QuoteInput) (*models.DesignQuote, error)
	PatchQuote(ctx context.Context, designID uuid.UUID, patch QuotePatch) (*models.DesignQuote, error)
	GetQuote(ctx context.Context, designID uuid.UUID) (*models.DesignQuote, error)
	DeleteQuote(ctx context.Context, designID uuid.UUID) error
}

type service struct {
	repo    QuoteRepository
	tx      txRunner
	engine  *pricing.Engine
	metrics *metrics.QuoteMetrics
	logg    *logger.Logger
}

// NewService builds the design-quote service. Metrics and logger are
// optional; repository, transaction runner, and engine are not.
func NewService(repo QuoteRepository, tx txRunner, engine *pricing.Engine, quoteMetrics *metrics.QuoteMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if engine == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		engine:  engine,
		metrics: quoteMetrics,
		logg:    logg,
	}, nil
}

// CreateDesignInput captures a new design record.
type CreateDesignInput struct {
	Name         string
	CustomerName string
	Notes        string
}

// QuoteInput is the full pricing configuration stored against a design.
type QuoteInput struct {
	Channel         enums.QuoteChannel
	Quantity        int
	StyleNumber     string
	HatType         string
	FrontDecoration *string
	LeftDecoration  *string
	RightDecoration *string
	BackDecoration  *string
	VisorDecoration *string
	ShippingSpeed   string
	ShippingMethod  string
	IncludeRope     bool
	NumDSTFiles     int
	Addons          []string
	Accessories     []string
}

// QuotePatch carries partial updates; nil fields stay untouched. Decoration
// slots clear by sending "" or "0" (normalized to absent on recompute).
type QuotePatch struct {
	Quantity        *int
	StyleNumber     *string
	HatType         *string
	FrontDecoration *string
	LeftDecoration  *string
	RightDecoration *string
	BackDecoration  *string
	VisorDecoration *string
	ShippingSpeed   *string
	ShippingMethod  *string
	IncludeRope     *bool
	NumDSTFiles     *int
	Addons          *[]string
	Accessories     *[]string
}

func (s *service) CreateDesign(ctx context.Context, createdBy uuid.UUID, input CreateDesignInput) (*models.Design, error) {
	if createdBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "creator id is required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "design name is required")
	}

	design, err := s.repo.CreateDesign(ctx, &models.Design{
		Name:         input.Name,
		CustomerName: input.CustomerName,
		Notes:        input.Notes,
		CreatedByID:  createdBy,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating design")
	}
	return design, nil
}

func (s *service) GetDesign(ctx context.Context, id uuid.UUID) (*models.Design, error) {
	design, err := s.repo.FindDesignByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "design not found")
	}
	return design, nil
}

func (s *service) ListDesigns(ctx context.Context, limit, offset int) ([]models.Design, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	designs, err := s.repo.ListDesigns(ctx, limit, offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing designs")
	}
	return designs, nil
}

func (s *service) DeleteDesign(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteDesign(ctx, id)
	})
	if err != nil {
		return mapNotFound(err, "design not found")
	}
	return nil
}

// SaveQuote computes the quote and stores the request plus the cached
// snapshot atomically, replacing any existing quote for the design.
func (s *service) SaveQuote(ctx context.Context, designID, createdBy uuid.UUID, input QuoteInput) (*models.DesignQuote, error) {
	if designID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "design id is required")
	}
	if createdBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "creator id is required")
	}

	record, err := s.buildRecord(ctx, input)
	if err != nil {
		return nil, err
	}
	record.DesignID = designID
	record.CreatedByID = createdBy

	var saved *models.DesignQuote
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindDesignByID(ctx, designID); err != nil {
			return mapNotFound(err, "design not found")
		}
		stored, err := repo.UpsertQuote(ctx, record)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving design quote")
		}
		saved = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// PatchQuote merges the patch into the stored configuration, recomputes, and
// saves the refreshed snapshot.
func (s *service) PatchQuote(ctx context.Context, designID uuid.UUID, patch QuotePatch) (*models.DesignQuote, error) {
	existing, err := s.repo.FindQuoteByDesignID(ctx, designID)
	if err != nil {
		return nil, mapNotFound(err, "quote not found")
	}

	input := inputFromRecord(existing)
	applyPatch(&input, patch)

	record, err := s.buildRecord(ctx, input)
	if err != nil {
		return nil, err
	}
	record.DesignID = existing.DesignID
	record.CreatedByID = existing.CreatedByID

	var saved *models.DesignQuote
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		stored, err := s.repo.WithTx(tx).UpsertQuote(ctx, record)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating design quote")
		}
		saved = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetQuote returns the cached snapshot without recomputation.
func (s *service) GetQuote(ctx context.Context, designID uuid.UUID) (*models.DesignQuote, error) {
	quote, err := s.repo.FindQuoteByDesignID(ctx, designID)
	if err != nil {
		return nil, mapNotFound(err, "quote not found")
	}
	return quote, nil
}

func (s *service) DeleteQuote(ctx context.Context, designID uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteQuoteByDesignID(ctx, designID)
	})
	if err != nil {
		return mapNotFound(err, "quote not found")
	}
	return nil
}

// buildRecord runs the pricing engine for the input and assembles the
// persisted row including the cached snapshot.
func (s *service) buildRecord(ctx context.Context, input QuoteInput) (*models.DesignQuote, error) {
	if !input.Channel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown quote channel %q", input.Channel))
	}

	started := time.Now()
	var (
		breaks   []models.CachedPriceBreak
		total    *int64
		perPiece *int64
		echoed   QuoteInput
		err      error
	)
	switch input.Channel {
	case enums.QuoteChannelDomestic:
		breaks, total, perPiece, echoed, err = s.computeDomestic(input)
	case enums.QuoteChannelOverseas:
		breaks, total, perPiece, echoed, err = s.computeOverseas(input)
	}
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodePricingData {
			s.metrics.IncDataMissing(input.Channel.String())
			if s.logg != nil {
				s.logg.Error(ctx, "rate table lookup failed while saving quote", err)
			}
		}
		return nil, err
	}
	s.metrics.IncComputed(input.Channel.String())
	s.metrics.ObserveCompute(input.Channel.String(), time.Since(started))

	return &models.DesignQuote{
		Channel:           echoed.Channel,
		Quantity:          echoed.Quantity,
		StyleNumber:       echoed.StyleNumber,
		HatType:           echoed.HatType,
		FrontDecoration:   deref(echoed.FrontDecoration),
		LeftDecoration:    deref(echoed.LeftDecoration),
		RightDecoration:   deref(echoed.RightDecoration),
		BackDecoration:    deref(echoed.BackDecoration),
		VisorDecoration:   deref(echoed.VisorDecoration),
		ShippingSpeed:     echoed.ShippingSpeed,
		ShippingMethod:    echoed.ShippingMethod,
		IncludeRope:       echoed.IncludeRope,
		NumDSTFiles:       echoed.NumDSTFiles,
		Addons:            echoed.Addons,
		Accessories:       echoed.Accessories,
		CachedPriceBreaks: breaks,
		CachedTotalCents:  total,
		CachedPerPiece:    perPiece,
	}, nil
}

func (s *service) computeDomestic(input QuoteInput) ([]models.CachedPriceBreak, *int64, *int64, QuoteInput, error) {
	if input.StyleNumber == "" {
		return nil, nil, nil, input, pkgerrors.New(pkgerrors.CodeValidation, "style_number is required for domestic quotes")
	}

	quote, err := s.engine.QuoteDomestic(pricing.DomesticRequest{
		StyleNumber:     input.StyleNumber,
		Quantity:        input.Quantity,
		FrontDecoration: input.FrontDecoration,
		LeftDecoration:  input.LeftDecoration,
		RightDecoration: input.RightDecoration,
		BackDecoration:  input.BackDecoration,
		ShippingSpeed:   input.ShippingSpeed,
		IncludeRope:     input.IncludeRope,
		NumDSTFiles:     input.NumDSTFiles,
	})
	if err != nil {
		return nil, nil, nil, input, err
	}

	b := quote.Break
	perPiece := b.PerPieceCents
	total := b.TotalCents
	cached := []models.CachedPriceBreak{{
		Quantity:      b.QuantityBreak,
		MeetsMOQ:      true,
		PerPieceCents: &perPiece,
		TotalCents:    &total,
	}}

	echoed := input
	echoed.FrontDecoration = quote.FrontDecoration
	echoed.LeftDecoration = quote.LeftDecoration
	echoed.RightDecoration = quote.RightDecoration
	echoed.BackDecoration = quote.BackDecoration
	echoed.VisorDecoration = nil
	echoed.ShippingSpeed = quote.ShippingSpeed
	echoed.ShippingMethod = ""
	echoed.HatType = ""
	echoed.Addons = nil
	echoed.Accessories = nil
	return cached, &total, &perPiece, echoed, nil
}

func (s *service) computeOverseas(input QuoteInput) ([]models.CachedPriceBreak, *int64, *int64, QuoteInput, error) {
	if input.HatType == "" {
		return nil, nil, nil, input, pkgerrors.New(pkgerrors.CodeValidation, "hat_type is required for overseas quotes")
	}

	quote, err := s.engine.QuoteOverseas(pricing.OverseasRequest{
		HatType:         input.HatType,
		Quantity:        input.Quantity,
		FrontDecoration: input.FrontDecoration,
		LeftDecoration:  input.LeftDecoration,
		RightDecoration: input.RightDecoration,
		BackDecoration:  input.BackDecoration,
		VisorDecoration: input.VisorDecoration,
		Addons:          input.Addons,
		Accessories:     input.Accessories,
		ShippingMethod:  input.ShippingMethod,
	})
	if err != nil {
		return nil, nil, nil, input, err
	}

	cached := make([]models.CachedPriceBreak, 0, len(quote.Breaks))
	for _, brk := range quote.Breaks {
		row := models.CachedPriceBreak{Quantity: brk.QuantityBreak}
		if brk.MeetsMOQ() {
			perPiece := brk.Priced.PerPieceCents
			rowTotal := brk.Priced.TotalCents
			row.MeetsMOQ = true
			row.PerPieceCents = &perPiece
			row.TotalCents = &rowTotal
		}
		cached = append(cached, row)
	}

	var total, perPiece *int64
	if applicable := quote.ApplicableBreak(); applicable != nil {
		t := applicable.Priced.TotalCents
		p := applicable.Priced.PerPieceCents
		total, perPiece = &t, &p
	}

	echoed := input
	echoed.FrontDecoration = quote.FrontDecoration
	echoed.LeftDecoration = quote.LeftDecoration
	echoed.RightDecoration = quote.RightDecoration
	echoed.BackDecoration = quote.BackDecoration
	echoed.VisorDecoration = quote.VisorDecoration
	echoed.ShippingMethod = quote.ShippingMethod
	echoed.ShippingSpeed = ""
	echoed.StyleNumber = ""
	echoed.IncludeRope = false
	echoed.NumDSTFiles = 0
	return cached, total, perPiece, echoed, nil
}

// inputFromRecord reconstructs the pricing configuration from a stored row.
func inputFromRecord(record *models.DesignQuote) QuoteInput {
	return QuoteInput{
		Channel:         record.Channel,
		Quantity:        record.Quantity,
		StyleNumber:     record.StyleNumber,
		HatType:         record.HatType,
		FrontDecoration: optional(record.FrontDecoration),
		LeftDecoration:  optional(record.LeftDecoration),
		RightDecoration: optional(record.RightDecoration),
		BackDecoration:  optional(record.BackDecoration),
		VisorDecoration: optional(record.VisorDecoration),
		ShippingSpeed:   record.ShippingSpeed,
		ShippingMethod:  record.ShippingMethod,
		IncludeRope:     record.IncludeRope,
		NumDSTFiles:     record.NumDSTFiles,
		Addons:          record.Addons,
		Accessories:     record.Accessories,
	}
}

func applyPatch(input *QuoteInput, patch QuotePatch) {
	if patch.Quantity != nil {
		input.Quantity = *patch.Quantity
	}
	if patch.StyleNumber != nil {
		input.StyleNumber = *patch.StyleNumber
	}
	if patch.HatType != nil {
		input.HatType = *patch.HatType
	}
	if patch.FrontDecoration != nil {
		input.FrontDecoration = patch.FrontDecoration
	}
	if patch.LeftDecoration != nil {
		input.LeftDecoration = patch.LeftDecoration
	}
	if patch.RightDecoration != nil {
		input.RightDecoration = patch.RightDecoration
	}
	if patch.BackDecoration != nil {
		input.BackDecoration = patch.BackDecoration
	}
	if patch.VisorDecoration != nil {
		input.VisorDecoration = patch.VisorDecoration
	}
	if patch.ShippingSpeed != nil {
		input.ShippingSpeed = *patch.ShippingSpeed
	}
	if patch.ShippingMethod != nil {
		input.ShippingMethod = *patch.ShippingMethod
	}
	if patch.IncludeRope != nil {
		input.IncludeRope = *patch.IncludeRope
	}
	if patch.NumDSTFiles != nil {
		input.NumDSTFiles = *patch.NumDSTFiles
	}
	if patch.Addons != nil {
		input.Addons = *patch.Addons
	}
	if patch.Accessories != nil {
		input.Accessories = *patch.Accessories
	}
}

func mapNotFound(err error, message string) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
