package designquotes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kingcapco/salesops-backend/pkg/db/models"
	"gorm.io/gorm"
)

// QuoteRepository exposes persistence operations for designs and their quotes.
type QuoteRepository interface {
	WithTx(tx *gorm.DB) QuoteRepository
	CreateDesign(ctx context.Context, design *models.Design) (*models.Design, error)
	FindDesignByID(ctx context.Context, id uuid.UUID) (*models.Design, error)
	ListDesigns(ctx context.Context, limit, offset int) ([]models.Design, error)
	DeleteDesign(ctx context.Context, id uuid.UUID) error
	UpsertQuote(ctx context.Context, quote *models.DesignQuote) (*models.DesignQuote, error)
	FindQuoteByDesignID(ctx context.Context, designID uuid.UUID) (*models.DesignQuote, error)
	DeleteQuoteByDesignID(ctx context.Context, designID uuid.UUID) error
}

// Repository is the GORM-backed QuoteRepository.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) QuoteRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreateDesign inserts a new design record.
func (r *Repository) CreateDesign(ctx context.Context, design *models.Design) (*models.Design, error) {
	if design.ID == uuid.Nil {
		design.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(design).Error; err != nil {
		return nil, err
	}
	return design, nil
}

// FindDesignByID loads one design.
func (r *Repository) FindDesignByID(ctx context.Context, id uuid.UUID) (*models.Design, error) {
	var design models.Design
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&design).Error
	if err != nil {
		return nil, err
	}
	return &design, nil
}

// ListDesigns returns designs newest first.
func (r *Repository) ListDesigns(ctx context.Context, limit, offset int) ([]models.Design, error) {
	var designs []models.Design
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&designs).Error
	if err != nil {
		return nil, err
	}
	return designs, nil
}

// DeleteDesign removes a design and its quote. The FK cascades in Postgres;
// the explicit quote delete keeps sqlite test databases consistent too.
func (r *Repository) DeleteDesign(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("design_id = ?", id).Delete(&models.DesignQuote{}).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Design{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertQuote inserts the quote, or overwrites the existing row for the same
// design while keeping its ID.
func (r *Repository) UpsertQuote(ctx context.Context, quote *models.DesignQuote) (*models.DesignQuote, error) {
	existing, err := r.FindQuoteByDesignID(ctx, quote.DesignID)
	switch {
	case err == nil:
		quote.ID = existing.ID
		quote.CreatedAt = existing.CreatedAt
	case errors.Is(err, gorm.ErrRecordNotFound):
		if quote.ID == uuid.Nil {
			quote.ID = uuid.New()
		}
	default:
		return nil, err
	}
	if err := r.db.WithContext(ctx).Save(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

// FindQuoteByDesignID loads the quote attached to a design.
func (r *Repository) FindQuoteByDesignID(ctx context.Context, designID uuid.UUID) (*models.DesignQuote, error) {
	var quote models.DesignQuote
	err := r.db.WithContext(ctx).Where("design_id = ?", designID).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// DeleteQuoteByDesignID removes the quote attached to a design.
func (r *Repository) DeleteQuoteByDesignID(ctx context.Context, designID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("design_id = ?", designID).Delete(&models.DesignQuote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
