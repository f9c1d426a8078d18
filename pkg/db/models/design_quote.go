package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kingcapco/salesops-backend/pkg/enums"
)

// CachedPriceBreak is one quantity break snapshot stored alongside a saved
// quote. Nil cents mean the break did not meet the minimum order quantity at
// the time the quote was computed.
type CachedPriceBreak struct {
	Quantity      int    `json:"quantity"`
	MeetsMOQ      bool   `json:"meets_moq"`
	PerPieceCents *int64 `json:"per_piece_cents"`
	TotalCents    *int64 `json:"total_cents"`
}

// DesignQuote is the saved pricing configuration for a design, one per design.
// Money columns hold integer cents; formatting happens at the API boundary.
type DesignQuote struct {
	ID       uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DesignID uuid.UUID          `gorm:"column:design_id;type:uuid;not null;uniqueIndex:uniq_design_quotes_design_id"`
	Channel  enums.QuoteChannel `gorm:"column:channel;not null"`
	Quantity int                `gorm:"column:quantity;not null"`

	StyleNumber     string `gorm:"column:style_number;not null"`
	HatType         string `gorm:"column:hat_type;not null"`
	FrontDecoration string `gorm:"column:front_decoration"`
	LeftDecoration  string `gorm:"column:left_decoration"`
	RightDecoration string `gorm:"column:right_decoration"`
	BackDecoration  string `gorm:"column:back_decoration"`
	VisorDecoration string `gorm:"column:visor_decoration"`

	ShippingSpeed  string `gorm:"column:shipping_speed"`
	ShippingMethod string `gorm:"column:shipping_method"`
	IncludeRope    bool   `gorm:"column:include_rope;not null;default:false"`
	NumDSTFiles    int    `gorm:"column:num_dst_files;not null;default:0"`

	Addons      []string `gorm:"column:addons;type:jsonb;serializer:json"`
	Accessories []string `gorm:"column:accessories;type:jsonb;serializer:json"`

	CachedPriceBreaks []CachedPriceBreak `gorm:"column:cached_price_breaks;type:jsonb;serializer:json"`
	CachedTotalCents  *int64             `gorm:"column:cached_total_cents"`
	CachedPerPiece    *int64             `gorm:"column:cached_per_piece_cents"`

	CreatedByID uuid.UUID `gorm:"column:created_by_id;type:uuid;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
