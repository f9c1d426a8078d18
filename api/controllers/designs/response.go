package designs

import (
	"time"

	"github.com/google/uuid"

	"github.com/kingcapco/salesops-backend/pkg/db/models"
	"github.com/kingcapco/salesops-backend/pkg/types"
)

// DesignResponse is the API shape of a design record.
type DesignResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CustomerName string    `json:"customer_name"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newDesignResponse(d *models.Design) DesignResponse {
	return DesignResponse{
		ID:           d.ID,
		Name:         d.Name,
		CustomerName: d.CustomerName,
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func newDesignListResponse(designs []models.Design) []DesignResponse {
	out := make([]DesignResponse, 0, len(designs))
	for i := range designs {
		out = append(out, newDesignResponse(&designs[i]))
	}
	return out
}

// CachedPriceBreakResponse is one snapshot tier from the saved quote. Money
// fields are null below the effective minimum order quantity.
type CachedPriceBreakResponse struct {
	Quantity      int          `json:"quantity"`
	MeetsMOQ      bool         `json:"meets_moq"`
	PerPiecePrice *types.Money `json:"per_piece_price"`
	Total         *types.Money `json:"total"`
}

// DesignQuoteResponse echoes the stored configuration plus the cached
// pricing snapshot.
type DesignQuoteResponse struct {
	ID       uuid.UUID `json:"id"`
	DesignID uuid.UUID `json:"design_id"`
	Channel  string    `json:"channel"`
	Quantity int       `json:"quantity"`

	StyleNumber     string  `json:"style_number,omitempty"`
	HatType         string  `json:"hat_type,omitempty"`
	FrontDecoration *string `json:"front_decoration"`
	LeftDecoration  *string `json:"left_decoration"`
	RightDecoration *string `json:"right_decoration"`
	BackDecoration  *string `json:"back_decoration"`
	VisorDecoration *string `json:"visor_decoration"`

	ShippingSpeed  string   `json:"shipping_speed,omitempty"`
	ShippingMethod string   `json:"shipping_method,omitempty"`
	IncludeRope    bool     `json:"include_rope"`
	NumDSTFiles    int      `json:"num_dst_files"`
	DesignAddons   []string `json:"design_addons"`
	Accessories    []string `json:"accessories"`

	CachedPriceBreaks []CachedPriceBreakResponse `json:"cached_price_breaks"`
	CachedPerPiece    *types.Money               `json:"cached_per_piece"`
	CachedTotal       *types.Money               `json:"cached_total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newDesignQuoteResponse(q *models.DesignQuote) DesignQuoteResponse {
	breaks := make([]CachedPriceBreakResponse, 0, len(q.CachedPriceBreaks))
	for _, b := range q.CachedPriceBreaks {
		breaks = append(breaks, CachedPriceBreakResponse{
			Quantity:      b.Quantity,
			MeetsMOQ:      b.MeetsMOQ,
			PerPiecePrice: types.NullableMoney(b.PerPieceCents),
			Total:         types.NullableMoney(b.TotalCents),
		})
	}
	return DesignQuoteResponse{
		ID:                q.ID,
		DesignID:          q.DesignID,
		Channel:           q.Channel.String(),
		Quantity:          q.Quantity,
		StyleNumber:       q.StyleNumber,
		HatType:           q.HatType,
		FrontDecoration:   optional(q.FrontDecoration),
		LeftDecoration:    optional(q.LeftDecoration),
		RightDecoration:   optional(q.RightDecoration),
		BackDecoration:    optional(q.BackDecoration),
		VisorDecoration:   optional(q.VisorDecoration),
		ShippingSpeed:     q.ShippingSpeed,
		ShippingMethod:    q.ShippingMethod,
		IncludeRope:       q.IncludeRope,
		NumDSTFiles:       q.NumDSTFiles,
		DesignAddons:      q.Addons,
		Accessories:       q.Accessories,
		CachedPriceBreaks: breaks,
		CachedPerPiece:    types.NullableMoney(q.CachedPerPiece),
		CachedTotal:       types.NullableMoney(q.CachedTotalCents),
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
