package quotes

import (
	"github.com/kingcapco/salesops-backend/internal/export"
	"github.com/kingcapco/salesops-backend/internal/pricing"
	"github.com/kingcapco/salesops-backend/pkg/enums"
)

// DomesticQuoteRequest is the inline domestic pricing request. DesignNumber
// is a free-form label that only feeds export filenames and headers.
type DomesticQuoteRequest struct {
	StyleNumber     string  `json:"style_number" validate:"required"`
	Quantity        int     `json:"quantity" validate:"required,gt=0"`
	FrontDecoration *string `json:"front_decoration"`
	LeftDecoration  *string `json:"left_decoration"`
	RightDecoration *string `json:"right_decoration"`
	BackDecoration  *string `json:"back_decoration"`
	ShippingSpeed   string  `json:"shipping_speed"`
	IncludeRope     bool    `json:"include_rope"`
	NumDSTFiles     int     `json:"num_dst_files" validate:"gte=0"`
	DesignNumber    string  `json:"design_number"`
}

func (r DomesticQuoteRequest) toEngine() pricing.DomesticRequest {
	return pricing.DomesticRequest{
		StyleNumber:     r.StyleNumber,
		Quantity:        r.Quantity,
		FrontDecoration: r.FrontDecoration,
		LeftDecoration:  r.LeftDecoration,
		RightDecoration: r.RightDecoration,
		BackDecoration:  r.BackDecoration,
		ShippingSpeed:   r.ShippingSpeed,
		IncludeRope:     r.IncludeRope,
		NumDSTFiles:     r.NumDSTFiles,
	}
}

// OverseasQuoteRequest is the inline overseas pricing request.
type OverseasQuoteRequest struct {
	HatType         string   `json:"hat_type" validate:"required"`
	Quantity        int      `json:"quantity" validate:"required,gt=0"`
	FrontDecoration *string  `json:"front_decoration"`
	LeftDecoration  *string  `json:"left_decoration"`
	RightDecoration *string  `json:"right_decoration"`
	BackDecoration  *string  `json:"back_decoration"`
	VisorDecoration *string  `json:"visor_decoration"`
	DesignAddons    []string `json:"design_addons"`
	Accessories     []string `json:"accessories"`
	ShippingMethod  string   `json:"shipping_method"`
	DesignNumber    string   `json:"design_number"`
}

func (r OverseasQuoteRequest) toEngine() pricing.OverseasRequest {
	return pricing.OverseasRequest{
		HatType:         r.HatType,
		Quantity:        r.Quantity,
		FrontDecoration: r.FrontDecoration,
		LeftDecoration:  r.LeftDecoration,
		RightDecoration: r.RightDecoration,
		BackDecoration:  r.BackDecoration,
		VisorDecoration: r.VisorDecoration,
		Addons:          r.DesignAddons,
		Accessories:     r.Accessories,
		ShippingMethod:  r.ShippingMethod,
	}
}

// SheetQuoteItem is one design on a combined quote sheet. Exactly one of
// Domestic or Overseas must be set, matching Type.
type SheetQuoteItem struct {
	DesignNumber string                `json:"design_number" validate:"required"`
	Type         string                `json:"type" validate:"required,oneof=domestic overseas"`
	Domestic     *DomesticQuoteRequest `json:"domestic,omitempty"`
	Overseas     *OverseasQuoteRequest `json:"overseas,omitempty"`
}

// QuoteSheetExportRequest asks for a combined workbook over several designs.
type QuoteSheetExportRequest struct {
	Quotes []SheetQuoteItem `json:"quotes" validate:"required,min=1,dive"`
}

func (r QuoteSheetExportRequest) toExport() []export.SheetQuote {
	items := make([]export.SheetQuote, 0, len(r.Quotes))
	for _, q := range r.Quotes {
		item := export.SheetQuote{
			DesignNumber: q.DesignNumber,
			Channel:      enums.QuoteChannel(q.Type),
		}
		if q.Domestic != nil {
			req := q.Domestic.toEngine()
			item.Domestic = &req
		}
		if q.Overseas != nil {
			req := q.Overseas.toEngine()
			item.Overseas = &req
		}
		items = append(items, item)
	}
	return items
}
