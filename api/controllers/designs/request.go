package designs

import (
	"github.com/kingcapco/salesops-backend/internal/designquotes"
	"github.com/kingcapco/salesops-backend/pkg/enums"
)

// CreateDesignRequest registers a new design record.
type CreateDesignRequest struct {
	Name         string `json:"name" validate:"required"`
	CustomerName string `json:"customer_name"`
	Notes        string `json:"notes"`
}

func (r CreateDesignRequest) toInput() designquotes.CreateDesignInput {
	return designquotes.CreateDesignInput{
		Name:         r.Name,
		CustomerName: r.CustomerName,
		Notes:        r.Notes,
	}
}

// QuoteRequest is the full pricing configuration saved against a design. The
// channel decides which of the style/hat-type fields applies.
type QuoteRequest struct {
	Channel         string   `json:"channel" validate:"required,oneof=domestic overseas"`
	Quantity        int      `json:"quantity" validate:"required,gt=0"`
	StyleNumber     string   `json:"style_number"`
	HatType         string   `json:"hat_type"`
	FrontDecoration *string  `json:"front_decoration"`
	LeftDecoration  *string  `json:"left_decoration"`
	RightDecoration *string  `json:"right_decoration"`
	BackDecoration  *string  `json:"back_decoration"`
	VisorDecoration *string  `json:"visor_decoration"`
	ShippingSpeed   string   `json:"shipping_speed"`
	ShippingMethod  string   `json:"shipping_method"`
	IncludeRope     bool     `json:"include_rope"`
	NumDSTFiles     int      `json:"num_dst_files" validate:"gte=0"`
	DesignAddons    []string `json:"design_addons"`
	Accessories     []string `json:"accessories"`
}

func (r QuoteRequest) toInput() designquotes.QuoteInput {
	return designquotes.QuoteInput{
		Channel:         enums.QuoteChannel(r.Channel),
		Quantity:        r.Quantity,
		StyleNumber:     r.StyleNumber,
		HatType:         r.HatType,
		FrontDecoration: r.FrontDecoration,
		LeftDecoration:  r.LeftDecoration,
		RightDecoration: r.RightDecoration,
		BackDecoration:  r.BackDecoration,
		VisorDecoration: r.VisorDecoration,
		ShippingSpeed:   r.ShippingSpeed,
		ShippingMethod:  r.ShippingMethod,
		IncludeRope:     r.IncludeRope,
		NumDSTFiles:     r.NumDSTFiles,
		Addons:          r.DesignAddons,
		Accessories:     r.Accessories,
	}
}

// QuotePatchRequest carries partial updates. Absent fields leave the stored
// configuration untouched; decoration slots clear with "" or "0".
type QuotePatchRequest struct {
	Quantity        *int      `json:"quantity" validate:"omitempty,gt=0"`
	StyleNumber     *string   `json:"style_number"`
	HatType         *string   `json:"hat_type"`
	FrontDecoration *string   `json:"front_decoration"`
	LeftDecoration  *string   `json:"left_decoration"`
	RightDecoration *string   `json:"right_decoration"`
	BackDecoration  *string   `json:"back_decoration"`
	VisorDecoration *string   `json:"visor_decoration"`
	ShippingSpeed   *string   `json:"shipping_speed"`
	ShippingMethod  *string   `json:"shipping_method"`
	IncludeRope     *bool     `json:"include_rope"`
	NumDSTFiles     *int      `json:"num_dst_files" validate:"omitempty,gte=0"`
	DesignAddons    *[]string `json:"design_addons"`
	Accessories     *[]string `json:"accessories"`
}

func (r QuotePatchRequest) toPatch() designquotes.QuotePatch {
	return designquotes.QuotePatch{
		Quantity:        r.Quantity,
		StyleNumber:     r.StyleNumber,
		HatType:         r.HatType,
		FrontDecoration: r.FrontDecoration,
		LeftDecoration:  r.LeftDecoration,
		RightDecoration: r.RightDecoration,
		BackDecoration:  r.BackDecoration,
		VisorDecoration: r.VisorDecoration,
		ShippingSpeed:   r.ShippingSpeed,
		ShippingMethod:  r.ShippingMethod,
		IncludeRope:     r.IncludeRope,
		NumDSTFiles:     r.NumDSTFiles,
		Addons:          r.DesignAddons,
		Accessories:     r.Accessories,
	}
}
