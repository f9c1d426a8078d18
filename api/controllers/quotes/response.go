package quotes

import (
	"github.com/kingcapco/salesops-backend/internal/pricing"
	"github.com/kingcapco/salesops-backend/pkg/types"
)

// DomesticPriceBreak is the resolved tier with every line item priced.
type DomesticPriceBreak struct {
	QuantityBreak        int         `json:"quantity_break"`
	BlankPrice           types.Money `json:"blank_price"`
	FrontDecorationPrice types.Money `json:"front_decoration_price"`
	LeftDecorationPrice  types.Money `json:"left_decoration_price"`
	RightDecorationPrice types.Money `json:"right_decoration_price"`
	BackDecorationPrice  types.Money `json:"back_decoration_price"`
	RushFee              types.Money `json:"rush_fee"`
	RopePrice            types.Money `json:"rope_price"`
	PerPiecePrice        types.Money `json:"per_piece_price"`
	DigitizingFee        types.Money `json:"digitizing_fee"`
	Subtotal             types.Money `json:"subtotal"`
	Total                types.Money `json:"total"`
}

// DomesticQuoteResponse echoes the normalized configuration plus the single
// resolved price break.
type DomesticQuoteResponse struct {
	StyleNumber     string               `json:"style_number"`
	StyleName       string               `json:"style_name"`
	Collection      string               `json:"collection"`
	Quantity        int                  `json:"quantity"`
	FrontDecoration *string              `json:"front_decoration"`
	LeftDecoration  *string              `json:"left_decoration"`
	RightDecoration *string              `json:"right_decoration"`
	BackDecoration  *string              `json:"back_decoration"`
	ShippingSpeed   string               `json:"shipping_speed"`
	IncludeRope     bool                 `json:"include_rope"`
	NumDSTFiles     int                  `json:"num_dst_files"`
	PriceBreaks     []DomesticPriceBreak `json:"price_breaks"`
}

func newDomesticQuoteResponse(q *pricing.DomesticQuote) DomesticQuoteResponse {
	b := q.Break
	return DomesticQuoteResponse{
		StyleNumber:     q.StyleNumber,
		StyleName:       q.StyleName,
		Collection:      q.Collection,
		Quantity:        q.Quantity,
		FrontDecoration: q.FrontDecoration,
		LeftDecoration:  q.LeftDecoration,
		RightDecoration: q.RightDecoration,
		BackDecoration:  q.BackDecoration,
		ShippingSpeed:   q.ShippingSpeed,
		IncludeRope:     q.IncludeRope,
		NumDSTFiles:     q.NumDSTFiles,
		PriceBreaks: []DomesticPriceBreak{{
			QuantityBreak:        b.QuantityBreak,
			BlankPrice:           types.MoneyFromCents(b.BlankCents),
			FrontDecorationPrice: types.MoneyFromCents(b.FrontCents),
			LeftDecorationPrice:  types.MoneyFromCents(b.LeftCents),
			RightDecorationPrice: types.MoneyFromCents(b.RightCents),
			BackDecorationPrice:  types.MoneyFromCents(b.BackCents),
			RushFee:              types.MoneyFromCents(b.RushFeeCents),
			RopePrice:            types.MoneyFromCents(b.RopeCents),
			PerPiecePrice:        types.MoneyFromCents(b.PerPieceCents),
			DigitizingFee:        types.MoneyFromCents(b.DigitizingCents),
			Subtotal:             types.MoneyFromCents(b.SubtotalCents),
			Total:                types.MoneyFromCents(b.TotalCents),
		}},
	}
}

// OverseasPriceBreak is one tier of the overseas grid. Money fields are null
// when the tier sits below the configuration's effective minimum order
// quantity.
type OverseasPriceBreak struct {
	QuantityBreak        int          `json:"quantity_break"`
	MeetsMOQ             bool         `json:"meets_moq"`
	BlankPrice           *types.Money `json:"blank_price"`
	FrontDecorationPrice *types.Money `json:"front_decoration_price"`
	LeftDecorationPrice  *types.Money `json:"left_decoration_price"`
	RightDecorationPrice *types.Money `json:"right_decoration_price"`
	BackDecorationPrice  *types.Money `json:"back_decoration_price"`
	VisorDecorationPrice *types.Money `json:"visor_decoration_price"`
	AddonsPrice          *types.Money `json:"addons_price"`
	AccessoriesPrice     *types.Money `json:"accessories_price"`
	HatSubtotal          *types.Money `json:"hat_subtotal"`
	ShippingPrice        *types.Money `json:"shipping_price"`
	PerPiecePrice        *types.Money `json:"per_piece_price"`
	Total                *types.Money `json:"total"`
}

// OverseasQuoteResponse echoes the normalized configuration plus every
// published tier.
type OverseasQuoteResponse struct {
	HatType         string               `json:"hat_type"`
	Quantity        int                  `json:"quantity"`
	FrontDecoration *string              `json:"front_decoration"`
	LeftDecoration  *string              `json:"left_decoration"`
	RightDecoration *string              `json:"right_decoration"`
	BackDecoration  *string              `json:"back_decoration"`
	VisorDecoration *string              `json:"visor_decoration"`
	DesignAddons    []string             `json:"design_addons"`
	Accessories     []string             `json:"accessories"`
	ShippingMethod  string               `json:"shipping_method"`
	PriceBreaks     []OverseasPriceBreak `json:"price_breaks"`
}

func newOverseasQuoteResponse(q *pricing.OverseasQuote) OverseasQuoteResponse {
	breaks := make([]OverseasPriceBreak, 0, len(q.Breaks))
	for _, brk := range q.Breaks {
		row := OverseasPriceBreak{QuantityBreak: brk.QuantityBreak}
		if brk.MeetsMOQ() {
			p := brk.Priced
			row.MeetsMOQ = true
			row.BlankPrice = types.NullableMoney(&p.BlankCents)
			row.FrontDecorationPrice = types.NullableMoney(&p.FrontCents)
			row.LeftDecorationPrice = types.NullableMoney(&p.LeftCents)
			row.RightDecorationPrice = types.NullableMoney(&p.RightCents)
			row.BackDecorationPrice = types.NullableMoney(&p.BackCents)
			row.VisorDecorationPrice = types.NullableMoney(&p.VisorCents)
			row.AddonsPrice = types.NullableMoney(&p.AddonsCents)
			row.AccessoriesPrice = types.NullableMoney(&p.AccessoriesCents)
			row.HatSubtotal = types.NullableMoney(&p.HatSubtotalCents)
			row.ShippingPrice = types.NullableMoney(&p.ShippingCents)
			row.PerPiecePrice = types.NullableMoney(&p.PerPieceCents)
			row.Total = types.NullableMoney(&p.TotalCents)
		}
		breaks = append(breaks, row)
	}
	return OverseasQuoteResponse{
		HatType:         q.HatType,
		Quantity:        q.Quantity,
		FrontDecoration: q.FrontDecoration,
		LeftDecoration:  q.LeftDecoration,
		RightDecoration: q.RightDecoration,
		BackDecoration:  q.BackDecoration,
		VisorDecoration: q.VisorDecoration,
		DesignAddons:    q.Addons,
		Accessories:     q.Accessories,
		ShippingMethod:  q.ShippingMethod,
		PriceBreaks:     breaks,
	}
}
