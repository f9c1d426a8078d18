package pricing

// StyleOption is one domestic catalog entry as exposed to clients.
type StyleOption struct {
	StyleNumber string `json:"style_number"`
	Name        string `json:"name"`
	Collection  string `json:"collection"`
}

// DomesticOptions enumerates every valid domestic form choice.
type DomesticOptions struct {
	QuantityBreaks              []int         `json:"quantity_breaks"`
	MinimumQuantity             int           `json:"minimum_quantity"`
	Styles                      []StyleOption `json:"styles"`
	FrontDecorationMethods      []string      `json:"front_decoration_methods"`
	AdditionalDecorationMethods []string      `json:"additional_decoration_methods"`
	ShippingSpeeds              []string      `json:"shipping_speeds"`
}

// OverseasOptions enumerates every valid overseas form choice.
type OverseasOptions struct {
	QuantityBreaks    []int    `json:"quantity_breaks"`
	MinimumQuantity   int      `json:"minimum_quantity"`
	HatTypes          []string `json:"hat_types"`
	DecorationMethods []string `json:"decoration_methods"`
	DesignAddons      []string `json:"design_addons"`
	Accessories       []string `json:"accessories"`
	ShippingMethods   []string `json:"shipping_methods"`
}

// Options is the full option catalog driving client forms and validation.
type Options struct {
	Domestic DomesticOptions `json:"domestic"`
	Overseas OverseasOptions `json:"overseas"`
}

// Options enumerates the engine's rate table in a stable (sorted) order.
func (e *Engine) Options() Options {
	domestic := &e.table.Domestic
	overseas := &e.table.Overseas

	styles := make([]StyleOption, 0, len(domestic.Styles))
	for _, number := range sortedKeys(domestic.Styles) {
		style := domestic.Styles[number]
		styles = append(styles, StyleOption{
			StyleNumber: style.Number,
			Name:        style.Name,
			Collection:  style.Collection,
		})
	}

	return Options{
		Domestic: DomesticOptions{
			QuantityBreaks:              append([]int(nil), domestic.Breaks...),
			MinimumQuantity:             domestic.Breaks[0],
			Styles:                      styles,
			FrontDecorationMethods:      sortedKeys(domestic.FrontDecorations),
			AdditionalDecorationMethods: sortedKeys(domestic.AdditionalDecorations),
			ShippingSpeeds:              sortedKeys(domestic.RushFees),
		},
		Overseas: OverseasOptions{
			QuantityBreaks:    append([]int(nil), overseas.Breaks...),
			MinimumQuantity:   overseas.Breaks[0],
			HatTypes:          sortedKeys(overseas.HatTypes),
			DecorationMethods: sortedKeys(overseas.Decorations),
			DesignAddons:      sortedKeys(overseas.Addons),
			Accessories:       sortedKeys(overseas.Accessories),
			ShippingMethods:   sortedKeys(overseas.Shipping),
		},
	}
}
