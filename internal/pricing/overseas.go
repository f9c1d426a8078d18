package pricing

// QuoteOverseas validates the request and prices every published tier. Tiers
// below the configuration's effective MOQ come back unpriced; tiers at or
// above it must price completely or the whole computation fails.
func (e *Engine) QuoteOverseas(req OverseasRequest) (*OverseasQuote, error) {
	table := &e.table.Overseas

	hatType, ok := table.HatTypes[req.HatType]
	if !ok {
		return nil, errInvalid("unknown hat type %q", req.HatType)
	}
	if minimum := table.Breaks[0]; req.Quantity < minimum {
		return nil, errInvalid("quantity %d is below the overseas minimum of %d", req.Quantity, minimum)
	}
	method := req.ShippingMethod
	if method == "" {
		method = DefaultShippingMethod
	}
	shipping, ok := table.Shipping[method]
	if !ok {
		return nil, errInvalid("unknown shipping method %q", method)
	}

	front := normalizeDecoration(req.FrontDecoration)
	left := normalizeDecoration(req.LeftDecoration)
	right := normalizeDecoration(req.RightDecoration)
	back := normalizeDecoration(req.BackDecoration)
	visor := normalizeDecoration(req.VisorDecoration)

	decorations := make([]*string, 0, 5)
	for _, slot := range []*string{front, left, right, back, visor} {
		if slot != nil {
			decorations = append(decorations, slot)
		}
	}

	// Effective MOQ is the strictest minimum across the hat type, the
	// shipping method, and every selected option.
	moq := hatType.MinQuantity
	if shipping.MinQuantity > moq {
		moq = shipping.MinQuantity
	}
	for _, slot := range decorations {
		opt, ok := table.Decorations[*slot]
		if !ok {
			return nil, errInvalid("unknown decoration method %q", *slot)
		}
		if opt.MinQuantity > moq {
			moq = opt.MinQuantity
		}
	}
	for _, name := range req.Addons {
		opt, ok := table.Addons[name]
		if !ok {
			return nil, errInvalid("unknown design add-on %q", name)
		}
		if opt.MinQuantity > moq {
			moq = opt.MinQuantity
		}
	}
	for _, name := range req.Accessories {
		opt, ok := table.Accessories[name]
		if !ok {
			return nil, errInvalid("unknown accessory %q", name)
		}
		if opt.MinQuantity > moq {
			moq = opt.MinQuantity
		}
	}

	breaks := make([]OverseasBreak, 0, len(table.Breaks))
	for _, brk := range table.Breaks {
		if brk < moq {
			breaks = append(breaks, OverseasBreak{QuantityBreak: brk})
			continue
		}

		priced, err := e.priceOverseasBreak(table, hatType, shipping, req, decorationSlots{
			front: front, left: left, right: right, back: back, visor: visor,
		}, brk)
		if err != nil {
			return nil, err
		}
		breaks = append(breaks, OverseasBreak{QuantityBreak: brk, Priced: priced})
	}

	return &OverseasQuote{
		HatType:         req.HatType,
		Quantity:        req.Quantity,
		FrontDecoration: front,
		LeftDecoration:  left,
		RightDecoration: right,
		BackDecoration:  back,
		VisorDecoration: visor,
		Addons:          req.Addons,
		Accessories:     req.Accessories,
		ShippingMethod:  method,
		Breaks:          breaks,
	}, nil
}

type decorationSlots struct {
	front, left, right, back, visor *string
}

func (e *Engine) priceOverseasBreak(table *OverseasTable, hatType HatTypeRates, shipping ShippingRates, req OverseasRequest, slots decorationSlots, brk int) (*PricedBreak, error) {
	blank, ok := hatType.BlankPrices[brk]
	if !ok {
		return nil, errDataMissing("no blank price for hat type %q at break %d", req.HatType, brk)
	}

	frontCents, err := e.overseasDecorationPrice(table, slots.front, "front", brk)
	if err != nil {
		return nil, err
	}
	leftCents, err := e.overseasDecorationPrice(table, slots.left, "left", brk)
	if err != nil {
		return nil, err
	}
	rightCents, err := e.overseasDecorationPrice(table, slots.right, "right", brk)
	if err != nil {
		return nil, err
	}
	backCents, err := e.overseasDecorationPrice(table, slots.back, "back", brk)
	if err != nil {
		return nil, err
	}
	visorCents, err := e.overseasDecorationPrice(table, slots.visor, "visor", brk)
	if err != nil {
		return nil, err
	}

	var addonsCents int64
	for _, name := range req.Addons {
		cents, ok := table.Addons[name].Prices[brk]
		if !ok {
			return nil, errDataMissing("no price for add-on %q at break %d", name, brk)
		}
		addonsCents += cents
	}

	var accessoriesCents int64
	for _, name := range req.Accessories {
		cents, ok := table.Accessories[name].Prices[brk]
		if !ok {
			return nil, errDataMissing("no price for accessory %q at break %d", name, brk)
		}
		accessoriesCents += cents
	}

	shippingCents, ok := shipping.Prices[brk]
	if !ok {
		return nil, errDataMissing("no shipping price for %q at break %d", req.ShippingMethod, brk)
	}

	hatSubtotal := blank + frontCents + leftCents + rightCents + backCents + visorCents + addonsCents + accessoriesCents
	perPiece := hatSubtotal + shippingCents
	total := perPiece * int64(req.Quantity)

	return &PricedBreak{
		BlankCents:       blank,
		FrontCents:       frontCents,
		LeftCents:        leftCents,
		RightCents:       rightCents,
		BackCents:        backCents,
		VisorCents:       visorCents,
		AddonsCents:      addonsCents,
		AccessoriesCents: accessoriesCents,
		HatSubtotalCents: hatSubtotal,
		ShippingCents:    shippingCents,
		PerPieceCents:    perPiece,
		TotalCents:       total,
	}, nil
}

func (e *Engine) overseasDecorationPrice(table *OverseasTable, method *string, slot string, brk int) (int64, error) {
	if method == nil {
		return 0, nil
	}
	cents, ok := table.Decorations[*method].Prices[brk]
	if !ok {
		return 0, errDataMissing("no %s decoration price for %q at break %d", slot, *method, brk)
	}
	return cents, nil
}
