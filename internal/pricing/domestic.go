package pricing

// QuoteDomestic validates the request, resolves the single applicable tier,
// and prices every line at that tier. It never returns a partial quote: any
// validation failure or missing table entry aborts the whole computation.
func (e *Engine) QuoteDomestic(req DomesticRequest) (*DomesticQuote, error) {
	table := &e.table.Domestic

	style, ok := table.Styles[req.StyleNumber]
	if !ok {
		return nil, errInvalid("unknown style number %q", req.StyleNumber)
	}
	if minimum := table.Breaks[0]; req.Quantity < minimum {
		return nil, errInvalid("quantity %d is below the domestic minimum of %d", req.Quantity, minimum)
	}
	if req.NumDSTFiles < 0 {
		return nil, errInvalid("num_dst_files must not be negative")
	}
	speed := req.ShippingSpeed
	if speed == "" {
		speed = ShippingSpeedStandard
	}
	rushFee, ok := table.RushFees[speed]
	if !ok {
		return nil, errInvalid("unknown shipping speed %q", speed)
	}

	front := normalizeDecoration(req.FrontDecoration)
	left := normalizeDecoration(req.LeftDecoration)
	right := normalizeDecoration(req.RightDecoration)
	back := normalizeDecoration(req.BackDecoration)

	brk := resolveDomesticBreak(table.Breaks, req.Quantity)

	blank, ok := table.BlankPrices[req.StyleNumber][brk]
	if !ok {
		return nil, errDataMissing("no blank price for style %q at break %d", req.StyleNumber, brk)
	}

	frontCents, err := e.domesticDecorationPrice(table.FrontDecorations, front, "front", brk)
	if err != nil {
		return nil, err
	}
	leftCents, err := e.domesticDecorationPrice(table.AdditionalDecorations, left, "left", brk)
	if err != nil {
		return nil, err
	}
	rightCents, err := e.domesticDecorationPrice(table.AdditionalDecorations, right, "right", brk)
	if err != nil {
		return nil, err
	}
	backCents, err := e.domesticDecorationPrice(table.AdditionalDecorations, back, "back", brk)
	if err != nil {
		return nil, err
	}

	var ropeCents int64
	if req.IncludeRope {
		ropeCents = table.RopeCents
	}

	// The waiver zeroes the fee after it is computed, so a bad per-file rate
	// still trips table validation rather than hiding behind large orders.
	digitizing := table.Digitizing.PerFileCents * int64(req.NumDSTFiles)
	if req.Quantity >= table.Digitizing.WaivedAtQuantity {
		digitizing = 0
	}

	perPiece := blank + frontCents + leftCents + rightCents + backCents + rushFee + ropeCents
	subtotal := perPiece * int64(req.Quantity)
	total := subtotal + digitizing

	return &DomesticQuote{
		StyleNumber:     style.Number,
		StyleName:       style.Name,
		Collection:      style.Collection,
		Quantity:        req.Quantity,
		FrontDecoration: front,
		LeftDecoration:  left,
		RightDecoration: right,
		BackDecoration:  back,
		ShippingSpeed:   speed,
		IncludeRope:     req.IncludeRope,
		NumDSTFiles:     req.NumDSTFiles,
		Break: DomesticBreak{
			QuantityBreak:   brk,
			BlankCents:      blank,
			FrontCents:      frontCents,
			LeftCents:       leftCents,
			RightCents:      rightCents,
			BackCents:       backCents,
			RushFeeCents:    rushFee,
			RopeCents:       ropeCents,
			PerPieceCents:   perPiece,
			DigitizingCents: digitizing,
			SubtotalCents:   subtotal,
			TotalCents:      total,
		},
	}, nil
}

func (e *Engine) domesticDecorationPrice(methods map[string]PriceByBreak, method *string, slot string, brk int) (int64, error) {
	if method == nil {
		return 0, nil
	}
	prices, ok := methods[*method]
	if !ok {
		return 0, errInvalid("unknown %s decoration method %q", slot, *method)
	}
	cents, ok := prices[brk]
	if !ok {
		return 0, errDataMissing("no %s decoration price for %q at break %d", slot, *method, brk)
	}
	return cents, nil
}
