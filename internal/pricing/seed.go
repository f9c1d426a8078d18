package pricing

// Shipping speeds offered on the domestic channel. The standard speed carries
// no rush fee.
const (
	ShippingSpeedStandard = "Standard (5-7 Production Days)"
	ShippingSpeedRush     = "Rush (3-4 Production Days)"
	ShippingSpeedExpress  = "Express (1-2 Production Days)"
)

// DefaultShippingMethod is the overseas default when the caller leaves the
// method unset.
const DefaultShippingMethod = "FOB CA"

// Default returns the current published rate book. Prices are wholesale USD
// cents per piece unless noted. Rate changes ship as a new revision of this
// table; nothing mutates it at runtime.
func Default() *RateTable {
	return &RateTable{
		Domestic: DomesticTable{
			Breaks: []int{24, 144, 288, 576, 1008, 5040},
			Styles: map[string]Style{
				"ST100": {Number: "ST100", Name: "Structured Snapback", Collection: "Core"},
				"ST250": {Number: "ST250", Name: "Unstructured Dad Hat", Collection: "Core"},
				"ST360": {Number: "ST360", Name: "Mesh-Back Trucker", Collection: "Performance"},
				"ST410": {Number: "ST410", Name: "5-Panel Camper", Collection: "Performance"},
			},
			BlankPrices: map[string]PriceByBreak{
				"ST100": {24: 925, 144: 845, 288: 795, 576: 745, 1008: 695, 5040: 625},
				"ST250": {24: 875, 144: 795, 288: 750, 576: 705, 1008: 655, 5040: 590},
				"ST360": {24: 950, 144: 870, 288: 820, 576: 765, 1008: 715, 5040: 645},
				"ST410": {24: 995, 144: 915, 288: 860, 576: 805, 1008: 750, 5040: 680},
			},
			FrontDecorations: map[string]PriceByBreak{
				"Embroidery":    {24: 350, 144: 285, 288: 250, 576: 215, 1008: 185, 5040: 150},
				"3D Embroidery": {24: 475, 144: 395, 288: 350, 576: 305, 1008: 265, 5040: 220},
				"Leather Patch": {24: 425, 144: 360, 288: 320, 576: 280, 1008: 245, 5040: 205},
				"Woven Patch":   {24: 395, 144: 330, 288: 290, 576: 255, 1008: 220, 5040: 185},
				"Screen Print":  {24: 295, 144: 235, 288: 205, 576: 175, 1008: 150, 5040: 120},
			},
			AdditionalDecorations: map[string]PriceByBreak{
				"Embroidery":   {24: 225, 144: 185, 288: 165, 576: 145, 1008: 125, 5040: 100},
				"Screen Print": {24: 185, 144: 150, 288: 130, 576: 112, 1008: 95, 5040: 75},
				"Woven Patch":  {24: 265, 144: 220, 288: 195, 576: 170, 1008: 148, 5040: 120},
			},
			RushFees: map[string]int64{
				ShippingSpeedStandard: 0,
				ShippingSpeedRush:     150,
				ShippingSpeedExpress:  300,
			},
			RopeCents: 100,
			Digitizing: DigitizingRates{
				PerFileCents:     800,
				WaivedAtQuantity: 144,
			},
		},
		Overseas: OverseasTable{
			Breaks: []int{144, 288, 576, 1008, 2880, 5040},
			HatTypes: map[string]HatTypeRates{
				"Basic": {
					MinQuantity: 144,
					BlankPrices: PriceByBreak{144: 310, 288: 285, 576: 262, 1008: 240, 2880: 215, 5040: 195},
				},
				"Classic": {
					MinQuantity: 144,
					BlankPrices: PriceByBreak{144: 340, 288: 312, 576: 288, 1008: 264, 2880: 238, 5040: 215},
				},
				"Comfort": {
					MinQuantity: 144,
					BlankPrices: PriceByBreak{144: 372, 288: 342, 576: 315, 1008: 290, 2880: 260, 5040: 236},
				},
				"Sport": {
					MinQuantity: 288,
					BlankPrices: PriceByBreak{288: 398, 576: 366, 1008: 337, 2880: 303, 5040: 275},
				},
			},
			Decorations: map[string]OptionRates{
				"Embroidery": {
					MinQuantity: 144,
					Prices:      PriceByBreak{144: 95, 288: 85, 576: 76, 1008: 68, 2880: 58, 5040: 50},
				},
				"3D Embroidery": {
					MinQuantity: 288,
					Prices:      PriceByBreak{288: 130, 576: 116, 1008: 104, 2880: 89, 5040: 78},
				},
				"Woven Label": {
					MinQuantity: 144,
					Prices:      PriceByBreak{144: 70, 288: 62, 576: 55, 1008: 49, 2880: 42, 5040: 36},
				},
				"Heat Transfer": {
					MinQuantity: 144,
					Prices:      PriceByBreak{144: 55, 288: 48, 576: 42, 1008: 37, 2880: 31, 5040: 26},
				},
				"Screen Print": {
					MinQuantity: 576,
					Prices:      PriceByBreak{576: 38, 1008: 33, 2880: 27, 5040: 22},
				},
			},
			Addons: map[string]OptionRates{
				"Inner Taping": {
					MinQuantity: 144,
					Prices:      PriceByBreak{144: 45, 288: 40, 576: 35, 1008: 31, 2880: 26, 5040: 22},
				},
				"Custom Woven Label": {
					MinQuantity: 288,
					Prices:      PriceByBreak{288: 55, 576: 48, 1008: 42, 2880: 35, 5040: 30},
				},
				"Hang Tag": {
					MinQuantity: 144,
					Prices:      PriceByBreak{144: 30, 288: 26, 576: 23, 1008: 20, 2880: 17, 5040: 14},
				},
				"UV Coating": {
					MinQuantity: 1008,
					Prices:      PriceByBreak{1008: 60, 2880: 50, 5040: 42},
				},
			},
			Accessories: map[string]OptionRates{
				"Polybag": {
					MinQuantity: 144,
					Prices:      PriceByBreak{144: 12, 288: 10, 576: 9, 1008: 8, 2880: 6, 5040: 5},
				},
				"Sticker Sheet": {
					MinQuantity: 144,
					Prices:      PriceByBreak{144: 25, 288: 22, 576: 19, 1008: 17, 2880: 14, 5040: 12},
				},
				"Gift Box": {
					MinQuantity: 576,
					Prices:      PriceByBreak{576: 85, 1008: 74, 2880: 62, 5040: 53},
				},
			},
			Shipping: map[string]ShippingRates{
				"FOB CA": {
					MinQuantity: 288,
					Prices:      PriceByBreak{288: 45, 576: 38, 1008: 32, 2880: 26, 5040: 22},
				},
				"Air Express": {
					MinQuantity: 144,
					Prices:      PriceByBreak{144: 185, 288: 165, 576: 148, 1008: 132, 2880: 112, 5040: 98},
				},
				"Ocean Freight": {
					MinQuantity: 1008,
					Prices:      PriceByBreak{1008: 18, 2880: 14, 5040: 11},
				},
			},
		},
	}
}
