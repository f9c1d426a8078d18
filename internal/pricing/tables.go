package pricing

import (
	"fmt"
	"sort"
)

// PriceByBreak maps a quantity break to a unit price in cents. A break absent
// from the map has no published price at that tier.
type PriceByBreak map[int]int64

// Style is one domestic catalog entry.
type Style struct {
	Number     string
	Name       string
	Collection string
}

// OptionRates prices a selectable option (decoration method, add-on,
// accessory) per quantity break. MinQuantity is the option's MOQ: breaks below
// it are quoted as "does not meet MOQ" rather than priced.
type OptionRates struct {
	MinQuantity int
	Prices      PriceByBreak
}

// HatTypeRates prices an overseas hat type.
type HatTypeRates struct {
	MinQuantity int
	BlankPrices PriceByBreak
}

// ShippingRates prices an overseas shipping method per break.
type ShippingRates struct {
	MinQuantity int
	Prices      PriceByBreak
}

// DigitizingRates drives the one-time embroidery digitizing charge.
type DigitizingRates struct {
	PerFileCents     int64
	WaivedAtQuantity int
}

// DomesticTable is the domestic channel's reference data.
type DomesticTable struct {
	Breaks                []int
	Styles                map[string]Style
	BlankPrices           map[string]PriceByBreak
	FrontDecorations      map[string]PriceByBreak
	AdditionalDecorations map[string]PriceByBreak
	RushFees              map[string]int64
	RopeCents             int64
	Digitizing            DigitizingRates
}

// OverseasTable is the overseas channel's reference data. One decoration
// table applies uniformly to every location including the visor.
type OverseasTable struct {
	Breaks      []int
	HatTypes    map[string]HatTypeRates
	Decorations map[string]OptionRates
	Addons      map[string]OptionRates
	Accessories map[string]OptionRates
	Shipping    map[string]ShippingRates
}

// RateTable is the full immutable rate book. It is loaded once at process
// start and injected into the engine; hot reloads must swap the whole
// pointer, never mutate in place.
type RateTable struct {
	Domestic DomesticTable
	Overseas OverseasTable
}

// Validate checks structural integrity: ascending break lists and a published
// price for every break at or above each entry's MOQ. A table that fails here
// would surface as PricingDataMissing mid-quote, so it is rejected up front.
func (t *RateTable) Validate() error {
	if err := validateBreaks("domestic", t.Domestic.Breaks); err != nil {
		return err
	}
	if err := validateBreaks("overseas", t.Overseas.Breaks); err != nil {
		return err
	}

	for number := range t.Domestic.Styles {
		prices, ok := t.Domestic.BlankPrices[number]
		if !ok {
			return fmt.Errorf("domestic style %q has no blank prices", number)
		}
		for _, brk := range t.Domestic.Breaks {
			if _, ok := prices[brk]; !ok {
				return fmt.Errorf("domestic style %q missing price at break %d", number, brk)
			}
		}
	}
	for method, prices := range t.Domestic.FrontDecorations {
		for _, brk := range t.Domestic.Breaks {
			if _, ok := prices[brk]; !ok {
				return fmt.Errorf("domestic front decoration %q missing price at break %d", method, brk)
			}
		}
	}
	for method, prices := range t.Domestic.AdditionalDecorations {
		for _, brk := range t.Domestic.Breaks {
			if _, ok := prices[brk]; !ok {
				return fmt.Errorf("domestic additional decoration %q missing price at break %d", method, brk)
			}
		}
	}

	for name, ht := range t.Overseas.HatTypes {
		if err := validateOptionPrices("hat type", name, ht.MinQuantity, ht.BlankPrices, t.Overseas.Breaks); err != nil {
			return err
		}
	}
	for name, opt := range t.Overseas.Decorations {
		if err := validateOptionPrices("decoration", name, opt.MinQuantity, opt.Prices, t.Overseas.Breaks); err != nil {
			return err
		}
	}
	for name, opt := range t.Overseas.Addons {
		if err := validateOptionPrices("add-on", name, opt.MinQuantity, opt.Prices, t.Overseas.Breaks); err != nil {
			return err
		}
	}
	for name, opt := range t.Overseas.Accessories {
		if err := validateOptionPrices("accessory", name, opt.MinQuantity, opt.Prices, t.Overseas.Breaks); err != nil {
			return err
		}
	}
	for name, ship := range t.Overseas.Shipping {
		if err := validateOptionPrices("shipping method", name, ship.MinQuantity, ship.Prices, t.Overseas.Breaks); err != nil {
			return err
		}
	}
	return nil
}

func validateBreaks(channel string, breaks []int) error {
	if len(breaks) == 0 {
		return fmt.Errorf("%s break list is empty", channel)
	}
	for i := 1; i < len(breaks); i++ {
		if breaks[i] <= breaks[i-1] {
			return fmt.Errorf("%s break list not strictly ascending at index %d", channel, i)
		}
	}
	return nil
}

func validateOptionPrices(kind, name string, minQuantity int, prices PriceByBreak, breaks []int) error {
	for _, brk := range breaks {
		if brk < minQuantity {
			continue
		}
		if _, ok := prices[brk]; !ok {
			return fmt.Errorf("overseas %s %q missing price at break %d (MOQ %d)", kind, name, brk, minQuantity)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
