package enums

import "fmt"

// QuoteChannel identifies which production channel priced a quote.
type QuoteChannel string

const (
	QuoteChannelDomestic QuoteChannel = "domestic"
	QuoteChannelOverseas QuoteChannel = "overseas"
)

var validQuoteChannels = []QuoteChannel{
	QuoteChannelDomestic,
	QuoteChannelOverseas,
}

// String implements fmt.Stringer.
func (q QuoteChannel) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuoteChannel.
func (q QuoteChannel) IsValid() bool {
	for _, candidate := range validQuoteChannels {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQuoteChannel converts raw input into a QuoteChannel.
func ParseQuoteChannel(value string) (QuoteChannel, error) {
	for _, candidate := range validQuoteChannels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote channel %q", value)
}
