package pricing

// resolveDomesticBreak picks the largest break at or below the requested
// quantity. A quantity equal to a boundary qualifies for that tier. The
// caller has already rejected quantities below the smallest break.
func resolveDomesticBreak(breaks []int, quantity int) int {
	applicable := breaks[0]
	for _, brk := range breaks {
		if quantity < brk {
			break
		}
		applicable = brk
	}
	return applicable
}
