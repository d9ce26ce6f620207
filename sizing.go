package bloomfilter

import "math"

// maxFilterBits caps the bit vector length so the sizing arithmetic and the
// packed word count stay within addressable range. The caller is still
// responsible for choosing parameters their memory can actually hold.
const maxFilterBits = math.MaxInt64

const ln2Squared = math.Ln2 * math.Ln2

// EstimateParameters returns the bit vector length m and per-item probe
// count k for a filter meant to hold n items at a target false positive
// rate of p:
//
//	m = ceil(-n*ln(p) / ln(2)^2)
//	k = round((m/n) * ln(2))
//
// m rounds up so the filter never allocates fewer bits than the target rate
// calls for, and both results are clamped to at least 1 so near-degenerate
// inputs (for example p close to 1) still describe a working filter.
// Requests the formula carries past maxFilterBits are pinned there and
// rejected by the constructors with ErrFilterTooLarge. The result is
// meaningful for n >= 1 and 0 < p < 1; the constructors validate their
// arguments before sizing.
func EstimateParameters(n uint64, p float64) (m uint64, k int) {
	mf := math.Ceil(-(float64(n) * math.Log(p)) / ln2Squared)
	if mf < 1 {
		mf = 1
	}
	if mf > maxFilterBits {
		mf = maxFilterBits
	}
	k = int(math.Round(mf / float64(n) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return uint64(mf), k
}
