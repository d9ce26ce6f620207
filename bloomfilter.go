package bloomfilter

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/bits-and-blooms/bitset"
	"github.com/cespare/xxhash"
)

// Filter is a classic Bloom filter over arbitrary byte sequences. It
// answers membership queries with one-sided error: Contains never reports
// false for an item that was added, while an item that was never added is
// reported present with probability close to the target false positive rate
// the filter was sized for.
//
// The only mutable state is the packed bit vector, and bits are only ever
// set. There is no deletion and no resizing; once the set grows well past
// the expected element count, the false positive rate degrades and the only
// recourse is constructing a larger filter.
//
// A Filter is not safe for concurrent use. Concurrent Contains calls are
// safe once no Add is in flight, but Add must be serialized externally. A
// Contains racing an Add may observe a partially inserted item and report
// it absent.
type Filter struct {
	n     uint64         // expected element count the filter was sized for
	p     float64        // target false positive rate
	m     uint64         // bit vector length
	k     int            // probes per item
	seed  uint64         // seed the per-probe seeds derive from
	seeds []uint64       // one derived seed per probe
	bits  *bitset.BitSet // packed bit vector, the only mutable state
}

// New returns an empty filter sized for n expected items at a target false
// positive rate p, with a hash seed drawn from the process random source.
// Use NewWithSeed when reproducible probe sequences are needed.
//
// The error is ErrInvalidParameters when n is zero or p is outside (0, 1),
// and ErrFilterTooLarge when the sizing formula overflows the addressable
// bit range. No filter is allocated on error.
func New(n uint64, p float64) (*Filter, error) {
	return NewWithSeed(n, p, rand.Uint64())
}

// NewWithSeed returns an empty filter sized like New but with an explicit
// hash seed. Filters built with the same n, p, and seed derive identical
// probe positions and therefore identical bit vectors for identical
// inserts.
func NewWithSeed(n uint64, p float64, seed uint64) (*Filter, error) {
	if n == 0 {
		str := "expected element count must be positive"
		return nil, makeError(ErrInvalidParameters, str)
	}
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		str := fmt.Sprintf("target false positive rate must be in (0, 1), "+
			"got %v", p)
		return nil, makeError(ErrInvalidParameters, str)
	}
	m, k := EstimateParameters(n, p)
	if m > maxFilterBits {
		str := fmt.Sprintf("sizing for %d items at rate %v exceeds %d bits",
			n, p, uint64(maxFilterBits))
		return nil, makeError(ErrFilterTooLarge, str)
	}
	f := &Filter{
		n:     n,
		p:     p,
		m:     m,
		k:     k,
		seed:  seed,
		seeds: make([]uint64, k),
		bits:  bitset.New(uint(m)),
	}
	rng := seed
	for i := range f.seeds {
		f.seeds[i] = splitmix64(&rng)
	}
	log.Debugf("New filter: n=%d p=%g m=%d k=%d seed=%#016x (%d bytes)", n, p,
		m, k, seed, f.SizeBytes())
	return f, nil
}

// addHash sets the k probe bits for a base hash.
func (f *Filter) addHash(base uint64) {
	for _, s := range f.seeds {
		f.bits.Set(uint(fastReduce(mixsplit(base, s), f.m)))
	}
}

// containsHash reports whether all k probe bits for a base hash are set.
func (f *Filter) containsHash(base uint64) bool {
	for _, s := range f.seeds {
		if !f.bits.Test(uint(fastReduce(mixsplit(base, s), f.m))) {
			return false
		}
	}
	return true
}

// Add inserts data into the filter. Adding an item that is already present
// leaves the bit vector unchanged. Add cannot fail and performs no
// allocation.
func (f *Filter) Add(data []byte) {
	f.addHash(xxhash.Sum64(data))
}

// AddString inserts s into the filter without copying it to a byte slice.
// It is equivalent to Add([]byte(s)).
func (f *Filter) AddString(s string) {
	f.addHash(xxhash.Sum64String(s))
}

// Contains reports whether data is likely a member of the set. A false
// result is definitive: the item was never added. A true result means the
// item is present except with probability near the target false positive
// rate. Lookups short-circuit on the first clear probe bit, so misses are
// typically cheaper than hits.
func (f *Filter) Contains(data []byte) bool {
	return f.containsHash(xxhash.Sum64(data))
}

// ContainsString reports whether s is likely a member of the set. It is
// equivalent to Contains([]byte(s)).
func (f *Filter) ContainsString(s string) bool {
	return f.containsHash(xxhash.Sum64String(s))
}

// N returns the expected element count the filter was sized for.
func (f *Filter) N() uint64 {
	return f.n
}

// P returns the target false positive rate the filter was sized for.
func (f *Filter) P() float64 {
	return f.p
}

// M returns the bit vector length in bits.
func (f *Filter) M() uint64 {
	return f.m
}

// K returns the number of probe positions derived per item.
func (f *Filter) K() int {
	return f.k
}

// Seed returns the hash seed the per-probe seeds were derived from. Filters
// constructed with the same parameters and seed are interchangeable.
func (f *Filter) Seed() uint64 {
	return f.seed
}

// SizeBytes returns the memory occupied by the packed bit vector. The m
// bits are stored in 64-bit words, so the cost is 8*ceil(m/64) bytes. The
// fixed struct header and the k derived probe seeds are not counted.
func (f *Filter) SizeBytes() uint64 {
	return 8 * ((f.m + 63) / 64)
}

// FillRatio returns the fraction of bits currently set. A fresh filter
// returns 0, and a filter loaded to its expected element count sits near
// 1/2, where the sizing formula is optimal.
func (f *Filter) FillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.m)
}

// EstimatedFPRate returns the false positive rate the filter currently
// delivers, estimated from live bit occupancy as FillRatio()^k. It starts
// at 0 and approaches the target rate as the filter fills to its expected
// element count; overfilling pushes it past the target.
func (f *Filter) EstimatedFPRate() float64 {
	return math.Pow(f.FillRatio(), float64(f.k))
}

// BitSet exposes the underlying bit vector so callers can inspect
// occupancy. The caller must treat it as read-only; setting or clearing
// bits through it voids the filter's membership guarantees.
func (f *Filter) BitSet() *bitset.BitSet {
	return f.bits
}
