package bloomfilter

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/cespare/xxhash"
	"github.com/dchest/siphash"
	"github.com/spaolacci/murmur3"
)

var benchCases = []struct {
	n uint64
	p float64
}{
	{1000, 0.001},
	{1000, 0.0001},
	{100000, 0.0001},
	{1000000, 0.01},
}

// BenchmarkAdd benchmarks inserting items for various capacities and target
// false positive rates.
func BenchmarkAdd(b *testing.B) {
	for _, bench := range benchCases {
		benchName := fmt.Sprintf("n=%d/p=%g", bench.n, bench.p)
		b.Run(benchName, func(b *testing.B) {
			filter, err := NewWithSeed(bench.n, bench.p, 1)
			if err != nil {
				b.Fatalf("unexpected construction error: %v", err)
			}

			b.ResetTimer()
			b.ReportAllocs()
			var data [8]byte
			for i := 0; i < b.N; i++ {
				binary.LittleEndian.PutUint64(data[:], uint64(i))
				filter.Add(data[:])
			}
		})
	}
}

// BenchmarkContainsTrue benchmarks membership queries for an item that is
// present, which probes all k bits.
func BenchmarkContainsTrue(b *testing.B) {
	for _, bench := range benchCases {
		benchName := fmt.Sprintf("n=%d/p=%g", bench.n, bench.p)
		b.Run(benchName, func(b *testing.B) {
			filter, err := NewWithSeed(bench.n, bench.p, 1)
			if err != nil {
				b.Fatalf("unexpected construction error: %v", err)
			}
			var data [8]byte
			for i := uint64(0); i < bench.n; i++ {
				binary.LittleEndian.PutUint64(data[:], i)
				filter.Add(data[:])
			}
			binary.LittleEndian.PutUint64(data[:], bench.n/2)

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				filter.Contains(data[:])
			}
		})
	}
}

// BenchmarkContainsFalse benchmarks membership queries for an item that is
// absent, which short-circuits on the first clear bit most of the time.
func BenchmarkContainsFalse(b *testing.B) {
	for _, bench := range benchCases {
		benchName := fmt.Sprintf("n=%d/p=%g", bench.n, bench.p)
		b.Run(benchName, func(b *testing.B) {
			filter, err := NewWithSeed(bench.n, bench.p, 1)
			if err != nil {
				b.Fatalf("unexpected construction error: %v", err)
			}
			var data [8]byte
			for i := uint64(0); i < bench.n; i++ {
				binary.LittleEndian.PutUint64(data[:], i)
				filter.Add(data[:])
			}
			binary.LittleEndian.PutUint64(data[:], bench.n+1)

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				filter.Contains(data[:])
			}
		})
	}
}

// BenchmarkNew benchmarks filter construction, which is dominated by the bit
// vector allocation.
func BenchmarkNew(b *testing.B) {
	var noElide *Filter
	for _, bench := range benchCases {
		benchName := fmt.Sprintf("n=%d/p=%g", bench.n, bench.p)
		b.Run(benchName, func(b *testing.B) {
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				noElide, _ = NewWithSeed(bench.n, bench.p, 1)
			}
		})
	}
	_ = noElide
}

// BenchmarkProbeSchemes compares the derived-seed scheme the filter uses
// against rehashing the item once per probe and against a keyed base hash,
// all reduced onto the same vector length with the same probe count.
func BenchmarkProbeSchemes(b *testing.B) {
	const m = 47926
	const k = 7
	data := []byte("user_12345")
	seeds := make([]uint64, k)
	seedRng := uint64(1)
	for i := range seeds {
		seeds[i] = splitmix64(&seedRng)
	}
	var sink uint64

	b.Run("xxhash-derived", func(b *testing.B) {
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			base := xxhash.Sum64(data)
			for _, s := range seeds {
				sink += fastReduce(mixsplit(base, s), m)
			}
		}
	})

	b.Run("murmur3-rehash", func(b *testing.B) {
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			for j := 0; j < k; j++ {
				h := murmur3.New64WithSeed(uint32(j))
				h.Write(data)
				sink += fastReduce(h.Sum64(), m)
			}
		}
	})

	b.Run("siphash-keyed", func(b *testing.B) {
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			base := siphash.Hash(1, 2, data)
			for _, s := range seeds {
				sink += fastReduce(mixsplit(base, s), m)
			}
		}
	})

	_ = sink
}
