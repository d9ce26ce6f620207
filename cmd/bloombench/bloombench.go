// bloombench builds a filter, loads it with a batch of distinct keys, and
// reports the observed insert throughput and false positive rate against the
// configured targets.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/FastFilter/bloomfilter"
	"github.com/decred/slog"
	flags "github.com/jessevdk/go-flags"
)

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

type config struct {
	Items  uint64  `short:"n" long:"items" description:"number of distinct keys to insert"`
	FPRate float64 `short:"p" long:"fp-rate" description:"target false positive rate in (0, 1)"`
	Probes uint64  `short:"q" long:"probes" description:"number of known-absent keys to probe"`
	Seed   uint64  `short:"s" long:"seed" description:"explicit hash seed; 0 draws a random one"`
	Debug  bool    `short:"d" long:"debug" description:"enable filter debug logging"`
}

func main() {
	cfg := config{
		Items:  5000,
		FPRate: 0.01,
		Probes: 5000,
	}
	parser := flags.NewParser(&cfg, flags.Default)
	_, err := parser.Parse()
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	backend := slog.NewBackend(os.Stdout)
	log := backend.Logger("MAIN")
	if cfg.Debug {
		filterLog := backend.Logger("BLOM")
		filterLog.SetLevel(slog.LevelDebug)
		bloomfilter.UseLogger(filterLog)
	}

	var filter *bloomfilter.Filter
	if cfg.Seed != 0 {
		filter, err = bloomfilter.NewWithSeed(cfg.Items, cfg.FPRate, cfg.Seed)
	} else {
		filter, err = bloomfilter.New(cfg.Items, cfg.FPRate)
	}
	if err != nil {
		fatalf("unable to construct filter: %v\n", err)
	}
	log.Infof("filter sized for n=%d p=%g: m=%d bits, k=%d probes, %d bytes, "+
		"seed %#016x", filter.N(), filter.P(), filter.M(), filter.K(),
		filter.SizeBytes(), filter.Seed())

	// Load the known batch and time it.
	start := time.Now()
	for i := uint64(0); i < cfg.Items; i++ {
		filter.AddString(fmt.Sprintf("user_%d", i))
	}
	elapsed := time.Since(start)
	log.Infof("inserted %d keys in %v (%v/key)", cfg.Items, elapsed,
		elapsed/time.Duration(cfg.Items))

	// Every inserted key must still answer true.
	misses := 0
	for i := uint64(0); i < cfg.Items; i++ {
		if !filter.ContainsString(fmt.Sprintf("user_%d", i)) {
			misses++
		}
	}
	if misses != 0 {
		log.Errorf("%d inserted keys answered false", misses)
		os.Exit(1)
	}
	log.Infof("all %d inserted keys answer true", cfg.Items)

	// Probe a disjoint batch of keys that were never inserted and compare
	// the observed false positive rate against the target.
	if cfg.Probes > 0 {
		falsePositives := 0
		for i := uint64(0); i < cfg.Probes; i++ {
			if filter.ContainsString(fmt.Sprintf("ghost_%d", i)) {
				falsePositives++
			}
		}
		rate := float64(falsePositives) / float64(cfg.Probes)
		log.Infof("probed %d absent keys: %d false positives (rate %.5f, "+
			"target %g)", cfg.Probes, falsePositives, rate, filter.P())
	}
	log.Infof("fill ratio %.4f, estimated rate %.5f", filter.FillRatio(),
		filter.EstimatedFPRate())
}
