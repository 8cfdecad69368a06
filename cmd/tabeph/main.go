// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	m "github.com/mkhts/tabeph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Sampling interval [s] of the generated tabular ephemeris (same as 15 minute SP3 products)
const tableStep = 900.0

func main() {

	// Parse command line arguments
	args, err := parseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "err=%s\n", err.Error())
		flag.Usage()
		os.Exit(1)
	}

	logger := m.NewLogger(os.Stderr, m.ParseLevel(args.dbg))

	// Run the main application
	if err := runApplication(args, logger); err != nil {
		logger.Error("tabeph failed", "err", err)
		os.Exit(1)
	}
}

// Main application processing
func runApplication(args cmdOpt, logger *slog.Logger) error {

	cfg, err := loadConfig(args)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	reg := prometheus.NewRegistry()
	met := m.NewMetrics(reg)

	// Build and load the store
	sOpt := cfg.StoreOpt()
	sOpt.Logger = logger
	sOpt.Metrics = met
	store := m.NewStore(sOpt)
	loadConstellation(store, args)
	if args.dump >= 0 {
		if err := store.Dump(os.Stderr, args.dump); err != nil {
			return fmt.Errorf("failed to dump store: %w", err)
		}
	}

	// Prepare output file
	out, err := prepareOutput(args)
	if err != nil {
		return fmt.Errorf("failed to prepare output: %w", err)
	}
	defer out.Close()

	if !args.noHeader {
		printHeader(out, args)
	}

	rOpt := cfg.RangeOpt()
	rOpt.Logger = logger
	rOpt.Metrics = met
	solver := m.NewRangeSolver(rOpt)
	if err := processEpochs(args, store, solver, out, logger); err != nil {
		return err
	}

	if len(args.pushGw) > 0 {
		if err := push.New(args.pushGw, "tabeph").Gatherer(reg).Push(); err != nil {
			return fmt.Errorf("failed to push metrics to %s: %w", args.pushGw, err)
		}
		logger.Info("metrics pushed", "url", args.pushGw)
	}
	return nil
}

// Configuration file, then command line overrides
func loadConfig(args cmdOpt) (*m.Config, error) {
	cfg := m.DefaultConfig()
	if len(args.cfgFn) > 0 {
		var err error
		cfg, err = m.LoadConfig(args.cfgFn)
		if err != nil {
			return nil, err
		}
	}
	if args.gap > 0 {
		cfg.Store.CheckDataGap = true
		cfg.Store.GapInterval = args.gap
	}
	if args.maxInterval > 0 {
		cfg.Store.CheckInterval = true
		cfg.Store.MaxInterval = args.maxInterval
	}
	if args.provenance {
		cfg.Store.TrackProvenance = true
	}
	return cfg, cfg.Validate()
}

// Feed one batch of records per satellite, covering the processing span plus the
// interpolation margin on both sides
func loadConstellation(store *m.Store, args cmdOpt) {
	ts := *m.NewGTime(args.ts)
	te := *m.NewGTime(args.te)
	margin := tableStep * float64(5+1)
	for _, orb := range m.NewGPSConstellation(args.sats, ts) {
		recs := orb.Records(ts.Add(-margin), te.Add(margin), tableStep, args.vel)
		store.Load(fmt.Sprintf("synthetic-%s", orb.Sat), recs)
	}
	store.Edit(ts.Add(-margin), te.Add(margin))
}

// Prepare output file
func prepareOutput(args cmdOpt) (io.WriteCloser, error) {

	// Use stdout if no output file is specified
	if len(args.outFn) == 0 {
		return &nopCloser{os.Stdout}, nil
	}

	// Create output file
	f, err := os.Create(args.outFn)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

func printHeader(w io.Writer, args cmdOpt) {
	fmt.Fprintf(w, "%% program : %s\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(w, "%% mode    : %s\n", args.mode.String())
	fmt.Fprintf(w, "%% rx pos  : %s (llh) %s (xyz)\n", args.rxLLH.String(), args.rx.String())
	fmt.Fprintf(w, "%% sats    : %s\n", args.sats.String())
	fmt.Fprintf(w, "%% %-23s %4s %15s %15s %13s %12s %8s %8s %8s %8s %3s\n",
		"GPST", "sat", "raw(m)", "corrected(m)", "svclk(m)", "rel(m)", "el(deg)", "az(deg)", "elg(deg)", "azg(deg)", "it")
}

// Process epochs
func processEpochs(args cmdOpt, store *m.Store, solver *m.RangeSolver, w io.Writer, logger *slog.Logger) error {
	ts := *m.NewGTime(args.ts)
	te := *m.NewGTime(args.te)
	for t := ts; t.Compare(te) <= 0; t = t.Add(float64(args.ti)) {
		for _, sat := range args.sats {
			sol, err := solveOne(args.mode, t, args.rx, sat, store, solver)
			if err != nil {
				// One bad epoch does not stop the pass
				if m.IsMissingData(err) {
					logger.Warn("epoch skipped", "t", t.String(), "sat", string(sat), "err", err)
					continue
				}
				return err
			}
			fmt.Fprintf(w, "%s %4s %15.4f %15.4f %13.4f %12.4f %8.3f %8.3f %8.3f %8.3f %3d\n",
				t.String(), sat, sol.RawRange, sol.Corrected, sol.SvClkBias, sol.Relativity,
				sol.Elevation, sol.Azimuth, sol.ElevationGeodetic, sol.AzimuthGeodetic, sol.Iterations)
		}
	}
	return nil
}

// Modes needing a pseudorange use the range at receive time as a noise free measurement
func solveOne(mode m.Mode, tr m.GTime, rx m.PosXYZ, sat m.SatType, store *m.Store, solver *m.RangeSolver) (*m.RangeSol, error) {
	sol, err := solver.ComputeAtReceiveTime(tr, rx, sat, store)
	if err != nil || mode == m.AtReceiveTime {
		return sol, err
	}
	pr := sol.Corrected
	switch mode {
	case m.AtTransmitTime:
		return solver.ComputeAtTransmitTime(tr, pr, rx, sat, store)
	default:
		return solver.ComputeAtTransmitSvTime(tr.Add(-pr/m.C), pr, rx, sat, store)
	}
}

// nopCloser - WriteCloser that ignores close operations
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Structure to hold command line argument information
type cmdOpt struct {
	cfgFn       string
	outFn       string
	mode        m.Mode
	ts, te      time.Time
	ti          int
	sats        m.SatVar
	rxLLH       m.PosLLH
	rx          m.PosXYZ
	vel         bool
	dump        int
	gap         float64
	maxInterval float64
	provenance  bool
	noHeader    bool
	pushGw      string
	dbg         int
}

// Parse command line arguments
func parseArgs() (a cmdOpt, err error) {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `
[Usage]
	%s [Options] -l "rx_lat rx_lon rx_hei" -ts "2025/01/01 00:00:00" -te "2025/01/01 01:00:00"

	Loads a synthetic GPS constellation into the tabular ephemeris store and prints
	corrected ranges from the receiver to each satellite.

[Options]
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.StringVar(&a.cfgFn, "c", "", "Configuration file (YAML). Defaults are used if not specified.")
	flag.Var(&a.mode, "p", "Range mode. 0(at receive time), 1(at transmit time), 2(at transmit time in satellite clock)")
	var ts_, te_ m.TimeStr
	now := time.Now().UTC().Truncate(time.Hour)
	flag.TextVar(&ts_, "ts", m.NewTimeStr(now), "Start epoch. Enclose in quotes like -ts \"2023/01/01 00:00:00\"")
	flag.TextVar(&te_, "te", m.NewTimeStr(now.Add(time.Hour)), "End epoch. Enclose in quotes like -te \"2023/01/01 01:00:00\". This epoch is also included.")
	flag.IntVar(&a.ti, "ti", 30, "Output interval [s]")
	a.sats = m.SatVar{"G01", "G02", "G03", "G04", "G05", "G06", "G07", "G08"}
	flag.Var(&a.sats, "sats", "Satellites. Comma-separated without spaces like G01,G05.")
	flag.Var(&a.rxLLH, "l", "Receiver latitude/longitude/ellipsoidal height. Enclose in quotes like -l \"35.73101206 139.7396917 80.33\"")
	flag.BoolVar(&a.vel, "vel", false, "Feed velocity records too. Otherwise velocity is the derivative of the interpolated position.")
	flag.IntVar(&a.dump, "dump", -1, "Dump the store to stderr. 0(summary), 1(per satellite counts), 2(all samples). -1 for no dump.")
	flag.Float64Var(&a.gap, "gap", 0, "Enable the data gap check with this interval [s]. 0 keeps the configuration.")
	flag.Float64Var(&a.maxInterval, "mi", 0, "Enable the interpolation window check with this width [s]. 0 keeps the configuration.")
	flag.BoolVar(&a.provenance, "prov", false, "Keep track of loaded batches (shown by -dump)")
	flag.StringVar(&a.outFn, "o", "", "Output file path. If not specified, output to stdout.")
	flag.BoolVar(&a.noHeader, "nh", false, "Do not output header section.")
	flag.StringVar(&a.pushGw, "pushgw", "", "Prometheus Pushgateway URL to push metrics to when done")
	flag.IntVar(&a.dbg, "x", 0, "Log level. 0(warn), 1(info), 2(debug)")
	flag.Parse()
	if flag.NArg() != 0 {
		return a, fmt.Errorf("unexpected arguments: %v", flag.Args())
	}
	if a.rxLLH == (m.PosLLH{}) {
		return a, fmt.Errorf("the receiver position must be specified! (-l option)")
	}
	if a.ti <= 0 {
		return a, fmt.Errorf("the output interval must be positive (-ti option)")
	}
	a.ts = time.Time(ts_)
	a.te = time.Time(te_)
	if a.te.Before(a.ts) {
		return a, fmt.Errorf("the end epoch is before the start epoch")
	}
	a.rx = a.rxLLH.ToXYZ()
	return
}
