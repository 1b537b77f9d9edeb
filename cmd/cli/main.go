package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"virtual-battery/internal/analysis"
	"virtual-battery/internal/config"
	"virtual-battery/internal/data"
	"virtual-battery/internal/model"
	"virtual-battery/internal/sim"

	"github.com/rs/zerolog"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "sweep":
		cmdSweep(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	case "fetch":
		cmdFetch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --series series.json --config config.yaml --out results/result.csv")
	fmt.Println("  cli sweep --series series.json --config config.yaml --from 7 --to 13 --step 0.5")
	fmt.Println("  cli rank --series a.json,b.json")
	fmt.Println("  cli fetch --meter meter.csv --zone CENTRL --out series.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate writes the hourly result CSV plus a <run>_summary.csv next to it")
	fmt.Println("  - sweep reruns the simulation over a battery capacity grid")
	fmt.Println("  - rank prints apparent-price spread stats per saved series")
	fmt.Println("  - fetch joins a smart-meter CSV with downloaded NYISO prices and saves the series")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	seriesPath := fs.String("series", "", "Path to saved series JSON")
	cfgPath := fs.String("config", "", "Path to YAML config (defaults used when empty)")
	outPath := fs.String("out", "results/result.csv", "Output CSV path for the hourly result series")
	n := fs.Int("n", 0, "Optional: limit to first N hours (0=all)")
	_ = fs.Parse(args)

	series := mustLoadSeries(*seriesPath)
	if *n > 0 && *n < len(series) {
		series = series[:*n]
	}

	cfg := mustLoadConfig(*cfgPath)

	res, err := sim.New(newLogger()).Run(*cfg, series)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := sim.WriteResultCSV(*outPath, res.Rows); err != nil {
		panic(err)
	}
	summaryPath := filepath.Join(filepath.Dir(*outPath), cfg.RunName+"_summary.csv")
	if err := sim.WriteSummaryCSV(summaryPath, res.Summary); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(res.Rows), *outPath)
	fmt.Printf("Monthly value of battery: $%.2f (summary at %s)\n",
		res.Summary["monthly_cost_diff_$"], summaryPath)
}

func cmdSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	seriesPath := fs.String("series", "", "Path to saved series JSON")
	cfgPath := fs.String("config", "", "Path to YAML config (defaults used when empty)")
	from := fs.Float64("from", 7, "Smallest battery capacity (kWh)")
	to := fs.Float64("to", 13, "Largest battery capacity (kWh)")
	step := fs.Float64("step", 0.5, "Capacity step (kWh)")
	_ = fs.Parse(args)

	series := mustLoadSeries(*seriesPath)
	cfg := mustLoadConfig(*cfgPath)

	points, err := analysis.CapacitySweep(sim.New(newLogger()), *cfg, series,
		analysis.CapacityGrid(*from, *to, *step))
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-16s %-s\n", "capacity_kwh", "monthly_value_$")
	for _, p := range points {
		fmt.Printf("%-16.1f %-.2f\n", p.MaxCapacityKWh, p.MonthlyCostDiff)
	}
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	seriesPaths := fs.String("series", "", "Comma-separated saved series JSON paths")
	cfgPath := fs.String("config", "", "Path to YAML config (defaults used when empty)")
	_ = fs.Parse(args)

	cfg := mustLoadConfig(*cfgPath)

	fmt.Printf("%-30s %-8s %-10s %-10s %-10s\n", "series", "count", "mean", "p95-p05", "min/max")
	for _, path := range splitPaths(*seriesPaths) {
		series, err := data.LoadSeriesJSON(path)
		if err != nil {
			panic(err)
		}
		spread := analysis.ComputeSpread(sim.ApplyPricing(series, cfg.Pricing))
		fmt.Printf("%-30s %-8d %-10.4f %-10.4f %-5.3f/%-5.3f\n",
			filepath.Base(path),
			spread.Count,
			spread.Mean,
			spread.SpreadP95P05,
			spread.Min,
			spread.Max,
		)
	}
}

func cmdFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	meterPath := fs.String("meter", "", "Path to smart-meter CSV")
	zone := fs.String("zone", "CENTRL", "NYISO zone")
	tz := fs.String("tz", "America/New_York", "Time zone of the meter data")
	outPath := fs.String("out", "series.json", "Output path for the saved series")
	_ = fs.Parse(args)

	if *meterPath == "" {
		fmt.Println("--meter is required")
		os.Exit(2)
	}

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		panic(err)
	}
	series, err := data.ReadMeterFile(*meterPath, loc)
	if err != nil {
		panic(err)
	}

	client := data.NewNYISOClient(os.Getenv("NYISO_BASE_URL"), newLogger())
	joined, err := client.AddPrices(series, data.DataTypeDAMLBMP, *zone, loc)
	if err != nil {
		panic(err)
	}

	if err := data.SaveSeriesJSON(*outPath, *zone, joined); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d hours to %s\n", len(joined), *outPath)
}

func mustLoadSeries(path string) model.Series {
	if path == "" {
		fmt.Println("--series is required")
		os.Exit(2)
	}
	series, err := data.LoadSeriesJSON(path)
	if err != nil {
		panic(err)
	}
	return series
}

func mustLoadConfig(path string) *config.Config {
	if path == "" {
		cfg := config.Default()
		return &cfg
	}
	cfg, err := config.Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func newLogger() zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).With().Timestamp().Logger()
}
