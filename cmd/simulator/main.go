package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/darkfieldworks/lensing-simulator/catalog"
	"github.com/darkfieldworks/lensing-simulator/core"
	"github.com/darkfieldworks/lensing-simulator/internal/logging"
	"github.com/darkfieldworks/lensing-simulator/internal/observability"
	"github.com/darkfieldworks/lensing-simulator/internal/sim"
	"github.com/darkfieldworks/lensing-simulator/model"
)

func main() {
	catalogPath := flag.String("catalog", "configs/catalog.json", "path to the JSON catalog file")
	bandFlag := flag.String("band", "i", "filter band for flux calculation (u,g,r,i,z,y)")
	disableDisk := flag.Bool("disable-disk", false, "ignore any Sersic n=1 component present in the catalog")
	disableBulge := flag.Bool("disable-bulge", false, "ignore any Sersic n=4 component present in the catalog")
	disableNucleus := flag.Bool("disable-nucleus", false, "ignore any point-like component present in the catalog")
	verbose := flag.Bool("verbose", false, "log a summary of each model as it is built")
	onlyIDs := flag.String("only-ids", "", "comma-separated catalog IDs to keep (empty = all)")
	skipIDs := flag.String("skip-ids", "", "comma-separated catalog IDs to drop")
	electronsAtMag24 := flag.Float64(
		"electrons-at-mag24",
		1e5,
		"detected electrons for an AB magnitude 24 source (demo flux calibration)",
	)
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address (empty = disabled)")

	flag.Parse()

	ctx := context.Background()
	log := logging.NewFromEnv()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		panic(fmt.Errorf("failed to initialise tracing: %w", err))
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	band, err := model.ParseFilterBand(*bandFlag)
	if err != nil {
		panic(err)
	}

	// Load the catalog from JSON.
	cat := catalog.NewCatalog()
	f, err := os.Open(*catalogPath)
	if err != nil {
		panic(fmt.Errorf("failed to open catalog %q: %w", *catalogPath, err))
	}
	summary, err := catalog.Load(cat, f, catalog.LoadOptions{
		OnlyIDs: parseIDList(*onlyIDs),
		SkipIDs: parseIDList(*skipIDs),
	})
	f.Close()
	if err != nil {
		panic(fmt.Errorf("failed to load catalog: %w", err))
	}
	fmt.Printf("Loaded catalog: %d rows kept, %d filtered\n", len(summary.LoadedIDs), summary.Filtered)

	collector, err := observability.NewBuildCollector(nil)
	if err != nil {
		panic(fmt.Errorf("failed to register metrics: %w", err))
	}
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", collector.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				fmt.Fprintf(os.Stderr, "warning: metrics listener failed: %v\n", err)
			}
		}()
		fmt.Printf("Serving metrics on %s/metrics\n", *metricsAddr)
	}

	builder, err := core.NewGalaxyBuilder(
		demoCalibrator{electronsAtMag24: *electronsAtMag24},
		core.BuilderConfig{
			DisableDisk:    *disableDisk,
			DisableBulge:   *disableBulge,
			DisableNucleus: *disableNucleus,
			Verbose:        *verbose,
		},
		log,
	)
	if err != nil {
		panic(fmt.Errorf("failed to configure builder: %w", err))
	}

	pipeline := sim.NewPipeline(builder, band)
	pipeline.Log = log
	pipeline.Metrics = collector

	result := pipeline.Run(ctx, cat.Entries())

	for _, g := range result.Galaxies {
		fmt.Printf("↳ Galaxy %-8d z=%.3f flux=%10.4g e- components=%d offset=(%.3f, %.3f) arcsec\n",
			g.Identifier,
			g.Redshift,
			g.TotalFlux(),
			len(g.Profile.Components),
			g.DxArcsecs,
			g.DyArcsecs,
		)
	}
	fmt.Printf("Build complete: %d built, %d not visible, %d failed (%s band)\n",
		len(result.Galaxies), result.NotVisible, result.Failed, band)
}

// demoCalibrator scales a fixed electron count at AB magnitude 24. Real
// runs plug in the survey's own flux calibration behind
// core.FluxCalibrator.
type demoCalibrator struct {
	electronsAtMag24 float64
}

func (c demoCalibrator) MagnitudeToFlux(abMagnitude float64) float64 {
	return c.electronsAtMag24 * math.Pow(10, -0.4*(abMagnitude-24))
}

// parseIDList parses a comma-separated ID list, ignoring empty elements.
func parseIDList(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			panic(fmt.Errorf("invalid catalog ID %q: %w", part, err))
		}
		ids = append(ids, id)
	}
	return ids
}
