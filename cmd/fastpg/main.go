package main

/*
fastpg clusters cell types from mcmicro marker expression data. It cleans the
input CSV down to the marker columns that should participate in clustering,
runs the FastPG R script on the cleaned table, and reports the modularity of
the resulting partition.
*/

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/labsyspharm/mcmicro-fastPG/cluster"
)

var (
	inputPath      = flag.String("input", "", "Input CSV of mcmicro marker expression data for cells (required)")
	outputDir      = flag.String("output", ".", "The directory to which output files will be saved")
	markersPath    = flag.String("markers", "", "A text file with a marker on each line to specify which markers to use for clustering")
	neighbors      = flag.Int("neighbors", cluster.DefaultOpts.Neighbors, "The number of nearest neighbors to use when clustering")
	numThreads     = flag.Int("num-threads", cluster.DefaultOpts.Threads, "The number of cpus to use during the k nearest neighbors part of clustering")
	method         = flag.Bool("method", cluster.DefaultOpts.Method, "Include a column with the method name in the output files")
	configPath     = flag.String("config", "", "A yaml config file that states whether the input data should be log transformed")
	forceTransform = flag.Bool("force-transform", false, "Log transform the input data. If omitted, and -no-transform is omitted, the transform is applied only if the max value in the input data is >1000")
	noTransform    = flag.Bool("no-transform", false, "Do not log transform the input data")
	scriptPath     = flag.String("script", "", "Path to the runFastPG.r script; defaults to runFastPG.r next to this executable")
	timeout        = flag.Duration("timeout", 0, "Give up if the clustering script runs longer than this; 0 means no limit")
	verbose        = flag.Bool("verbose", false, "Print out progress of the run")
)

type runFlags struct {
	input          string
	output         string
	markers        string
	config         string
	script         string
	forceTransform bool
	noTransform    bool
	verbose        bool
	opts           cluster.Opts
}

// run drives one full pipeline pass: transform resolution, cleaning, and the
// FastPG invocation. It returns the modularity score FastPG reported.
func run(ctx context.Context, r cluster.Runner, f runFlags) (float64, error) {
	outDir := f.output
	if strings.HasSuffix(outDir, "/") {
		outDir = outDir[:len(outDir)-1]
	}
	if outDir == "" {
		outDir = "."
	}

	mode, err := cluster.ResolveTransform(f.forceTransform, f.noTransform, f.config)
	if err != nil {
		return 0, err
	}

	var markers []string
	if f.markers != "" {
		if markers, err = cluster.ReadMarkers(ctx, f.markers); err != nil {
			return 0, err
		}
	}

	if f.verbose {
		log.Printf("cleaning data in %s", f.input)
	}
	cleanPath, err := cluster.Clean(ctx, f.input, outDir, markers)
	if err != nil {
		return 0, err
	}

	if f.verbose {
		log.Printf("running FastPG on %s", cleanPath)
	}
	outs := cluster.OutputsFor(f.input)
	return cluster.RunFastPG(ctx, r, cluster.Invocation{
		Script:    f.script,
		CleanPath: cleanPath,
		OutputDir: outDir,
		Cells:     outs.Cells,
		Clusters:  outs.Clusters,
		Transform: mode,
		Opts:      f.opts,
	})
}

// defaultScript locates runFastPG.r next to the running executable, the way
// the original wrapper looked for it next to the script itself.
func defaultScript() string {
	exe, err := os.Executable()
	if err != nil {
		return "runFastPG.r"
	}
	return filepath.Join(filepath.Dir(exe), "runFastPG.r")
}

func fastpgUsage() {
	fmt.Printf("Usage: %s -input expression.csv [OPTIONS]\n", os.Args[0])
	fmt.Printf("Cluster cell types using mcmicro marker expression data.\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = fastpgUsage
	shutdown := grail.Init()
	defer shutdown()

	if *inputPath == "" {
		log.Fatalf("-input is required; see -help for usage")
	}
	script := *scriptPath
	if script == "" {
		script = defaultScript()
	}

	ctx := vcontext.Background()
	modularity, err := run(ctx, cluster.ExecRunner{}, runFlags{
		input:          *inputPath,
		output:         *outputDir,
		markers:        *markersPath,
		config:         *configPath,
		script:         script,
		forceTransform: *forceTransform,
		noTransform:    *noTransform,
		verbose:        *verbose,
		opts: cluster.Opts{
			Neighbors: *neighbors,
			Threads:   *numThreads,
			Method:    *method,
			Timeout:   *timeout,
		},
	})
	if err != nil {
		log.Fatalf("fastpg: %v", err)
	}
	log.Printf("modularity: %v", modularity)
}
