package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jmsilva/teller/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		accounts     = flag.Int("accounts", cfg.NumAccounts, "number of account lines to generate")
		activities   = flag.Int("activities", cfg.NumActivities, "number of activity lines to generate")
		sharedChance = flag.Float64("shared-holder-chance", cfg.SharedHolderChance, "probability of reusing an existing holder")
		badChance    = flag.Float64("bad-number-chance", cfg.BadNumberChance, "probability of an activity referencing an unknown account")
		seed         = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		serialSeed   = flag.Int64("serial-seed", cfg.SerialSeed, "seed the loading store must use so activity numbers resolve")
		outputDir    = flag.String("output-dir", "data", "directory to write accounts.txt and activities.txt")
		writeStdout  = flag.Bool("stdout", false, "write the account lines to stdout instead of files")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumAccounts:        *accounts,
		NumActivities:      *activities,
		SharedHolderChance: clampProbability(*sharedChance),
		BadNumberChance:    clampProbability(*badChance),
		Seed:               *seed,
		SerialSeed:         *serialSeed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		for _, line := range dataset.Accounts {
			fmt.Println(line)
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d accounts and %d activities into %s\n", len(dataset.Accounts), len(dataset.Activities), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
