package main

import (
	"flag"
	"log"
	"strings"
)

func main() {
	var (
		restaurantSrc = flag.String("restaurants", "data/input/restaurants.csv",
			"restaurant catalog CSV, local path or http(s) URL")
		userFiles = flag.String("users", "",
			"comma-separated user CSV files to process")
		outputDir  = flag.String("out", "data/output", "directory for result and benchmark files")
		staticTime = flag.String("time", "12:00:00", "query instant as HH:MM:SS")
		batchSize  = flag.Int("batch", defaultBatchSize, "users per matching batch")
		workers    = flag.Int("workers", 0, "worker goroutines, 0 means one per CPU")
		generate   = flag.Bool("generate", false, "write synthetic user fixtures instead of matching")
		noise      = flag.Float64("noise", 0.01, "stddev in degrees for generated user spread")
		seed       = flag.Int64("seed", 42, "seed for fixture generation")
	)
	flag.Parse()

	runner := NewBatchRunner(*restaurantSrc, *outputDir, *staticTime, Options{
		BatchSize: *batchSize,
		Workers:   *workers,
	})

	if *generate {
		restaurants, err := runner.loadRestaurants()
		if err != nil {
			log.Fatal(err)
		}
		if err := generateStageFiles(restaurants, *outputDir, *noise, *seed); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *userFiles == "" {
		log.Fatal("no user files given, pass -users file1.csv,file2.csv")
	}
	if err := runner.Run(strings.Split(*userFiles, ",")); err != nil {
		log.Fatal(err)
	}
}
