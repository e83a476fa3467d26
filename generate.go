package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
)

// stages are the fixture sizes used for benchmarking, from ten users up to a
// million.
var stages = [][2]int{
	{1, 10},
	{11, 100},
	{101, 1000},
	{1001, 100000},
	{100001, 1000000},
}

// generateUsers spreads count synthetic users around one randomly chosen
// restaurant with Gaussian noise, so fixtures cluster the way real demand
// does.
func generateUsers(rng *rand.Rand, restaurants []Restaurant, count int, noise float64) ([]User, error) {
	if len(restaurants) == 0 {
		return nil, fmt.Errorf("no restaurants to anchor generated users")
	}
	anchor := restaurants[rng.Intn(len(restaurants))]
	users := make([]User, count)
	for i := range users {
		users[i] = User{
			Latitude:  anchor.Latitude + rng.NormFloat64()*noise,
			Longitude: anchor.Longitude + rng.NormFloat64()*noise,
		}
	}
	return users, nil
}

// generateStageFiles writes one users_<start>_<end>.csv fixture per stage.
func generateStageFiles(restaurants []Restaurant, outputDir string, noise float64, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	for _, stage := range stages {
		users, err := generateUsers(rng, restaurants, stage[1]-stage[0]+1, noise)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("users_%d_%d.csv", stage[0], stage[1])
		f, err := os.Create(filepath.Join(outputDir, name))
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
		err = writeUsers(f, users)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		log.Printf("generated %s", name)
	}
	return nil
}
