package main

import (
	"math"
	"runtime"
	"sync"
)

const defaultBatchSize = 5000

type chunkJob struct {
	index int
	batch []UserPoint
}

// Run partitions the users into contiguous chunks and fans them out to a
// worker pool sharing the read-only open set. Each worker writes its chunk's
// results into a slot addressed by chunk index, so the final order always
// equals the input order no matter which chunk finishes first. An empty open
// set yields an empty result, not all-zero rows.
func Run(users []User, set *OpenSet, opts Options) []MatchResult {
	if set.Empty() || len(users) == 0 {
		return nil
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	points := make([]UserPoint, len(users))
	for i, u := range users {
		points[i] = UserPoint{
			latDeg: u.Latitude,
			lonDeg: u.Longitude,
			latRad: float32(u.Latitude * math.Pi / 180),
			lonRad: float32(u.Longitude * math.Pi / 180),
		}
	}

	numChunks := (len(points) + batchSize - 1) / batchSize
	chunks := make([][]MatchResult, numChunks)

	var wg sync.WaitGroup
	jobs := make(chan chunkJob, workers*2)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				chunks[job.index] = set.MatchBatch(job.batch)
			}
		}()
	}

	for i := 0; i < numChunks; i++ {
		start := i * batchSize
		end := min(start+batchSize, len(points))
		jobs <- chunkJob{index: i, batch: points[start:end]}
	}
	close(jobs)
	wg.Wait()

	results := make([]MatchResult, 0, len(points))
	for _, chunk := range chunks {
		results = append(results, chunk...)
	}
	return results
}
