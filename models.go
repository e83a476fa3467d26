package main

import "github.com/dhconnelly/rtreego"

const earthRadiusKm = 6371.0

// User is a single query point in decimal degrees. Users have no explicit ID;
// their identity is their row position, which the matcher preserves end to end.
type User struct {
	Latitude  float64
	Longitude float64
}

// Restaurant is one catalog row as ingested from the restaurant table.
type Restaurant struct {
	ID        string
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	OpenHour  string
	CloseHour string
}

// openItem is a restaurant that passed the availability filter, stored in the
// r-tree as a near-point rect plus the radian coordinates the matcher works in.
type openItem struct {
	rect      *rtreego.Rect
	id        string
	latRad    float32
	lonRad    float32
	angRadius float32
}

func (o *openItem) Bounds() rtreego.Rect { return *o.rect }

// OpenSet holds the restaurants open at the query instant together with the
// spatial index built over them. It is immutable for the rest of the run, so
// any number of workers can share it without locking.
type OpenSet struct {
	items      []*openItem
	maxAngular float32
	tree       *rtreego.Rtree
}

func (s *OpenSet) Empty() bool { return len(s.items) == 0 }

// UserPoint pairs a user's original degree values with the radian coordinates
// used for matching; the degrees are echoed untouched into the result row.
type UserPoint struct {
	latDeg float64
	lonDeg float64
	latRad float32
	lonRad float32
}

// MatchResult is one output row, same order as the input users.
type MatchResult struct {
	Latitude   float64
	Longitude  float64
	MatchCount int
	MatchedIDs string
}

// Options configure the batch coordinator. Zero values fall back to the
// defaults (5000 users per batch, one worker per CPU).
type Options struct {
	BatchSize int
	Workers   int
}

// BenchmarkRecord captures per-file timing and memory figures for the
// benchmark log.
type BenchmarkRecord struct {
	UserFile       string
	UserCount      int
	TimeTakenSecs  float64
	MemoryMBBefore float64
	MemoryMBAfter  float64
	MatchedRows    int
	TotalMatches   int
	OutputFile     string
}
