package main

import (
	"math"
	"sort"
	"strings"

	"github.com/dhconnelly/rtreego"
)

// haversineAngle returns the great-circle angular distance in radians between
// two points given in float32 radians. sqrt(a) is clipped to [0, 1] so
// floating error near antipodal points can never push asin outside its domain.
func haversineAngle(latU, lonU, latR, lonR float32) float32 {
	dlat := float64(latR) - float64(latU)
	dlon := float64(lonR) - float64(lonU)
	sinLat := math.Sin(dlat / 2)
	sinLon := math.Sin(dlon / 2)
	a := sinLat*sinLat + math.Cos(float64(latU))*math.Cos(float64(latR))*sinLon*sinLon
	s := math.Sqrt(a)
	if s > 1 {
		s = 1
	} else if s < 0 {
		s = 0
	}
	return float32(2 * math.Asin(s))
}

func newSearchRect(lonMin, latMin, lonMax, latMax float64) rtreego.Rect {
	rect, _ := rtreego.NewRect(
		rtreego.Point{lonMin, latMin},
		[]float64{lonMax - lonMin + pointExtent, latMax - latMin + pointExtent},
	)
	return rect
}

// searchRects returns the rectangle(s) covering every point within the set's
// maximum angular radius of the user. The longitude half-width is widened by
// latitude so the box still contains the spherical cap away from the equator;
// caps that reach a pole degrade to the full longitude range, and boxes
// crossing the ±180 meridian are split in two. The coverage is deliberately
// loose: it only has to be a superset, the exact pass discards the rest.
func (s *OpenSet) searchRects(u UserPoint) []rtreego.Rect {
	rDeg := float64(s.maxAngular) * 180 / math.Pi
	// The exact phase works on float32-rounded radians and radii, so a
	// restaurant sitting within ~2e-5 degrees of exactly its radius can pass
	// refinement while the nominal box just misses it. Pad the box past that
	// rounding band; the exact pass discards the extra candidates.
	rDeg = rDeg*(1+1e-6) + 1e-4
	latMin := math.Max(u.latDeg-rDeg, -90)
	latMax := math.Min(u.latDeg+rDeg, 90)

	edgeLat := math.Abs(u.latDeg) + rDeg
	halfLon := 180.0
	if edgeLat < 90 {
		halfLon = math.Min(rDeg/math.Cos(edgeLat*math.Pi/180), 180)
	}
	if halfLon >= 180 {
		return []rtreego.Rect{newSearchRect(-180, latMin, 180, latMax)}
	}

	lonMin := u.lonDeg - halfLon
	lonMax := u.lonDeg + halfLon
	switch {
	case lonMin < -180:
		return []rtreego.Rect{
			newSearchRect(-180, latMin, lonMax, latMax),
			newSearchRect(lonMin+360, latMin, 180, latMax),
		}
	case lonMax > 180:
		return []rtreego.Rect{
			newSearchRect(lonMin, latMin, 180, latMax),
			newSearchRect(-180, latMin, lonMax-360, latMax),
		}
	default:
		return []rtreego.Rect{newSearchRect(lonMin, latMin, lonMax, latMax)}
	}
}

// MatchBatch matches one batch of users against the open set. The coarse
// r-tree search runs at the global maximum angular radius, which keeps the
// candidate set a superset of the true matches even though radii vary per
// restaurant; the exact haversine pass then compares each candidate against
// its own radius. Matched IDs come back sorted lexicographically and joined
// with ";", empty string when nothing is in reach.
func (s *OpenSet) MatchBatch(batch []UserPoint) []MatchResult {
	results := make([]MatchResult, 0, len(batch))
	for _, u := range batch {
		rects := s.searchRects(u)
		var seen map[*openItem]struct{}
		if len(rects) > 1 {
			seen = make(map[*openItem]struct{})
		}
		var matched []string
		for _, rect := range rects {
			for _, raw := range s.tree.SearchIntersect(rect) {
				item := raw.(*openItem)
				if seen != nil {
					if _, dup := seen[item]; dup {
						continue
					}
					seen[item] = struct{}{}
				}
				c := haversineAngle(u.latRad, u.lonRad, item.latRad, item.lonRad)
				if c <= item.angRadius {
					matched = append(matched, item.id)
				}
			}
		}
		sort.Strings(matched)
		results = append(results, MatchResult{
			Latitude:   u.latDeg,
			Longitude:  u.lonDeg,
			MatchCount: len(matched),
			MatchedIDs: strings.Join(matched, ";"),
		})
	}
	return results
}
