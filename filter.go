package main

import (
	"math"
	"time"

	"github.com/dhconnelly/rtreego"
)

const hourLayout = "15:04:05"

// rtreego rejects zero-size rects, so restaurants are stored as boxes of this
// negligible extent.
const pointExtent = 1e-9

// parseTimeOfDay parses an HH:MM:SS wall-clock value into seconds since
// midnight.
func parseTimeOfDay(s string) (int, error) {
	t, err := time.Parse(hourLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

// isOpen reports whether the restaurant is open at the given instant (seconds
// since midnight). A close hour earlier than the open hour means the window
// wraps past midnight. Hours that fail to parse mean closed, never an error.
func isOpen(r Restaurant, instant int) bool {
	openAt, err := parseTimeOfDay(r.OpenHour)
	if err != nil {
		return false
	}
	closeAt, err := parseTimeOfDay(r.CloseHour)
	if err != nil {
		return false
	}
	if openAt <= closeAt {
		return openAt <= instant && instant <= closeAt
	}
	return instant >= openAt || instant <= closeAt
}

// FilterOpen reduces the catalog to the restaurants open at the given instant
// and builds the spatial index over the survivors. Each survivor carries its
// coordinates in float32 radians and its service radius as an angular radius
// (km / earth radius). An instant with nothing open yields an empty set, not
// an error; callers short-circuit on Empty().
func FilterOpen(restaurants []Restaurant, instant int) *OpenSet {
	set := &OpenSet{tree: rtreego.NewTree(2, 25, 50)}
	for _, r := range restaurants {
		if !isOpen(r, instant) {
			continue
		}
		rect, err := rtreego.NewRect(
			rtreego.Point{r.Longitude, r.Latitude},
			[]float64{pointExtent, pointExtent},
		)
		if err != nil {
			continue
		}
		item := &openItem{
			rect:      &rect,
			id:        r.ID,
			latRad:    float32(r.Latitude * math.Pi / 180),
			lonRad:    float32(r.Longitude * math.Pi / 180),
			angRadius: float32(r.RadiusKm / earthRadiusKm),
		}
		set.items = append(set.items, item)
		set.tree.Insert(item)
		if item.angRadius > set.maxAngular {
			set.maxAngular = item.angRadius
		}
	}
	return set
}
