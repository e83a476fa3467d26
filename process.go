package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// columnIndex resolves the position of each required column in the header.
// A missing column is a precondition violation, so it is returned as an error
// rather than defaulted.
func columnIndex(header []string, names ...string) ([]int, error) {
	positions := make([]int, len(names))
	for i, name := range names {
		positions[i] = -1
		for j, h := range header {
			if strings.TrimSpace(h) == name {
				positions[i] = j
				break
			}
		}
		if positions[i] < 0 {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return positions, nil
}

// readUsers parses the user table. Rows with unparseable coordinates are
// skipped with a logged notice; a malformed header is fatal.
func readUsers(r io.Reader, logger *Logger) ([]User, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading user header: %w", err)
	}
	cols, err := columnIndex(header, "USER_LATITUDE", "USER_LONGITUDE")
	if err != nil {
		return nil, err
	}

	var users []User
	row := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			logger.Append(fmt.Sprintf("could not read user row %d: %s", row, err))
			continue
		}
		lat, latErr := strconv.ParseFloat(record[cols[0]], 64)
		lon, lonErr := strconv.ParseFloat(record[cols[1]], 64)
		if latErr != nil || lonErr != nil {
			logger.Append(fmt.Sprintf("skipping user row %d: unparseable coordinates", row))
			continue
		}
		users = append(users, User{Latitude: lat, Longitude: lon})
	}
	return users, nil
}

// readRestaurants parses the restaurant catalog. Rows missing latitude or
// longitude are dropped before matching; an unparseable radius counts as zero.
// Open and close hours are kept verbatim, the availability filter decides what
// they mean.
func readRestaurants(r io.Reader, logger *Logger) ([]Restaurant, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading restaurant header: %w", err)
	}
	cols, err := columnIndex(header,
		"id", "latitude", "longitude", "availability_radius", "open_hour", "close_hour")
	if err != nil {
		return nil, err
	}

	var restaurants []Restaurant
	row := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			logger.Append(fmt.Sprintf("could not read restaurant row %d: %s", row, err))
			continue
		}
		lat, latErr := strconv.ParseFloat(record[cols[1]], 64)
		lon, lonErr := strconv.ParseFloat(record[cols[2]], 64)
		if latErr != nil || lonErr != nil {
			logger.Append(fmt.Sprintf("dropping restaurant row %d: missing coordinates", row))
			continue
		}
		radius, radErr := strconv.ParseFloat(record[cols[3]], 64)
		if radErr != nil {
			radius = 0
		}
		restaurants = append(restaurants, Restaurant{
			ID:        record[cols[0]],
			Latitude:  lat,
			Longitude: lon,
			RadiusKm:  radius,
			OpenHour:  record[cols[4]],
			CloseHour: record[cols[5]],
		})
	}
	return restaurants, nil
}

// writeResults writes the per-user result table. The header matches the
// historical output format consumed downstream, quirky capitalization and all.
func writeResults(w io.Writer, results []MatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"User_latitude", "User_Longitude", "Available_restaurant_count", "Restaurant_Id's",
	}); err != nil {
		return err
	}
	for _, res := range results {
		if err := cw.Write([]string{
			strconv.FormatFloat(res.Latitude, 'f', -1, 64),
			strconv.FormatFloat(res.Longitude, 'f', -1, 64),
			strconv.Itoa(res.MatchCount),
			res.MatchedIDs,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeUsers writes a user table in the shape readUsers expects; used by the
// fixture generator.
func writeUsers(w io.Writer, users []User) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"USER_LATITUDE", "USER_LONGITUDE"}); err != nil {
		return err
	}
	for _, u := range users {
		if err := cw.Write([]string{
			strconv.FormatFloat(u.Latitude, 'f', -1, 64),
			strconv.FormatFloat(u.Longitude, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeBenchmarks writes the per-file benchmark log, one row per processed
// user file, all tagged with the invocation's run ID.
func writeBenchmarks(w io.Writer, runID string, records []BenchmarkRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"Run_ID", "User_File", "User_Count", "Time_Taken_Seconds",
		"Memory_MB_Before", "Memory_MB_After", "Matched_Rows", "Total_Matches", "Output_File",
	}); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write([]string{
			runID,
			rec.UserFile,
			strconv.Itoa(rec.UserCount),
			strconv.FormatFloat(rec.TimeTakenSecs, 'f', 3, 64),
			strconv.FormatFloat(rec.MemoryMBBefore, 'f', 2, 64),
			strconv.FormatFloat(rec.MemoryMBAfter, 'f', 2, 64),
			strconv.Itoa(rec.MatchedRows),
			strconv.Itoa(rec.TotalMatches),
			rec.OutputFile,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
