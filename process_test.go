package main

import (
	"strings"
	"testing"
)

func TestReadUsers(t *testing.T) {
	input := "USER_LATITUDE,USER_LONGITUDE\n" +
		"-34.60,-58.40\n" +
		"oops,-58.40\n" +
		"40.71,-74.00\n"
	var logger Logger
	users, err := readUsers(strings.NewReader(input), &logger)
	if err != nil {
		t.Fatalf("readUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("users = %d, want 2 (bad row skipped)", len(users))
	}
	if users[0].Latitude != -34.60 || users[1].Longitude != -74.00 {
		t.Errorf("parsed users = %+v", users)
	}
	if len(logger.Records) != 1 {
		t.Errorf("logged notices = %d, want 1", len(logger.Records))
	}
}

func TestReadUsersMissingColumn(t *testing.T) {
	input := "LAT,LON\n1,2\n"
	var logger Logger
	if _, err := readUsers(strings.NewReader(input), &logger); err == nil {
		t.Fatal("expected error for missing required columns")
	}
}

func TestReadRestaurants(t *testing.T) {
	input := "id,latitude,longitude,availability_radius,open_hour,close_hour\n" +
		"1,-34.60,-58.40,2.0,10:00:00,18:00:00\n" +
		"2,,-58.40,2.0,10:00:00,18:00:00\n" +
		"3,-35.00,-58.90,notanumber,22:00:00,06:00:00\n"
	var logger Logger
	restaurants, err := readRestaurants(strings.NewReader(input), &logger)
	if err != nil {
		t.Fatalf("readRestaurants: %v", err)
	}
	if len(restaurants) != 2 {
		t.Fatalf("restaurants = %d, want 2 (missing-coordinate row dropped)", len(restaurants))
	}
	if restaurants[0].ID != "1" || restaurants[0].RadiusKm != 2.0 {
		t.Errorf("first restaurant = %+v", restaurants[0])
	}
	if restaurants[1].RadiusKm != 0 {
		t.Errorf("unparseable radius = %v, want 0", restaurants[1].RadiusKm)
	}
	if restaurants[1].OpenHour != "22:00:00" || restaurants[1].CloseHour != "06:00:00" {
		t.Errorf("hours kept verbatim, got %+v", restaurants[1])
	}
}

func TestReadRestaurantsMissingColumn(t *testing.T) {
	input := "id,latitude,longitude,open_hour,close_hour\n1,0,0,a,b\n"
	var logger Logger
	if _, err := readRestaurants(strings.NewReader(input), &logger); err == nil {
		t.Fatal("expected error for missing availability_radius column")
	}
}

func TestWriteResultsFormat(t *testing.T) {
	var sb strings.Builder
	results := []MatchResult{
		{Latitude: -34.6, Longitude: -58.4, MatchCount: 2, MatchedIDs: "10;2"},
		{Latitude: 40.71, Longitude: -74.0, MatchCount: 0, MatchedIDs: ""},
	}
	if err := writeResults(&sb, results); err != nil {
		t.Fatalf("writeResults: %v", err)
	}
	want := "User_latitude,User_Longitude,Available_restaurant_count,Restaurant_Id's\n" +
		"-34.6,-58.4,2,10;2\n" +
		"40.71,-74,0,\n"
	if sb.String() != want {
		t.Errorf("output:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestWriteUsersRoundTrip(t *testing.T) {
	users := []User{{Latitude: 1.5, Longitude: -2.25}, {Latitude: 0, Longitude: 0}}
	var sb strings.Builder
	if err := writeUsers(&sb, users); err != nil {
		t.Fatalf("writeUsers: %v", err)
	}
	var logger Logger
	back, err := readUsers(strings.NewReader(sb.String()), &logger)
	if err != nil {
		t.Fatalf("readUsers: %v", err)
	}
	if len(back) != len(users) {
		t.Fatalf("round trip returned %d users, want %d", len(back), len(users))
	}
	for i := range users {
		if back[i] != users[i] {
			t.Errorf("user %d = %+v, want %+v", i, back[i], users[i])
		}
	}
}

func TestWriteBenchmarks(t *testing.T) {
	var sb strings.Builder
	records := []BenchmarkRecord{{
		UserFile: "users_1_10.csv", UserCount: 10, TimeTakenSecs: 0.1234,
		MemoryMBBefore: 12.345, MemoryMBAfter: 13.5, MatchedRows: 10,
		TotalMatches: 4, OutputFile: "users_1_10_results.csv",
	}}
	if err := writeBenchmarks(&sb, "run-1", records); err != nil {
		t.Fatalf("writeBenchmarks: %v", err)
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want header plus one record", len(lines))
	}
	if lines[1] != "run-1,users_1_10.csv,10,0.123,12.35,13.50,10,4,users_1_10_results.csv" {
		t.Errorf("record line = %q", lines[1])
	}
}
