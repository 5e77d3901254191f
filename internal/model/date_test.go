package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2027-06-30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2027-06-30"` {
		t.Errorf("marshal = %s", raw)
	}
	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round-trip changed the date: %s vs %s", back, d)
	}
}

func TestDateRejectsMalformedText(t *testing.T) {
	for _, bad := range []string{"30-06-2027", "2027/06/30", "not-a-date", "2027-13-40"} {
		var d Date
		if err := json.Unmarshal([]byte(`"`+bad+`"`), &d); err == nil {
			t.Errorf("unmarshal accepted %q", bad)
		}
	}
}

func TestDateScanVariants(t *testing.T) {
	want, _ := ParseDate("2026-01-02")

	var fromString Date
	if err := fromString.Scan("2026-01-02"); err != nil || !fromString.Equal(want) {
		t.Errorf("scan string: %v, %s", err, fromString)
	}

	var fromBytes Date
	if err := fromBytes.Scan([]byte("2026-01-02")); err != nil || !fromBytes.Equal(want) {
		t.Errorf("scan bytes: %v, %s", err, fromBytes)
	}

	var fromTime Date
	if err := fromTime.Scan(time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)); err != nil || !fromTime.Equal(want) {
		t.Errorf("scan time: %v, %s", err, fromTime)
	}

	var fromInt Date
	if err := fromInt.Scan(42); err == nil {
		t.Error("scan int should fail")
	}
}

func TestShopLocationParsing(t *testing.T) {
	shop := Shop{ID: "x", Latitude: "16.8409", Longitude: "96.1735"}
	loc, err := shop.Location()
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc.Lat != 16.8409 || loc.Lng != 96.1735 {
		t.Errorf("location = %+v", loc)
	}

	shop.Longitude = "east-ish"
	if _, err := shop.Location(); err == nil {
		t.Error("unparseable longitude should error")
	}
}
