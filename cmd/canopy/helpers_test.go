package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/canopy.report/internal/crown"
)

func TestParseCentroids(t *testing.T) {
	input := "1.0,2.0,3.0\n4.5,5.5,6.5\n"
	got, err := parseCentroids(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseCentroids failed: %v", err)
	}
	want := []crown.Point{
		{X: 1.0, Y: 2.0, Z: 3.0},
		{X: 4.5, Y: 5.5, Z: 6.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected centroids (-want +got):\n%s", diff)
	}
}

func TestParseCentroids_SkipsHeader(t *testing.T) {
	input := "x,y,z\n1.0,2.0,3.0\n"
	got, err := parseCentroids(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseCentroids failed: %v", err)
	}
	want := []crown.Point{{X: 1.0, Y: 2.0, Z: 3.0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected centroids (-want +got):\n%s", diff)
	}
}

func TestParseCentroids_InvalidRow(t *testing.T) {
	input := "1.0,2.0,3.0\n4.0,nope,6.0\n"
	if _, err := parseCentroids(strings.NewReader(input)); err == nil {
		t.Error("expected error for invalid coordinate")
	}
}

func TestParseCentroids_Empty(t *testing.T) {
	got, err := parseCentroids(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parseCentroids failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no centroids, got %v", got)
	}
}

func TestParseCentroids_WrongFieldCount(t *testing.T) {
	input := "1.0,2.0\n"
	if _, err := parseCentroids(strings.NewReader(input)); err == nil {
		t.Error("expected error for wrong field count")
	}
}
