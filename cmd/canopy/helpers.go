package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/canopy.report/internal/crown"
)

// loadCentroidsCSV reads candidate mode centroids from a CSV file with
// one x,y,z row per centroid. A single header row is skipped if the
// first field does not parse as a number. Row order is preserved; the
// leader rule depends on it.
func loadCentroidsCSV(path string) ([]crown.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseCentroids(f)
}

func parseCentroids(r io.Reader) ([]crown.Point, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	var centroids []crown.Point
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line+1, err)
		}
		line++

		x, errX := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if errX != nil && line == 1 {
			// Header row
			continue
		}
		y, errY := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		z, errZ := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if errX != nil || errY != nil || errZ != nil {
			return nil, fmt.Errorf("row %d: invalid coordinate triple %v", line, record)
		}

		centroids = append(centroids, crown.Point{X: x, Y: y, Z: z})
	}

	return centroids, nil
}
