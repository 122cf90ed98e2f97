package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rrabbani2/GolfMaps/geo"
	"github.com/rrabbani2/GolfMaps/schema"
	"github.com/rrabbani2/GolfMaps/store"
)

type courseImportRecord struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Country       string   `json:"country"`
	Latitude      *float64 `json:"lat"`
	Longitude     *float64 `json:"lng"`
	Yardage       *float64 `json:"yardage"`
	SlopeRating   *float64 `json:"slope_rating"`
	CourseRating  *float64 `json:"course_rating"`
	GooglePlaceID string   `json:"google_place_id"`
}

// newImportCoursesCmd bulk-loads courses from a JSON file, geocoding
// records that carry an address but no coordinates.
func newImportCoursesCmd() *cobra.Command {
	var flagFile string

	cmd := &cobra.Command{
		Use:   "import-courses",
		Short: "Bulk import courses from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagFile == "" {
				return fmt.Errorf("--file is required")
			}
			return runImportCourses(cmd.Context(), flagFile)
		},
	}

	cmd.Flags().StringVar(&flagFile, "file", "", "Path to a JSON array of course records")

	return cmd
}

func runImportCourses(ctx context.Context, path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var records []courseImportRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	mongoStore, err := connectMongo(ctx)
	if err != nil {
		return err
	}
	defer mongoStore.Close(context.Background())

	var searcher geo.LocationSearcher
	if endpoint := viper.GetString("nominatim.endpoint"); endpoint != "" {
		searcher = geo.NewNominatimSearcher(endpoint)
	}

	var imported, skipped int
	for _, record := range records {
		course, err := buildImportedCourse(record, searcher)
		if err != nil {
			log.WithFields(log.Fields{
				"prefix": "import",
				"name":   record.Name,
			}).WithError(err).Warn("skip course")
			skipped++
			continue
		}

		if err := mongoStore.CreateCourse(ctx, *course); err != nil {
			if err == store.ErrCourseExists {
				skipped++
				continue
			}
			return err
		}
		imported++
	}

	log.WithFields(log.Fields{
		"prefix":   "import",
		"imported": imported,
		"skipped":  skipped,
	}).Info("import finished")

	return nil
}

func buildImportedCourse(record courseImportRecord, searcher geo.LocationSearcher) (*schema.Course, error) {
	if strings.TrimSpace(record.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	course := schema.Course{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Name:          strings.TrimSpace(record.Name),
		Address:       record.Address,
		City:          record.City,
		State:         record.State,
		Country:       record.Country,
		Yardage:       record.Yardage,
		SlopeRating:   record.SlopeRating,
		CourseRating:  record.CourseRating,
		GooglePlaceID: record.GooglePlaceID,
	}

	switch {
	case record.Latitude != nil && record.Longitude != nil:
		course.Latitude = *record.Latitude
		course.Longitude = *record.Longitude
	case record.Address != "" && searcher != nil:
		lat, lng, err := searcher.LookupCoordinate(
			strings.Join([]string{record.Address, record.City, record.State}, ", "))
		if err != nil {
			return nil, err
		}
		course.Latitude = lat
		course.Longitude = lng
	default:
		return nil, fmt.Errorf("no coordinates and no geocodable address")
	}

	return &course, nil
}
