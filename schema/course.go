package schema

import (
	"time"
)

const (
	CourseCollection      = "courses"
	CourseStatsCollection = "course_stats"
)

type Course struct {
	ID             string    `bson:"id" json:"id"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	Name           string    `bson:"name" json:"name"`
	Address        string    `bson:"address,omitempty" json:"address,omitempty"`
	City           string    `bson:"city,omitempty" json:"city,omitempty"`
	State          string    `bson:"state,omitempty" json:"state,omitempty"`
	Country        string    `bson:"country,omitempty" json:"country,omitempty"`
	Latitude       float64   `bson:"lat" json:"lat"`
	Longitude      float64   `bson:"lng" json:"lng"`
	Yardage        *float64  `bson:"yardage,omitempty" json:"yardage,omitempty"`
	SlopeRating    *float64  `bson:"slope_rating,omitempty" json:"slope_rating,omitempty"`
	CourseRating   *float64  `bson:"course_rating,omitempty" json:"course_rating,omitempty"`
	ConditionScore *float64  `bson:"condition_score,omitempty" json:"condition_score,omitempty"`
	GooglePlaceID  string    `bson:"google_place_id,omitempty" json:"google_place_id,omitempty"`
	ImageURL       string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	FitScore       *int      `bson:"-" json:"fit_score,omitempty"`
}

// PeakHours lists "HH-HH" hour ranges during which a course is busier,
// split by day type.
type PeakHours struct {
	Weekday []string `bson:"weekday,omitempty" json:"weekday,omitempty"`
	Weekend []string `bson:"weekend,omitempty" json:"weekend,omitempty"`
}

// CourseStats is an optional per-course record of crowd characteristics.
// There is zero or one per course.
type CourseStats struct {
	CourseID       string     `bson:"course_id" json:"course_id"`
	PeakHours      *PeakHours `bson:"peak_hours,omitempty" json:"peak_hours,omitempty"`
	HolidayFactor  *float64   `bson:"holiday_factor,omitempty" json:"holiday_factor,omitempty"`
	BasePopularity *float64   `bson:"base_popularity,omitempty" json:"base_popularity,omitempty"`
}
