package schema

const (
	BusynessHistoryCollection = "busyness_history"
)

// BusynessScore is a 0-100 crowd estimate with a category label.
type BusynessScore struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// FitRating is a 0-100 course/player match with a category label.
type FitRating struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// PopularitySignal is an external rating summary for a course, fetched
// from a places provider. Transient; absent when the provider is
// unconfigured or fails.
type PopularitySignal struct {
	Rating      float64 `json:"rating"`       // 0-5
	ReviewCount int     `json:"review_count"` // total user ratings
}

// BusynessRecord keeps one computed busyness score per course per day.
type BusynessRecord struct {
	CourseID string  `bson:"course_id"`
	Score    float64 `bson:"score"`
	Date     string  `bson:"date"`
}
