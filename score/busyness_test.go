package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rrabbani2/GolfMaps/schema"
)

var quietWednesdayAfternoon = time.Date(2025, time.January, 15, 13, 0, 0, 0, time.UTC)

func TestComputeBusynessScoreBaseline(t *testing.T) {
	// no stats, no popularity, off-peak weekday, no holiday
	busyness := ComputeBusynessScore(schema.Course{}, nil, quietWednesdayAfternoon, nil)
	assert.Equal(t, schema.BusynessScore{Score: 50, Label: "Busy"}, busyness)
}

func TestComputeBusynessScoreBasePopularity(t *testing.T) {
	stats := &schema.CourseStats{BasePopularity: floatPtr(20)}
	busyness := ComputeBusynessScore(schema.Course{}, stats, quietWednesdayAfternoon, nil)
	assert.Equal(t, schema.BusynessScore{Score: 20, Label: "Quiet"}, busyness)
}

func TestComputeBusynessScorePopularitySignal(t *testing.T) {
	popularity := &schema.PopularitySignal{Rating: 4.5, ReviewCount: 999}

	// (4.5-3.5)*10 + min(20, log10(1000)*5) = 10 + 15
	busyness := ComputeBusynessScore(schema.Course{}, nil, quietWednesdayAfternoon, popularity)
	assert.Equal(t, schema.BusynessScore{Score: 75, Label: "Very Busy"}, busyness)
}

func TestComputeBusynessScorePopularityReviewCap(t *testing.T) {
	popularity := &schema.PopularitySignal{Rating: 3.5, ReviewCount: 100000000}

	// review factor is capped at 20 no matter how many reviews
	busyness := ComputeBusynessScore(schema.Course{}, nil, quietWednesdayAfternoon, popularity)
	assert.Equal(t, 70, busyness.Score)
}

func TestComputeBusynessScoreWeekdayDefaultPeak(t *testing.T) {
	morning := time.Date(2025, time.January, 15, 8, 0, 0, 0, time.UTC)
	afternoon := time.Date(2025, time.January, 15, 16, 0, 0, 0, time.UTC)

	assert.Equal(t, 70, ComputeBusynessScore(schema.Course{}, nil, morning, nil).Score)
	assert.Equal(t, 70, ComputeBusynessScore(schema.Course{}, nil, afternoon, nil).Score)
}

func TestComputeBusynessScoreWeekendDefaultPeak(t *testing.T) {
	saturdayMorning := time.Date(2025, time.March, 8, 8, 0, 0, 0, time.UTC)
	busyness := ComputeBusynessScore(schema.Course{}, nil, saturdayMorning, nil)
	assert.Equal(t, schema.BusynessScore{Score: 75, Label: "Very Busy"}, busyness)

	saturdayEvening := time.Date(2025, time.March, 8, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, 50, ComputeBusynessScore(schema.Course{}, nil, saturdayEvening, nil).Score)
}

func TestComputeBusynessScoreExplicitPeakHours(t *testing.T) {
	stats := &schema.CourseStats{
		PeakHours: &schema.PeakHours{Weekday: []string{"12-14"}},
	}

	busyness := ComputeBusynessScore(schema.Course{}, stats, quietWednesdayAfternoon, nil)
	assert.Equal(t, 75, busyness.Score)

	// explicit ranges replace the default schedule entirely
	defaultPeakMorning := time.Date(2025, time.January, 15, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 50, ComputeBusynessScore(schema.Course{}, stats, defaultPeakMorning, nil).Score)

	// a stats record without ranges for the day type yields no boost
	saturdayMorning := time.Date(2025, time.March, 8, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 50, ComputeBusynessScore(schema.Course{}, stats, saturdayMorning, nil).Score)
}

func TestComputeBusynessScoreMalformedPeakRange(t *testing.T) {
	stats := &schema.CourseStats{
		PeakHours: &schema.PeakHours{Weekday: []string{"noon", "12", "a-b", "12-14"}},
	}

	busyness := ComputeBusynessScore(schema.Course{}, stats, quietWednesdayAfternoon, nil)
	assert.Equal(t, 75, busyness.Score)
}

func TestComputeBusynessScoreChristmas(t *testing.T) {
	// Christmas 2025 falls on a Thursday; 10:00 is outside the weekday
	// default peak, so only the flat holiday boost applies.
	christmas := time.Date(2025, time.December, 25, 10, 0, 0, 0, time.UTC)
	busyness := ComputeBusynessScore(schema.Course{}, nil, christmas, nil)
	assert.Equal(t, schema.BusynessScore{Score: 80, Label: "Very Busy"}, busyness)

	// at 9:00 the weekday morning peak stacks on top
	christmasMorning := time.Date(2025, time.December, 25, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 100, ComputeBusynessScore(schema.Course{}, nil, christmasMorning, nil).Score)
}

func TestComputeBusynessScoreThanksgiving(t *testing.T) {
	// fourth Thursday of November 2025
	thanksgiving := time.Date(2025, time.November, 27, 13, 0, 0, 0, time.UTC)

	busyness := ComputeBusynessScore(schema.Course{}, nil, thanksgiving, nil)
	assert.Equal(t, 80, busyness.Score)

	// a stats record scales the boost by its holiday factor
	stats := &schema.CourseStats{HolidayFactor: floatPtr(0.5)}
	assert.Equal(t, 65, ComputeBusynessScore(schema.Course{}, stats, thanksgiving, nil).Score)

	// the third Thursday is not a holiday
	thirdThursday := time.Date(2025, time.November, 20, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, 50, ComputeBusynessScore(schema.Course{}, nil, thirdThursday, nil).Score)
}

func TestComputeBusynessScoreIndependenceDayClamped(t *testing.T) {
	// Saturday July 4th at 8:00: weekend peak + holiday pushes past 100
	julyFourth := time.Date(2026, time.July, 4, 8, 0, 0, 0, time.UTC)
	stats := &schema.CourseStats{BasePopularity: floatPtr(60)}

	busyness := ComputeBusynessScore(schema.Course{}, stats, julyFourth, nil)
	assert.Equal(t, schema.BusynessScore{Score: 100, Label: "Very Busy"}, busyness)
}

func TestComputeBusynessScoreQuietNight(t *testing.T) {
	night := time.Date(2025, time.January, 15, 3, 0, 0, 0, time.UTC)
	stats := &schema.CourseStats{BasePopularity: floatPtr(10)}

	busyness := ComputeBusynessScore(schema.Course{}, stats, night, nil)
	assert.Equal(t, schema.BusynessScore{Score: 10, Label: "Quiet"}, busyness)
}

func TestComputeBusynessScoreDeterministic(t *testing.T) {
	stats := &schema.CourseStats{
		PeakHours:      &schema.PeakHours{Weekend: []string{"06-11"}},
		HolidayFactor:  floatPtr(0.8),
		BasePopularity: floatPtr(42),
	}
	popularity := &schema.PopularitySignal{Rating: 4.1, ReviewCount: 321}
	at := time.Date(2025, time.July, 4, 9, 30, 0, 0, time.UTC)

	first := ComputeBusynessScore(schema.Course{}, stats, at, popularity)
	second := ComputeBusynessScore(schema.Course{}, stats, at, popularity)
	assert.Equal(t, first, second)
}

func TestIsHolidayCalendar(t *testing.T) {
	assert.True(t, isHoliday(time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)))
	assert.True(t, isHoliday(time.Date(2025, time.July, 4, 12, 0, 0, 0, time.UTC)))
	assert.True(t, isHoliday(time.Date(2025, time.December, 25, 12, 0, 0, 0, time.UTC)))
	assert.True(t, isHoliday(time.Date(2025, time.November, 27, 12, 0, 0, 0, time.UTC)))

	assert.False(t, isHoliday(time.Date(2025, time.November, 22, 12, 0, 0, 0, time.UTC)))  // Saturday in the window
	assert.False(t, isHoliday(time.Date(2025, time.December, 24, 12, 0, 0, 0, time.UTC))) // Christmas Eve
	assert.False(t, isHoliday(time.Date(2025, time.January, 2, 12, 0, 0, 0, time.UTC)))
}
