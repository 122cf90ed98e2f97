package score

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rrabbani2/GolfMaps/schema"
)

// Score adjustments applied on top of the popularity baseline.
const (
	peakHourBoost        = 25
	weekdayDefaultBoost  = 20
	holidayDefaultBoost  = 30
	popularityReviewCap  = 20
	popularityMidRating  = 3.5
	busynessBaselineMean = 50
)

// ComputeBusynessScore estimates crowd level for a course at the given
// time. The timestamp is always explicit so results are reproducible;
// callers wanting "now" pass time.Now() themselves. stats and popularity
// may be nil, in which case defaults apply.
func ComputeBusynessScore(course schema.Course, stats *schema.CourseStats, at time.Time, popularity *schema.PopularitySignal) schema.BusynessScore {
	scoreValue := float64(busynessBaselineMean)
	if stats != nil && stats.BasePopularity != nil {
		scoreValue = *stats.BasePopularity
	}

	if popularity != nil {
		ratingFactor := (popularity.Rating - popularityMidRating) * 10
		reviewFactor := math.Min(popularityReviewCap, math.Log10(float64(popularity.ReviewCount)+1)*5)
		scoreValue += ratingFactor + reviewFactor
	}

	scoreValue += peakHourAdjustment(stats, at)

	if isHoliday(at) {
		if stats != nil && stats.HolidayFactor != nil {
			scoreValue += *stats.HolidayFactor * 30
		} else {
			scoreValue += holidayDefaultBoost
		}
	}

	scoreValue = math.Max(0, math.Min(100, scoreValue))

	return schema.BusynessScore{
		Score: int(math.Round(scoreValue)),
		Label: busynessLabel(scoreValue),
	}
}

// peakHourAdjustment returns the boost for the timestamp's hour. Explicit
// per-course ranges win over the fixed default schedule; a stats record
// with an empty range list for the day type means no boost at all.
func peakHourAdjustment(stats *schema.CourseStats, at time.Time) float64 {
	hour := at.Hour()
	weekday := at.Weekday()
	isWeekend := weekday == time.Sunday || weekday == time.Saturday

	if stats != nil && stats.PeakHours != nil {
		ranges := stats.PeakHours.Weekday
		if isWeekend {
			ranges = stats.PeakHours.Weekend
		}

		for _, r := range ranges {
			if inHourRange(r, hour) {
				return peakHourBoost
			}
		}
		return 0
	}

	if isWeekend {
		if hour >= 7 && hour < 12 {
			return peakHourBoost
		}
		return 0
	}

	if (hour >= 7 && hour < 10) || (hour >= 15 && hour < 18) {
		return weekdayDefaultBoost
	}
	return 0
}

// inHourRange reports whether hour falls in a "start-end" range, start
// inclusive and end exclusive. Malformed ranges never match.
func inHourRange(hourRange string, hour int) bool {
	parts := strings.SplitN(hourRange, "-", 2)
	if len(parts) != 2 {
		return false
	}

	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return false
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return false
	}

	return hour >= start && hour < end
}

func busynessLabel(score float64) string {
	switch {
	case score >= 75:
		return "Very Busy"
	case score >= 50:
		return "Busy"
	case score >= 25:
		return "Moderate"
	default:
		return "Quiet"
	}
}
