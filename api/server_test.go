package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rrabbani2/GolfMaps/external/openweather"
	"github.com/rrabbani2/GolfMaps/schema"
	"github.com/rrabbani2/GolfMaps/store"
	"github.com/rrabbani2/GolfMaps/weather"
)

// fakeStore is an in-memory GolfMapsStore for handler tests.
type fakeStore struct {
	mu       sync.Mutex
	courses  map[string]schema.Course
	stats    map[string]schema.CourseStats
	groups   map[string]schema.Group
	members  map[string][]schema.GroupMember
	history  map[string]float64
	pingErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		courses: make(map[string]schema.Course),
		stats:   make(map[string]schema.CourseStats),
		groups:  make(map[string]schema.Group),
		members: make(map[string][]schema.GroupMember),
		history: make(map[string]float64),
	}
}

func (f *fakeStore) CreateCourse(ctx context.Context, course schema.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.courses {
		if existing.Name == course.Name {
			return store.ErrCourseExists
		}
	}
	f.courses[course.ID] = course
	return nil
}

func (f *fakeStore) GetCourse(ctx context.Context, id string) (*schema.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.courses[id]
	if !ok {
		return nil, nil
	}
	return &course, nil
}

func (f *fakeStore) ListCourses(ctx context.Context) ([]schema.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	courses := make([]schema.Course, 0, len(f.courses))
	for _, course := range f.courses {
		courses = append(courses, course)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Name < courses[j].Name })
	return courses, nil
}

func (f *fakeStore) GetCourseStats(ctx context.Context, courseID string) (*schema.CourseStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats, ok := f.stats[courseID]
	if !ok {
		return nil, nil
	}
	return &stats, nil
}

func (f *fakeStore) UpsertCourseStats(ctx context.Context, stats schema.CourseStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats[stats.CourseID] = stats
	return nil
}

func (f *fakeStore) AddBusynessRecord(ctx context.Context, courseID string, score float64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history[fmt.Sprintf("%s/%s", courseID, at.UTC().Format("2006-01-02"))] = score
	return nil
}

func (f *fakeStore) GetBusynessAverage(ctx context.Context, courseID string, start, end time.Time) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	startDate := start.UTC().Format("2006-01-02")
	endDate := end.UTC().Format("2006-01-02")
	var sum float64
	var n int
	for key, score := range f.history {
		if !strings.HasPrefix(key, courseID+"/") {
			continue
		}
		date := strings.TrimPrefix(key, courseID+"/")
		if date < startDate || date > endDate {
			continue
		}
		sum += score
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func (f *fakeStore) CourseExists(ctx context.Context, courseID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.courses[courseID]
	return ok, nil
}

func (f *fakeStore) CreateGroup(ctx context.Context, group schema.Group) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups[group.ID] = group
	return nil
}

func (f *fakeStore) DeleteGroup(ctx context.Context, groupID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.groups, groupID)
	delete(f.members, groupID)
	return nil
}

func (f *fakeStore) GetGroup(ctx context.Context, groupID string) (*schema.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	group, ok := f.groups[groupID]
	if !ok {
		return nil, nil
	}
	return &group, nil
}

func (f *fakeStore) UpdateGroupStatus(ctx context.Context, groupID string, status schema.GroupStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	group, ok := f.groups[groupID]
	if !ok {
		return store.ErrGroupNotFound
	}
	group.Status = status
	f.groups[groupID] = group
	return nil
}

func (f *fakeStore) ListGroupsByCourse(ctx context.Context, courseID string) ([]schema.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	groups := make([]schema.Group, 0)
	for _, group := range f.groups {
		if group.CourseID == courseID && group.Status != schema.GroupStatusClosed {
			groups = append(groups, group)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].CreatedAt.After(groups[j].CreatedAt) })
	return groups, nil
}

func (f *fakeStore) AddMember(ctx context.Context, member schema.GroupMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[member.GroupID] = append(f.members[member.GroupID], member)
	return nil
}

func (f *fakeStore) ListMembers(ctx context.Context, groupID string) ([]schema.GroupMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := make([]schema.GroupMember, len(f.members[groupID]))
	copy(members, f.members[groupID])
	return members, nil
}

func (f *fakeStore) Ping(ctx context.Context) error  { return f.pingErr }
func (f *fakeStore) Close(ctx context.Context) error { return nil }

// fakeWeather serves one canned sample or fails.
type fakeWeather struct {
	current *openweather.CurrentWeather
	err     error
	calls   int
}

func (f *fakeWeather) Current(lat, lng float64) (*openweather.CurrentWeather, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.current, nil
}

func floatPtr(v float64) *float64 { return &v }

func newTestServer(db *fakeStore, weatherAPI WeatherSource) *Server {
	return NewServer(db, weather.NewCache(0), weatherAPI, nil, nil, false)
}

func seedCourse(db *fakeStore, id string) schema.Course {
	course := schema.Course{
		ID:          id,
		Name:        "Pebble Creek",
		Latitude:    37.57,
		Longitude:   -122.32,
		Yardage:     floatPtr(6250),
		SlopeRating: floatPtr(115),
	}
	db.courses[id] = course
	return course
}

func doRequest(s *Server, method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestListCoursesAnnotatesFit(t *testing.T) {
	db := newFakeStore()
	seedCourse(db, "c1")
	// no coordinates, must be filtered out
	db.courses["c2"] = schema.Course{ID: "c2", Name: "Nowhere Links"}

	s := newTestServer(db, nil)
	w := doRequest(s, "GET", "/api/courses", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Courses []schema.Course `json:"courses"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Courses, 1)
	assert.Equal(t, "c1", resp.Courses[0].ID)
	if assert.NotNil(t, resp.Courses[0].FitScore) {
		assert.Equal(t, 55, *resp.Courses[0].FitScore)
	}
}

func TestCreateCourseRequiresLocation(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	w := doRequest(s, "POST", "/api/courses", map[string]any{"name": "No Location"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCourseWithCoordinates(t *testing.T) {
	db := newFakeStore()
	s := newTestServer(db, nil)

	w := doRequest(s, "POST", "/api/courses", map[string]any{
		"name": "Cypress Point",
		"lat":  36.58,
		"lng":  -121.97,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, db.courses, 1)

	w = doRequest(s, "POST", "/api/courses", map[string]any{
		"name": "Cypress Point",
		"lat":  36.58,
		"lng":  -121.97,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAttributeFit(t *testing.T) {
	s := newTestServer(newFakeStore(), nil)

	w := doRequest(s, "GET", "/api/fit?slope=105&yardage=6250", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Score int `json:"score"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 50, resp.Score)

	w = doRequest(s, "GET", "/api/fit?slope=155&yardage=5000&slopeWeight=1&yardageWeight=0", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.Score)

	w = doRequest(s, "GET", "/api/fit?slope=abc&yardage=6000", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourseFitRating(t *testing.T) {
	db := newFakeStore()
	seedCourse(db, "c1")
	s := newTestServer(db, nil)

	w := doRequest(s, "GET", "/api/courses/c1/fit?skill=Intermediate", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Score int    `json:"score"`
		Label string `json:"label"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Score > 0)
	assert.NotEmpty(t, resp.Label)

	// no skill means the neutral rating
	w = doRequest(s, "GET", "/api/courses/c1/fit", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 50, resp.Score)
	assert.Equal(t, "Moderate", resp.Label)

	w = doRequest(s, "GET", "/api/courses/missing/fit", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourseBusyness(t *testing.T) {
	db := newFakeStore()
	seedCourse(db, "c1")
	s := newTestServer(db, nil)

	w := doRequest(s, "GET", "/api/busyness?courseId=c1&datetime=2025-01-15T13:00", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Score       int     `json:"score"`
		Label       string  `json:"label"`
		WeekAverage float64 `json:"weekAverage"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 50, resp.Score)
	assert.Equal(t, "Busy", resp.Label)

	// the computed score is recorded per day and folds into the average
	assert.Equal(t, float64(50), db.history["c1/2025-01-15"])
	assert.Equal(t, float64(50), resp.WeekAverage)

	w = doRequest(s, "GET", "/api/busyness?courseId=missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(s, "GET", "/api/busyness?courseId=c1&datetime=not-a-time", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(s, "GET", "/api/busyness", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourseBusynessWeekAverage(t *testing.T) {
	db := newFakeStore()
	seedCourse(db, "c1")
	// two prior days inside the trailing week, one outside it
	db.history["c1/2025-01-13"] = 80
	db.history["c1/2025-01-14"] = 90
	db.history["c1/2025-01-01"] = 10
	s := newTestServer(db, nil)

	w := doRequest(s, "GET", "/api/busyness?courseId=c1&datetime=2025-01-15T13:00", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Score       int     `json:"score"`
		WeekAverage float64 `json:"weekAverage"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 50, resp.Score)
	// (80 + 90 + 50) / 3, rounded
	assert.Equal(t, float64(73), resp.WeekAverage)
}

func TestUpsertCourseStats(t *testing.T) {
	db := newFakeStore()
	seedCourse(db, "c1")
	s := newTestServer(db, nil)

	w := doRequest(s, "PUT", "/api/courses/c1/stats", map[string]any{
		"base_popularity": 20,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// the stored baseline replaces the default in subsequent scoring
	w = doRequest(s, "GET", "/api/busyness?courseId=c1&datetime=2025-01-15T13:00", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Score int    `json:"score"`
		Label string `json:"label"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 20, resp.Score)
	assert.Equal(t, "Quiet", resp.Label)

	// replace, not merge
	w = doRequest(s, "PUT", "/api/courses/c1/stats", map[string]any{
		"holiday_factor": 0.5,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	stats := db.stats["c1"]
	assert.Nil(t, stats.BasePopularity)
	assert.NotNil(t, stats.HolidayFactor)

	w = doRequest(s, "PUT", "/api/courses/missing/stats", map[string]any{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestParseBusynessTime(t *testing.T) {
	full, err := parseBusynessTime("2025-07-04T09:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 9, full.Hour())

	local, err := parseBusynessTime("2025-07-04T09:30")
	assert.NoError(t, err)
	assert.Equal(t, 9, local.Hour())

	_, err = parseBusynessTime("july 4th")
	assert.Error(t, err)
}

func TestCourseWeatherCachesSnapshots(t *testing.T) {
	db := newFakeStore()
	seedCourse(db, "c1")
	upstream := &fakeWeather{
		current: &openweather.CurrentWeather{
			Temperature:   71.6,
			WindSpeed:     5.2,
			Precipitation: 0,
			Description:   "clear sky",
			Icon:          "01d",
		},
	}
	s := newTestServer(db, upstream)

	w := doRequest(s, "GET", "/api/weather?courseId=c1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp schema.WeatherData
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 72, resp.Temperature)
	assert.Equal(t, 5, resp.WindSpeed)
	assert.Equal(t, 100, resp.ConditionScore)
	assert.Equal(t, "clear sky", resp.Description)

	// the second lookup for the same rounded coordinate is served from
	// the cache without touching the upstream
	w = doRequest(s, "GET", "/api/weather?lat=37.57&lng=-122.32", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, upstream.calls)
}

func TestCourseWeatherUnavailable(t *testing.T) {
	db := newFakeStore()
	seedCourse(db, "c1")

	s := newTestServer(db, nil)
	w := doRequest(s, "GET", "/api/weather?courseId=c1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	s = newTestServer(db, &fakeWeather{err: fmt.Errorf("upstream down")})
	w = doRequest(s, "GET", "/api/weather?courseId=c1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCourseWeatherInvalidCoordinates(t *testing.T) {
	s := newTestServer(newFakeStore(), &fakeWeather{})

	w := doRequest(s, "GET", "/api/weather?lat=400&lng=10", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(s, "GET", "/api/weather", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGroupLifecycleOverHTTP(t *testing.T) {
	db := newFakeStore()
	seedCourse(db, "c1")
	s := newTestServer(db, nil)

	w := doRequest(s, "POST", "/api/groups", map[string]any{
		"courseId": "c1",
		"name":     "Alice",
		"teeTime":  "08:00",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var created schema.GroupDetail
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1, created.MemberCount)
	assert.Equal(t, schema.GroupStatusOpen, created.Status)

	for _, name := range []string{"Bob", "Carol", "Dave"} {
		w = doRequest(s, "POST", "/api/groups/join", map[string]any{
			"groupId": created.ID,
			"name":    name,
		})
		assert.Equal(t, http.StatusOK, w.Code)
	}

	var last schema.GroupDetail
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &last))
	assert.Equal(t, 4, last.MemberCount)
	assert.Equal(t, schema.GroupStatusFull, last.Status)

	// the full group rejects a fifth member and no longer lists as open
	w = doRequest(s, "POST", "/api/groups/join", map[string]any{
		"groupId": created.ID,
		"name":    "Eve",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(s, "GET", "/api/groups?courseId=c1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Groups []schema.GroupDetail `json:"groups"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Empty(t, listing.Groups)
}

func TestCreateGroupValidation(t *testing.T) {
	db := newFakeStore()
	seedCourse(db, "c1")
	s := newTestServer(db, nil)

	w := doRequest(s, "POST", "/api/groups", map[string]any{"courseId": "c1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(s, "POST", "/api/groups", map[string]any{"courseId": "missing", "name": "Alice"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(s, "POST", "/api/groups/join", map[string]any{"groupId": "missing", "name": "Alice"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(s, "GET", "/api/groups", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthz(t *testing.T) {
	db := newFakeStore()
	s := newTestServer(db, nil)

	w := doRequest(s, "GET", "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	db.pingErr = fmt.Errorf("no reachable servers")
	w = doRequest(s, "GET", "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
