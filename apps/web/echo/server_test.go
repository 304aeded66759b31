package echoweb

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catiga/languagebridge/core"
	logsvc "github.com/catiga/languagebridge/services/logger"
	"github.com/catiga/languagebridge/spwapi"
)

// backendStub fakes the remote spwapi backend and records which endpoints
// were hit.
type backendStub struct {
	mu    sync.Mutex
	calls map[string]int
}

func (b *backendStub) callCount(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

func (b *backendStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.calls[r.URL.Path]++
	b.mu.Unlock()

	reply := func(code int, msg string, data interface{}) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code": code, "msg": msg, "data": data, "timestamp": time.Now().Unix(),
		})
	}

	switch r.URL.Path {
	case "/spwapi/login":
		var body struct {
			LoginName string `json:"login_name"`
			Password  string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.LoginName == "ana@example.com" && body.Password == "secret123" {
			reply(0, "ok", map[string]interface{}{
				"user_no": "U100", "email": "ana@example.com", "name": "Ana", "token": "tok-1",
			})
			return
		}
		reply(1001, "invalid credentials", nil)
	case "/spwapi/public/countries":
		reply(0, "ok", []map[string]interface{}{{"id": 1, "name": "Spain"}})
	case "/spwapi/course/fetch":
		reply(0, "ok", map[string]interface{}{
			"list": []map[string]interface{}{
				{"id": 5, "name": "Spanish B1", "language": "Spanish", "duration": 60, "price_per_week": "19.90"},
			},
			"pn": 1, "ps": 10, "total": 1, "total_pages": 1,
		})
	case "/spwapi/auth/profile/member/list":
		reply(0, "ok", []map[string]interface{}{})
	case "/spwapi/auth/profile/member/add":
		reply(0, "ok", map[string]interface{}{"id": 3, "name": "Mia"})
	case "/spwapi/auth/course/time/list":
		reply(0, "ok", map[string]interface{}{
			"list": []map[string]interface{}{{
				"id": 9, "booking_no": "B-9", "course_name": "Spanish B1", "student_name": "Ana",
				"teacher_name": "Marta", "lesson_date": "2024-07-20", "start_time": "19:00",
				"end_time": "20:00", "status": "000",
			}},
			"pn": 1, "ps": 10, "total": 1, "total_pages": 1,
		})
	default:
		reply(0, "ok", nil)
	}
}

func setup(t *testing.T) (Server, *backendStub) {
	t.Helper()

	stub := &backendStub{calls: make(map[string]int)}
	backend := httptest.NewServer(stub)
	t.Cleanup(backend.Close)

	api := spwapi.NewClient(core.APIConfig{
		BaseURL: backend.URL,
		AppID:   "primary",
		AppKey:  "testkey",
		Version: "1.0",
		Timeout: 5 * time.Second,
	})

	app := NewServer(
		&Options{
			DisableReqLogs: true,
			API:            api,
			Logger:         logsvc.NewConsoleLogger(log.New(io.Discard, "", 0)),
		},
	)
	return app, stub
}

func newFormRequest(method, path string, form url.Values, cookies ...*http.Cookie) (*http.Request, *httptest.ResponseRecorder) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

// login runs the login flow and returns the issued cookies for follow-up
// requests.
func login(t *testing.T, app Server, remember bool) []*http.Cookie {
	t.Helper()
	form := url.Values{"login_name": {"ana@example.com"}, "password": {"secret123"}}
	if remember {
		form.Set("remember", "true")
	}
	req, rec := newFormRequest(http.MethodPost, "/login", form)
	app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code, "login should redirect; body: %s", rec.Body.String())
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRouteGateRedirectsAnonymous(t *testing.T) {
	app, stub := setup(t)

	paths := []string{
		"/profile",
		"/profile/members",
		"/profile/booking",
		"/profile/timetable",
		"/profile/classroom/9",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req, rec := newFormRequest(http.MethodGet, path, nil)
			app.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/login?next="+url.QueryEscape(path), rec.Header().Get("Location"))
		})
	}
	// no gated request may reach the backend
	assert.Zero(t, stub.callCount("/spwapi/auth/profile/retrieve"))
}

func TestLoginSessionLifetime(t *testing.T) {
	t.Run("browser session without remember", func(t *testing.T) {
		app, _ := setup(t)
		cookies := login(t, app, false)

		sess := cookieByName(cookies, sessionName)
		require.NotNil(t, sess)
		assert.Zero(t, sess.MaxAge, "session cookie must die with the browser")
		assert.True(t, sess.Expires.IsZero())

		tok := cookieByName(cookies, tokenCookie)
		require.NotNil(t, tok)
		assert.Equal(t, "tok-1", tok.Value)
		assert.Zero(t, tok.MaxAge)
	})

	t.Run("durable with remember", func(t *testing.T) {
		app, _ := setup(t)
		cookies := login(t, app, true)

		sess := cookieByName(cookies, sessionName)
		require.NotNil(t, sess)
		assert.Equal(t, durableMaxAge, sess.MaxAge)

		tok := cookieByName(cookies, tokenCookie)
		require.NotNil(t, tok)
		assert.Equal(t, durableMaxAge, tok.MaxAge)
	})
}

func TestLoginRedirectTarget(t *testing.T) {
	app, _ := setup(t)

	tests := []struct {
		name string
		next string
		want string
	}{
		{"default", "", "/profile"},
		{"next param honoured", "/profile/timetable", "/profile/timetable"},
		{"offsite next rejected", "https://evil.example/phish", "/profile"},
		{"protocol-relative next rejected", "//evil.example", "/profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{
				"login_name": {"ana@example.com"},
				"password":   {"secret123"},
				"next":       {tt.next},
			}
			req, rec := newFormRequest(http.MethodPost, "/login", form)
			app.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestLoginFailureShowsToast(t *testing.T) {
	app, _ := setup(t)

	form := url.Values{"login_name": {"ana@example.com"}, "password": {"wrong"}}
	req, rec := newFormRequest(http.MethodPost, "/login", form)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
	// no cookies issued on failure
	assert.Nil(t, cookieByName(rec.Result().Cookies(), tokenCookie))
}

func TestLoginValidation(t *testing.T) {
	app, stub := setup(t)

	req, rec := newFormRequest(http.MethodPost, "/login", url.Values{"login_name": {""}, "password": {""}})
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "this field is required")
	assert.Zero(t, stub.callCount("/spwapi/login"), "validation failures must not hit the backend")
}

func TestLogoutClearsCookies(t *testing.T) {
	app, _ := setup(t)
	cookies := login(t, app, true)

	req, rec := newFormRequest(http.MethodPost, "/logout", nil, cookies...)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	tok := cookieByName(rec.Result().Cookies(), tokenCookie)
	require.NotNil(t, tok)
	assert.Equal(t, -1, tok.MaxAge)
	assert.Empty(t, tok.Value)
}

func TestCoursesPage(t *testing.T) {
	app, _ := setup(t)

	req, rec := newFormRequest(http.MethodGet, "/courses", nil)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Spanish B1")
	assert.Contains(t, rec.Body.String(), "$19.90")
}

func TestCoursesSearchFiltersPage(t *testing.T) {
	app, _ := setup(t)

	req, rec := newFormRequest(http.MethodGet, "/courses?search=mandarin", nil)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Spanish B1")
	assert.Contains(t, rec.Body.String(), "No courses match")
}

func TestMemberSaveRequiresName(t *testing.T) {
	app, stub := setup(t)
	cookies := login(t, app, false)

	form := url.Values{"name": {"   "}, "rel_type": {"child"}, "gender": {"0"}}
	req, rec := newFormRequest(http.MethodPost, "/profile/members/save", form, cookies...)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name is required")
	assert.Zero(t, stub.callCount("/spwapi/auth/profile/member/add"), "validation failures must not hit the backend")
}

func TestMemberSave(t *testing.T) {
	app, stub := setup(t)
	cookies := login(t, app, false)

	form := url.Values{"name": {"Mia"}, "rel_type": {"child"}, "gender": {"2"}, "birthday": {"2016-03-09"}}
	req, rec := newFormRequest(http.MethodPost, "/profile/members/save", form, cookies...)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile/members", rec.Header().Get("Location"))
	assert.Equal(t, 1, stub.callCount("/spwapi/auth/profile/member/add"))
}

func TestTimetableListPage(t *testing.T) {
	app, _ := setup(t)
	cookies := login(t, app, false)

	req, rec := newFormRequest(http.MethodGet, "/profile/timetable", nil, cookies...)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "B-9")
	assert.Contains(t, body, "Spanish B1")
	assert.Contains(t, body, "Upcoming") // status 000 mapped to its label
}

func TestTimetableGridViews(t *testing.T) {
	app, _ := setup(t)
	cookies := login(t, app, false)

	for _, view := range []string{"week", "month"} {
		t.Run(view, func(t *testing.T) {
			req, rec := newFormRequest(http.MethodGet, "/profile/timetable?view="+view+"&date=2024-07-20", nil, cookies...)
			app.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}

	// July 2024 ends mid-week, so the month grid carries August padding cells
	t.Run("month padding days muted", func(t *testing.T) {
		req, rec := newFormRequest(http.MethodGet, "/profile/timetable?view=month&date=2024-07-20", nil, cookies...)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), ` pad"`)
	})
}

func TestBookingConfirmValidation(t *testing.T) {
	app, stub := setup(t)
	cookies := login(t, app, false)

	// period too short
	start := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	end := time.Now().AddDate(0, 0, 10).Format("2006-01-02")
	form := url.Values{
		"course_id":  {"5"},
		"teacher_id": {"2"},
		"start_date": {start},
		"end_date":   {end},
		"weeks":      {"4"},
		"slots":      {"1|19:00|20:00"},
	}
	req, rec := newFormRequest(http.MethodPost, "/profile/booking/confirm", form, cookies...)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code, "invalid period bounces back to the booking page")
	assert.Zero(t, stub.callCount("/spwapi/auth/course/confirm"))
}

func TestBookingConfirm(t *testing.T) {
	app, stub := setup(t)
	cookies := login(t, app, false)

	start := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	end := time.Now().AddDate(0, 0, 40).Format("2006-01-02")
	form := url.Values{
		"course_id":  {"5"},
		"teacher_id": {"2"},
		"start_date": {start},
		"end_date":   {end},
		"weeks":      {"12"},
		"slots":      {"1|19:00|20:00", "4|10:00|11:00"},
	}
	req, rec := newFormRequest(http.MethodPost, "/profile/booking/confirm", form, cookies...)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile/timetable", rec.Header().Get("Location"))
	assert.Equal(t, 1, stub.callCount("/spwapi/auth/course/confirm"))
}

func TestBookingConfirmReportsLessonCount(t *testing.T) {
	app, _ := setup(t)
	cookies := login(t, app, false)

	// a Monday start over 35 days yields 5 Mondays and 5 Thursdays
	start := time.Now().AddDate(0, 0, 1)
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, 1)
	}
	end := start.AddDate(0, 0, 34)
	form := url.Values{
		"course_id":  {"5"},
		"teacher_id": {"2"},
		"start_date": {start.Format("2006-01-02")},
		"end_date":   {end.Format("2006-01-02")},
		"weeks":      {"4"},
		"slots":      {"1|19:00|20:00", "4|10:00|11:00"},
	}
	req, rec := newFormRequest(http.MethodPost, "/profile/booking/confirm", form, cookies...)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	// follow the redirect with the updated session cookie carrying the flash
	follow := []*http.Cookie{cookieByName(cookies, tokenCookie)}
	sess := cookieByName(rec.Result().Cookies(), sessionName)
	require.NotNil(t, sess)
	follow = append(follow, sess)

	req, rec = newFormRequest(http.MethodGet, "/profile/timetable", nil, follow...)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booked 10 lessons")
}

func TestTeachersPage(t *testing.T) {
	app, _ := setup(t)

	req, rec := newFormRequest(http.MethodGet, "/teachers", nil)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, name := range []string{"Eleanor Vance", "James O&#39;Connell", "Sofia Rossi", "Ben Carter"} {
		assert.Contains(t, body, name)
	}
	assert.Contains(t, body, `href="/teachers"`, "nav must link the page")
}

func TestTeachersSearch(t *testing.T) {
	app, _ := setup(t)

	t.Run("by specialty", func(t *testing.T) {
		req, rec := newFormRequest(http.MethodGet, "/teachers?search=ielts", nil)
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Eleanor Vance")
		assert.NotContains(t, rec.Body.String(), "Ben Carter")
	})

	t.Run("no match", func(t *testing.T) {
		req, rec := newFormRequest(http.MethodGet, "/teachers?search=klingon", nil)
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "No teachers match")
	})
}

func TestHomePages(t *testing.T) {
	app, _ := setup(t)

	for _, path := range []string{"/", "/about", "/contact", "/login", "/register"} {
		t.Run(path, func(t *testing.T) {
			req, rec := newFormRequest(http.MethodGet, path, nil)
			app.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestNotFoundRendersErrorPage(t *testing.T) {
	app, _ := setup(t)

	req, rec := newFormRequest(http.MethodGet, "/nope", nil)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}
