package echoweb

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type teacherPages struct {
	*pageDeps
}

func registerTeacherPages(e *echo.Echo, deps *pageDeps) {
	h := teacherPages{deps}
	e.GET("/teachers", h.browse)
}

// teacherCard is a marketing-page entry; the roster is curated editorial
// content, not backend data. Per-course teachers come from the backend on the
// course detail page.
type teacherCard struct {
	Name        string
	Country     string
	Headline    string
	Specialties []string
	Rating      float64
	Lessons     int
	Avatar      string
}

var teacherRoster = []teacherCard{
	{
		Name:        "Eleanor Vance",
		Country:     "USA",
		Headline:    "Certified IELTS & TOEFL expert with 10+ years experience.",
		Specialties: []string{"IELTS", "TOEFL", "Academic"},
		Rating:      4.9,
		Lessons:     2500,
		Avatar:      "https://i.pravatar.cc/150?u=a1",
	},
	{
		Name:        "James O'Connell",
		Country:     "Ireland",
		Headline:    "Friendly and patient tutor for conversational English.",
		Specialties: []string{"Conversation", "Beginner"},
		Rating:      4.8,
		Lessons:     1800,
		Avatar:      "https://i.pravatar.cc/150?u=a2",
	},
	{
		Name:        "Sofia Rossi",
		Country:     "UK",
		Headline:    "Helping business professionals master negotiation & presentations.",
		Specialties: []string{"Business", "Advanced", "Speaking"},
		Rating:      5.0,
		Lessons:     3100,
		Avatar:      "https://i.pravatar.cc/150?u=a3",
	},
	{
		Name:        "Ben Carter",
		Country:     "Canada",
		Headline:    "Let's make learning English fun and effective!",
		Specialties: []string{"General", "Intermediate"},
		Rating:      4.9,
		Lessons:     1500,
		Avatar:      "https://i.pravatar.cc/150?u=a4",
	},
}

type teachersPageData struct {
	Teachers []teacherCard
	Search   string
}

func (h teacherPages) browse(c echo.Context) error {
	search := strings.TrimSpace(c.QueryParam("search"))
	return h.render(c, http.StatusOK, "teachers.html", "Our teachers", teachersPageData{
		Teachers: filterTeachers(teacherRoster, search),
		Search:   search,
	})
}

// filterTeachers narrows the roster by name or specialty, case-insensitive.
func filterTeachers(roster []teacherCard, search string) []teacherCard {
	if search == "" {
		return roster
	}
	search = strings.ToLower(search)
	out := make([]teacherCard, 0, len(roster))
	for _, t := range roster {
		if strings.Contains(strings.ToLower(t.Name), search) {
			out = append(out, t)
			continue
		}
		for _, spec := range t.Specialties {
			if strings.Contains(strings.ToLower(spec), search) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
