package echoweb

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/catiga/languagebridge/core/booking"
	"github.com/catiga/languagebridge/core/timetable"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

type renderer struct {
	tpl *template.Template
}

func newRenderer() *renderer {
	funcs := template.FuncMap{
		"statusLabel": timetable.StatusLabel,
		"weekdayName": booking.WeekdayName,
		"genderLabel": genderLabel,
		"relLabel":    relLabel,
		"money": func(d decimal.Decimal) string {
			return "$" + d.StringFixed(2)
		},
		"date": func(t time.Time) string {
			return t.Format("Mon Jan 2")
		},
		"dateParam": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"clock": func(t time.Time) string {
			return t.Format("15:04")
		},
		"meridiem": func(t time.Time) string {
			return t.Format("3:04 PM")
		},
		"pages": func(n int64) []int64 {
			out := make([]int64, n)
			for i := range out {
				out[i] = int64(i + 1)
			}
			return out
		},
		"inMonth": timetable.InMonth,
	}

	tpl := template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
	return &renderer{tpl: tpl}
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return errors.Wrapf(r.tpl.ExecuteTemplate(w, name, data), "rendering %s", name)
}

func registerStatic(e *echo.Echo) {
	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))
}

var genderLabels = map[int]string{0: "Unspecified", 1: "Male", 2: "Female"}

func genderLabel(gender int) string {
	if label, ok := genderLabels[gender]; ok {
		return label
	}
	return "Unspecified"
}

var relLabels = map[string]string{
	"child":    "Child",
	"relative": "Relative",
	"self":     "Self",
	"other":    "Other",
}

func relLabel(relType string) string {
	if label, ok := relLabels[relType]; ok {
		return label
	}
	return relType
}
