package echoweb

import (
	"strconv"
	"strings"
	"time"

	"github.com/catiga/languagebridge/core"
	"github.com/catiga/languagebridge/core/booking"
)

// Form bindings for the portal pages. Validation happens server-side before
// any backend call; field messages are translated via core.Translator.

type registerForm struct {
	Name            string `form:"name" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Country         int64  `form:"country" validate:"required"`
	Language        string `form:"language"`
	Password        string `form:"password" validate:"required,min=6"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password"`
	Terms           bool   `form:"terms" validate:"required"`
}

func (f *registerForm) Validate() error {
	f.Name = core.CleanString(f.Name)
	f.Email = core.CleanString(f.Email, true /* lower */)
	f.Language = core.CleanString(f.Language)
	return core.Validate.Struct(f)
}

type loginForm struct {
	LoginName string `form:"login_name" validate:"required"`
	Password  string `form:"password" validate:"required"`
	Remember  bool   `form:"remember"`
	Next      string `form:"next"`
}

func (f *loginForm) Validate() error {
	f.LoginName = core.CleanString(f.LoginName, true /* lower */)
	// only same-site redirect targets
	if !strings.HasPrefix(f.Next, "/") || strings.HasPrefix(f.Next, "//") {
		f.Next = ""
	}
	return core.Validate.Struct(f)
}

type profileForm struct {
	NickName        string `form:"nick_name" validate:"required"`
	Avatar          string `form:"avatar" validate:"omitempty,url"`
	LivingCountryID int64  `form:"living_country_id"`
	Phone           string `form:"phone"`
	NativeLanguage  string `form:"native_language"`
}

func (f *profileForm) Validate() error {
	f.NickName = core.CleanString(f.NickName)
	f.Avatar = core.CleanString(f.Avatar)
	f.Phone = core.CleanString(f.Phone)
	f.NativeLanguage = core.CleanString(f.NativeLanguage)
	return core.Validate.Struct(f)
}

type memberForm struct {
	ID          int64  `form:"id"`
	Name        string `form:"name" validate:"required"`
	Email       string `form:"email" validate:"omitempty,email"`
	RelType     string `form:"rel_type" validate:"required,oneof=child relative self other"`
	RelDesc     string `form:"rel_desc"`
	Gender      int    `form:"gender" validate:"oneof=0 1 2"`
	Birthday    string `form:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Personality string `form:"personality"`
	Character   string `form:"character"`
}

func (f *memberForm) Validate() error {
	f.Name = core.CleanString(f.Name)
	f.Email = core.CleanString(f.Email, true /* lower */)
	if f.Name == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "name", Error: "Name is required"})
	}
	return core.Validate.Struct(f)
}

type bookingForm struct {
	CourseID  int64    `form:"course_id" validate:"required"`
	TeacherID int64    `form:"teacher_id" validate:"required"`
	StartDate string   `form:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string   `form:"end_date" validate:"required,datetime=2006-01-02"`
	Weeks     int      `form:"weeks" validate:"oneof=1 4 12"`
	Slots     []string `form:"slots" validate:"required,min=1"`
}

func (f *bookingForm) Validate() error {
	if err := core.Validate.Struct(f); err != nil {
		return err
	}
	if err := booking.ValidatePeriod(time.Now(), f.StartDate, f.EndDate); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "start_date", Error: err.Error()})
	}
	if _, err := f.Selections(); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "slots", Error: "invalid slot selection"})
	}
	return nil
}

// Selections decodes the posted "weekday|start|end" slot values.
func (f *bookingForm) Selections() ([]booking.Selection, error) {
	sels := make([]booking.Selection, 0, len(f.Slots))
	seen := make(map[int]bool, len(f.Slots))
	for _, raw := range f.Slots {
		parts := strings.SplitN(raw, "|", 3)
		if len(parts) != 3 {
			return nil, core.NewValidationError(nil, core.FieldError{Field: "slots", Error: "malformed slot value"})
		}
		day, err := parseWeekday(parts[0])
		if err != nil {
			return nil, err
		}
		if seen[day] { // one slot per weekday
			continue
		}
		seen[day] = true
		sels = append(sels, booking.Selection{
			WeekDay: day,
			Slot:    booking.Slot{Start: parts[1], End: parts[2]},
		})
	}
	return sels, nil
}

func parseWeekday(s string) (int, error) {
	day, err := strconv.Atoi(s)
	if err != nil {
		return 0, core.NewValidationError(nil, core.FieldError{Field: "slots", Error: "malformed slot value"})
	}
	if day < booking.Monday || day > booking.Sunday {
		return 0, core.NewValidationError(nil, core.FieldError{Field: "slots", Error: "weekday out of range"})
	}
	return day, nil
}
