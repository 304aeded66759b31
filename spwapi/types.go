package spwapi

import "github.com/shopspring/decimal"

// Types mirror the backend payloads. Time-like fields stay strings on purpose:
// the backend is inconsistent about padding ("HH:MM:SS" vs "HH:MM", RFC3339
// dates vs "YYYY-MM-DD") and the portal normalises them at the edges.

type Course struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Introduction string          `json:"introduction"`
	Detail       string          `json:"detail"`
	Language     string          `json:"language"`
	Level        int             `json:"level"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	DisplayPrice decimal.Decimal `json:"display_price"`
	PricePerWeek decimal.Decimal `json:"price_per_week"`
	Goal         string          `json:"goal"`
	Duration     int             `json:"duration"`
	SessionNum   int             `json:"session_number"`
	Status       string          `json:"status"`
}

type CoursePage struct {
	List       []Course `json:"list"`
	Pn         int      `json:"pn"`
	Ps         int      `json:"ps"`
	Total      int64    `json:"total"`
	TotalPages int64    `json:"total_pages"`
}

type Teacher struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar"`
	Bio          string `json:"bio"`
	Introduction string `json:"introduction"`
	Detail       string `json:"detail"`
}

type Review struct {
	ID      int64  `json:"id"`
	User    string `json:"user"`
	Avatar  string `json:"avatar"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}

type Country struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Iso2         string `json:"iso2"`
	PhoneCode    string `json:"phone_code"`
	Timezone     string `json:"timezone"`
	Currency     string `json:"currency"`
	LanguageCode string `json:"language_code"`
}

type LoginResult struct {
	UserNo string `json:"user_no"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

type RegisterResult struct {
	UserNo string `json:"user_no"`
}

type Profile struct {
	UserNo          string `json:"user_no"`
	Email           string `json:"email"`
	NickName        string `json:"nick_name"`
	Avatar          string `json:"avatar"`
	NationalityID   int64  `json:"nationality_id"`
	LivingCountryID int64  `json:"living_country_id"`
	NativeLanguage  string `json:"native_language"`
	Phone           string `json:"phone"`
}

type Member struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	RelType     string `json:"rel_type"`
	RelDesc     string `json:"rel_desc"`
	Gender      int    `json:"gender"`
	Birthday    string `json:"birthday"`
	Personality string `json:"personality"`
	Character   string `json:"character"`
	Flag        int    `json:"flag"`
}

// Active reports whether the member may be booked into lessons; the backend
// uses flag 0 for active and -1 for deleted, anything else is disabled.
func (m Member) Active() bool { return m.Flag == 0 }

// AvailabilityWindow is a teacher's enabled time range for one weekday.
type AvailabilityWindow struct {
	WeekDay   int    `json:"week_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Enabled   bool   `json:"enabled"`
}

// MyCourse joins a student's enrolment with the course it refers to.
type MyCourse struct {
	UserCourseID int64           `json:"user_course_id"`
	CourseID     int64           `json:"course_id"`
	Status       string          `json:"user_course_status"`
	CourseName   string          `json:"course_name"`
	Introduction string          `json:"introduction"`
	Language     string          `json:"language"`
	Level        int             `json:"level"`
	DisplayPrice decimal.Decimal `json:"display_price"`
	Goal         string          `json:"goal"`
}

// Lesson is one scheduled booking occurrence.
type Lesson struct {
	ID          int64  `json:"id"`
	BookingNo   string `json:"booking_no"`
	TeacherID   int64  `json:"teacher_id"`
	CourseID    int64  `json:"course_id"`
	UserID      int64  `json:"user_id"`
	LessonDate  string `json:"lesson_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	CourseName  string `json:"course_name"`
	TeacherName string `json:"teacher_name"`
	StudentName string `json:"student_name"`
}

type LessonPage struct {
	List       []Lesson `json:"list"`
	Pn         int      `json:"pn"`
	Ps         int      `json:"ps"`
	Total      int64    `json:"total"`
	TotalPages int64    `json:"total_pages"`
}

// MeetingInfo carries everything the classroom page shows, including the
// externally hosted meeting room URL rendered in the iframe.
type MeetingInfo struct {
	MeetingURI   string `json:"meeting_uri"`
	BookID       int64  `json:"book_id"`
	CourseName   string `json:"course_name"`
	CourseDetail string `json:"course_detail"`
	TeacherName  string `json:"teacher_name"`
	TeacherDet   string `json:"teacher_detail"`
	StudentName  string `json:"student_name"`
	LessonDate   string `json:"lesson_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// TimeSlot is one chosen weekday slot sent with a booking confirmation.
type TimeSlot struct {
	WeekDay   int    `json:"week_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ConfirmBookingRequest struct {
	CourseID  int64      `json:"course_id"`
	TeacherID int64      `json:"teacher_id"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	TimeSlots []TimeSlot `json:"time_slots"`
}
