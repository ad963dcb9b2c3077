package dto

import (
	"time"

	"bearinmind/backend/models"
)

// LocaleFieldTexts maps locale -> field -> text.
type LocaleFieldTexts = map[string]map[string]string

type CreateCourse struct {
	Translations                LocaleFieldTexts     `json:"translations" validate:"required,min=1,dive,keys,locale,endkeys"`
	StartDateTime               *time.Time           `json:"startDateTime"`
	EndDateTime                 *time.Time           `json:"endDateTime"`
	RegistrationClosingDateTime *time.Time           `json:"registrationClosingDateTime"`
	Lessons                     []CreateCourseLesson `json:"lessons" validate:"omitempty,dive"`
}

type UpdateCourse struct {
	Translations                LocaleFieldTexts `json:"translations" validate:"required,dive,keys,locale,endkeys"`
	StartDateTime               *time.Time       `json:"startDateTime"`
	EndDateTime                 *time.Time       `json:"endDateTime"`
	RegistrationClosingDateTime *time.Time       `json:"registrationClosingDateTime"`
}

type CreateCourseLesson struct {
	Translations  LocaleFieldTexts         `json:"translations" validate:"omitempty,dive,keys,locale,endkeys"`
	StartDateTime *time.Time               `json:"startDateTime"`
	Parts         []CreateCourseLessonPart `json:"parts" validate:"omitempty,dive"`
}

type UpdateCourseLesson struct {
	Translations  LocaleFieldTexts `json:"translations" validate:"omitempty,dive,keys,locale,endkeys"`
	StartDateTime *time.Time       `json:"startDateTime"`
}

type CreateCourseLessonPart struct {
	Text        map[string]string `json:"text" validate:"omitempty,dive,keys,locale,endkeys"`
	Attachments *string           `json:"attachments"`
}

type CourseListItem struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

type CourseMainView struct {
	ConductedCourses []CourseListItem `json:"conductedCourses"`
	ActiveCourses    []CourseListItem `json:"activeCourses"`
	AvailableCourses []CourseListItem `json:"availableCourses"`
	CompletedCourses []CourseListItem `json:"completedCourses"`
}

type CourseLessonCard struct {
	ID            int64      `json:"id"`
	Ordinal       int        `json:"ordinal"`
	Topic         string     `json:"topic"`
	Description   *string    `json:"description"`
	StartDateTime *time.Time `json:"startDateTime"`
}

type ConductedCourse struct{}

type ActiveCourse struct{}

type CompletedCourse struct{}

type AvailableCourse struct {
	RegistrationClosingDateTime *time.Time `json:"registrationClosingDateTime"`
}

// CourseView carries at most one of Conducted, Active, Available, Completed.
type CourseView struct {
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	Image       *string            `json:"image"`
	Teachers    []UserListItem     `json:"teachers"`
	Lessons     []CourseLessonCard `json:"lessons"`
	EndDateTime *time.Time         `json:"endDateTime"`
	Conducted   *ConductedCourse   `json:"conducted,omitempty"`
	Active      *ActiveCourse      `json:"active,omitempty"`
	Available   *AvailableCourse   `json:"available,omitempty"`
	Completed   *CompletedCourse   `json:"completed,omitempty"`
}

type CourseLessonPart struct {
	ID          int64   `json:"id"`
	Ordinal     int     `json:"ordinal"`
	Text        *string `json:"text"`
	Attachments *string `json:"attachments"`
}

type CourseLessonView struct {
	Topic       string             `json:"topic"`
	Description *string            `json:"description"`
	Image       *string            `json:"image"`
	Parts       []CourseLessonPart `json:"parts"`
}


type UserCourse struct {
	ID    int64             `json:"id"`
	Name  string            `json:"name"`
	Image *string           `json:"image"`
	Role  models.CourseRole `json:"role"`
}
