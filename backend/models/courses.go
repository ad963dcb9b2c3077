package models

import "time"

type CourseRole string

const (
	CourseRoleOwner   CourseRole = "OWNER"
	CourseRoleTeacher CourseRole = "TEACHER"
	CourseRoleStudent CourseRole = "STUDENT"
)

// IsTeacher reports whether the role may manage the course.
func (r CourseRole) IsTeacher() bool {
	return r == CourseRoleOwner || r == CourseRoleTeacher
}

// TeacherCourseRoles are the roles counted as conducting a course.
var TeacherCourseRoles = []CourseRole{CourseRoleOwner, CourseRoleTeacher}

type Course struct {
	ID                          int64 `gorm:"primaryKey"`
	NameIdentifier              int   `gorm:"not null"`
	DescriptionIdentifier       *int
	Image                       *string
	StartDateTime               *time.Time
	EndDateTime                 *time.Time
	CreationDateTime            time.Time `gorm:"not null"`
	RegistrationClosingDateTime *time.Time

	Lessons []CourseLesson   `gorm:"foreignKey:CourseID"`
	Data    []CourseUserData `gorm:"foreignKey:CourseID"`
}

// IsActive reports whether the course has not ended at now.
func (c *Course) IsActive(now time.Time) bool {
	return c.EndDateTime == nil || now.Before(*c.EndDateTime)
}

type CourseLesson struct {
	ID                    int64 `gorm:"primaryKey"`
	CourseID              int64 `gorm:"not null;uniqueIndex:ux_course_lesson_ordinal,priority:1"`
	TopicIdentifier       int   `gorm:"not null"`
	DescriptionIdentifier *int
	Image                 *string
	Ordinal               int `gorm:"not null;uniqueIndex:ux_course_lesson_ordinal,priority:2"`
	StartDateTime         *time.Time

	Parts []CourseLessonPart `gorm:"foreignKey:LessonID"`
}

type CourseLessonPart struct {
	ID             int64 `gorm:"primaryKey"`
	LessonID       int64 `gorm:"not null;index"`
	TextIdentifier *int
	// newline separated "name:url" lines
	Attachments *string `gorm:"type:text"`
	Ordinal     int     `gorm:"not null"`
}

// CourseUserData is a user's enrollment in a course.
type CourseUserData struct {
	ID                 int64      `gorm:"primaryKey"`
	CourseID           int64      `gorm:"not null;uniqueIndex:ux_course_user,priority:1"`
	UserID             int64      `gorm:"not null;uniqueIndex:ux_course_user,priority:2;index"`
	Role               CourseRole `gorm:"size:16;not null"`
	LastAccessDateTime time.Time  `gorm:"not null"`
}

func (CourseUserData) TableName() string {
	return "course_user_data"
}

// CourseUserGroup makes a course visible to the members of a user group.
type CourseUserGroup struct {
	ID       int64 `gorm:"primaryKey"`
	CourseID int64 `gorm:"not null;uniqueIndex:ux_course_group,priority:1"`
	GroupID  int64 `gorm:"not null;uniqueIndex:ux_course_group,priority:2;index"`
}
