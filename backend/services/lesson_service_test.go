package services

import (
	"testing"
	"time"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/dto"
	"bearinmind/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessonRequest(topic string) dto.CreateCourseLesson {
	return dto.CreateCourseLesson{Translations: dto.LocaleFieldTexts{appLocale: {"topic": topic}}}
}

func TestCreateLesson_AppendsAfterLastOrdinal(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner", models.UserRoleTeacher)
	req := courseRequest("Go")
	req.Lessons = []dto.CreateCourseLesson{lessonRequest("One"), lessonRequest("Two")}
	courseID := e.createCourse(owner, req)

	id, err := e.lessons.CreateLesson(e.ctx, owner, courseID, lessonRequest("Three"))
	require.NoError(t, err)

	lesson, err := e.store.Lessons().FindByID(e.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, lesson.Ordinal)
}

func TestCreateLesson_FirstLessonGetsOrdinalOne(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner", models.UserRoleTeacher)
	courseID := e.createCourse(owner, courseRequest("Go"))

	id, err := e.lessons.CreateLesson(e.ctx, owner, courseID, lessonRequest("One"))
	require.NoError(t, err)
	lesson, err := e.store.Lessons().FindByID(e.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, lesson.Ordinal)
}

func TestCreateLesson_Rejections(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner", models.UserRoleTeacher)
	student := e.user("student", models.UserRoleStudent)
	req := courseRequest("Go")
	req.StartDateTime = ptr(testNow.AddDate(0, 0, 10))
	courseID := e.createCourse(owner, req)
	e.enroll(courseID, student, models.CourseRoleStudent)

	_, err := e.lessons.CreateLesson(e.ctx, owner, 999, lessonRequest("Lost"))
	assert.True(t, apperrors.IsNotFound(err))

	_, err = e.lessons.CreateLesson(e.ctx, student, courseID, lessonRequest("Mine"))
	assert.True(t, apperrors.IsForbidden(err))

	early := lessonRequest("Early")
	early.StartDateTime = ptr(testNow.AddDate(0, 0, 5))
	_, err = e.lessons.CreateLesson(e.ctx, owner, courseID, early)
	assert.True(t, apperrors.HasCode(err, apperrors.INVALID_COURSE_LESSON_START_DATE_TIME_OR_END_DATE_TIME))

	empty := lessonRequest("Empty part")
	empty.Parts = []dto.CreateCourseLessonPart{{}}
	_, err = e.lessons.CreateLesson(e.ctx, owner, courseID, empty)
	assert.True(t, apperrors.HasCode(err, apperrors.INVALID_COURSE_LESSON_PART_ATTACHMENT_OR_TRANSLATIONS))

	assert.Zero(t, e.count(&models.CourseLesson{}))
}

func TestUpdateLesson(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner", models.UserRoleTeacher)
	courseID := e.createCourse(owner, courseRequest("Go"))
	id, err := e.lessons.CreateLesson(e.ctx, owner, courseID, dto.CreateCourseLesson{
		Translations: dto.LocaleFieldTexts{"en": {"topic": "Old", "description": "Gone soon"}},
	})
	require.NoError(t, err)

	// an existing field cannot lose its application locale text
	err = e.lessons.UpdateLesson(e.ctx, owner, id, dto.UpdateCourseLesson{
		Translations: dto.LocaleFieldTexts{"en": {"topic": "New"}},
	})
	assert.True(t, apperrors.HasCode(err, apperrors.NO_APPLICATION_LOCALE_TRANSLATION))

	start := testNow.AddDate(0, 0, 1)
	err = e.lessons.UpdateLesson(e.ctx, owner, id, dto.UpdateCourseLesson{
		Translations: dto.LocaleFieldTexts{
			"en": {"topic": "New", "description": "Still here"},
			"pl": {"topic": "Nowy"},
		},
		StartDateTime: &start,
	})
	require.NoError(t, err)

	lesson, err := e.store.Lessons().FindByID(e.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, lesson.DescriptionIdentifier)
	require.NotNil(t, lesson.StartDateTime)
	assert.Equal(t, start, lesson.StartDateTime.UTC())
	assert.Equal(t, 1, lesson.Ordinal)

	topic, err := e.translations.FindTextByIdentifierAndLocale(e.ctx, lesson.TopicIdentifier, "pl")
	require.NoError(t, err)
	assert.Equal(t, "Nowy", topic)
	description, err := e.translations.FindTextByIdentifierAndLocale(e.ctx, *lesson.DescriptionIdentifier, "pl")
	require.NoError(t, err)
	assert.Equal(t, "Still here", description)

	assert.True(t, apperrors.IsNotFound(e.lessons.UpdateLesson(e.ctx, owner, 999, dto.UpdateCourseLesson{})))
}

func TestDeleteLesson(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner", models.UserRoleTeacher)
	student := e.user("student", models.UserRoleStudent)
	courseID := e.createCourse(owner, courseRequest("Go"))
	e.enroll(courseID, student, models.CourseRoleStudent)

	req := lessonRequest("Doomed")
	req.Parts = []dto.CreateCourseLessonPart{
		{Text: map[string]string{"en": "text", "pl": "tekst"}},
		{Attachments: ptr("file:http://example.com/f")},
	}
	id, err := e.lessons.CreateLesson(e.ctx, owner, courseID, req)
	require.NoError(t, err)

	assert.True(t, apperrors.IsForbidden(e.lessons.DeleteLesson(e.ctx, student, id)))

	require.NoError(t, e.lessons.DeleteLesson(e.ctx, owner, id))
	assert.Zero(t, e.count(&models.CourseLesson{}))
	assert.Zero(t, e.count(&models.CourseLessonPart{}))
	// only the course name is left
	assert.EqualValues(t, 1, e.count(&models.Translation{}))

	assert.True(t, apperrors.IsNotFound(e.lessons.DeleteLesson(e.ctx, owner, id)))
}

func TestFindLessonView_Access(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner", models.UserRoleTeacher)
	student := e.user("student", models.UserRoleStudent)
	outsider := e.user("outsider", models.UserRoleStudent)
	courseID := e.createCourse(owner, courseRequest("Go"))
	e.enroll(courseID, student, models.CourseRoleStudent)

	req := dto.CreateCourseLesson{
		Translations:  dto.LocaleFieldTexts{"en": {"topic": "Later", "description": "Soon"}},
		StartDateTime: ptr(testNow.Add(time.Hour)),
		Parts: []dto.CreateCourseLessonPart{
			{Text: map[string]string{"en": `<a href="javascript:alert(1)">x</a><b>bold</b>`}},
			{Attachments: ptr("notes:http://example.com/n")},
		},
	}
	id, err := e.lessons.CreateLesson(e.ctx, owner, courseID, req)
	require.NoError(t, err)

	_, err = e.lessons.FindLessonView(e.ctx, student, id)
	assert.True(t, apperrors.HasCode(err, apperrors.NO_ACCESS_TO_LESSON))

	e.lessons.now = func() time.Time { return testNow.Add(2 * time.Hour) }

	_, err = e.lessons.FindLessonView(e.ctx, outsider, id)
	assert.True(t, apperrors.HasCode(err, apperrors.NO_ACCESS_TO_LESSON))

	view, err := e.lessons.FindLessonView(e.ctx, student, id)
	require.NoError(t, err)
	assert.Equal(t, "Later", view.Topic)
	require.NotNil(t, view.Description)
	assert.Equal(t, "Soon", *view.Description)
	require.Len(t, view.Parts, 2)
	require.NotNil(t, view.Parts[0].Text)
	assert.NotContains(t, *view.Parts[0].Text, "javascript")
	assert.Contains(t, *view.Parts[0].Text, "<b>bold</b>")
	assert.Nil(t, view.Parts[1].Text)
	assert.Equal(t, "notes:http://example.com/n", *view.Parts[1].Attachments)

	_, err = e.lessons.FindLessonView(e.ctx, student, 999)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFindLessonView_NoStartIsOpen(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner", models.UserRoleTeacher)
	courseID := e.createCourse(owner, courseRequest("Go"))
	id, err := e.lessons.CreateLesson(e.ctx, owner, courseID, lessonRequest("Any time"))
	require.NoError(t, err)

	view, err := e.lessons.FindLessonView(e.ctx, owner, id)
	require.NoError(t, err)
	assert.Equal(t, "Any time", view.Topic)
	assert.Empty(t, view.Parts)
}
