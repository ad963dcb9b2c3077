package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/dto"
	"bearinmind/backend/models"
	"bearinmind/backend/repositories"
)

const (
	courseResource     = "course"
	lessonResource     = "course lesson"
	lessonPartResource = "course lesson part"
	enrollmentResource = "course user data"
	courseGroupRsc     = "course user group"
)

func validateIfUserBelongsToCourseGroup(ctx context.Context, store repositories.Store, courseID, userID int64) error {
	ok, err := store.CourseUsers().BelongsToCourseGroup(ctx, courseID, userID)
	if err != nil {
		return fmt.Errorf("check course %d group membership: %w", courseID, err)
	}
	if !ok {
		return apperrors.Forbidden(courseGroupRsc, apperrors.FORBIDDEN).
			With("courseId", courseID).
			With("userId", userID)
	}
	return nil
}

func validateIfUserHasOwnerOrTeacherRoleInCourse(ctx context.Context, store repositories.Store, courseID, userID int64) error {
	return validateIfUserHasRoleInCourse(ctx, store, courseID, userID, models.TeacherCourseRoles...)
}

func validateIfUserHasRoleInCourse(ctx context.Context, store repositories.Store, courseID, userID int64, roles ...models.CourseRole) error {
	ok, err := store.CourseUsers().ExistsWithRoles(ctx, courseID, userID, roles...)
	if err != nil {
		return fmt.Errorf("check course %d role: %w", courseID, err)
	}
	if !ok {
		return apperrors.Forbidden(courseResource, apperrors.FORBIDDEN).
			With("courseId", courseID).
			With("userId", userID)
	}
	return nil
}

func validateIfUserIsNotEnrolledInCourse(ctx context.Context, store repositories.Store, courseID, userID int64) error {
	enrolled, err := store.CourseUsers().Exists(ctx, courseID, userID)
	if err != nil {
		return fmt.Errorf("check course %d enrollment: %w", courseID, err)
	}
	if enrolled {
		return cannotEnroll(courseID, userID)
	}
	return nil
}

func cannotEnroll(courseID, userID int64) error {
	return apperrors.Invalid(enrollmentResource, apperrors.CANNOT_ENROLL).
		With("courseId", courseID).
		With("userId", userID)
}

func validateCreateCourse(req dto.CreateCourse, now time.Time) error {
	if err := validateCourseDates(req.StartDateTime, req.EndDateTime, req.RegistrationClosingDateTime, now); err != nil {
		return err
	}
	starts := make([]*time.Time, len(req.Lessons))
	for i, lesson := range req.Lessons {
		starts[i] = lesson.StartDateTime
	}
	if err := validateCourseLessonDates(req.StartDateTime, req.EndDateTime, starts...); err != nil {
		return err
	}
	for _, lesson := range req.Lessons {
		if err := validateCourseLessonParts(lesson.Parts); err != nil {
			return err
		}
	}
	return nil
}

func validateUpdateCourse(req dto.UpdateCourse, now time.Time) error {
	return validateCourseDates(req.StartDateTime, req.EndDateTime, req.RegistrationClosingDateTime, now)
}

// validateCourseDates reports the first broken date rule. Missing dates
// satisfy every rule they take part in.
func validateCourseDates(start, end, registrationClosing *time.Time, now time.Time) error {
	invalid := func(code string) error {
		return apperrors.Invalid(courseResource, code).
			With("startDateTime", formatTime(start)).
			With("endDateTime", formatTime(end)).
			With("registrationClosingDateTime", formatTime(registrationClosing))
	}

	switch {
	case start != nil && end != nil && start.After(*end):
		return invalid(apperrors.INVALID_COURSE_START_DATE_TIME_IS_AFTER_END_DATE_TIME)
	case registrationClosing != nil && end != nil && registrationClosing.After(*end):
		return invalid(apperrors.INVALID_COURSE_REGISTRATION_CLOSING_DATE_TIME_IS_AFTER_END_DATE_TIME)
	case start != nil && registrationClosing != nil && start.After(*registrationClosing):
		return invalid(apperrors.INVALID_COURSE_START_DATE_TIME_IS_AFTER_REGISTRATION_CLOSING_DATE_TIME)
	case end != nil && now.After(*end):
		return invalid(apperrors.INVALID_COURSE_END_DATE_TIME_IS_BEFORE_NOW_TIME)
	case registrationClosing != nil && now.After(*registrationClosing):
		return invalid(apperrors.INVALID_COURSE_REGISTRATION_CLOSING_DATE_TIME_IS_BEFORE_NOW_TIME)
	}
	return nil
}

// validateCourseLessonDates checks that each lesson start lies within the
// course range. The error lists the indexes of every offending lesson.
func validateCourseLessonDates(courseStart, courseEnd *time.Time, lessonStarts ...*time.Time) error {
	var offending []string
	for i, start := range lessonStarts {
		if !lessonStartWithinCourse(courseStart, courseEnd, start) {
			offending = append(offending, strconv.Itoa(i))
		}
	}
	if len(offending) == 0 {
		return nil
	}
	return apperrors.Invalid(lessonResource, apperrors.INVALID_COURSE_LESSON_START_DATE_TIME_OR_END_DATE_TIME).
		WithArguments(offending...).
		With("courseStartDateTime", formatTime(courseStart)).
		With("courseEndDateTime", formatTime(courseEnd))
}

func lessonStartWithinCourse(courseStart, courseEnd, lessonStart *time.Time) bool {
	if lessonStart == nil {
		return true
	}
	if courseStart != nil && lessonStart.Before(*courseStart) {
		return false
	}
	if courseEnd != nil && lessonStart.After(*courseEnd) {
		return false
	}
	return true
}

func validateCourseLessonParts(parts []dto.CreateCourseLessonPart) error {
	for i, part := range parts {
		if part.Attachments == nil && len(part.Text) == 0 {
			return apperrors.Invalid(lessonPartResource, apperrors.INVALID_COURSE_LESSON_PART_ATTACHMENT_OR_TRANSLATIONS).
				WithArguments("part").
				With("index", i)
		}
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "null"
	}
	return t.Format(time.RFC3339)
}
