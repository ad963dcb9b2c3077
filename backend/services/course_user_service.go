package services

import (
	"context"
	"errors"
	"fmt"

	"bearinmind/backend/models"
	"bearinmind/backend/repositories"

	"go.uber.org/zap"
)

// CourseUserService manages enrollments and course roles.
type CourseUserService struct {
	store  repositories.Store
	now    Clock
	logger *zap.Logger
}

func NewCourseUserService(store repositories.Store, now Clock, logger *zap.Logger) *CourseUserService {
	return &CourseUserService{store: store, now: now, logger: logger}
}

// EnrollUserInCourse makes the caller a student of a course shared with one of
// their groups.
func (s *CourseUserService) EnrollUserInCourse(ctx context.Context, caller Identity, courseID int64) error {
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.Courses().FindByID(ctx, courseID); err != nil {
			return notFoundOr(err, courseResource, courseID)
		}
		if err := validateIfUserBelongsToCourseGroup(ctx, tx, courseID, caller.UserID); err != nil {
			return err
		}
		if err := validateIfUserIsNotEnrolledInCourse(ctx, tx, courseID, caller.UserID); err != nil {
			return err
		}

		err := tx.CourseUsers().Create(ctx, &models.CourseUserData{
			CourseID:           courseID,
			UserID:             caller.UserID,
			Role:               models.CourseRoleStudent,
			LastAccessDateTime: s.now(),
		})
		if errors.Is(err, repositories.ErrDuplicate) {
			return cannotEnroll(courseID, caller.UserID)
		}
		if err != nil {
			return fmt.Errorf("enroll user %d in course %d: %w", caller.UserID, courseID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("user enrolled", zap.Int64("courseId", courseID), zap.Int64("userId", caller.UserID))
	return nil
}

func (s *CourseUserService) FindCourseRoleByCourseID(ctx context.Context, caller Identity, courseID int64) (models.CourseRole, error) {
	role, err := s.store.CourseUsers().FindRole(ctx, courseID, caller.UserID)
	if err != nil {
		return "", notFoundOr(err, enrollmentResource, courseID)
	}
	return role, nil
}

func (s *CourseUserService) FindCourseRoleByLessonID(ctx context.Context, caller Identity, lessonID int64) (models.CourseRole, error) {
	role, err := s.store.CourseUsers().FindRoleByLessonID(ctx, lessonID, caller.UserID)
	if err != nil {
		return "", notFoundOr(err, enrollmentResource, lessonID)
	}
	return role, nil
}
