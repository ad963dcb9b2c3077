package services

import (
	"context"
	"errors"
	"fmt"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/dto"
	"bearinmind/backend/models"
	"bearinmind/backend/repositories"

	"go.uber.org/zap"
)

const (
	courseNameField        = "name"
	courseDescriptionField = "description"
)

type CourseService struct {
	store        repositories.Store
	translations *TranslationService
	now          Clock
	logger       *zap.Logger
}

func NewCourseService(store repositories.Store, translations *TranslationService, now Clock, logger *zap.Logger) *CourseService {
	return &CourseService{store: store, translations: translations, now: now, logger: logger}
}

// CreateCourse stores the course with its lessons and makes the caller its
// owner.
func (s *CourseService) CreateCourse(ctx context.Context, caller Identity, req dto.CreateCourse) (int64, error) {
	now := s.now()
	if err := validateCreateCourse(req, now); err != nil {
		return 0, err
	}

	var courseID int64
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		translations := s.translations.In(tx)
		fieldIdentifiers, err := translations.CreateMultilingualTranslations(ctx, req.Translations,
			[]string{courseNameField}, []string{courseDescriptionField})
		if err != nil {
			return err
		}

		course := &models.Course{
			NameIdentifier:              fieldIdentifiers[courseNameField],
			StartDateTime:               utc(req.StartDateTime),
			EndDateTime:                 utc(req.EndDateTime),
			RegistrationClosingDateTime: utc(req.RegistrationClosingDateTime),
			CreationDateTime:            now,
		}
		if id, ok := fieldIdentifiers[courseDescriptionField]; ok {
			course.DescriptionIdentifier = &id
		}
		if err := tx.Courses().Create(ctx, course); err != nil {
			return fmt.Errorf("create course: %w", err)
		}
		courseID = course.ID

		err = tx.CourseUsers().Create(ctx, &models.CourseUserData{
			CourseID:           course.ID,
			UserID:             caller.UserID,
			Role:               models.CourseRoleOwner,
			LastAccessDateTime: now,
		})
		if err != nil {
			return fmt.Errorf("grant course %d ownership: %w", course.ID, err)
		}

		return createLessons(ctx, tx, translations, course.ID, req.Lessons)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("course created", zap.Int64("courseId", courseID), zap.Int64("userId", caller.UserID))
	return courseID, nil
}

// UpdateCourse changes translations and dates. Lessons are not touched.
func (s *CourseService) UpdateCourse(ctx context.Context, caller Identity, id int64, req dto.UpdateCourse) error {
	return s.store.WithinTx(ctx, func(tx repositories.Store) error {
		course, err := tx.Courses().FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, courseResource, id)
		}
		if err := validateIfUserHasOwnerOrTeacherRoleInCourse(ctx, tx, id, caller.UserID); err != nil {
			return err
		}
		if err := validateUpdateCourse(req, s.now()); err != nil {
			return err
		}

		nameIdentifier := course.NameIdentifier
		updated, err := s.translations.In(tx).UpdateMultilingualTranslations(ctx, map[string]*int{
			courseNameField:        &nameIdentifier,
			courseDescriptionField: course.DescriptionIdentifier,
		}, req.Translations)
		if err != nil {
			return err
		}

		course.DescriptionIdentifier = updated[courseDescriptionField]
		course.StartDateTime = utc(req.StartDateTime)
		course.EndDateTime = utc(req.EndDateTime)
		course.RegistrationClosingDateTime = utc(req.RegistrationClosingDateTime)
		if err := tx.Courses().Update(ctx, course); err != nil {
			return fmt.Errorf("update course %d: %w", id, err)
		}
		return nil
	})
}

// DeleteCourse removes the course with everything it owns. Only the owner may
// do it.
func (s *CourseService) DeleteCourse(ctx context.Context, caller Identity, id int64) error {
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		course, err := tx.Courses().FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, courseResource, id)
		}
		if err := validateIfUserHasRoleInCourse(ctx, tx, id, caller.UserID, models.CourseRoleOwner); err != nil {
			return err
		}

		lessons, err := tx.Lessons().FindAllByCourseID(ctx, id)
		if err != nil {
			return fmt.Errorf("find lessons of course %d: %w", id, err)
		}
		translations := s.translations.In(tx)
		if err := deleteLessons(ctx, tx, translations, lessons); err != nil {
			return err
		}
		if err := tx.CourseUsers().DeleteAllByCourseID(ctx, id); err != nil {
			return fmt.Errorf("delete enrollments of course %d: %w", id, err)
		}
		if err := tx.Courses().DeleteGroupLinks(ctx, id); err != nil {
			return fmt.Errorf("delete group links of course %d: %w", id, err)
		}
		if err := tx.Courses().Delete(ctx, id); err != nil {
			return fmt.Errorf("delete course %d: %w", id, err)
		}
		identifiers := appendIfSet([]int{course.NameIdentifier}, course.DescriptionIdentifier)
		return translations.DeleteAllTranslationBy(ctx, identifiers...)
	})
	if err != nil {
		return err
	}
	s.logger.Info("course deleted", zap.Int64("courseId", id), zap.Int64("userId", caller.UserID))
	return nil
}

// FindCourseMainView returns the first listLength courses of every list.
func (s *CourseService) FindCourseMainView(ctx context.Context, caller Identity, listLength int) (*dto.CourseMainView, error) {
	now := s.now()
	page := repositories.PageRequest{Number: 0, Size: listLength}
	kinds := []repositories.CourseListKind{
		repositories.CourseListConducted,
		repositories.CourseListActive,
		repositories.CourseListAvailable,
		repositories.CourseListCompleted,
	}

	lists := make([][]repositories.CourseListItem, len(kinds))
	for i, kind := range kinds {
		items, _, err := s.store.Courses().FindListItemPage(ctx, kind, caller.UserID, now, page)
		if err != nil {
			return nil, fmt.Errorf("find %s courses: %w", kind, err)
		}
		lists[i] = items
	}

	texts, err := s.translations.FindAllIdentifierAndTextByIdentifiersAndLocale(ctx, courseNameIdentifiers(lists...), caller.Locale)
	if err != nil {
		return nil, err
	}

	return &dto.CourseMainView{
		ConductedCourses: mapCourseListItems(lists[0], texts),
		ActiveCourses:    mapCourseListItems(lists[1], texts),
		AvailableCourses: mapCourseListItems(lists[2], texts),
		CompletedCourses: mapCourseListItems(lists[3], texts),
	}, nil
}

// ParseCourseListKind accepts the lower case list names used in URLs.
func ParseCourseListKind(s string) (repositories.CourseListKind, bool) {
	switch kind := repositories.CourseListKind(s); kind {
	case repositories.CourseListConducted, repositories.CourseListActive,
		repositories.CourseListAvailable, repositories.CourseListCompleted:
		return kind, true
	}
	return "", false
}

// FindCoursePage returns one page of a course list.
func (s *CourseService) FindCoursePage(ctx context.Context, caller Identity, kind repositories.CourseListKind, pageNumber, pageSize int) (dto.Page[dto.CourseListItem], error) {
	page := repositories.PageRequest{Number: pageNumber, Size: pageSize}
	items, total, err := s.store.Courses().FindListItemPage(ctx, kind, caller.UserID, s.now(), page)
	if err != nil {
		return dto.Page[dto.CourseListItem]{}, fmt.Errorf("find %s course page: %w", kind, err)
	}

	texts, err := s.translations.FindAllIdentifierAndTextByIdentifiersAndLocale(ctx, courseNameIdentifiers(items), caller.Locale)
	if err != nil {
		return dto.Page[dto.CourseListItem]{}, err
	}
	return dto.NewPage(mapCourseListItems(items, texts), pageNumber, pageSize, total), nil
}

// FindCourseView shows the course to an enrolled user or to a member of one of
// its groups.
func (s *CourseService) FindCourseView(ctx context.Context, caller Identity, id int64) (*dto.CourseView, error) {
	role, err := s.store.CourseUsers().FindRole(ctx, id, caller.UserID)
	enrolled := err == nil
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("find role in course %d: %w", id, err)
	}
	if !enrolled {
		if err := validateIfUserBelongsToCourseGroup(ctx, s.store, id, caller.UserID); err != nil {
			return nil, err
		}
	}

	course, err := s.store.Courses().FindWithLessons(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, courseResource, id)
	}
	teachers, err := s.store.CourseUsers().FindTeachers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find teachers of course %d: %w", id, err)
	}

	identifiers := appendIfSet([]int{course.NameIdentifier}, course.DescriptionIdentifier)
	for _, lesson := range course.Lessons {
		identifiers = appendIfSet(append(identifiers, lesson.TopicIdentifier), lesson.DescriptionIdentifier)
	}
	texts, err := s.translations.FindAllIdentifierAndTextByIdentifiersAndLocale(ctx, identifiers, caller.Locale)
	if err != nil {
		return nil, err
	}

	lessons := make([]dto.CourseLessonCard, 0, len(course.Lessons))
	for _, lesson := range course.Lessons {
		lessons = append(lessons, mapCourseLessonCard(lesson, texts))
	}

	view := &dto.CourseView{
		Name:        texts[course.NameIdentifier],
		Description: textOf(texts, course.DescriptionIdentifier),
		Image:       course.Image,
		Teachers:    mapUserListItems(teachers),
		Lessons:     lessons,
		EndDateTime: course.EndDateTime,
	}

	now := s.now()
	active := course.IsActive(now)
	switch {
	case enrolled && !active:
		view.Completed = &dto.CompletedCourse{}
	case enrolled && role.IsTeacher():
		view.Conducted = &dto.ConductedCourse{}
	case enrolled:
		view.Active = &dto.ActiveCourse{}
	case active:
		view.Available = &dto.AvailableCourse{RegistrationClosingDateTime: course.RegistrationClosingDateTime}
	}

	if enrolled {
		if err := s.store.CourseUsers().TouchLastAccess(ctx, id, caller.UserID, now); err != nil {
			s.logger.Warn("failed to record course access", zap.Int64("courseId", id), zap.Error(err))
		}
	}
	return view, nil
}

// AddGroupToCourse makes the course visible to the members of a group owned
// by the caller.
func (s *CourseService) AddGroupToCourse(ctx context.Context, caller Identity, courseID, groupID int64) error {
	return s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.Courses().FindByID(ctx, courseID); err != nil {
			return notFoundOr(err, courseResource, courseID)
		}
		if _, err := tx.Groups().FindByID(ctx, groupID); err != nil {
			return notFoundOr(err, groupResource, groupID)
		}
		if err := validateIfUserHasOwnerOrTeacherRoleInCourse(ctx, tx, courseID, caller.UserID); err != nil {
			return err
		}
		owner, err := tx.Groups().HasRole(ctx, groupID, caller.UserID, models.UserGroupRoleOwner)
		if err != nil {
			return fmt.Errorf("check group %d ownership: %w", groupID, err)
		}
		if !owner {
			return apperrors.Forbidden(groupResource, apperrors.FORBIDDEN).
				With("groupId", groupID).
				With("userId", caller.UserID)
		}
		if err := tx.Courses().LinkGroup(ctx, courseID, groupID); err != nil {
			return fmt.Errorf("link group %d to course %d: %w", groupID, courseID, err)
		}
		return nil
	})
}
