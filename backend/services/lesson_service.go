package services

import (
	"context"
	"fmt"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/dto"
	"bearinmind/backend/models"
	"bearinmind/backend/repositories"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const (
	firstOrdinal = 1

	lessonTopicField       = "topic"
	lessonDescriptionField = "description"
)

// lessonTextPolicy strips scripts and unsafe attributes from part texts.
var lessonTextPolicy = bluemonday.UGCPolicy()

type LessonService struct {
	store        repositories.Store
	translations *TranslationService
	now          Clock
	logger       *zap.Logger
}

func NewLessonService(store repositories.Store, translations *TranslationService, now Clock, logger *zap.Logger) *LessonService {
	return &LessonService{store: store, translations: translations, now: now, logger: logger}
}

// CreateLesson appends a lesson after the last one of the course.
func (s *LessonService) CreateLesson(ctx context.Context, caller Identity, courseID int64, req dto.CreateCourseLesson) (int64, error) {
	var lessonID int64
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		course, err := tx.Courses().FindByID(ctx, courseID)
		if err != nil {
			return notFoundOr(err, courseResource, courseID)
		}
		if err := validateIfUserHasOwnerOrTeacherRoleInCourse(ctx, tx, courseID, caller.UserID); err != nil {
			return err
		}
		if err := validateCourseLessonDates(course.StartDateTime, course.EndDateTime, req.StartDateTime); err != nil {
			return err
		}
		if err := validateCourseLessonParts(req.Parts); err != nil {
			return err
		}

		maxOrdinal, err := tx.Lessons().MaxOrdinal(ctx, courseID)
		if err != nil {
			return fmt.Errorf("find last lesson ordinal of course %d: %w", courseID, err)
		}

		lessonID, err = createLesson(ctx, tx, s.translations.In(tx), courseID, req, maxOrdinal+1)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("course lesson created",
		zap.Int64("courseId", courseID),
		zap.Int64("lessonId", lessonID),
		zap.Int64("userId", caller.UserID))
	return lessonID, nil
}

// createLessons stores lessons with ordinals starting at 1.
func createLessons(ctx context.Context, tx repositories.Store, translations *TranslationService, courseID int64, lessons []dto.CreateCourseLesson) error {
	for i, lesson := range lessons {
		if _, err := createLesson(ctx, tx, translations, courseID, lesson, firstOrdinal+i); err != nil {
			return err
		}
	}
	return nil
}

func createLesson(ctx context.Context, tx repositories.Store, translations *TranslationService, courseID int64, req dto.CreateCourseLesson, ordinal int) (int64, error) {
	fieldIdentifiers, err := translations.CreateMultilingualTranslations(ctx, req.Translations,
		[]string{lessonTopicField}, []string{lessonDescriptionField})
	if err != nil {
		return 0, err
	}

	lesson := &models.CourseLesson{
		CourseID:        courseID,
		TopicIdentifier: fieldIdentifiers[lessonTopicField],
		Ordinal:         ordinal,
		StartDateTime:   utc(req.StartDateTime),
	}
	if id, ok := fieldIdentifiers[lessonDescriptionField]; ok {
		lesson.DescriptionIdentifier = &id
	}
	if err := tx.Lessons().Create(ctx, lesson); err != nil {
		return 0, fmt.Errorf("create lesson of course %d: %w", courseID, err)
	}

	for i, part := range req.Parts {
		textIdentifier, err := translations.CreateMultilingualTranslation(ctx, sanitizeLessonText(part.Text), false)
		if err != nil {
			return 0, err
		}
		err = tx.Lessons().CreatePart(ctx, &models.CourseLessonPart{
			LessonID:       lesson.ID,
			TextIdentifier: textIdentifier,
			Attachments:    part.Attachments,
			Ordinal:        firstOrdinal + i,
		})
		if err != nil {
			return 0, fmt.Errorf("create part %d of lesson %d: %w", i, lesson.ID, err)
		}
	}
	return lesson.ID, nil
}

func sanitizeLessonText(localeText map[string]string) map[string]string {
	if len(localeText) == 0 {
		return localeText
	}
	out := make(map[string]string, len(localeText))
	for locale, text := range localeText {
		out[locale] = lessonTextPolicy.Sanitize(text)
	}
	return out
}

// UpdateLesson changes topic, description and start date. Parts and ordinal
// stay as they are.
func (s *LessonService) UpdateLesson(ctx context.Context, caller Identity, id int64, req dto.UpdateCourseLesson) error {
	return s.store.WithinTx(ctx, func(tx repositories.Store) error {
		lesson, err := tx.Lessons().FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, lessonResource, id)
		}
		course, err := tx.Courses().FindByID(ctx, lesson.CourseID)
		if err != nil {
			return notFoundOr(err, courseResource, lesson.CourseID)
		}
		if err := validateIfUserHasOwnerOrTeacherRoleInCourse(ctx, tx, course.ID, caller.UserID); err != nil {
			return err
		}
		if err := validateCourseLessonDates(course.StartDateTime, course.EndDateTime, req.StartDateTime); err != nil {
			return err
		}

		topicIdentifier := lesson.TopicIdentifier
		updated, err := s.translations.In(tx).UpdateMultilingualTranslations(ctx, map[string]*int{
			lessonTopicField:       &topicIdentifier,
			lessonDescriptionField: lesson.DescriptionIdentifier,
		}, req.Translations)
		if err != nil {
			return err
		}

		lesson.DescriptionIdentifier = updated[lessonDescriptionField]
		lesson.StartDateTime = utc(req.StartDateTime)
		if err := tx.Lessons().Update(ctx, lesson); err != nil {
			return fmt.Errorf("update lesson %d: %w", id, err)
		}
		return nil
	})
}

// DeleteLesson removes the lesson, its parts and every translation they use.
func (s *LessonService) DeleteLesson(ctx context.Context, caller Identity, id int64) error {
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		lesson, err := tx.Lessons().FindWithParts(ctx, id)
		if err != nil {
			return notFoundOr(err, lessonResource, id)
		}
		if err := validateIfUserHasOwnerOrTeacherRoleInCourse(ctx, tx, lesson.CourseID, caller.UserID); err != nil {
			return err
		}
		return deleteLessons(ctx, tx, s.translations.In(tx), []models.CourseLesson{*lesson})
	})
	if err != nil {
		return err
	}
	s.logger.Info("course lesson deleted", zap.Int64("lessonId", id), zap.Int64("userId", caller.UserID))
	return nil
}

// deleteLessons expects lessons loaded with their parts.
func deleteLessons(ctx context.Context, tx repositories.Store, translations *TranslationService, lessons []models.CourseLesson) error {
	if len(lessons) == 0 {
		return nil
	}
	lessonIDs := make([]int64, 0, len(lessons))
	var identifiers []int
	for _, lesson := range lessons {
		lessonIDs = append(lessonIDs, lesson.ID)
		identifiers = append(identifiers, lesson.TopicIdentifier)
		identifiers = appendIfSet(identifiers, lesson.DescriptionIdentifier)
		for _, part := range lesson.Parts {
			identifiers = appendIfSet(identifiers, part.TextIdentifier)
		}
	}

	if err := tx.Lessons().DeletePartsByLessonIDs(ctx, lessonIDs); err != nil {
		return fmt.Errorf("delete lesson parts: %w", err)
	}
	if err := tx.Lessons().DeleteByIDs(ctx, lessonIDs); err != nil {
		return fmt.Errorf("delete lessons: %w", err)
	}
	return translations.DeleteAllTranslationBy(ctx, identifiers...)
}

// FindLessonView returns the lesson content to an enrolled user once the
// lesson has started.
func (s *LessonService) FindLessonView(ctx context.Context, caller Identity, id int64) (*dto.CourseLessonView, error) {
	lesson, err := s.store.Lessons().FindWithParts(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, lessonResource, id)
	}

	enrolled, err := s.store.CourseUsers().Exists(ctx, lesson.CourseID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("check course %d enrollment: %w", lesson.CourseID, err)
	}
	now := s.now()
	if !enrolled || (lesson.StartDateTime != nil && now.Before(*lesson.StartDateTime)) {
		return nil, apperrors.Forbidden(lessonResource, apperrors.NO_ACCESS_TO_LESSON).
			With("id", id).
			With("userId", caller.UserID)
	}

	identifiers := appendIfSet([]int{lesson.TopicIdentifier}, lesson.DescriptionIdentifier)
	for _, part := range lesson.Parts {
		identifiers = appendIfSet(identifiers, part.TextIdentifier)
	}
	texts, err := s.translations.FindAllIdentifierAndTextByIdentifiersAndLocale(ctx, identifiers, caller.Locale)
	if err != nil {
		return nil, err
	}

	if err := s.store.CourseUsers().TouchLastAccess(ctx, lesson.CourseID, caller.UserID, now); err != nil {
		s.logger.Warn("failed to record course access", zap.Int64("courseId", lesson.CourseID), zap.Error(err))
	}

	parts := make([]dto.CourseLessonPart, 0, len(lesson.Parts))
	for _, part := range lesson.Parts {
		parts = append(parts, mapCourseLessonPart(part, texts))
	}
	return &dto.CourseLessonView{
		Topic:       texts[lesson.TopicIdentifier],
		Description: textOf(texts, lesson.DescriptionIdentifier),
		Image:       lesson.Image,
		Parts:       parts,
	}, nil
}
