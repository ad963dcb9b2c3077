package repositories

import (
	"context"

	"bearinmind/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type lessonRepository struct {
	db *gorm.DB
}

func (r *lessonRepository) Create(ctx context.Context, l *models.CourseLesson) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error)
}

func (r *lessonRepository) CreatePart(ctx context.Context, p *models.CourseLessonPart) error {
	return translateError(r.db.WithContext(ctx).Create(p).Error)
}

func (r *lessonRepository) FindByID(ctx context.Context, id int64) (*models.CourseLesson, error) {
	var l models.CourseLesson
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &l, nil
}

func (r *lessonRepository) FindWithParts(ctx context.Context, id int64) (*models.CourseLesson, error) {
	var l models.CourseLesson
	err := r.db.WithContext(ctx).
		Preload("Parts", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_lesson_parts.ordinal")
		}).
		First(&l, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &l, nil
}

func (r *lessonRepository) FindAllByCourseID(ctx context.Context, courseID int64) ([]models.CourseLesson, error) {
	var lessons []models.CourseLesson
	err := r.db.WithContext(ctx).
		Preload("Parts").
		Where("course_id = ?", courseID).
		Order("ordinal").
		Find(&lessons).Error
	return lessons, translateError(err)
}

func (r *lessonRepository) MaxOrdinal(ctx context.Context, courseID int64) (int, error) {
	var maxOrdinal int
	err := r.db.WithContext(ctx).
		Model(&models.CourseLesson{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(ordinal), 0)").
		Scan(&maxOrdinal).Error
	return maxOrdinal, translateError(err)
}

func (r *lessonRepository) Update(ctx context.Context, l *models.CourseLesson) error {
	err := r.db.WithContext(ctx).
		Model(&models.CourseLesson{ID: l.ID}).
		Select("TopicIdentifier", "DescriptionIdentifier", "Image", "StartDateTime").
		Updates(l).Error
	return translateError(err)
}

func (r *lessonRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Delete(&models.CourseLesson{}, ids).Error)
}

func (r *lessonRepository) DeletePartsByLessonIDs(ctx context.Context, lessonIDs []int64) error {
	if len(lessonIDs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("lesson_id IN ?", lessonIDs).
		Delete(&models.CourseLessonPart{}).Error
	return translateError(err)
}
