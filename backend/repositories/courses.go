package repositories

import (
	"context"
	"fmt"
	"time"

	"bearinmind/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type courseRepository struct {
	db *gorm.DB
}

func (r *courseRepository) Create(ctx context.Context, c *models.Course) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (r *courseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	var c models.Course
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *courseRepository) FindWithLessons(ctx context.Context, id int64) (*models.Course, error) {
	var c models.Course
	err := r.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_lessons.ordinal")
		}).
		First(&c, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *courseRepository) Update(ctx context.Context, c *models.Course) error {
	err := r.db.WithContext(ctx).
		Model(&models.Course{ID: c.ID}).
		Select("NameIdentifier", "DescriptionIdentifier", "Image", "StartDateTime", "EndDateTime", "RegistrationClosingDateTime").
		Updates(c).Error
	return translateError(err)
}

func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	return translateError(r.db.WithContext(ctx).Delete(&models.Course{}, id).Error)
}

func (r *courseRepository) FindListItemPage(ctx context.Context, kind CourseListKind, userID int64, now time.Time, page PageRequest) ([]CourseListItem, int64, error) {
	base := func() (*gorm.DB, string, error) {
		q := r.db.WithContext(ctx).Table("courses")
		notEnded := "(courses.end_date_time IS NULL OR courses.end_date_time > ?)"
		switch kind {
		case CourseListConducted:
			return q.Joins("JOIN course_user_data cud ON cud.course_id = courses.id").
				Where("cud.user_id = ? AND cud.role IN ?", userID, models.TeacherCourseRoles).
				Where(notEnded, now), "cud.last_access_date_time DESC, courses.id DESC", nil
		case CourseListActive:
			return q.Joins("JOIN course_user_data cud ON cud.course_id = courses.id").
				Where("cud.user_id = ? AND cud.role = ?", userID, models.CourseRoleStudent).
				Where(notEnded, now), "cud.last_access_date_time DESC, courses.id DESC", nil
		case CourseListAvailable:
			return q.Where(notEnded, now).
				Where("NOT EXISTS (SELECT 1 FROM course_user_data cud WHERE cud.course_id = courses.id AND cud.user_id = ?)", userID).
				Where(`EXISTS (SELECT 1 FROM course_user_groups cug
					JOIN user_group_members ugm ON ugm.group_id = cug.group_id
					WHERE cug.course_id = courses.id AND ugm.user_id = ? AND ugm.role IN ?)`,
					userID, models.RegisteredGroupRoles), "courses.creation_date_time DESC, courses.id DESC", nil
		case CourseListCompleted:
			return q.Joins("JOIN course_user_data cud ON cud.course_id = courses.id").
				Where("cud.user_id = ?", userID).
				Where("courses.end_date_time <= ?", now), "cud.last_access_date_time DESC, courses.id DESC", nil
		default:
			return nil, "", fmt.Errorf("unknown course list %q", kind)
		}
	}

	q, order, err := base()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	q, _, _ = base()
	var items []CourseListItem
	err = q.Select("courses.id, courses.name_identifier, courses.image").
		Order(order).
		Limit(page.Size).
		Offset(page.Offset()).
		Scan(&items).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return items, total, nil
}

func (r *courseRepository) FindAllCommonCourseAndRole(ctx context.Context, loggedInUserID, userID int64) ([]UserCourse, error) {
	var items []UserCourse
	err := r.db.WithContext(ctx).
		Table("courses").
		Select("courses.id, courses.name_identifier, courses.image, cudu.role").
		Joins("JOIN course_user_data cudl ON cudl.course_id = courses.id AND cudl.user_id = ?", loggedInUserID).
		Joins("JOIN course_user_data cudu ON cudu.course_id = courses.id AND cudu.user_id = ?", userID).
		Order("courses.id").
		Scan(&items).Error
	return items, translateError(err)
}

func (r *courseRepository) LinkGroup(ctx context.Context, courseID, groupID int64) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CourseUserGroup{CourseID: courseID, GroupID: groupID}).Error
	return translateError(err)
}

func (r *courseRepository) DeleteGroupLinks(ctx context.Context, courseID int64) error {
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&models.CourseUserGroup{}).Error
	return translateError(err)
}
