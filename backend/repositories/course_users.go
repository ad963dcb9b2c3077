package repositories

import (
	"context"
	"time"

	"bearinmind/backend/models"

	"gorm.io/gorm"
)

type courseUserRepository struct {
	db *gorm.DB
}

func (r *courseUserRepository) Create(ctx context.Context, d *models.CourseUserData) error {
	return translateError(r.db.WithContext(ctx).Create(d).Error)
}

func (r *courseUserRepository) FindRole(ctx context.Context, courseID, userID int64) (models.CourseRole, error) {
	var d models.CourseUserData
	err := r.db.WithContext(ctx).
		Select("role").
		Where("course_id = ? AND user_id = ?", courseID, userID).
		First(&d).Error
	if err != nil {
		return "", translateError(err)
	}
	return d.Role, nil
}

func (r *courseUserRepository) FindRoleByLessonID(ctx context.Context, lessonID, userID int64) (models.CourseRole, error) {
	var roles []models.CourseRole
	err := r.db.WithContext(ctx).
		Table("course_user_data cud").
		Joins("JOIN course_lessons cl ON cl.course_id = cud.course_id").
		Where("cl.id = ? AND cud.user_id = ?", lessonID, userID).
		Limit(1).
		Pluck("cud.role", &roles).Error
	if err != nil {
		return "", translateError(err)
	}
	if len(roles) == 0 {
		return "", ErrNotFound
	}
	return roles[0], nil
}

func (r *courseUserRepository) Exists(ctx context.Context, courseID, userID int64) (bool, error) {
	found, err := exists(r.db.WithContext(ctx).
		Model(&models.CourseUserData{}).
		Where("course_id = ? AND user_id = ?", courseID, userID))
	return found, translateError(err)
}

func (r *courseUserRepository) ExistsWithRoles(ctx context.Context, courseID, userID int64, roles ...models.CourseRole) (bool, error) {
	found, err := exists(r.db.WithContext(ctx).
		Model(&models.CourseUserData{}).
		Where("course_id = ? AND user_id = ? AND role IN ?", courseID, userID, roles))
	return found, translateError(err)
}

func (r *courseUserRepository) ExistsByUserAndRoles(ctx context.Context, userID int64, roles ...models.CourseRole) (bool, error) {
	found, err := exists(r.db.WithContext(ctx).
		Model(&models.CourseUserData{}).
		Where("user_id = ? AND role IN ?", userID, roles))
	return found, translateError(err)
}

func (r *courseUserRepository) BelongsToCourseGroup(ctx context.Context, courseID, userID int64) (bool, error) {
	found, err := exists(r.db.WithContext(ctx).
		Table("course_user_groups cug").
		Joins("JOIN user_group_members ugm ON ugm.group_id = cug.group_id").
		Where("cug.course_id = ? AND ugm.user_id = ? AND ugm.role IN ?", courseID, userID, models.RegisteredGroupRoles))
	return found, translateError(err)
}

func (r *courseUserRepository) FindTeachers(ctx context.Context, courseID int64) ([]UserListItem, error) {
	var items []UserListItem
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.id, u.first_name, u.last_name, u.image").
		Joins("JOIN course_user_data cud ON cud.user_id = u.id").
		Where("cud.course_id = ? AND cud.role IN ?", courseID, models.TeacherCourseRoles).
		Order("u.id").
		Scan(&items).Error
	return items, translateError(err)
}

func (r *courseUserRepository) TouchLastAccess(ctx context.Context, courseID, userID int64, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&models.CourseUserData{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Update("last_access_date_time", at).Error
	return translateError(err)
}

func (r *courseUserRepository) DeleteAllByCourseID(ctx context.Context, courseID int64) error {
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&models.CourseUserData{}).Error
	return translateError(err)
}
