package repositories

import (
	"context"

	"bearinmind/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) CreateCredentials(ctx context.Context, c *models.UserCredentials) error {
	return translateError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *userRepository) Create(ctx context.Context, u *models.User) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Preload("Credentials").First(&u, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

func (r *userRepository) FindActiveByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Joins("Credentials").
		Where(`"Credentials"."username" = ? AND "Credentials"."active" = ?`, username, true).
		First(&u).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	found, err := exists(r.db.WithContext(ctx).
		Table("users u").
		Joins("JOIN user_credentials uc ON uc.id = u.credentials_id").
		Where("uc.username = ? OR u.email = ?", username, email))
	return found, translateError(err)
}

func (r *userRepository) Update(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{ID: u.ID}).
		Select("FirstName", "MiddleName", "LastName", "Title", "PhoneNumber", "Locale", "Image").
		Updates(u).Error
	return translateError(err)
}

func (r *userRepository) FindGroupMemberPage(ctx context.Context, userID int64, page PageRequest) ([]UserListItem, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Table("users u").
			Where("u.id <> ?", userID).
			Where(`EXISTS (SELECT 1 FROM user_group_members ugmm
				JOIN user_group_members ugmu ON ugmu.group_id = ugmm.group_id
				WHERE ugmm.user_id = u.id AND ugmu.user_id = ?
				AND ugmm.role IN ? AND ugmu.role IN ?)`,
				userID, models.RegisteredGroupRoles, models.RegisteredGroupRoles)
	}
	return r.userPage(base, page)
}

func (r *userRepository) FindByCourseRolePage(ctx context.Context, userID int64, userRoles, searchedRoles []models.CourseRole, page PageRequest) ([]UserListItem, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Table("users u").
			Where("u.id <> ?", userID).
			Where(`EXISTS (SELECT 1 FROM course_user_data cuds
				JOIN course_user_data cudu ON cudu.course_id = cuds.course_id
				WHERE cuds.user_id = u.id AND cudu.user_id = ?
				AND cuds.role IN ? AND cudu.role IN ?)`,
				userID, searchedRoles, userRoles)
	}
	return r.userPage(base, page)
}

func (r *userRepository) userPage(base func() *gorm.DB, page PageRequest) ([]UserListItem, int64, error) {
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}
	var items []UserListItem
	err := base().
		Select("u.id, u.first_name, u.last_name, u.image").
		Order("u.last_name, u.first_name, u.id").
		Limit(page.Size).
		Offset(page.Offset()).
		Scan(&items).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return items, total, nil
}
