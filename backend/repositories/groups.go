package repositories

import (
	"context"

	"bearinmind/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type groupRepository struct {
	db *gorm.DB
}

func (r *groupRepository) Create(ctx context.Context, g *models.UserGroup) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(g).Error)
}

func (r *groupRepository) AddMember(ctx context.Context, m *models.UserGroupMember) error {
	return translateError(r.db.WithContext(ctx).Create(m).Error)
}

func (r *groupRepository) FindByID(ctx context.Context, id int64) (*models.UserGroup, error) {
	var g models.UserGroup
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &g, nil
}

func (r *groupRepository) FindRegisteredMembers(ctx context.Context, groupID int64) ([]UserListItem, error) {
	var items []UserListItem
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.id, u.first_name, u.last_name, u.image").
		Joins("JOIN user_group_members ugm ON ugm.user_id = u.id").
		Where("ugm.group_id = ? AND ugm.role IN ?", groupID, models.RegisteredGroupRoles).
		Order("ugm.registration_date_time, u.id").
		Scan(&items).Error
	return items, translateError(err)
}

func (r *groupRepository) ExistsMembership(ctx context.Context, groupID, userID int64) (bool, error) {
	found, err := exists(r.db.WithContext(ctx).
		Model(&models.UserGroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID))
	return found, translateError(err)
}

func (r *groupRepository) HasRole(ctx context.Context, groupID, userID int64, roles ...models.UserGroupRole) (bool, error) {
	found, err := exists(r.db.WithContext(ctx).
		Model(&models.UserGroupMember{}).
		Where("group_id = ? AND user_id = ? AND role IN ?", groupID, userID, roles))
	return found, translateError(err)
}

func (r *groupRepository) FindRegisteredPage(ctx context.Context, userID int64, page PageRequest) ([]GroupListItem, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Table("user_groups ug").
			Joins("JOIN user_group_members ugm ON ugm.group_id = ug.id").
			Where("ugm.user_id = ? AND ugm.role IN ?", userID, models.RegisteredGroupRoles)
	}
	return groupPage(base, "ugm.registration_date_time DESC, ug.id DESC", page)
}

func (r *groupRepository) FindAvailablePage(ctx context.Context, userID int64, page PageRequest) ([]GroupListItem, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Table("user_groups ug").
			Where("NOT EXISTS (SELECT 1 FROM user_group_members ugm WHERE ugm.group_id = ug.id AND ugm.user_id = ?)", userID)
	}
	return groupPage(base, "ug.creation_date_time DESC, ug.id DESC", page)
}

func (r *groupRepository) FindAllCommon(ctx context.Context, loggedInUserID, userID int64) ([]GroupListItem, error) {
	var items []GroupListItem
	err := r.db.WithContext(ctx).
		Table("user_groups ug").
		Select("ug.id, ug.name_identifier, ug.image").
		Joins("JOIN user_group_members ugml ON ugml.group_id = ug.id AND ugml.user_id = ?", loggedInUserID).
		Joins("JOIN user_group_members ugmu ON ugmu.group_id = ug.id AND ugmu.user_id = ?", userID).
		Where("ugml.role IN ? AND ugmu.role IN ?", models.RegisteredGroupRoles, models.RegisteredGroupRoles).
		Order("ug.id").
		Scan(&items).Error
	return items, translateError(err)
}

func groupPage(base func() *gorm.DB, order string, page PageRequest) ([]GroupListItem, int64, error) {
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}
	var items []GroupListItem
	err := base().
		Select("ug.id, ug.name_identifier, ug.image").
		Order(order).
		Limit(page.Size).
		Offset(page.Offset()).
		Scan(&items).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return items, total, nil
}
