package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/dto"
	"bearinmind/backend/models"
	"bearinmind/backend/repositories"

	"go.uber.org/zap"
)

const (
	groupResource       = "user group"
	groupMemberResource = "user group member"
)

type GroupService struct {
	store        repositories.Store
	translations *TranslationService
	now          Clock
	logger       *zap.Logger
}

func NewGroupService(store repositories.Store, translations *TranslationService, now Clock, logger *zap.Logger) *GroupService {
	return &GroupService{store: store, translations: translations, now: now, logger: logger}
}

// CreateUserGroup creates a group owned by the caller.
func (s *GroupService) CreateUserGroup(ctx context.Context, caller Identity, req dto.CreateOrUpdateUserGroup) (int64, error) {
	now := s.now()
	var groupID int64
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		nameIdentifier, err := s.translations.In(tx).CreateMultilingualTranslation(ctx, req.Name, true)
		if err != nil {
			return err
		}

		group := &models.UserGroup{NameIdentifier: *nameIdentifier, CreationDateTime: now}
		if err := tx.Groups().Create(ctx, group); err != nil {
			return fmt.Errorf("create user group: %w", err)
		}
		groupID = group.ID

		return s.addMember(ctx, tx, group.ID, caller.UserID, models.UserGroupRoleOwner, now)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("user group created", zap.Int64("groupId", groupID), zap.Int64("userId", caller.UserID))
	return groupID, nil
}

// UpdateUserGroup replaces the group name translations.
func (s *GroupService) UpdateUserGroup(ctx context.Context, caller Identity, id int64, req dto.CreateOrUpdateUserGroup) error {
	return s.store.WithinTx(ctx, func(tx repositories.Store) error {
		group, err := tx.Groups().FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, groupResource, id)
		}
		if err := validateIfUserHasWritePermissionToGroup(ctx, tx, id, caller.UserID); err != nil {
			return err
		}
		return s.translations.In(tx).UpdateMultilingualTranslation(ctx, group.NameIdentifier, req.Name)
	})
}

// AddUserToGroup lets the caller join a group they have no relation with yet.
func (s *GroupService) AddUserToGroup(ctx context.Context, caller Identity, groupID int64) error {
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.Groups().FindByID(ctx, groupID); err != nil {
			return notFoundOr(err, groupResource, groupID)
		}
		member, err := tx.Groups().ExistsMembership(ctx, groupID, caller.UserID)
		if err != nil {
			return fmt.Errorf("check group %d membership: %w", groupID, err)
		}
		if member {
			return cannotJoinGroup(groupID, caller.UserID)
		}
		return s.addMember(ctx, tx, groupID, caller.UserID, models.UserGroupRoleMember, s.now())
	})
	if err != nil {
		return err
	}
	s.logger.Info("user joined group", zap.Int64("groupId", groupID), zap.Int64("userId", caller.UserID))
	return nil
}

func (s *GroupService) addMember(ctx context.Context, tx repositories.Store, groupID, userID int64, role models.UserGroupRole, now time.Time) error {
	err := tx.Groups().AddMember(ctx, &models.UserGroupMember{
		GroupID:              groupID,
		UserID:               userID,
		Role:                 role,
		RegistrationDateTime: now,
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		return cannotJoinGroup(groupID, userID)
	}
	if err != nil {
		return fmt.Errorf("add user %d to group %d: %w", userID, groupID, err)
	}
	return nil
}

func cannotJoinGroup(groupID, userID int64) error {
	return apperrors.Invalid(groupMemberResource, apperrors.CANNOT_JOIN_GROUP).
		With("groupId", groupID).
		With("userId", userID)
}

// validateIfUserHasWritePermissionToGroup allows only the group owner.
func validateIfUserHasWritePermissionToGroup(ctx context.Context, store repositories.Store, groupID, userID int64) error {
	owner, err := store.Groups().HasRole(ctx, groupID, userID, models.UserGroupRoleOwner)
	if err != nil {
		return fmt.Errorf("check group %d ownership: %w", groupID, err)
	}
	if !owner {
		return apperrors.Forbidden(groupResource, apperrors.FORBIDDEN).
			With("groupId", groupID).
			With("userId", userID)
	}
	return nil
}

func (s *GroupService) FindUserGroup(ctx context.Context, caller Identity, id int64) (*dto.UserGroup, error) {
	group, err := s.store.Groups().FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, groupResource, id)
	}
	members, err := s.store.Groups().FindRegisteredMembers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find members of group %d: %w", id, err)
	}
	name, err := s.translations.FindTextByIdentifierAndLocale(ctx, group.NameIdentifier, caller.Locale)
	if err != nil {
		return nil, err
	}
	return &dto.UserGroup{
		Name:    name,
		Image:   group.Image,
		Members: mapUserListItems(members),
	}, nil
}

func (s *GroupService) FindRegisteredUserGroupPage(ctx context.Context, caller Identity, pageNumber, pageSize int) (dto.Page[dto.UserGroupListItem], error) {
	return s.groupPage(ctx, caller, pageNumber, pageSize, s.store.Groups().FindRegisteredPage)
}

func (s *GroupService) FindAvailableUserGroupPage(ctx context.Context, caller Identity, pageNumber, pageSize int) (dto.Page[dto.UserGroupListItem], error) {
	return s.groupPage(ctx, caller, pageNumber, pageSize, s.store.Groups().FindAvailablePage)
}

type groupPageFunc func(ctx context.Context, userID int64, page repositories.PageRequest) ([]repositories.GroupListItem, int64, error)

func (s *GroupService) groupPage(ctx context.Context, caller Identity, pageNumber, pageSize int, find groupPageFunc) (dto.Page[dto.UserGroupListItem], error) {
	items, total, err := find(ctx, caller.UserID, repositories.PageRequest{Number: pageNumber, Size: pageSize})
	if err != nil {
		return dto.Page[dto.UserGroupListItem]{}, fmt.Errorf("find group page: %w", err)
	}
	texts, err := s.translations.FindAllIdentifierAndTextByIdentifiersAndLocale(ctx, groupNameIdentifiers(items), caller.Locale)
	if err != nil {
		return dto.Page[dto.UserGroupListItem]{}, err
	}
	return dto.NewPage(mapGroupListItems(items, texts), pageNumber, pageSize, total), nil
}
