package controllers

import (
	"context"

	"bearinmind/backend/dto"
	"bearinmind/backend/services"
	"bearinmind/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type GroupController struct {
	Groups *services.GroupService
}

func NewGroupController(groups *services.GroupService) *GroupController {
	return &GroupController{Groups: groups}
}

// CreateGroup godoc
// @Summary Create a user group
// @Tags groups
// @Accept json
// @Param group body dto.CreateOrUpdateUserGroup true "Group name translations"
// @Success 201 {object} utils.IDResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /user/group [post]
func (gc *GroupController) CreateGroup(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.CreateOrUpdateUserGroup
	if err := parseBody(c, &req); err != nil {
		return err
	}

	id, err := gc.Groups.CreateUserGroup(c.UserContext(), identity, req)
	if err != nil {
		return err
	}
	return utils.Created(c, id)
}

// UpdateGroup godoc
// @Summary Rename a user group
// @Tags groups
// @Accept json
// @Param id path int true "Group ID"
// @Param group body dto.CreateOrUpdateUserGroup true "Group name translations"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Router /user/group/{id} [put]
func (gc *GroupController) UpdateGroup(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateOrUpdateUserGroup
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := gc.Groups.UpdateUserGroup(c.UserContext(), identity, id, req); err != nil {
		return err
	}
	return utils.NoContent(c)
}

// GetGroup godoc
// @Summary User group with its members
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} dto.UserGroup
// @Failure 404 {object} utils.ErrorResponse
// @Router /user/group/{id} [get]
func (gc *GroupController) GetGroup(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	group, err := gc.Groups.FindUserGroup(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	return utils.OK(c, group)
}

// GetRegisteredGroups godoc
// @Summary Groups the caller belongs to
// @Tags groups
// @Produce json
// @Param pageNumber query int false "Page number from 0"
// @Param pageSize query int false "Page size (1-100)"
// @Success 200 {object} dto.Page[dto.UserGroupListItem]
// @Router /user/group/list/registered [get]
func (gc *GroupController) GetRegisteredGroups(c *fiber.Ctx) error {
	return gc.groupPage(c, gc.Groups.FindRegisteredUserGroupPage)
}

// GetAvailableGroups godoc
// @Summary Groups the caller may join
// @Tags groups
// @Produce json
// @Param pageNumber query int false "Page number from 0"
// @Param pageSize query int false "Page size (1-100)"
// @Success 200 {object} dto.Page[dto.UserGroupListItem]
// @Router /user/group/list/available [get]
func (gc *GroupController) GetAvailableGroups(c *fiber.Ctx) error {
	return gc.groupPage(c, gc.Groups.FindAvailableUserGroupPage)
}

// JoinGroup godoc
// @Summary Join a user group
// @Tags groups
// @Param groupId path int true "Group ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Router /user/group/join/{groupId} [post]
func (gc *GroupController) JoinGroup(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	groupID, err := idParam(c, "groupId")
	if err != nil {
		return err
	}

	if err := gc.Groups.AddUserToGroup(c.UserContext(), identity, groupID); err != nil {
		return err
	}
	return utils.NoContent(c)
}

type groupPageFunc func(ctx context.Context, caller services.Identity, pageNumber, pageSize int) (dto.Page[dto.UserGroupListItem], error)

func (gc *GroupController) groupPage(c *fiber.Ctx, find groupPageFunc) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	number, size, err := pageQuery(c)
	if err != nil {
		return err
	}

	page, err := find(c.UserContext(), identity, number, size)
	if err != nil {
		return err
	}
	return utils.OK(c, page)
}
