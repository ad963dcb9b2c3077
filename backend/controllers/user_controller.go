package controllers

import (
	"context"

	"bearinmind/backend/dto"
	"bearinmind/backend/services"
	"bearinmind/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Updates the authenticated user's profile
// @Tags users
// @Accept json
// @Param user body dto.UpdateUser true "Profile"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /user [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUser
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := uc.Users.UpdateUser(c.UserContext(), identity, req); err != nil {
		return err
	}
	return utils.NoContent(c)
}

// GetUserView godoc
// @Summary Get user profile
// @Description Returns a user with the courses and groups shared with the caller
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserView
// @Failure 404 {object} utils.ErrorResponse
// @Router /user/{id} [get]
func (uc *UserController) GetUserView(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	view, err := uc.Users.FindUserView(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	return utils.OK(c, view)
}

// GetMainView godoc
// @Summary Group lists of the people page
// @Tags users
// @Produce json
// @Param listLength query int true "Items per list (1-10)"
// @Success 200 {object} dto.UserMainView
// @Router /user/main-view [get]
func (uc *UserController) GetMainView(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	listLength, err := listLengthQuery(c)
	if err != nil {
		return err
	}

	view, err := uc.Users.FindUserMainView(c.UserContext(), identity, listLength)
	if err != nil {
		return err
	}
	return utils.OK(c, view)
}

// GetGroupMembers godoc
// @Summary Members of the caller's groups
// @Tags users
// @Produce json
// @Param pageNumber query int false "Page number from 0"
// @Param pageSize query int false "Page size (1-100)"
// @Success 200 {object} dto.Page[dto.UserListItem]
// @Router /user/list/group-members [get]
func (uc *UserController) GetGroupMembers(c *fiber.Ctx) error {
	return uc.userPage(c, uc.Users.FindGroupMemberPage)
}

// GetStudents godoc
// @Summary Students of the courses the caller conducts
// @Tags users
// @Produce json
// @Param pageNumber query int false "Page number from 0"
// @Param pageSize query int false "Page size (1-100)"
// @Success 200 {object} dto.Page[dto.UserListItem]
// @Router /user/list/students [get]
func (uc *UserController) GetStudents(c *fiber.Ctx) error {
	return uc.userPage(c, uc.Users.FindStudentPage)
}

// GetTeachers godoc
// @Summary Teachers of the courses the caller attends
// @Tags users
// @Produce json
// @Param pageNumber query int false "Page number from 0"
// @Param pageSize query int false "Page size (1-100)"
// @Success 200 {object} dto.Page[dto.UserListItem]
// @Router /user/list/teachers [get]
func (uc *UserController) GetTeachers(c *fiber.Ctx) error {
	return uc.userPage(c, uc.Users.FindTeacherPage)
}

type userPageFunc func(ctx context.Context, caller services.Identity, pageNumber, pageSize int) (dto.Page[dto.UserListItem], error)

func (uc *UserController) userPage(c *fiber.Ctx, find userPageFunc) error {
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
