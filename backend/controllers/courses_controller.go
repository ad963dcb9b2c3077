package controllers

import (
	"bearinmind/backend/dto"
	"bearinmind/backend/services"
	"bearinmind/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CoursesController struct {
	Courses     *services.CourseService
	CourseUsers *services.CourseUserService
}

func NewCoursesController(courses *services.CourseService, courseUsers *services.CourseUserService) *CoursesController {
	return &CoursesController{Courses: courses, CourseUsers: courseUsers}
}

// CreateCourse godoc
// @Summary Create a course
// @Description Creates a course with its lessons. The caller becomes its owner.
// @Tags courses
// @Accept json
// @Produce json
// @Param course body dto.CreateCourse true "Course"
// @Success 201 {object} utils.IDResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /course [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.CreateCourse
	if err := parseBody(c, &req); err != nil {
		return err
	}

	id, err := cc.Courses.CreateCourse(c.UserContext(), identity, req)
	if err != nil {
		return err
	}
	return utils.Created(c, id)
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags courses
// @Accept json
// @Param id path int true "Course ID"
// @Param course body dto.UpdateCourse true "Course"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /course/{id} [put]
func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCourse
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := cc.Courses.UpdateCourse(c.UserContext(), identity, id, req); err != nil {
		return err
	}
	return utils.NoContent(c)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags courses
// @Param id path int true "Course ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /course/{id} [delete]
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := cc.Courses.DeleteCourse(c.UserContext(), identity, id); err != nil {
		return err
	}
	return utils.NoContent(c)
}

// GetMainView godoc
// @Summary Course lists of the main page
// @Tags courses
// @Produce json
// @Param listLength query int true "Items per list (1-10)"
// @Success 200 {object} dto.CourseMainView
// @Router /course/main-view [get]
func (cc *CoursesController) GetMainView(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	listLength, err := listLengthQuery(c)
	if err != nil {
		return err
	}

	view, err := cc.Courses.FindCourseMainView(c.UserContext(), identity, listLength)
	if err != nil {
		return err
	}
	return utils.OK(c, view)
}

// GetCoursePage godoc
// @Summary One page of a course list
// @Tags courses
// @Produce json
// @Param kind path string true "conducted, active, available or completed"
// @Param pageNumber query int false "Page number from 0"
// @Param pageSize query int false "Page size (1-100)"
// @Success 200 {object} dto.Page[dto.CourseListItem]
// @Router /course/list/{kind} [get]
func (cc *CoursesController) GetCoursePage(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	kind, ok := services.ParseCourseListKind(c.Params("kind"))
	if !ok {
		return invalidArgument("kind")
	}
	number, size, err := pageQuery(c)
	if err != nil {
		return err
	}

	page, err := cc.Courses.FindCoursePage(c.UserContext(), identity, kind, number, size)
	if err != nil {
		return err
	}
	return utils.OK(c, page)
}

// GetCourseView godoc
// @Summary Course details
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.CourseView
// @Failure 403 {object} utils.ErrorResponse
// @Router /course/{id} [get]
func (cc *CoursesController) GetCourseView(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	view, err := cc.Courses.FindCourseView(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	return utils.OK(c, view)
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags courses
// @Param courseId path int true "Course ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /course/enroll/{courseId} [post]
func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	courseID, err := idParam(c, "courseId")
	if err != nil {
		return err
	}

	if err := cc.CourseUsers.EnrollUserInCourse(c.UserContext(), identity, courseID); err != nil {
		return err
	}
	return utils.NoContent(c)
}

// GetCourseRole godoc
// @Summary Caller's role in a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {string} string "OWNER, TEACHER or STUDENT"
// @Failure 404 {object} utils.ErrorResponse
// @Router /course/{id}/role [get]
func (cc *CoursesController) GetCourseRole(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	role, err := cc.CourseUsers.FindCourseRoleByCourseID(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	return utils.OK(c, role)
}

// AddGroup godoc
// @Summary Share a course with a user group
// @Tags courses
// @Param id path int true "Course ID"
// @Param groupId path int true "User group ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /course/{id}/group/{groupId} [post]
func (cc *CoursesController) AddGroup(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	groupID, err := idParam(c, "groupId")
	if err != nil {
		return err
	}

	if err := cc.Courses.AddGroupToCourse(c.UserContext(), identity, id, groupID); err != nil {
		return err
	}
	return utils.NoContent(c)
}
