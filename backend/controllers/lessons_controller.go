package controllers

import (
	"bearinmind/backend/dto"
	"bearinmind/backend/services"
	"bearinmind/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type LessonsController struct {
	Lessons     *services.LessonService
	CourseUsers *services.CourseUserService
}

func NewLessonsController(lessons *services.LessonService, courseUsers *services.CourseUserService) *LessonsController {
	return &LessonsController{Lessons: lessons, CourseUsers: courseUsers}
}

// CreateLesson godoc
// @Summary Add a lesson to a course
// @Tags lessons
// @Accept json
// @Param courseId path int true "Course ID"
// @Param lesson body dto.CreateCourseLesson true "Lesson"
// @Success 201 {object} utils.IDResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /course/{courseId}/lesson [post]
func (lc *LessonsController) CreateLesson(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	courseID, err := idParam(c, "courseId")
	if err != nil {
		return err
	}
	var req dto.CreateCourseLesson
	if err := parseBody(c, &req); err != nil {
		return err
	}

	id, err := lc.Lessons.CreateLesson(c.UserContext(), identity, courseID, req)
	if err != nil {
		return err
	}
	return utils.Created(c, id)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags lessons
// @Accept json
// @Param id path int true "Lesson ID"
// @Param lesson body dto.UpdateCourseLesson true "Lesson"
// @Success 204
// @Router /course/lesson/{id} [put]
func (lc *LessonsController) UpdateLesson(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCourseLesson
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := lc.Lessons.UpdateLesson(c.UserContext(), identity, id, req); err != nil {
		return err
	}
	return utils.NoContent(c)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags lessons
// @Param id path int true "Lesson ID"
// @Success 204
// @Router /course/lesson/{id} [delete]
func (lc *LessonsController) DeleteLesson(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := lc.Lessons.DeleteLesson(c.UserContext(), identity, id); err != nil {
		return err
	}
	return utils.NoContent(c)
}

// GetLessonView godoc
// @Summary Lesson content
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} dto.CourseLessonView
// @Failure 403 {object} utils.ErrorResponse
// @Router /course/lesson/{id} [get]
func (lc *LessonsController) GetLessonView(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	view, err := lc.Lessons.FindLessonView(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	return utils.OK(c, view)
}

// GetLessonRole godoc
// @Summary Caller's role in the course of a lesson
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {string} string "OWNER, TEACHER or STUDENT"
// @Router /course/lesson/{id}/role [get]
func (lc *LessonsController) GetLessonRole(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	role, err := lc.CourseUsers.FindCourseRoleByLessonID(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	return utils.OK(c, role)
}
