package routes

import (
	"strings"

	"bearinmind/backend/config"
	"bearinmind/backend/controllers"
	"bearinmind/backend/middleware"
	"bearinmind/backend/models"
	"bearinmind/backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

const bodyLimit = 4 * 1024 * 1024

// NewApp builds the Fiber application with middleware and routes.
func NewApp(svc *services.Services, cfg *config.Config, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "bearinmind",
		ErrorHandler: controllers.ErrorHandler(logger),
		BodyLimit:    bodyLimit,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Authorization",
		AllowCredentials: cfg.CORSAllowOrigins != "*",
	}))
	app.Use(middleware.LoggingMiddleware(logger.Named("http")))
	app.Use(middleware.AuthMiddleware(svc.Auth, cfg, logger.Named("auth")))

	if strings.HasPrefix(cfg.FileStorageBaseURL, "/") && cfg.FileStorageDir != "" {
		app.Static(cfg.FileStorageBaseURL, cfg.FileStorageDir)
	}

	SetupRoutes(app, svc, cfg)
	return app
}

func SetupRoutes(app *fiber.App, svc *services.Services, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(svc.Auth, cfg)
	auth := app.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Post("/signup", authController.SignUp)
	auth.Post("/logout", authController.Logout)

	// Middleware
	requireAuth := middleware.RequireAuth()
	teacherOnly := middleware.RoleRequired(models.UserRoleTeacher)

	// Courses routes
	coursesController := controllers.NewCoursesController(svc.Courses, svc.CourseUsers)
	lessonsController := controllers.NewLessonsController(svc.Lessons, svc.CourseUsers)
	courses := app.Group("/course", requireAuth)
	courses.Post("/", teacherOnly, coursesController.CreateCourse)
	courses.Get("/main-view", coursesController.GetMainView)
	courses.Get("/list/:kind", coursesController.GetCoursePage)
	courses.Post("/enroll/:courseId", coursesController.Enroll)

	// Lesson routes
	courses.Get("/lesson/:id", lessonsController.GetLessonView)
	courses.Get("/lesson/:id/role", lessonsController.GetLessonRole)
	courses.Put("/lesson/:id", teacherOnly, lessonsController.UpdateLesson)
	courses.Delete("/lesson/:id", teacherOnly, lessonsController.DeleteLesson)
	courses.Post("/:courseId/lesson", teacherOnly, lessonsController.CreateLesson)

	courses.Get("/:id", coursesController.GetCourseView)
	courses.Put("/:id", teacherOnly, coursesController.UpdateCourse)
	courses.Delete("/:id", teacherOnly, coursesController.DeleteCourse)
	courses.Get("/:id/role", coursesController.GetCourseRole)
	courses.Post("/:id/group/:groupId", coursesController.AddGroup)

	// Group routes
	groupController := controllers.NewGroupController(svc.Groups)
	groups := app.Group("/user/group", requireAuth)
	groups.Post("/", groupController.CreateGroup)
	groups.Get("/list/registered", groupController.GetRegisteredGroups)
	groups.Get("/list/available", groupController.GetAvailableGroups)
	groups.Post("/join/:groupId", groupController.JoinGroup)
	groups.Get("/:id", groupController.GetGroup)
	groups.Put("/:id", groupController.UpdateGroup)

	// User routes
	userController := controllers.NewUserController(svc.Users)
	users := app.Group("/user", requireAuth)
	users.Put("/", userController.UpdateProfile)
	users.Get("/main-view", userController.GetMainView)
	users.Get("/list/group-members", userController.GetGroupMembers)
	users.Get("/list/students", userController.GetStudents)
	users.Get("/list/teachers", userController.GetTeachers)
	users.Get("/:id", userController.GetUserView)

	// File routes
	fileController := controllers.NewFileController(svc.Files)
	files := app.Group("/file", requireAuth)
	files.Post("/image", fileController.UploadImage)
	files.Delete("/", fileController.DeleteFile)
}
