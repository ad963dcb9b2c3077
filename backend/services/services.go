package services

import (
	"bearinmind/backend/cache"
	"bearinmind/backend/config"
	"bearinmind/backend/filestorage"
	"bearinmind/backend/repositories"

	"go.uber.org/zap"
)

// Services bundles every service over one store.
type Services struct {
	Translations *TranslationService
	Courses      *CourseService
	Lessons      *LessonService
	CourseUsers  *CourseUserService
	Groups       *GroupService
	Users        *UserService
	Auth         *AuthService
	Files        *FileService
}

func New(store repositories.Store, c cache.TranslationCache, files filestorage.Client, cfg *config.Config, now Clock, logger *zap.Logger) *Services {
	translations := NewTranslationService(store, c, cfg.ApplicationLocale, logger.Named("translations"))
	users := NewUserService(store, translations, cfg.ApplicationLocale, now, logger.Named("users"))
	return &Services{
		Translations: translations,
		Courses:      NewCourseService(store, translations, now, logger.Named("courses")),
		Lessons:      NewLessonService(store, translations, now, logger.Named("lessons")),
		CourseUsers:  NewCourseUserService(store, now, logger.Named("enrollments")),
		Groups:       NewGroupService(store, translations, now, logger.Named("groups")),
		Users:        users,
		Auth:         NewAuthService(store, users, cfg, now, logger.Named("auth")),
		Files:        NewFileService(store, files, logger.Named("files")),
	}
}
