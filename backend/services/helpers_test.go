package services

import (
	"context"
	"testing"
	"time"

	"bearinmind/backend/cache"
	"bearinmind/backend/dto"
	"bearinmind/backend/models"
	"bearinmind/backend/repositories"
	"bearinmind/backend/repositories/repotest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const appLocale = "en"

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func fixedClock() time.Time { return testNow }

type env struct {
	t            *testing.T
	ctx          context.Context
	db           *gorm.DB
	store        *repositories.GormStore
	translations *TranslationService
	courses      *CourseService
	lessons      *LessonService
	courseUsers  *CourseUserService
	groups       *GroupService
	users        *UserService
}

func newEnv(t *testing.T) *env {
	return newEnvWithCache(t, cache.Noop{})
}

func newEnvWithCache(t *testing.T, c cache.TranslationCache) *env {
	t.Helper()
	store, db := repotest.Store(t)
	logger := zap.NewNop()
	translations := NewTranslationService(store, c, appLocale, logger)
	return &env{
		t:            t,
		ctx:          context.Background(),
		db:           db,
		store:        store,
		translations: translations,
		courses:      NewCourseService(store, translations, fixedClock, logger),
		lessons:      NewLessonService(store, translations, fixedClock, logger),
		courseUsers:  NewCourseUserService(store, fixedClock, logger),
		groups:       NewGroupService(store, translations, fixedClock, logger),
		users:        NewUserService(store, translations, appLocale, fixedClock, logger),
	}
}

func (e *env) user(name string, role models.UserRole) Identity {
	e.t.Helper()
	creds := &models.UserCredentials{Username: name + "@example.com", Password: "x", Role: role, Active: true}
	require.NoError(e.t, e.store.Users().CreateCredentials(e.ctx, creds))
	u := &models.User{
		CredentialsID:        creds.ID,
		FirstName:            name,
		LastName:             "Tester",
		Email:                name + "@example.com",
		Locale:               appLocale,
		RegistrationDateTime: testNow,
	}
	require.NoError(e.t, e.store.Users().Create(e.ctx, u))
	return Identity{UserID: u.ID, Locale: appLocale, Roles: role.Roles()}
}

func (e *env) enroll(courseID int64, caller Identity, role models.CourseRole) {
	e.t.Helper()
	require.NoError(e.t, e.store.CourseUsers().Create(e.ctx, &models.CourseUserData{
		CourseID: courseID, UserID: caller.UserID, Role: role, LastAccessDateTime: testNow,
	}))
}

// groupWithCourse creates a group owned by owner and links it to courseID.
func (e *env) groupWithCourse(owner Identity, courseID int64) int64 {
	e.t.Helper()
	groupID, err := e.groups.CreateUserGroup(e.ctx, owner, dto.CreateOrUpdateUserGroup{Name: map[string]string{appLocale: "Group"}})
	require.NoError(e.t, err)
	require.NoError(e.t, e.store.Courses().LinkGroup(e.ctx, courseID, groupID))
	return groupID
}

func (e *env) count(model any) int64 {
	e.t.Helper()
	var n int64
	require.NoError(e.t, e.db.Model(model).Count(&n).Error)
	return n
}
