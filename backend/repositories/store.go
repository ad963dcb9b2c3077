package repositories

import (
	"context"
	"errors"
	"time"

	"bearinmind/backend/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Store groups the repositories. Repositories obtained from the store passed
// to WithinTx share its transaction.
type Store interface {
	Translations() TranslationRepository
	Courses() CourseRepository
	Lessons() LessonRepository
	CourseUsers() CourseUserRepository
	Users() UserRepository
	Groups() GroupRepository
	WithinTx(ctx context.Context, fn func(tx Store) error) error
	// AfterCommit runs fn once the outermost transaction commits and drops it
	// if that transaction rolls back. Outside a transaction fn runs immediately.
	AfterCommit(fn func())
}

type PageRequest struct {
	Number int
	Size   int
}

func (p PageRequest) Offset() int {
	return p.Number * p.Size
}

type TranslationRepository interface {
	// AllocateIdentifier reserves a new, unused translation identifier.
	AllocateIdentifier(ctx context.Context) (int, error)
	Create(ctx context.Context, t *models.Translation) error
	FindAllByIdentifier(ctx context.Context, identifier int) ([]models.Translation, error)
	FindAllByIdentifiersAndLocales(ctx context.Context, identifiers []int, locales []string) ([]models.Translation, error)
	UpdateText(ctx context.Context, id int64, text string) error
	DeleteByIDs(ctx context.Context, ids []int64) error
	DeleteAllByIdentifiers(ctx context.Context, identifiers []int) (int64, error)
	DeleteByIdentifierAndLocale(ctx context.Context, identifier int, locale string) (int64, error)
}

type CourseListKind string

const (
	CourseListConducted CourseListKind = "conducted"
	CourseListActive    CourseListKind = "active"
	CourseListAvailable CourseListKind = "available"
	CourseListCompleted CourseListKind = "completed"
)

type CourseListItem struct {
	ID             int64
	NameIdentifier int
	Image          *string
}

type UserCourse struct {
	ID             int64
	NameIdentifier int
	Image          *string
	Role           models.CourseRole
}

type CourseRepository interface {
	Create(ctx context.Context, c *models.Course) error
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	// FindWithLessons loads the course and its lessons ordered by ordinal.
	FindWithLessons(ctx context.Context, id int64) (*models.Course, error)
	Update(ctx context.Context, c *models.Course) error
	Delete(ctx context.Context, id int64) error
	FindListItemPage(ctx context.Context, kind CourseListKind, userID int64, now time.Time, page PageRequest) ([]CourseListItem, int64, error)
	// FindAllCommonCourseAndRole lists courses both users are enrolled in with
	// the role of userID.
	FindAllCommonCourseAndRole(ctx context.Context, loggedInUserID, userID int64) ([]UserCourse, error)
	LinkGroup(ctx context.Context, courseID, groupID int64) error
	DeleteGroupLinks(ctx context.Context, courseID int64) error
}

type LessonRepository interface {
	Create(ctx context.Context, l *models.CourseLesson) error
	CreatePart(ctx context.Context, p *models.CourseLessonPart) error
	FindByID(ctx context.Context, id int64) (*models.CourseLesson, error)
	// FindWithParts loads the lesson and its parts ordered by ordinal.
	FindWithParts(ctx context.Context, id int64) (*models.CourseLesson, error)
	FindAllByCourseID(ctx context.Context, courseID int64) ([]models.CourseLesson, error)
	// MaxOrdinal returns 0 for a course without lessons.
	MaxOrdinal(ctx context.Context, courseID int64) (int, error)
	Update(ctx context.Context, l *models.CourseLesson) error
	DeleteByIDs(ctx context.Context, ids []int64) error
	DeletePartsByLessonIDs(ctx context.Context, lessonIDs []int64) error
}

type UserListItem struct {
	ID        int64
	FirstName string
	LastName  string
	Image     *string
}

func (u UserListItem) Name() string {
	return models.FullName(u.FirstName, nil, u.LastName)
}

type CourseUserRepository interface {
	Create(ctx context.Context, d *models.CourseUserData) error
	FindRole(ctx context.Context, courseID, userID int64) (models.CourseRole, error)
	FindRoleByLessonID(ctx context.Context, lessonID, userID int64) (models.CourseRole, error)
	Exists(ctx context.Context, courseID, userID int64) (bool, error)
	ExistsWithRoles(ctx context.Context, courseID, userID int64, roles ...models.CourseRole) (bool, error)
	ExistsByUserAndRoles(ctx context.Context, userID int64, roles ...models.CourseRole) (bool, error)
	// BelongsToCourseGroup reports whether the user is an owner or member of a
	// group linked to the course.
	BelongsToCourseGroup(ctx context.Context, courseID, userID int64) (bool, error)
	FindTeachers(ctx context.Context, courseID int64) ([]UserListItem, error)
	TouchLastAccess(ctx context.Context, courseID, userID int64, at time.Time) error
	DeleteAllByCourseID(ctx context.Context, courseID int64) error
}

type UserRepository interface {
	CreateCredentials(ctx context.Context, c *models.UserCredentials) error
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	// FindActiveByUsername loads the user with credentials when they are active.
	FindActiveByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Update(ctx context.Context, u *models.User) error
	FindGroupMemberPage(ctx context.Context, userID int64, page PageRequest) ([]UserListItem, int64, error)
	// FindByCourseRolePage lists users holding one of searchedRoles in a course
	// where userID holds one of userRoles.
	FindByCourseRolePage(ctx context.Context, userID int64, userRoles, searchedRoles []models.CourseRole, page PageRequest) ([]UserListItem, int64, error)
}

type GroupListItem struct {
	ID             int64
	NameIdentifier int
	Image          *string
}

type GroupRepository interface {
	Create(ctx context.Context, g *models.UserGroup) error
	AddMember(ctx context.Context, m *models.UserGroupMember) error
	FindByID(ctx context.Context, id int64) (*models.UserGroup, error)
	// FindRegisteredMembers lists owners and members of the group.
	FindRegisteredMembers(ctx context.Context, groupID int64) ([]UserListItem, error)
	ExistsMembership(ctx context.Context, groupID, userID int64) (bool, error)
	HasRole(ctx context.Context, groupID, userID int64, roles ...models.UserGroupRole) (bool, error)
	FindRegisteredPage(ctx context.Context, userID int64, page PageRequest) ([]GroupListItem, int64, error)
	FindAvailablePage(ctx context.Context, userID int64, page PageRequest) ([]GroupListItem, int64, error)
	FindAllCommon(ctx context.Context, loggedInUserID, userID int64) ([]GroupListItem, error)
}
