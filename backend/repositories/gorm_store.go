package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bearinmind/backend/models"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
	// committed collects AfterCommit callbacks; nil outside a transaction.
	committed *[]func()
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Translations() TranslationRepository {
	return &translationRepository{db: s.db}
}

func (s *GormStore) Courses() CourseRepository {
	return &courseRepository{db: s.db}
}

func (s *GormStore) Lessons() LessonRepository {
	return &lessonRepository{db: s.db}
}

func (s *GormStore) CourseUsers() CourseUserRepository {
	return &courseUserRepository{db: s.db}
}

func (s *GormStore) Users() UserRepository {
	return &userRepository{db: s.db}
}

func (s *GormStore) Groups() GroupRepository {
	return &groupRepository{db: s.db}
}

func (s *GormStore) WithinTx(ctx context.Context, fn func(tx Store) error) error {
	if s.committed != nil {
		// Nested: the outermost transaction runs the callbacks.
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&GormStore{db: tx, committed: s.committed})
		})
	}

	var committed []func()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, committed: &committed})
	})
	if err != nil {
		return err
	}
	for _, f := range committed {
		f()
	}
	return nil
}

func (s *GormStore) AfterCommit(fn func()) {
	if s.committed == nil {
		fn()
		return
	}
	*s.committed = append(*s.committed, fn)
}

// Migrate creates or updates every table and uniqueness index.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.TranslationIdentifier{},
		&models.Translation{},
		&models.UserCredentials{},
		&models.User{},
		&models.UserGroup{},
		&models.UserGroupMember{},
		&models.Course{},
		&models.CourseLesson{},
		&models.CourseLessonPart{},
		&models.CourseUserData{},
		&models.CourseUserGroup{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

// isUniqueViolation covers drivers that do not translate constraint errors.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func exists(tx *gorm.DB) (bool, error) {
	var found int
	err := tx.Select("1").Limit(1).Scan(&found).Error
	if err != nil {
		return false, err
	}
	return found == 1, nil
}
