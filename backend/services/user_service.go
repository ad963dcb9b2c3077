package services

import (
	"context"
	"fmt"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/dto"
	"bearinmind/backend/models"
	"bearinmind/backend/repositories"
	"bearinmind/backend/utils"

	"go.uber.org/zap"
)

const userResource = "user"

type UserService struct {
	store        repositories.Store
	translations *TranslationService
	appLocale    string
	now          Clock
	logger       *zap.Logger
}

func NewUserService(store repositories.Store, translations *TranslationService, appLocale string, now Clock, logger *zap.Logger) *UserService {
	return &UserService{store: store, translations: translations, appLocale: appLocale, now: now, logger: logger}
}

// CreateUser registers a student account whose username is the email.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUser) (*dto.User, error) {
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user *models.User
	err = s.store.WithinTx(ctx, func(tx repositories.Store) error {
		taken, err := tx.Users().ExistsByUsernameOrEmail(ctx, req.Email, req.Email)
		if err != nil {
			return fmt.Errorf("check user %s: %w", req.Email, err)
		}
		if taken {
			return apperrors.Invalid(userResource, apperrors.USER_EXISTS).
				WithArguments("email").
				With("email", req.Email)
		}

		creds := models.UserCredentials{
			Username: req.Email,
			Password: hashed,
			Role:     models.UserRoleStudent,
			Active:   true,
		}
		if err := tx.Users().CreateCredentials(ctx, &creds); err != nil {
			return fmt.Errorf("create credentials: %w", err)
		}

		user = &models.User{
			CredentialsID:        creds.ID,
			Credentials:          creds,
			FirstName:            req.FirstName,
			MiddleName:           req.MiddleName,
			LastName:             req.LastName,
			Email:                req.Email,
			Locale:               s.appLocale,
			RegistrationDateTime: s.now(),
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.Int64("userId", user.ID))
	out := mapUser(user)
	return &out, nil
}

// UpdateUser changes the caller's profile.
func (s *UserService) UpdateUser(ctx context.Context, caller Identity, req dto.UpdateUser) error {
	user, err := s.store.Users().FindByID(ctx, caller.UserID)
	if err != nil {
		return notFoundOr(err, userResource, caller.UserID)
	}

	user.FirstName = req.FirstName
	user.MiddleName = req.MiddleName
	user.LastName = req.LastName
	user.Title = req.Title
	user.PhoneNumber = req.PhoneNumber
	if req.Locale != nil {
		user.Locale = *req.Locale
	}
	if err := s.store.Users().Update(ctx, user); err != nil {
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}
	return nil
}

// FindUserView shows another user together with the courses and groups the
// caller shares with them.
func (s *UserService) FindUserView(ctx context.Context, caller Identity, id int64) (*dto.UserView, error) {
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, userResource, id)
	}

	courses, err := s.store.Courses().FindAllCommonCourseAndRole(ctx, caller.UserID, id)
	if err != nil {
		return nil, fmt.Errorf("find common courses: %w", err)
	}
	groups, err := s.store.Groups().FindAllCommon(ctx, caller.UserID, id)
	if err != nil {
		return nil, fmt.Errorf("find common groups: %w", err)
	}

	identifiers := groupNameIdentifiers(groups)
	for _, c := range courses {
		identifiers = append(identifiers, c.NameIdentifier)
	}
	texts, err := s.translations.FindAllIdentifierAndTextByIdentifiersAndLocale(ctx, identifiers, caller.Locale)
	if err != nil {
		return nil, err
	}

	userCourses := make([]dto.UserCourse, 0, len(courses))
	for _, c := range courses {
		userCourses = append(userCourses, dto.UserCourse{
			ID:    c.ID,
			Name:  texts[c.NameIdentifier],
			Image: c.Image,
			Role:  c.Role,
		})
	}

	return &dto.UserView{
		Name:                 user.FullName(),
		Title:                user.Title,
		Image:                user.Image,
		RegistrationDateTime: user.RegistrationDateTime,
		Courses:              userCourses,
		Groups:               mapGroupListItems(groups, texts),
	}, nil
}

// FindUserMainView lists the first listLength registered and available
// groups and tells whether the caller has teachers or students.
func (s *UserService) FindUserMainView(ctx context.Context, caller Identity, listLength int) (*dto.UserMainView, error) {
	page := repositories.PageRequest{Number: 0, Size: listLength}
	registered, _, err := s.store.Groups().FindRegisteredPage(ctx, caller.UserID, page)
	if err != nil {
		return nil, fmt.Errorf("find registered groups: %w", err)
	}
	available, _, err := s.store.Groups().FindAvailablePage(ctx, caller.UserID, page)
	if err != nil {
		return nil, fmt.Errorf("find available groups: %w", err)
	}

	texts, err := s.translations.FindAllIdentifierAndTextByIdentifiersAndLocale(ctx, groupNameIdentifiers(registered, available), caller.Locale)
	if err != nil {
		return nil, err
	}

	view := &dto.UserMainView{
		RegisteredGroups: mapGroupListItems(registered, texts),
		AvailableGroups:  mapGroupListItems(available, texts),
	}
	// Courses are reached through groups, so a user without groups has
	// neither teachers nor students.
	if len(registered) == 0 {
		return view, nil
	}

	if view.HasTeachers, err = s.store.CourseUsers().ExistsByUserAndRoles(ctx, caller.UserID, models.CourseRoleStudent); err != nil {
		return nil, fmt.Errorf("check student role: %w", err)
	}
	if view.HasStudents, err = s.store.CourseUsers().ExistsByUserAndRoles(ctx, caller.UserID, models.TeacherCourseRoles...); err != nil {
		return nil, fmt.Errorf("check teacher role: %w", err)
	}
	return view, nil
}

func (s *UserService) FindGroupMemberPage(ctx context.Context, caller Identity, pageNumber, pageSize int) (dto.Page[dto.UserListItem], error) {
	items, total, err := s.store.Users().FindGroupMemberPage(ctx, caller.UserID, repositories.PageRequest{Number: pageNumber, Size: pageSize})
	if err != nil {
		return dto.Page[dto.UserListItem]{}, fmt.Errorf("find group members: %w", err)
	}
	return dto.NewPage(mapUserListItems(items), pageNumber, pageSize, total), nil
}

// FindStudentPage lists students of the courses the caller conducts.
func (s *UserService) FindStudentPage(ctx context.Context, caller Identity, pageNumber, pageSize int) (dto.Page[dto.UserListItem], error) {
	return s.courseRolePage(ctx, caller, models.TeacherCourseRoles, []models.CourseRole{models.CourseRoleStudent}, pageNumber, pageSize)
}

// FindTeacherPage lists teachers of the courses the caller attends.
func (s *UserService) FindTeacherPage(ctx context.Context, caller Identity, pageNumber, pageSize int) (dto.Page[dto.UserListItem], error) {
	return s.courseRolePage(ctx, caller, []models.CourseRole{models.CourseRoleStudent}, models.TeacherCourseRoles, pageNumber, pageSize)
}

func (s *UserService) courseRolePage(ctx context.Context, caller Identity, callerRoles, searchedRoles []models.CourseRole, pageNumber, pageSize int) (dto.Page[dto.UserListItem], error) {
	page := repositories.PageRequest{Number: pageNumber, Size: pageSize}
	items, total, err := s.store.Users().FindByCourseRolePage(ctx, caller.UserID, callerRoles, searchedRoles, page)
	if err != nil {
		return dto.Page[dto.UserListItem]{}, fmt.Errorf("find users by course role: %w", err)
	}
	return dto.NewPage(mapUserListItems(items), pageNumber, pageSize, total), nil
}
