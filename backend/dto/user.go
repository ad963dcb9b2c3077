package dto

import (
	"time"

	"bearinmind/backend/models"
)

type Credentials struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

type LoginResponse struct {
	UserID       int64    `json:"userId"`
	UserFullName string   `json:"userFullName"`
	UserImage    *string  `json:"userImage"`
	Authorities  []string `json:"authorities"`
}

type CreateUser struct {
	Email      string  `json:"email" validate:"required,notblank,email"`
	Password   string  `json:"password" validate:"required,notblank"`
	FirstName  string  `json:"firstName" validate:"required,notblank"`
	LastName   string  `json:"lastName" validate:"required,notblank"`
	MiddleName *string `json:"middleName"`
}

type UpdateUser struct {
	FirstName   string  `json:"firstName" validate:"required,notblank"`
	MiddleName  *string `json:"middleName"`
	LastName    string  `json:"lastName" validate:"required,notblank"`
	Title       *string `json:"title"`
	Locale      *string `json:"locale" validate:"omitempty,locale"`
	PhoneNumber *string `json:"phoneNumber"`
}

// User is a created or loaded account, password excluded.
type User struct {
	ID                   int64           `json:"id"`
	FirstName            string          `json:"firstName"`
	MiddleName           *string         `json:"middleName"`
	LastName             string          `json:"lastName"`
	Title                *string         `json:"title"`
	Email                string          `json:"email"`
	PhoneNumber          *string         `json:"phoneNumber"`
	Locale               string          `json:"locale"`
	Image                *string         `json:"image"`
	RegistrationDateTime time.Time       `json:"registrationDateTime"`
	Username             string          `json:"username"`
	Role                 models.UserRole `json:"role"`
	Active               bool            `json:"active"`
}

type UserListItem struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

type UserView struct {
	Name                 string              `json:"name"`
	Title                *string             `json:"title"`
	Image                *string             `json:"image"`
	RegistrationDateTime time.Time           `json:"registrationDateTime"`
	Courses              []UserCourse        `json:"courses"`
	Groups               []UserGroupListItem `json:"groups"`
}

type UserMainView struct {
	RegisteredGroups []UserGroupListItem `json:"registeredGroups"`
	AvailableGroups  []UserGroupListItem `json:"availableGroups"`
	HasTeachers      bool                `json:"hasTeachers"`
	HasStudents      bool                `json:"hasStudents"`
}

type CreateOrUpdateUserGroup struct {
	Name map[string]string `json:"name" validate:"required,min=1,dive,keys,locale,endkeys,required"`
}

type UserGroupListItem struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

type UserGroup struct {
	Name    string         `json:"name"`
	Image   *string        `json:"image"`
	Members []UserListItem `json:"members"`
}
