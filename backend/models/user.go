package models

import (
	"sort"
	"strings"
	"time"
)

type UserRole string

const (
	UserRoleAdministrator UserRole = "ADMINISTRATOR"
	UserRoleTeacher       UserRole = "TEACHER"
	UserRoleStudent       UserRole = "STUDENT"
)

const rolePrefix = "ROLE_"

var roleGroups = map[UserRole][]UserRole{
	UserRoleAdministrator: {UserRoleAdministrator, UserRoleTeacher, UserRoleStudent},
	UserRoleTeacher:       {UserRoleTeacher, UserRoleStudent},
	UserRoleStudent:       {UserRoleStudent},
}

// Roles returns the role together with every role it implies.
func (r UserRole) Roles() []UserRole {
	if roles, ok := roleGroups[r]; ok {
		return roles
	}
	return []UserRole{r}
}

// AuthorityNames returns the sorted ROLE_ authorities granted by the role.
func (r UserRole) AuthorityNames() []string {
	roles := r.Roles()
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, rolePrefix+string(role))
	}
	sort.Strings(names)
	return names
}

// UserRoleFromAuthority parses a ROLE_ authority.
func UserRoleFromAuthority(authority string) (UserRole, bool) {
	name, ok := strings.CutPrefix(authority, rolePrefix)
	if !ok {
		return "", false
	}
	role := UserRole(name)
	if _, known := roleGroups[role]; !known {
		return "", false
	}
	return role, true
}

type User struct {
	ID                   int64           `gorm:"primaryKey"`
	CredentialsID        int64           `gorm:"not null;uniqueIndex"`
	Credentials          UserCredentials `gorm:"foreignKey:CredentialsID"`
	FirstName            string          `gorm:"not null"`
	MiddleName           *string
	LastName             string `gorm:"not null"`
	Title                *string
	Email                string `gorm:"not null;uniqueIndex"`
	PhoneNumber          *string
	Locale               string `gorm:"size:5;not null"`
	Image                *string
	RegistrationDateTime time.Time `gorm:"not null"`
}

// FullName joins first, middle and last name.
func (u *User) FullName() string {
	return FullName(u.FirstName, u.MiddleName, u.LastName)
}

func FullName(first string, middle *string, last string) string {
	parts := []string{first}
	if middle != nil && *middle != "" {
		parts = append(parts, *middle)
	}
	parts = append(parts, last)
	return strings.Join(parts, " ")
}

type UserCredentials struct {
	ID       int64    `gorm:"primaryKey"`
	Username string   `gorm:"not null;uniqueIndex"`
	Password string   `gorm:"not null"`
	Role     UserRole `gorm:"size:16;not null"`
	Active   bool     `gorm:"not null"`
}

type UserGroupRole string

const (
	UserGroupRoleOwner     UserGroupRole = "OWNER"
	UserGroupRoleMember    UserGroupRole = "MEMBER"
	UserGroupRoleInvited   UserGroupRole = "INVITED"
	UserGroupRoleApplicant UserGroupRole = "APPLICANT"
)

// RegisteredGroupRoles are the roles that make a user part of a group.
var RegisteredGroupRoles = []UserGroupRole{UserGroupRoleOwner, UserGroupRoleMember}

type UserGroup struct {
	ID               int64 `gorm:"primaryKey"`
	NameIdentifier   int   `gorm:"not null"`
	Image            *string
	CreationDateTime time.Time `gorm:"not null"`

	Members []UserGroupMember `gorm:"foreignKey:GroupID"`
}

type UserGroupMember struct {
	ID                   int64         `gorm:"primaryKey"`
	GroupID              int64         `gorm:"not null;uniqueIndex:ux_group_member,priority:1"`
	UserID               int64         `gorm:"not null;uniqueIndex:ux_group_member,priority:2;index"`
	Role                 UserGroupRole `gorm:"size:16;not null"`
	RegistrationDateTime time.Time     `gorm:"not null"`
}
