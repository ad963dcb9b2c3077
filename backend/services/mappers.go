package services

import (
	"bearinmind/backend/dto"
	"bearinmind/backend/models"
	"bearinmind/backend/repositories"
)

func mapCourseListItems(items []repositories.CourseListItem, texts map[int]string) []dto.CourseListItem {
	out := make([]dto.CourseListItem, 0, len(items))
	for _, it := range items {
		out = append(out, mapCourseListItem(it, texts))
	}
	return out
}

func mapCourseListItem(it repositories.CourseListItem, texts map[int]string) dto.CourseListItem {
	return dto.CourseListItem{ID: it.ID, Name: texts[it.NameIdentifier], Image: it.Image}
}

func mapCourseLessonCard(l models.CourseLesson, texts map[int]string) dto.CourseLessonCard {
	return dto.CourseLessonCard{
		ID:            l.ID,
		Ordinal:       l.Ordinal,
		Topic:         texts[l.TopicIdentifier],
		Description:   textOf(texts, l.DescriptionIdentifier),
		StartDateTime: l.StartDateTime,
	}
}

func mapCourseLessonPart(p models.CourseLessonPart, texts map[int]string) dto.CourseLessonPart {
	return dto.CourseLessonPart{
		ID:          p.ID,
		Ordinal:     p.Ordinal,
		Text:        textOf(texts, p.TextIdentifier),
		Attachments: p.Attachments,
	}
}

func mapUserListItems(items []repositories.UserListItem) []dto.UserListItem {
	out := make([]dto.UserListItem, 0, len(items))
	for _, it := range items {
		out = append(out, mapUserListItem(it))
	}
	return out
}

func mapUserListItem(it repositories.UserListItem) dto.UserListItem {
	return dto.UserListItem{ID: it.ID, Name: it.Name(), Image: it.Image}
}

func mapGroupListItems(items []repositories.GroupListItem, texts map[int]string) []dto.UserGroupListItem {
	out := make([]dto.UserGroupListItem, 0, len(items))
	for _, it := range items {
		out = append(out, dto.UserGroupListItem{ID: it.ID, Name: texts[it.NameIdentifier], Image: it.Image})
	}
	return out
}

func mapUser(u *models.User) dto.User {
	return dto.User{
		ID:                   u.ID,
		FirstName:            u.FirstName,
		MiddleName:           u.MiddleName,
		LastName:             u.LastName,
		Title:                u.Title,
		Email:                u.Email,
		PhoneNumber:          u.PhoneNumber,
		Locale:               u.Locale,
		Image:                u.Image,
		RegistrationDateTime: u.RegistrationDateTime,
		Username:             u.Credentials.Username,
		Role:                 u.Credentials.Role,
		Active:               u.Credentials.Active,
	}
}

func courseNameIdentifiers(lists ...[]repositories.CourseListItem) []int {
	var ids []int
	for _, list := range lists {
		for _, it := range list {
			ids = append(ids, it.NameIdentifier)
		}
	}
	return ids
}

func groupNameIdentifiers(lists ...[]repositories.GroupListItem) []int {
	var ids []int
	for _, list := range lists {
		for _, it := range list {
			ids = append(ids, it.NameIdentifier)
		}
	}
	return ids
}
