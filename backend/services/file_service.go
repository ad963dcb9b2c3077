package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/filestorage"
	"bearinmind/backend/models"
	"bearinmind/backend/repositories"

	"go.uber.org/zap"
)

const fileResource = "file"

type FileAssetType string

const (
	FileAssetUser         FileAssetType = "USER"
	FileAssetUserGroup    FileAssetType = "USER_GROUP"
	FileAssetCourse       FileAssetType = "COURSE"
	FileAssetCourseLesson FileAssetType = "COURSE_LESSON"
)

const (
	smallImageLimit  int64 = 512 * 1024
	mediumImageLimit int64 = 2 * 1024 * 1024
)

var imageSizeLimits = map[FileAssetType]int64{
	FileAssetUser:         smallImageLimit,
	FileAssetUserGroup:    mediumImageLimit,
	FileAssetCourse:       mediumImageLimit,
	FileAssetCourseLesson: mediumImageLimit,
}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}

// ParseFileAssetType accepts the upper case asset type names.
func ParseFileAssetType(s string) (FileAssetType, bool) {
	t := FileAssetType(s)
	_, ok := imageSizeLimits[t]
	return t, ok
}

type FileService struct {
	store  repositories.Store
	client filestorage.Client
	logger *zap.Logger
}

func NewFileService(store repositories.Store, client filestorage.Client, logger *zap.Logger) *FileService {
	return &FileService{store: store, client: client, logger: logger}
}

// UploadImage stores an image of an asset the caller may modify and returns
// its URL.
func (s *FileService) UploadImage(ctx context.Context, caller Identity, r io.Reader, filename string, size int64, assetType FileAssetType, identifier string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(imageExtensions, ext) {
		return "", apperrors.Invalid(fileResource, apperrors.REQUEST_ARGUMENT_INVALID).
			WithArguments("imageExtension").
			With("extension", ext)
	}
	limit, ok := imageSizeLimits[assetType]
	if !ok {
		return "", apperrors.Invalid(fileResource, apperrors.REQUEST_ARGUMENT_INVALID).
			WithArguments("fileAssetType")
	}
	if size > limit {
		return "", apperrors.Invalid(fileResource, apperrors.FILE_SIZE_LIMIT_EXCEEDED).
			WithArguments("file", "fileAssetType", "identifier").
			With("size", size).
			With("limit", limit)
	}
	if err := s.validateWritePermission(ctx, caller.UserID, assetType, identifier); err != nil {
		return "", err
	}

	url, err := s.client.Upload(ctx, io.LimitReader(r, limit), filename, string(assetType), identifier)
	if err != nil {
		return "", fmt.Errorf("upload %s image %s: %w", assetType, identifier, err)
	}
	s.logger.Info("image uploaded",
		zap.String("assetType", string(assetType)),
		zap.String("identifier", identifier),
		zap.Int64("userId", caller.UserID))
	return url, nil
}

// Delete removes a stored file of an asset the caller may modify.
func (s *FileService) Delete(ctx context.Context, caller Identity, url string) error {
	rawType, identifier, err := s.client.Asset(url)
	if errors.Is(err, filestorage.ErrInvalidURL) {
		return invalidFileURL(err)
	}
	if err != nil {
		return err
	}
	assetType, ok := ParseFileAssetType(rawType)
	if !ok {
		return invalidFileURL(filestorage.ErrInvalidURL)
	}
	if err := s.validateWritePermission(ctx, caller.UserID, assetType, identifier); err != nil {
		return err
	}

	err = s.client.Delete(ctx, url)
	if errors.Is(err, filestorage.ErrInvalidURL) {
		return invalidFileURL(err)
	}
	if err != nil {
		return err
	}
	s.logger.Info("file deleted", zap.String("url", url), zap.Int64("userId", caller.UserID))
	return nil
}

func invalidFileURL(err error) error {
	return apperrors.Invalid(fileResource, apperrors.REQUEST_ARGUMENT_INVALID).
		WithArguments("url").
		Wrap(err)
}

func (s *FileService) validateWritePermission(ctx context.Context, userID int64, assetType FileAssetType, identifier string) error {
	id, err := strconv.ParseInt(identifier, 10, 64)
	if err != nil {
		return apperrors.Invalid(fileResource, apperrors.REQUEST_ARGUMENT_INVALID).
			WithArguments("identifier").
			Wrap(err)
	}

	var allowed bool
	switch assetType {
	case FileAssetUser:
		allowed = id == userID
	case FileAssetUserGroup:
		allowed, err = s.store.Groups().HasRole(ctx, id, userID, models.UserGroupRoleOwner)
	case FileAssetCourse:
		allowed, err = s.store.CourseUsers().ExistsWithRoles(ctx, id, userID, models.CourseRoleOwner)
	case FileAssetCourseLesson:
		var role models.CourseRole
		role, err = s.store.CourseUsers().FindRoleByLessonID(ctx, id, userID)
		if errors.Is(err, repositories.ErrNotFound) {
			err = nil
		}
		allowed = role == models.CourseRoleOwner
	}
	if err != nil {
		return fmt.Errorf("check write permission to %s %d: %w", assetType, id, err)
	}
	if !allowed {
		return apperrors.Forbidden(fileResource, apperrors.FORBIDDEN).
			With("userId", userID).
			With("fileAssetType", assetType).
			With("identifier", identifier)
	}
	return nil
}
