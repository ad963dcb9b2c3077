package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/dto"
	"bearinmind/backend/filestorage"
	"bearinmind/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFileService(t *testing.T, e *env) (*FileService, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileService(e.store, filestorage.NewLocalClient(dir, "/files"), zap.NewNop()), dir
}

func TestUploadImage_Permissions(t *testing.T) {
	e := newEnv(t)
	files, _ := newFileService(t, e)
	owner := e.user("owner", models.UserRoleTeacher)
	teacher := e.user("teacher", models.UserRoleTeacher)
	courseID := e.createCourse(owner, courseRequest("Go"))
	e.enroll(courseID, teacher, models.CourseRoleTeacher)
	lessonID, err := e.lessons.CreateLesson(e.ctx, owner, courseID, lessonRequest("One"))
	require.NoError(t, err)
	groupID, err := e.groups.CreateUserGroup(e.ctx, owner, dto.CreateOrUpdateUserGroup{Name: map[string]string{"en": "G"}})
	require.NoError(t, err)

	id := func(n int64) string { return strconv.FormatInt(n, 10) }
	tests := []struct {
		name       string
		caller     Identity
		assetType  FileAssetType
		identifier string
		allowed    bool
	}{
		{"own avatar", teacher, FileAssetUser, id(teacher.UserID), true},
		{"someone else's avatar", teacher, FileAssetUser, id(owner.UserID), false},
		{"group owner", owner, FileAssetUserGroup, id(groupID), true},
		{"not group owner", teacher, FileAssetUserGroup, id(groupID), false},
		{"course owner", owner, FileAssetCourse, id(courseID), true},
		{"course teacher", teacher, FileAssetCourse, id(courseID), false},
		{"lesson of owned course", owner, FileAssetCourseLesson, id(lessonID), true},
		{"lesson of taught course", teacher, FileAssetCourseLesson, id(lessonID), false},
		{"missing lesson", owner, FileAssetCourseLesson, "999", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := files.UploadImage(e.ctx, tt.caller, strings.NewReader("img"), "a.png", 3, tt.assetType, tt.identifier)
			if tt.allowed {
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(url, "/files/"+strings.ToLower(string(tt.assetType))+"/"+tt.identifier+"/"), url)
				return
			}
			assert.True(t, apperrors.IsForbidden(err), "%v", err)
		})
	}
}

func TestUploadImage_Validation(t *testing.T) {
	e := newEnv(t)
	files, dir := newFileService(t, e)
	caller := e.user("ada", models.UserRoleStudent)
	self := strconv.FormatInt(caller.UserID, 10)

	_, err := files.UploadImage(e.ctx, caller, strings.NewReader("x"), "notes.txt", 1, FileAssetUser, self)
	assert.True(t, apperrors.HasCode(err, apperrors.REQUEST_ARGUMENT_INVALID))

	big := bytes.Repeat([]byte{0}, int(smallImageLimit)+1)
	_, err = files.UploadImage(e.ctx, caller, bytes.NewReader(big), "big.png", int64(len(big)), FileAssetUser, self)
	assert.True(t, apperrors.HasCode(err, apperrors.FILE_SIZE_LIMIT_EXCEEDED))

	_, err = files.UploadImage(e.ctx, caller, strings.NewReader("x"), "a.png", 1, FileAssetUser, "me")
	assert.True(t, apperrors.HasCode(err, apperrors.REQUEST_ARGUMENT_INVALID))

	url, err := files.UploadImage(e.ctx, caller, strings.NewReader("x"), "Photo.JPG", 1, FileAssetUser, self)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	rel := strings.TrimPrefix(url, "/files/")
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)

	stranger := e.user("stranger", models.UserRoleStudent)
	assert.True(t, apperrors.IsForbidden(files.Delete(e.ctx, stranger, url)))

	require.NoError(t, files.Delete(e.ctx, caller, url))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	assert.True(t, apperrors.HasCode(files.Delete(e.ctx, caller, "http://elsewhere/x.png"), apperrors.REQUEST_ARGUMENT_INVALID))
	assert.True(t, apperrors.HasCode(files.Delete(e.ctx, caller, "/files/other/1/x.png"), apperrors.REQUEST_ARGUMENT_INVALID))
}

func TestParseFileAssetType(t *testing.T) {
	assetType, ok := ParseFileAssetType("COURSE_LESSON")
	assert.True(t, ok)
	assert.Equal(t, FileAssetCourseLesson, assetType)

	_, ok = ParseFileAssetType("course")
	assert.False(t, ok)
}
