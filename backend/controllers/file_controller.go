package controllers

import (
	"bearinmind/backend/apperrors"
	"bearinmind/backend/services"
	"bearinmind/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type FileController struct {
	Files *services.FileService
}

func NewFileController(files *services.FileService) *FileController {
	return &FileController{Files: files}
}

// UploadImage godoc
// @Summary Upload an image
// @Description Stores an image of a user, group, course or lesson the caller may modify
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Param fileAssetType formData string true "USER, USER_GROUP, COURSE or COURSE_LESSON"
// @Param identifier formData string true "Asset ID"
// @Success 201 {object} utils.URLResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /file/image [post]
func (fc *FileController) UploadImage(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	assetType, ok := services.ParseFileAssetType(c.FormValue("fileAssetType"))
	if !ok {
		return invalidArgument("fileAssetType")
	}
	identifier := c.FormValue("identifier")
	if identifier == "" {
		return invalidArgument("identifier")
	}
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.Invalid("request", apperrors.REQUEST_ARGUMENT_INVALID).
			WithArguments("file").
			Wrap(err)
	}

	f, err := header.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	url, err := fc.Files.UploadImage(c.UserContext(), identity, f, header.Filename, header.Size, assetType, identifier)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(utils.URLResponse{URL: url})
}

// DeleteFile godoc
// @Summary Delete a stored file
// @Description Only callers allowed to upload for the asset may delete its files
// @Tags files
// @Param url query string true "File URL"
// @Success 204
// @Router /file [delete]
func (fc *FileController) DeleteFile(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	url := c.Query("url")
	if url == "" {
		return invalidArgument("url")
	}

	if err := fc.Files.Delete(c.UserContext(), identity, url); err != nil {
		return err
	}
	return utils.NoContent(c)
}
