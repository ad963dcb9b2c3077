package repositories

import (
	"context"

	"bearinmind/backend/models"

	"gorm.io/gorm"
)

type translationRepository struct {
	db *gorm.DB
}

func (r *translationRepository) AllocateIdentifier(ctx context.Context) (int, error) {
	ident := models.TranslationIdentifier{}
	if err := r.db.WithContext(ctx).Create(&ident).Error; err != nil {
		return 0, translateError(err)
	}
	return ident.ID, nil
}

func (r *translationRepository) Create(ctx context.Context, t *models.Translation) error {
	return translateError(r.db.WithContext(ctx).Create(t).Error)
}

func (r *translationRepository) FindAllByIdentifier(ctx context.Context, identifier int) ([]models.Translation, error) {
	var rows []models.Translation
	err := r.db.WithContext(ctx).
		Where("identifier = ?", identifier).
		Order("locale").
		Find(&rows).Error
	return rows, translateError(err)
}

func (r *translationRepository) FindAllByIdentifiersAndLocales(ctx context.Context, identifiers []int, locales []string) ([]models.Translation, error) {
	var rows []models.Translation
	err := r.db.WithContext(ctx).
		Where("identifier IN ? AND locale IN ?", identifiers, locales).
		Find(&rows).Error
	return rows, translateError(err)
}

func (r *translationRepository) UpdateText(ctx context.Context, id int64, text string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Translation{}).
		Where("id = ?", id).
		Update("text", text).Error
	return translateError(err)
}

func (r *translationRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Delete(&models.Translation{}, ids).Error)
}

func (r *translationRepository) DeleteAllByIdentifiers(ctx context.Context, identifiers []int) (int64, error) {
	if len(identifiers) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("identifier IN ?", identifiers).Delete(&models.Translation{})
	return res.RowsAffected, translateError(res.Error)
}

func (r *translationRepository) DeleteByIdentifierAndLocale(ctx context.Context, identifier int, locale string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("identifier = ? AND locale = ?", identifier, locale).
		Delete(&models.Translation{})
	return res.RowsAffected, translateError(res.Error)
}
