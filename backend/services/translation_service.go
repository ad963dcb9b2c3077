package services

import (
	"context"
	"errors"
	"fmt"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/cache"
	"bearinmind/backend/models"
	"bearinmind/backend/repositories"

	"go.uber.org/zap"
)

// TranslationService stores content as translation identifiers, each grouping
// one text per locale. Text in the application locale must exist before any
// other locale is accepted.
type TranslationService struct {
	store     repositories.Store
	cache     cache.TranslationCache
	appLocale string
	logger    *zap.Logger
}

func NewTranslationService(store repositories.Store, c cache.TranslationCache, appLocale string, logger *zap.Logger) *TranslationService {
	if c == nil {
		c = cache.Noop{}
	}
	return &TranslationService{store: store, cache: c, appLocale: appLocale, logger: logger}
}

// In returns a copy of the service bound to tx.
func (s *TranslationService) In(tx repositories.Store) *TranslationService {
	cp := *s
	cp.store = tx
	return &cp
}

func (s *TranslationService) ApplicationLocale() string {
	return s.appLocale
}

// CreateMultilingualTranslation stores one text in several locales and returns
// its identifier. An empty, non-required map yields nil.
func (s *TranslationService) CreateMultilingualTranslation(ctx context.Context, localeText map[string]string, required bool) (*int, error) {
	if !required && len(localeText) == 0 {
		return nil, nil
	}
	if err := validateTranslationsInLocaleExist(localeText, s.appLocale); err != nil {
		return nil, err
	}

	repo := s.store.Translations()
	identifier, err := repo.AllocateIdentifier(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate translation identifier: %w", err)
	}

	if err := s.create(ctx, identifier, s.appLocale, localeText[s.appLocale]); err != nil {
		return nil, err
	}
	for _, locale := range sortedKeys(localeText) {
		if locale == s.appLocale {
			continue
		}
		if err := s.create(ctx, identifier, locale, localeText[locale]); err != nil {
			return nil, err
		}
	}
	return &identifier, nil
}

// CreateMultilingualTranslations stores one translation per field present in
// the application locale and returns field -> identifier.
func (s *TranslationService) CreateMultilingualTranslations(ctx context.Context, localeFieldTexts map[string]map[string]string, required, optional []string) (map[string]int, error) {
	if len(localeFieldTexts) == 0 && len(required) == 0 {
		return map[string]int{}, nil
	}
	if err := validateTranslationsInLocaleExist(localeFieldTexts, s.appLocale); err != nil {
		return nil, err
	}

	appFieldTexts := localeFieldTexts[s.appLocale]
	otherLocales := make(map[string]map[string]string, len(localeFieldTexts)-1)
	for locale, fieldTexts := range localeFieldTexts {
		if locale != s.appLocale {
			otherLocales[locale] = fieldTexts
		}
	}

	if err := validateTranslationsHaveRequiredFields(appFieldTexts, required); err != nil {
		return nil, err
	}
	if err := validateTranslationsContainOnlyExpectedFields(appFieldTexts, required, optional); err != nil {
		return nil, err
	}
	if err := validateFieldsDefinedInApplicationLocale(otherLocales, appFieldTexts); err != nil {
		return nil, err
	}

	fieldIdentifiers := make(map[string]int, len(appFieldTexts))
	for _, field := range sortedKeys(appFieldTexts) {
		identifier, err := s.CreateMultilingualTranslation(ctx, fieldLocaleTexts(localeFieldTexts, field), true)
		if err != nil {
			return nil, err
		}
		fieldIdentifiers[field] = *identifier
	}
	return fieldIdentifiers, nil
}

// AppendTranslation adds a locale to an existing identifier.
func (s *TranslationService) AppendTranslation(ctx context.Context, identifier int, locale, text string) error {
	rows, err := s.store.Translations().FindAllByIdentifier(ctx, identifier)
	if err != nil {
		return fmt.Errorf("find translations %d: %w", identifier, err)
	}
	if len(rows) == 0 {
		return apperrors.NotFound(translationResource).With("identifier", identifier)
	}
	if err := s.create(ctx, identifier, locale, text); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return apperrors.Invalid(translationResource, apperrors.REQUEST_ARGUMENT_INVALID).
				WithArguments("locale").
				With("identifier", identifier).
				With("locale", locale)
		}
		return err
	}
	s.invalidate(ctx, identifier)
	return nil
}

// UpdateTranslation replaces the text of one locale.
func (s *TranslationService) UpdateTranslation(ctx context.Context, identifier int, locale, text string) error {
	rows, err := s.store.Translations().FindAllByIdentifiersAndLocales(ctx, []int{identifier}, []string{locale})
	if err != nil {
		return fmt.Errorf("find translation %d/%s: %w", identifier, locale, err)
	}
	if len(rows) == 0 {
		return apperrors.NotFound(translationResource).With("identifier", identifier).With("locale", locale)
	}
	if err := s.store.Translations().UpdateText(ctx, rows[0].ID, text); err != nil {
		return fmt.Errorf("update translation %d/%s: %w", identifier, locale, err)
	}
	s.invalidate(ctx, identifier)
	return nil
}

// UpdateMultilingualTranslation makes the stored locales of identifier match
// localeText exactly.
func (s *TranslationService) UpdateMultilingualTranslation(ctx context.Context, identifier int, localeText map[string]string) error {
	if err := validateTranslationsInLocaleExist(localeText, s.appLocale); err != nil {
		return err
	}

	repo := s.store.Translations()
	rows, err := repo.FindAllByIdentifier(ctx, identifier)
	if err != nil {
		return fmt.Errorf("find translations %d: %w", identifier, err)
	}
	if len(rows) == 0 {
		return apperrors.NotFound(translationResource).With("identifier", identifier)
	}

	toCreate := make(map[string]string, len(localeText))
	for locale, text := range localeText {
		toCreate[locale] = text
	}

	var toDelete []int64
	for _, row := range rows {
		text, keep := toCreate[row.Locale]
		if !keep {
			toDelete = append(toDelete, row.ID)
			continue
		}
		delete(toCreate, row.Locale)
		if row.Text != text {
			if err := repo.UpdateText(ctx, row.ID, text); err != nil {
				return fmt.Errorf("update translation %d/%s: %w", identifier, row.Locale, err)
			}
		}
	}

	if err := repo.DeleteByIDs(ctx, toDelete); err != nil {
		return fmt.Errorf("delete translations of %d: %w", identifier, err)
	}
	for _, locale := range sortedKeys(toCreate) {
		if err := s.create(ctx, identifier, locale, toCreate[locale]); err != nil {
			return err
		}
	}

	s.invalidate(ctx, identifier)
	return nil
}

// UpdateMultilingualTranslations updates each field's translation, creating
// one for fields that have no identifier yet. It returns the field
// identifiers after the update.
func (s *TranslationService) UpdateMultilingualTranslations(ctx context.Context, fieldIdentifiers map[string]*int, localeFieldTexts map[string]map[string]string) (map[string]*int, error) {
	result := make(map[string]*int, len(fieldIdentifiers))
	for field, identifier := range fieldIdentifiers {
		result[field] = identifier
	}

	for _, field := range sortedKeys(fieldIdentifiers) {
		localeText := fieldLocaleTexts(localeFieldTexts, field)
		identifier := fieldIdentifiers[field]
		if identifier == nil {
			created, err := s.CreateMultilingualTranslation(ctx, localeText, false)
			if err != nil {
				return nil, err
			}
			if created != nil {
				result[field] = created
			}
			continue
		}
		if err := s.UpdateMultilingualTranslation(ctx, *identifier, localeText); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// FindAllIdentifierAndTextByIdentifiersAndLocale resolves identifiers to text
// in locale, falling back to the application locale.
func (s *TranslationService) FindAllIdentifierAndTextByIdentifiersAndLocale(ctx context.Context, identifiers []int, locale string) (map[int]string, error) {
	identifiers = uniqueIdentifiers(identifiers)
	if len(identifiers) == 0 {
		return map[int]string{}, nil
	}

	texts, err := s.cache.GetTexts(ctx, identifiers, locale)
	if err != nil {
		s.logger.Warn("translation cache read failed", zap.Error(err))
		texts = map[int]string{}
	}

	var missing []int
	for _, id := range identifiers {
		if _, ok := texts[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return texts, nil
	}

	rows, err := s.store.Translations().FindAllByIdentifiersAndLocales(ctx, missing, []string{locale, s.appLocale})
	if err != nil {
		return nil, fmt.Errorf("find translations: %w", err)
	}
	resolved := resolveTexts(rows, locale)
	for id, text := range resolved {
		texts[id] = text
	}

	if err := s.cache.SetTexts(ctx, locale, resolved); err != nil {
		s.logger.Warn("translation cache write failed", zap.Error(err))
	}
	return texts, nil
}

// FindTextByIdentifierAndLocale resolves a single identifier.
func (s *TranslationService) FindTextByIdentifierAndLocale(ctx context.Context, identifier int, locale string) (string, error) {
	texts, err := s.FindAllIdentifierAndTextByIdentifiersAndLocale(ctx, []int{identifier}, locale)
	if err != nil {
		return "", err
	}
	text, ok := texts[identifier]
	if !ok {
		return "", apperrors.NotFound(translationResource).
			With("identifier", identifier).
			With("locale", locale)
	}
	return text, nil
}

// DeleteAllTranslationBy removes every locale of the identifiers.
func (s *TranslationService) DeleteAllTranslationBy(ctx context.Context, identifiers ...int) error {
	identifiers = uniqueIdentifiers(identifiers)
	if _, err := s.store.Translations().DeleteAllByIdentifiers(ctx, identifiers); err != nil {
		return fmt.Errorf("delete translations: %w", err)
	}
	s.invalidate(ctx, identifiers...)
	return nil
}

// DeleteTranslationByIdentifierAndLocale removes one locale. The application
// locale cannot be removed.
func (s *TranslationService) DeleteTranslationByIdentifierAndLocale(ctx context.Context, identifier int, locale string) error {
	if locale == s.appLocale {
		return apperrors.Invalid(translationResource, apperrors.REQUEST_ARGUMENT_INVALID).
			WithArguments("locale").
			With("identifier", identifier).
			With("locale", locale)
	}
	if _, err := s.store.Translations().DeleteByIdentifierAndLocale(ctx, identifier, locale); err != nil {
		return fmt.Errorf("delete translation %d/%s: %w", identifier, locale, err)
	}
	s.invalidate(ctx, identifier)
	return nil
}

func (s *TranslationService) create(ctx context.Context, identifier int, locale, text string) error {
	err := s.store.Translations().Create(ctx, &models.Translation{
		Identifier: identifier,
		Locale:     locale,
		Text:       text,
	})
	if err != nil {
		return fmt.Errorf("create translation %d/%s: %w", identifier, locale, err)
	}
	return nil
}

// invalidate drops cached texts once the current transaction commits, so a
// concurrent read cannot repopulate the cache with the pre-update text.
func (s *TranslationService) invalidate(ctx context.Context, identifiers ...int) {
	identifiers = append([]int(nil), identifiers...)
	ctx = context.WithoutCancel(ctx)
	s.store.AfterCommit(func() {
		if err := s.cache.Invalidate(ctx, identifiers...); err != nil {
			s.logger.Warn("translation cache invalidation failed",
				zap.Ints("identifiers", identifiers),
				zap.Error(err))
		}
	})
}

// fieldLocaleTexts picks one field out of locale -> field -> text.
func fieldLocaleTexts(localeFieldTexts map[string]map[string]string, field string) map[string]string {
	out := make(map[string]string)
	for locale, fieldTexts := range localeFieldTexts {
		if text, ok := fieldTexts[field]; ok {
			out[locale] = text
		}
	}
	return out
}

func resolveTexts(rows []models.Translation, locale string) map[int]string {
	texts := make(map[int]string, len(rows))
	for _, row := range rows {
		if _, seen := texts[row.Identifier]; seen && row.Locale != locale {
			continue
		}
		texts[row.Identifier] = row.Text
	}
	return texts
}

func uniqueIdentifiers(identifiers []int) []int {
	seen := make(map[int]struct{}, len(identifiers))
	out := identifiers[:0:0]
	for _, id := range identifiers {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
