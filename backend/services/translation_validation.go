package services

import (
	"slices"

	"bearinmind/backend/apperrors"
)

const translationResource = "translation"

func validateTranslationsInLocaleExist[V any](localeTexts map[string]V, locale string) error {
	if _, ok := localeTexts[locale]; !ok {
		return apperrors.Invalid(translationResource, apperrors.NO_APPLICATION_LOCALE_TRANSLATION).
			WithArguments(locale)
	}
	return nil
}

func validateTranslationsHaveRequiredFields(fieldTexts map[string]string, required []string) error {
	for _, field := range required {
		if _, ok := fieldTexts[field]; !ok {
			return apperrors.Invalid(translationResource, apperrors.NO_REQUIRED_FIELD_IN_APPLICATION_LOCALE).
				WithArguments(field)
		}
	}
	return nil
}

func validateTranslationsContainOnlyExpectedFields(fieldTexts map[string]string, required, optional []string) error {
	for _, field := range sortedKeys(fieldTexts) {
		if !slices.Contains(required, field) && !slices.Contains(optional, field) {
			return apperrors.Invalid(translationResource, apperrors.INVALID_TRANSLATION_FIELD).
				WithArguments(field)
		}
	}
	return nil
}

// validateFieldsDefinedInApplicationLocale rejects a field that some other
// locale defines while the application locale does not.
func validateFieldsDefinedInApplicationLocale(otherLocales map[string]map[string]string, appFieldTexts map[string]string) error {
	for _, locale := range sortedKeys(otherLocales) {
		for _, field := range sortedKeys(otherLocales[locale]) {
			if _, ok := appFieldTexts[field]; !ok {
				return apperrors.Invalid(translationResource, apperrors.OPTIONAL_FIELD_DEFINED_BUT_NOT_PRESENT_IN_APPLICATION_LOCALE).
					WithArguments(locale, field)
			}
		}
	}
	return nil
}
