package apperrors

//nolint:revive // codes are part of the public HTTP contract and keep their wire spelling
const (
	NOT_FOUND = "NOT_FOUND"

	// BAD REQUEST
	REQUEST_ARGUMENT_INVALID = "REQUEST_ARGUMENT_INVALID"
	CANNOT_ENROLL            = "CANNOT_ENROLL"
	CANNOT_JOIN_GROUP        = "CANNOT_JOIN_GROUP"
	FILE_SIZE_LIMIT_EXCEEDED = "FILE_SIZE_LIMIT_EXCEEDED"
	USER_EXISTS              = "USER_EXISTS"

	INVALID_COURSE_START_DATE_TIME_IS_AFTER_END_DATE_TIME                  = "INVALID_COURSE_START_DATE_TIME_IS_AFTER_END_DATE_TIME"
	INVALID_COURSE_REGISTRATION_CLOSING_DATE_TIME_IS_AFTER_END_DATE_TIME   = "INVALID_COURSE_REGISTRATION_CLOSING_DATE_TIME_IS_AFTER_END_DATE_TIME"
	INVALID_COURSE_END_DATE_TIME_IS_BEFORE_NOW_TIME                        = "INVALID_COURSE_END_DATE_TIME_IS_BEFORE_NOW_TIME"
	INVALID_COURSE_REGISTRATION_CLOSING_DATE_TIME_IS_BEFORE_NOW_TIME       = "INVALID_COURSE_REGISTRATION_CLOSING_DATE_TIME_IS_BEFORE_NOW_TIME"
	INVALID_COURSE_START_DATE_TIME_IS_AFTER_REGISTRATION_CLOSING_DATE_TIME = "INVALID_COURSE_START_DATE_TIME_IS_AFTER_REGISTRATION_CLOSING_DATE_TIME"
	INVALID_COURSE_LESSON_START_DATE_TIME_OR_END_DATE_TIME                 = "INVALID_COURSE_LESSON_START_DATE_TIME_OR_END_DATE_TIME"
	INVALID_COURSE_LESSON_PART_ATTACHMENT_OR_TRANSLATIONS                  = "INVALID_COURSE_LESSON_PART_ATTACHMENT_OR_TRANSLATIONS"

	NO_APPLICATION_LOCALE_TRANSLATION                            = "NO_APPLICATION_LOCALE_TRANSLATION"
	NO_REQUIRED_FIELD_IN_APPLICATION_LOCALE                      = "NO_REQUIRED_FIELD_IN_APPLICATION_LOCALE"
	INVALID_TRANSLATION_FIELD                                    = "INVALID_TRANSLATION_FIELD"
	OPTIONAL_FIELD_DEFINED_BUT_NOT_PRESENT_IN_APPLICATION_LOCALE = "OPTIONAL_FIELD_DEFINED_BUT_NOT_PRESENT_IN_APPLICATION_LOCALE"

	// AUTHORIZATION
	INCORRECT_CREDENTIALS = "INCORRECT_CREDENTIALS"

	// FORBIDDEN
	FORBIDDEN           = "FORBIDDEN"
	NO_ACCESS_TO_LESSON = "NO_ACCESS_TO_LESSON"
)
