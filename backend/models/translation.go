package models

import "time"

// Translation is one locale's text for a translation identifier.
type Translation struct {
	ID         int64  `gorm:"primaryKey"`
	Identifier int    `gorm:"not null;uniqueIndex:ux_translation_identifier_locale,priority:1"`
	Locale     string `gorm:"size:5;not null;uniqueIndex:ux_translation_identifier_locale,priority:2"`
	Text       string `gorm:"type:text;not null"`
}

// TranslationIdentifier allocates identifiers. Each inserted row's ID
// becomes the identifier of a new translation group.
type TranslationIdentifier struct {
	ID        int `gorm:"primaryKey"`
	CreatedAt time.Time
}
