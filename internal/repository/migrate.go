package repository

import "gorm.io/gorm"

// Migrate creates or updates every table the repositories read and
// write. Row models live in this package, so migration does too. Extras
// lets callers migrate models owned elsewhere (the uploads table) in the
// same pass.
func Migrate(db *gorm.DB, extras ...any) error {
	models := []any{
		&userModel{},
		&clientProfileModel{},
		&providerProfileModel{},
		&portfolioPhotoModel{},
		&serviceRequestModel{},
		&chatMessageModel{},
		&reviewModel{},
	}
	models = append(models, extras...)
	return db.AutoMigrate(models...)
}
