package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every table this layer
// owns. Used by cmd/seed and the test suites; production schemas are
// managed out of band.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&organizationModel{},
		&userModel{},
		&assetModel{},
		&kitModel{},
		&kitItemModel{},
		&reservationModel{},
		&reservationAssetModel{},
		&documentModel{},
	)
}
