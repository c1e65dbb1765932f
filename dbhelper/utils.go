package dbhelper

import (
	"log"

	"fitmuseapi/models"

	"gorm.io/gorm"
)

// SetupCleaner wipes user-owned rows between tests. Seeded reference data
// stays, SetupDB upserts it anyway.
func SetupCleaner(db *gorm.DB) func() {

	return func() {

		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.SavedOutfit{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.UserAccount{})

	}
}

func Migrate(db *gorm.DB, model interface{}) {
	err := db.AutoMigrate(model)
	if err != nil {
		log.Printf("Error while migrating %s", model)
		log.Fatal(err)
	}
}
