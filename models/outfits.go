package models

import "github.com/lib/pq"

// Moodboard is seeded reference data, read-only at request time.
type Moodboard struct {
	JsonModel
	Name          string         `gorm:"uniqueIndex" json:"name"`
	ColorPalette  pq.StringArray `gorm:"type:text[]" json:"colorPalette"`
	Textures      pq.StringArray `gorm:"type:text[]" json:"textures"`
	Silhouettes   pq.StringArray `gorm:"type:text[]" json:"silhouettes"`
	TypicalPieces pq.StringArray `gorm:"type:text[]" json:"typicalPieces"`
	StylingLogic  pq.StringArray `gorm:"type:text[]" json:"stylingLogic"`
	ExampleOutfit pq.StringArray `gorm:"type:text[]" json:"exampleOutfit"`
}

// StyleVibe is seeded reference data, read-only at request time.
type StyleVibe struct {
	JsonModel
	Name            string         `gorm:"uniqueIndex" json:"name"`
	ColorTendencies pq.StringArray `gorm:"type:text[]" json:"colorTendencies"`
	Textures        pq.StringArray `gorm:"type:text[]" json:"textures"`
	Silhouettes     pq.StringArray `gorm:"type:text[]" json:"silhouettes"`
	TypicalPieces   pq.StringArray `gorm:"type:text[]" json:"typicalPieces"`
	StylingRules    pq.StringArray `gorm:"type:text[]" json:"stylingRules"`
	ExampleOutfit   pq.StringArray `gorm:"type:text[]" json:"exampleOutfit"`
}

// SavedOutfitItem is the denormalized snapshot of a closet item at save time.
type SavedOutfitItem struct {
	Id       string  `json:"id"`
	Name     string  `json:"name"`
	Preview  string  `json:"preview"`
	Category *string `json:"category,omitempty"`
}

const (
	CompositeUploadIdle     = "idle"
	CompositeUploadPending  = "pending"
	CompositeUploadUploaded = "uploaded"
	CompositeUploadFailed   = "failed"
)

type SavedOutfit struct {
	JsonModel
	Owner       UserAccount       `json:"-"`
	OwnerID     uint              `json:"-"`
	Name        string            `json:"name"`
	Mood        string            `json:"mood"`
	StyleVibe   *string           `json:"styleVibe"`
	Items       []SavedOutfitItem `gorm:"serializer:json;type:jsonb" json:"items"`
	Explanation string            `gorm:"type:text" json:"explanation"`
	StyleNotes  *string           `gorm:"type:text" json:"styleNotes"`
	// inline data URL until the worker moves it to object storage
	CompositeImage     *string `gorm:"type:text" json:"compositeImage"`
	CompositeObjectKey *string `json:"-"`
	UploadStatus       string  `gorm:"default:idle" json:"-"`
}
