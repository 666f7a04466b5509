// Package model defines database models
package model

type Report struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"index;not null" json:"user_id"`
	Type   string `gorm:"not null" json:"type"`
	Title  string `gorm:"not null" json:"title"`

	// Since different users can upload files with the same name the
	// bytes are stored under a generated opaque key
	FileKey string `gorm:"not null" json:"-"`

	// Original file name before turning it into a storage key. Only
	// used as the suggested name on downloads
	OriginalName string `json:"original_filename"`
	Format       string `json:"format"`
	Size         int64  `json:"size"`

	// Date of the medical event itself, not the upload time
	Date      string `gorm:"not null;index" json:"date"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt int64  `gorm:"not null" json:"created_at"`

	Grants []SharedAccess `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
	Vitals []Vital        `gorm:"foreignKey:ReportID;constraint:OnDelete:SET NULL" json:"-"`
}
