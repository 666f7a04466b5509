package model

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `gorm:"not null" json:"name"`
	CreatedAt    int64  `gorm:"not null" json:"created_at"`

	Reports []Report       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Vitals  []Vital        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Grants  []SharedAccess `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}
