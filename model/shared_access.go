package model

const (
	AccessRead  = "read"
	AccessWrite = "write"
)

// SharedAccess delegates visibility of one report to one recipient
// email. The recipient doesn't have to be a registered user yet. The
// composite unique index is the authoritative guard against duplicate
// grants, the handler pre-check only exists for a nicer error message.
type SharedAccess struct {
	ID              string `gorm:"primaryKey" json:"id"`
	ReportID        string `gorm:"not null;uniqueIndex:idx_report_recipient" json:"report_id"`
	OwnerID         string `gorm:"index;not null" json:"owner_id"`
	SharedWithEmail string `gorm:"not null;uniqueIndex:idx_report_recipient" json:"shared_with_email"`
	AccessType      string `gorm:"not null;default:read" json:"access_type"`
	CreatedAt       int64  `gorm:"not null" json:"created_at"`
}

func (SharedAccess) TableName() string {
	return "shared_access"
}

// ValidAccessType reports whether t is one of the two supported
// access levels. Write access is recorded but currently grants the
// same visibility as read.
func ValidAccessType(t string) bool {
	return t == AccessRead || t == AccessWrite
}
