package model

import "time"

type Vital struct {
	ID     string  `gorm:"primaryKey" json:"id"`
	UserID string  `gorm:"index;not null" json:"user_id"`
	Type   string  `gorm:"index;not null" json:"type"`
	Value  float64 `gorm:"not null" json:"value"`

	// Always derived from Type, never accepted from the client
	Unit string `gorm:"not null" json:"unit"`

	RecordedAt time.Time `gorm:"index;not null" json:"recorded_at"`
	ReportID   *string   `gorm:"index" json:"report_id,omitempty"`
	CreatedAt  int64     `gorm:"not null" json:"created_at"`
}

type VitalTypeInfo struct {
	Unit  string `json:"unit"`
	Label string `json:"label"`
}

// VitalTypes is the fixed set of supported vital sign types mapped
// to their units and display labels
var VitalTypes = map[string]VitalTypeInfo{
	"blood_pressure_systolic":  {Unit: "mmHg", Label: "Blood Pressure (Systolic)"},
	"blood_pressure_diastolic": {Unit: "mmHg", Label: "Blood Pressure (Diastolic)"},
	"heart_rate":               {Unit: "bpm", Label: "Heart Rate"},
	"blood_sugar":              {Unit: "mg/dL", Label: "Blood Sugar"},
	"body_temperature":         {Unit: "°F", Label: "Body Temperature"},
	"weight":                   {Unit: "kg", Label: "Weight"},
	"oxygen_saturation":        {Unit: "%", Label: "Oxygen Saturation (SpO2)"},
	"cholesterol":              {Unit: "mg/dL", Label: "Cholesterol"},
	"hemoglobin":               {Unit: "g/dL", Label: "Hemoglobin"},
}
