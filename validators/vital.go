package validators

import (
	"errors"

	"healthwallet/api/model"
)

var (
	ErrVitalTypeMissing  = errors.New("no vital type provided")
	ErrVitalTypeInvalid  = errors.New("invalid vital type")
	ErrRecordedAtMissing = errors.New("no recorded_at provided")
)

// VitalTypeValidator checks the type against the fixed enumerated set
// and returns its derived unit
func VitalTypeValidator(t string) (string, error) {
	if t == "" {
		return "", ErrVitalTypeMissing
	}

	info, ok := model.VitalTypes[t]
	if !ok {
		return "", ErrVitalTypeInvalid
	}

	return info.Unit, nil
}
