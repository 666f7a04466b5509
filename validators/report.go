package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileNameTooLong     = errors.New("file name is too long")
	ErrFileTypeUnsupported = errors.New("only PDF and image files (JPEG, PNG) are allowed")
	ErrNoFile              = errors.New("no file provided")

	ErrTypeMissing  = errors.New("no report type provided")
	ErrTitleMissing = errors.New("no title provided")
	ErrDateMissing  = errors.New("no date provided")
	ErrDateInvalid  = errors.New("date must be in YYYY-MM-DD format")
)

const maxFileNameSize = 255

// ReportMetadataValidator checks the required report fields. It runs
// before the file is written anywhere so a rejected request never
// leaves bytes on disk.
func ReportMetadataValidator(reportType, title, date string) error {
	if strings.TrimSpace(reportType) == "" {
		return ErrTypeMissing
	}

	if strings.TrimSpace(title) == "" {
		return ErrTitleMissing
	}

	if date == "" {
		return ErrDateMissing
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrDateInvalid
	}

	return nil
}

// ReportFileValidator validates the uploaded file against the
// configured size cap and allowed media types. The Content-Type
// header is checked first as a fast reject, then the actual bytes
// are sniffed to catch spoofed headers. Returns the detected media
// type and an open file rewound to the start.
func ReportFileValidator(fh *multipart.FileHeader) (int, multipart.File, string, error) {
	if fh == nil {
		return http.StatusBadRequest, nil, "", ErrNoFile
	}

	allowed := viper.GetStringSlice("upload.allowed_types")

	ct := fh.Header.Get("Content-Type")
	if !headerAllowed(ct, allowed) {
		return http.StatusBadRequest, nil, "", ErrFileTypeUnsupported
	}

	if len(fh.Filename) > maxFileNameSize {
		return http.StatusBadRequest, nil, "", ErrFileNameTooLong
	}

	maxFileSize := viper.GetInt64("upload.max_size")
	if fh.Size > maxFileSize {
		return http.StatusRequestEntityTooLarge, nil, "", ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, "", err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, "", err
	}

	detected := ""
	for _, t := range allowed {
		if mime.Is(t) {
			detected = t
			break
		}
	}

	if detected == "" {
		f.Close()
		return http.StatusBadRequest, nil, "", ErrFileTypeUnsupported
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, "", err
	}

	return 0, f, detected, nil
}

func headerAllowed(ct string, allowed []string) bool {
	for _, t := range allowed {
		if strings.HasPrefix(ct, t) {
			return true
		}
	}

	// image/jpg shows up in the wild even though it isn't a real type
	return strings.HasPrefix(ct, "image/jpg")
}
