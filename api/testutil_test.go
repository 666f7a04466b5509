package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"healthwallet/api/model"
	"healthwallet/api/storage"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// pdfBytes is enough of a PDF for content sniffing to recognize it
var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// newTestAPI builds a router around a per-test in-memory database
// and a temp-dir local store. Returns the API and the store directory
// so tests can assert what's actually on disk.
func newTestAPI(t *testing.T) (*API, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	viper.Set("jwt.secret", "test-secret-not-for-production")
	viper.Set("upload.max_size", int64(10<<20))
	viper.Set("upload.allowed_types", []string{"application/pdf", "image/jpeg", "image/png"})
	viper.Set("host.cors_origins", []string{"http://localhost:5173"})

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(model.User{}, model.Report{}, model.Vital{}, model.SharedAccess{})
	require.NoError(t, err)

	dir := t.TempDir()
	store, err := storage.NewLocal(dir)
	require.NoError(t, err)

	a, err := New(db, store)
	require.NoError(t, err)

	return a, dir
}

// createTestUser inserts a user directly and returns it with a valid
// token, skipping the register endpoint
func createTestUser(t *testing.T, a *API, email, name string) (*model.User, string) {
	t.Helper()

	hash, err := a.Argon.GenerateFromPassword("password123")
	require.NoError(t, err)

	id, err := gonanoid.Generate(charset, 16)
	require.NoError(t, err)

	user := model.User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    time.Now().Unix(),
	}
	require.NoError(t, a.DB.Create(&user).Error)

	token, err := makeToken(&user)
	require.NoError(t, err)

	return &user, token
}

// createTestReport stores file content and inserts the matching
// metadata row for the given owner
func createTestReport(t *testing.T, a *API, owner *model.User, title, date string) *model.Report {
	t.Helper()

	id, err := gonanoid.Generate(charset, 16)
	require.NoError(t, err)

	fileKey := id + ".pdf"
	err = a.Store.Save(context.Background(), fileKey, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf")
	require.NoError(t, err)

	report := model.Report{
		ID:           id,
		UserID:       owner.ID,
		Type:         "lab_report",
		Title:        title,
		FileKey:      fileKey,
		OriginalName: "results.pdf",
		Format:       "application/pdf",
		Size:         int64(len(pdfBytes)),
		Date:         date,
		CreatedAt:    time.Now().Unix(),
	}
	require.NoError(t, a.DB.Create(&report).Error)

	return &report
}

func createTestGrant(t *testing.T, a *API, report *model.Report, email, accessType string) *model.SharedAccess {
	t.Helper()

	id, err := gonanoid.Generate(charset, 16)
	require.NoError(t, err)

	share := model.SharedAccess{
		ID:              id,
		ReportID:        report.ID,
		OwnerID:         report.UserID,
		SharedWithEmail: email,
		AccessType:      accessType,
		CreatedAt:       time.Now().Unix(),
	}
	require.NoError(t, a.DB.Create(&share).Error)

	return &share
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(t *testing.T, a *API, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

// doMultipart uploads a report through the real multipart path
func doMultipart(t *testing.T, a *API, token string, fields map[string]string, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if filename != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
		h.Set("Content-Type", contentType)

		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/reports", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

// assertStoredFileCount checks how many objects the local store holds
func assertStoredFileCount(t *testing.T, dir string, want int) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, want)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
