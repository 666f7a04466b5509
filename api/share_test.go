package api

import (
	"net/http"
	"testing"

	"healthwallet/api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareDuplicateThenRevokeThenReshare(t *testing.T) {
	a, _ := newTestAPI(t)
	owner, token := createTestUser(t, a, "owner@example.com", "Owner")
	report := createTestReport(t, a, owner, "Blood work", "2026-01-10")

	body := map[string]string{
		"report_id":         report.ID,
		"shared_with_email": "friend@example.com",
	}

	w := doJSON(t, a, http.MethodPost, "/api/sharing", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	share := decodeBody(t, w)["share"].(map[string]any)
	assert.Equal(t, model.AccessRead, share["access_type"], "read is the default")
	shareID := share["id"].(string)

	w = doJSON(t, a, http.MethodPost, "/api/sharing", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, a, http.MethodDelete, "/api/sharing/"+shareID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a, http.MethodPost, "/api/sharing", token, body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestShareRequiresOwnership(t *testing.T) {
	a, _ := newTestAPI(t)
	owner, _ := createTestUser(t, a, "owner@example.com", "Owner")
	_, otherToken := createTestUser(t, a, "other@example.com", "Other")
	report := createTestReport(t, a, owner, "Blood work", "2026-01-10")

	w := doJSON(t, a, http.MethodPost, "/api/sharing", otherToken, map[string]string{
		"report_id":         report.ID,
		"shared_with_email": "friend@example.com",
	})
	assert.Equal(t, http.StatusNotFound, w.Code, "not owning shares the 404 with not existing")
}

func TestShareRejectsSelfAndBadAccessType(t *testing.T) {
	a, _ := newTestAPI(t)
	owner, token := createTestUser(t, a, "owner@example.com", "Owner")
	report := createTestReport(t, a, owner, "Blood work", "2026-01-10")

	w := doJSON(t, a, http.MethodPost, "/api/sharing", token, map[string]string{
		"report_id":         report.ID,
		"shared_with_email": "owner@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, a, http.MethodPost, "/api/sharing", token, map[string]string{
		"report_id":         report.ID,
		"shared_with_email": "friend@example.com",
		"access_type":       "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, a.DB.Model(model.SharedAccess{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestShareUpdateValidatesBeforeMutating(t *testing.T) {
	a, _ := newTestAPI(t)
	owner, token := createTestUser(t, a, "owner@example.com", "Owner")
	report := createTestReport(t, a, owner, "Blood work", "2026-01-10")
	share := createTestGrant(t, a, report, "friend@example.com", model.AccessRead)

	w := doJSON(t, a, http.MethodPut, "/api/sharing/"+share.ID, token, map[string]string{
		"access_type": "admin",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var got model.SharedAccess
	require.NoError(t, a.DB.First(&got, "id = ?", share.ID).Error)
	assert.Equal(t, model.AccessRead, got.AccessType, "rejected update must not touch the grant")

	w = doJSON(t, a, http.MethodPut, "/api/sharing/"+share.ID, token, map[string]string{
		"access_type": "write",
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, a.DB.First(&got, "id = ?", share.ID).Error)
	assert.Equal(t, model.AccessWrite, got.AccessType)
}

func TestShareUpdateAndRevokeAreOwnerOnly(t *testing.T) {
	a, _ := newTestAPI(t)
	owner, _ := createTestUser(t, a, "owner@example.com", "Owner")
	_, otherToken := createTestUser(t, a, "other@example.com", "Other")
	report := createTestReport(t, a, owner, "Blood work", "2026-01-10")
	share := createTestGrant(t, a, report, "friend@example.com", model.AccessRead)

	w := doJSON(t, a, http.MethodPut, "/api/sharing/"+share.ID, otherToken, map[string]string{
		"access_type": "write",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, a, http.MethodDelete, "/api/sharing/"+share.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, a.DB.Model(model.SharedAccess{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "grant survives foreign revoke attempts")
}

func TestShareListings(t *testing.T) {
	a, _ := newTestAPI(t)
	owner, ownerToken := createTestUser(t, a, "owner@example.com", "Owner")
	_, friendToken := createTestUser(t, a, "friend@example.com", "Friend")
	_, strangerToken := createTestUser(t, a, "stranger@example.com", "Stranger")

	report := createTestReport(t, a, owner, "Blood work", "2026-01-10")
	createTestGrant(t, a, report, "friend@example.com", model.AccessRead)

	w := doJSON(t, a, http.MethodGet, "/api/sharing/report/"+report.ID, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	shares := decodeBody(t, w)["shares"].([]any)
	require.Len(t, shares, 1)

	// Grant visibility on a report is owner only
	w = doJSON(t, a, http.MethodGet, "/api/sharing/report/"+report.ID, friendToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, a, http.MethodGet, "/api/sharing/by-me", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	shares = decodeBody(t, w)["shares"].([]any)
	require.Len(t, shares, 1)
	assert.Equal(t, "Blood work", shares[0].(map[string]any)["report_title"])

	w = doJSON(t, a, http.MethodGet, "/api/sharing/with-me", friendToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	shares = decodeBody(t, w)["shares"].([]any)
	require.Len(t, shares, 1)
	assert.Equal(t, "owner@example.com", shares[0].(map[string]any)["owner_email"])

	w = doJSON(t, a, http.MethodGet, "/api/sharing/with-me", strangerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["shares"])
}
