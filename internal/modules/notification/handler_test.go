package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facilityhub/internal/domain"
	"facilityhub/internal/middleware"
)

func testRouter(store Store, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
	})
	NewHandler(store, logrus.New()).RegisterRoutes(api)
	return r
}

func seedStore(t *testing.T, store *memStore, recipientID int64, count int) []domain.Notification {
	t.Helper()
	for i := 0; i < count; i++ {
		n := domain.Notification{
			RecipientID: recipientID,
			Type:        domain.NotifRequestCompleted,
			Title:       "Request Completed",
			Message:     "Request has been marked as completed",
		}
		require.NoError(t, store.Create(context.Background(), &n))
	}
	return store.forRecipient(recipientID)
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestListNotifications_ResponseShape(t *testing.T) {
	store := &memStore{}
	seedStore(t, store, 1, 3)
	seedStore(t, store, 2, 5)
	r := testRouter(store, 1)

	w := do(r, http.MethodGet, "/api/v1/notifications")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Notifications []domain.Notification `json:"notifications"`
			Total         int64                 `json:"total"`
			UnreadCount   int64                 `json:"unreadCount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data.Notifications, 3, "other recipients' rows must not leak")
	assert.Equal(t, int64(3), body.Data.Total)
	assert.Equal(t, int64(3), body.Data.UnreadCount)
}

func TestListNotifications_Pagination(t *testing.T) {
	store := &memStore{}
	seedStore(t, store, 1, 30)
	r := testRouter(store, 1)

	w := do(r, http.MethodGet, "/api/v1/notifications?limit=10&skip=25")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Notifications []domain.Notification `json:"notifications"`
			Total         int64                 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data.Notifications, 5)
	assert.Equal(t, int64(30), body.Data.Total)

	// Garbage paging params fall back to defaults instead of erroring.
	w = do(r, http.MethodGet, "/api/v1/notifications?limit=-3&skip=x")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMarkRead_Idempotent(t *testing.T) {
	store := &memStore{}
	rows := seedStore(t, store, 1, 1)
	r := testRouter(store, 1)

	path := "/api/v1/notifications/1/read"
	w := do(r, http.MethodPatch, path)
	assert.Equal(t, http.StatusOK, w.Code)

	// A second mark-read of an already-read row still succeeds.
	w = do(r, http.MethodPatch, path)
	assert.Equal(t, http.StatusOK, w.Code)

	got := store.forRecipient(1)
	require.Len(t, got, 1)
	assert.Equal(t, rows[0].ID, got[0].ID)
	assert.True(t, got[0].IsRead)
}

func TestMarkRead_OtherRecipientsRow(t *testing.T) {
	store := &memStore{}
	seedStore(t, store, 2, 1)
	r := testRouter(store, 1)

	w := do(r, http.MethodPatch, "/api/v1/notifications/1/read")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestMarkRead_BadID(t *testing.T) {
	r := testRouter(&memStore{}, 1)

	w := do(r, http.MethodPatch, "/api/v1/notifications/abc/read")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkAllRead(t *testing.T) {
	store := &memStore{}
	seedStore(t, store, 1, 4)
	r := testRouter(store, 1)

	w := do(r, http.MethodPatch, "/api/v1/notifications/read/all")
	require.Equal(t, http.StatusOK, w.Code)

	for _, n := range store.forRecipient(1) {
		assert.True(t, n.IsRead)
	}
}

func TestDeleteAndClear(t *testing.T) {
	store := &memStore{}
	seedStore(t, store, 1, 3)
	seedStore(t, store, 2, 1)
	r := testRouter(store, 1)

	w := do(r, http.MethodDelete, "/api/v1/notifications/2")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.forRecipient(1), 2)

	w = do(r, http.MethodDelete, "/api/v1/notifications/2")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/notifications/clear/all")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.forRecipient(1))
	assert.Len(t, store.forRecipient(2), 1, "other recipients keep their rows")
}
