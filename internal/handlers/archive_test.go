package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/makaka119911-oss/Tatiana-Server/internal/models"
	"github.com/makaka119911-oss/Tatiana-Server/internal/storage"
)

// erroringArchiveStore fails the archive query only.
type erroringArchiveStore struct {
	storage.Store
}

func (s *erroringArchiveStore) ListArchive(ctx context.Context) ([]models.ArchiveRecord, error) {
	return nil, errors.New("query timeout")
}

func getArchive(t *testing.T, h *ArchiveHandler) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/archive", nil)
	h.List(c)
	return w
}

func TestArchiveList(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.SaveRegistration(context.Background(), &models.Registration{
		RegistrationID: "REG_1",
		LastName:       "Ivanov",
		FirstName:      "Ivan",
		Age:            30,
		Phone:          "+71234567890",
		Telegram:       "@ivanov",
		CreatedAt:      time.Now(),
	}))

	w := getArchive(t, NewArchiveHandler(zap.NewNop(), store))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ArchiveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, 1, resp.Count)
	require.Len(t, resp.Records, 1)
	require.Equal(t, "Ivanov Ivan", resp.Records[0].FIO)
}

func TestArchiveListEmpty(t *testing.T) {
	w := getArchive(t, NewArchiveHandler(zap.NewNop(), storage.NewMemory()))
	require.Equal(t, http.StatusOK, w.Code)

	// An empty archive is a success with an empty array, never null.
	require.Contains(t, w.Body.String(), `"records":[]`)
}

func TestArchiveListQueryFailure(t *testing.T) {
	store := &erroringArchiveStore{Store: storage.NewMemory()}
	w := getArchive(t, NewArchiveHandler(zap.NewNop(), store))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotContains(t, resp.Error, "query timeout")
}
