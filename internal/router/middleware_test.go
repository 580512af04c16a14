package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/makaka119911-oss/Tatiana-Server/internal/config"
	"github.com/makaka119911-oss/Tatiana-Server/internal/models"
	"github.com/makaka119911-oss/Tatiana-Server/internal/notify"
	"github.com/makaka119911-oss/Tatiana-Server/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setTestConfig(t *testing.T, mutate func(*config.Config)) {
	t.Helper()
	prev := config.Conf
	conf := &config.Config{}
	if mutate != nil {
		mutate(conf)
	}
	config.Conf = conf
	t.Cleanup(func() { config.Conf = prev })
}

// countingStore tracks archive queries so auth tests can prove rejected
// requests never reach the datastore.
type countingStore struct {
	storage.Store
	archiveQueries int
}

func (s *countingStore) ListArchive(ctx context.Context) ([]models.ArchiveRecord, error) {
	s.archiveQueries++
	return s.Store.ListArchive(ctx)
}

func setupEngine(t *testing.T, store storage.Store) *gin.Engine {
	t.Helper()
	log := zap.NewNop()
	return Setup(log, store, notify.New(config.Conf.Telegram, log))
}

func doArchive(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/archive", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestArchiveAuthRejectsBadCredentials(t *testing.T) {
	setTestConfig(t, func(c *config.Config) { c.Archive.Token = "secret-token" })
	store := &countingStore{Store: storage.NewMemory()}
	engine := setupEngine(t, store)

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic secret-token",
		"empty token":    "Bearer ",
		"wrong token":    "Bearer wrong-token",
		"prefix only":    "Bearer secret",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := doArchive(engine, header)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Contains(t, w.Body.String(), "unauthorized")
		})
	}

	// None of the rejected requests may touch the store.
	require.Zero(t, store.archiveQueries)
}

func TestArchiveAuthAcceptsConfiguredToken(t *testing.T) {
	setTestConfig(t, func(c *config.Config) { c.Archive.Token = "secret-token" })
	store := &countingStore{Store: storage.NewMemory()}
	engine := setupEngine(t, store)

	w := doArchive(engine, "Bearer secret-token")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, store.archiveQueries)
}

func TestArchiveAuthLockedWithoutConfiguredToken(t *testing.T) {
	setTestConfig(t, nil) // no token configured
	store := &countingStore{Store: storage.NewMemory()}
	engine := setupEngine(t, store)

	// An empty secret must not match an empty (or any) credential.
	for _, header := range []string{"", "Bearer ", "Bearer anything"} {
		w := doArchive(engine, header)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}
	require.Zero(t, store.archiveQueries)
}

func TestHealthEndpoint(t *testing.T) {
	setTestConfig(t, nil)
	engine := setupEngine(t, storage.NewMemory())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"storage":"memory"`)
}

func TestRequestIDEchoed(t *testing.T) {
	setTestConfig(t, nil)
	engine := setupEngine(t, storage.NewMemory())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// Inbound ids survive the round trip.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "proxy-supplied-id")
	engine.ServeHTTP(w, req)
	require.Equal(t, "proxy-supplied-id", w.Header().Get("X-Request-ID"))
}
