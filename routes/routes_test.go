package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Traorelacina/Glory-event/config"
	"github.com/Traorelacina/Glory-event/database"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.EnsureAdmin(db, "Glory", "admin@glory.test", "s3cret"))

	cfg := &config.Config{
		JWTSecret:      []byte("test-secret"),
		TokenTTL:       time.Hour,
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 2 << 20,
		CORSOrigins:    []string{"*"},
		AdminAPIKey:    "machine-key",
	}
	r := gin.New()
	SetupRoutes(r, db, cfg)
	return r
}

func do(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestPublicRoutes(t *testing.T) {
	r := setupRouter(t)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/produits", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/services", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/portfolio", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/produits/1", "", nil).Code)
}

func TestAdminRoutesRequireCredential(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{
		"/api/admin/dashboard",
		"/api/admin/commandes",
		"/api/admin/contacts",
		"/api/admin/produits",
		"/api/admin/me",
	} {
		w := do(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Contains(t, w.Body.String(), `"success":false`, path)
	}

	w := do(r, http.MethodGet, "/api/admin/dashboard", "", map[string]string{"Authorization": "Bearer not-a-jwt"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginThenDashboard(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/admin/login", `{"email":"admin@glory.test","password":"s3cret"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.Token)

	bearer := map[string]string{"Authorization": "Bearer " + login.Data.Token}
	w = do(r, http.MethodGet, "/api/admin/dashboard", "", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"commandes_en_attente":0`)

	w = do(r, http.MethodGet, "/api/admin/me", "", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@glory.test")

	w = do(r, http.MethodGet, "/api/admin/dashboard", "", map[string]string{"X-API-KEY": "machine-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/admin/login", `{"email":"admin@glory.test","password":"s3cret"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data.Token
}

func TestQueryTokenOnlyOpensWebSocket(t *testing.T) {
	r := setupRouter(t)
	token := login(t, r)

	for _, path := range []string{"/api/admin/dashboard", "/api/admin/commandes", "/api/admin/me"} {
		w := do(r, http.MethodGet, path+"?token="+token, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	srv := httptest.NewServer(r)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/admin/ws/commandes"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
}

func TestOrderFlowThroughRouter(t *testing.T) {
	r := setupRouter(t)
	key := map[string]string{"X-API-KEY": "machine-key"}

	w := do(r, http.MethodPost, "/api/admin/produits",
		`{"name":"Vase doré","description":"Vase de table","price":1000,"category":"decoration"}`, key)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodPost, "/api/commandes",
		`{"client_name":"Awa","client_email":"awa@example.com","client_phone":"0700000000","produits":[{"produit_id":1,"quantity":2}]}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"total":2000`)

	w = do(r, http.MethodPut, "/api/admin/commandes/1", `{"status":"en_cours"}`, key)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"en_cours"`)

	w = do(r, http.MethodGet, "/api/admin/dashboard/recent-commandes", "", key)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Vase doré"`)

	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/api/admin/commandes/1", "", key).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/admin/commandes/1", "", key).Code)
}
