package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/database"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func getTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.EnsureAdmin(db, "Glory", "admin@glory.test", "s3cret"))
	return db
}

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), time.Hour)
	token, err := issuer.Issue(models.Admin{ID: 7, Email: "a@b.c", Role: "admin"})
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.AdminID)
	assert.Equal(t, "a@b.c", claims.Email)
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), time.Hour)
	token, err := issuer.Issue(models.Admin{ID: 1})
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = issuer.Parse(token)
	assert.True(t, apperror.Is(err, apperror.KindAuth))

	other := NewIssuer([]byte("other-secret"), time.Hour)
	_, err = other.Parse(token)
	assert.True(t, apperror.Is(err, apperror.KindAuth))
}

func TestLogin(t *testing.T) {
	db := getTestDB(t)
	issuer := NewIssuer([]byte("secret"), time.Hour)

	result, err := Login(db, issuer, "Admin@Glory.test", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "Glory", result.Admin.Name)

	_, err = Login(db, issuer, "admin@glory.test", "wrong")
	assert.True(t, apperror.Is(err, apperror.KindAuth))

	_, err = Login(db, issuer, "nobody@glory.test", "s3cret")
	assert.True(t, apperror.Is(err, apperror.KindAuth))
}

func TestAdminLoginHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := getTestDB(t)
	r := gin.New()
	r.POST("/login", AdminLoginHandler(db, NewIssuer([]byte("secret"), time.Hour)))

	body, _ := json.Marshal(map[string]string{"email": "admin@glory.test", "password": "s3cret"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)
	assert.NotContains(t, w.Body.String(), "password")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"admin@glory.test"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
