package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/worklinehq/workline/config"
	"github.com/worklinehq/workline/models"
	"github.com/worklinehq/workline/services/jwt"
)

type fakeAuthRepo struct {
	users map[uint]*models.User
}

func (f *fakeAuthRepo) FindUserByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeAuthRepo) FindUserByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newAuthTestServer() (*Server, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	user := &models.User{Fullname: "Alice", Username: "alice"}
	user.ID = 1

	s := &Server{
		Config:         &config.Config{JWTSecret: "test-secret"},
		AuthRepository: &fakeAuthRepo{users: map[uint]*models.User{1: user}},
	}

	r := gin.New()
	r.GET("/protected", s.Authorize(), func(c *gin.Context) {
		u, err := GetUserFromContext(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": u.ID})
	})
	return s, r
}

func TestAuthorize_MissingToken(t *testing.T) {
	_, r := newAuthTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize_InvalidToken(t *testing.T) {
	_, r := newAuthTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize_UnknownUser(t *testing.T) {
	_, r := newAuthTestServer()

	token, err := jwt.GenerateToken(99, "test-secret")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize_ValidToken(t *testing.T) {
	_, r := newAuthTestServer()

	token, err := jwt.GenerateToken(1, "test-secret")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":1`)
}
