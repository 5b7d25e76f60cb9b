package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupAuthValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(nil)

	router := gin.New()
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/oauth", h.OAuth)
	return router
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	router := setupAuthValidationRouter()

	w := postJSON(router, "/auth/register", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(router, "/auth/register", `{"password":"hunter22"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRequiresCredentials(t *testing.T) {
	router := setupAuthValidationRouter()

	w := postJSON(router, "/auth/login", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOAuthRequiresProviderAndEmail(t *testing.T) {
	router := setupAuthValidationRouter()

	w := postJSON(router, "/auth/oauth", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(router, "/auth/oauth", `{"provider":"google"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
