package handlers

import (
	"net/http"
	"strings"
	"testing"

	"complaint_flow_app_go/middleware"
	"complaint_flow_app_go/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	database := setupTestDB(t)
	user := createUser(t, database, models.RoleDCP, "pass123456789")

	t.Run("valid credentials set a session cookie", func(t *testing.T) {
		body := `{"email": "` + user.Email + `", "password": "pass123456789"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := Login(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), user.Email)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)

		// Session row exists for the cookie token
		var session models.Session
		require.NoError(t, database.Where("token = ?", cookies[0].Value).First(&session).Error)
		assert.Equal(t, user.ID, session.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		body := `{"email": "` + user.Email + `", "password": "wrong"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := Login(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
	})

	t.Run("unknown email", func(t *testing.T) {
		body := `{"email": "nobody@test.gov.in", "password": "pass123456789"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := Login(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
	})

	t.Run("deactivated account", func(t *testing.T) {
		inactive := createUser(t, database, models.RoleACP, "pass123456789")
		inactive.IsActive = false
		require.NoError(t, database.Save(inactive).Error)

		body := `{"email": "` + inactive.Email + `", "password": "pass123456789"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := Login(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
	})

	t.Run("missing fields", func(t *testing.T) {
		_, c, _ := setupEcho(http.MethodPost, "/api/login", strings.NewReader(`{}`))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := Login(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})
}

func TestLogout(t *testing.T) {
	database := setupTestDB(t)
	user := createUser(t, database, models.RoleDCP, "pass123456789")

	session, err := createSessionCookieLogin(t, user.Email)
	require.NoError(t, err)

	_, c, rec := setupEcho(http.MethodPost, "/api/logout", nil)
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: session})
	actAs(c, user)

	require.NoError(t, Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Session row is gone and the cookie is cleared
	var count int64
	database.Model(&models.Session{}).Where("token = ?", session).Count(&count)
	assert.Zero(t, count)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

// createSessionCookieLogin logs in through the handler and returns the
// session token from the response cookie.
func createSessionCookieLogin(t *testing.T, email string) (string, error) {
	body := `{"email": "` + email + `", "password": "pass123456789"}`
	_, c, rec := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if err := Login(c); err != nil {
		return "", err
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie.Value, nil
		}
	}
	t.Fatal("no session cookie in login response")
	return "", nil
}

func TestMe(t *testing.T) {
	database := setupTestDB(t)

	t.Run("unauthenticated", func(t *testing.T) {
		_, c, _ := setupEcho(http.MethodGet, "/api/me", nil)
		err := Me(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
	})

	t.Run("authenticated", func(t *testing.T) {
		user := createUser(t, database, models.RoleCommissioner, "pass123456789")
		_, c, rec := setupEcho(http.MethodGet, "/api/me", nil)
		actAs(c, user)

		require.NoError(t, Me(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), user.Email)
	})
}
