package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mishaRomanov/online-store/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	creds := map[string]string{"username": "alice", "password": "secret"}

	rec, c := env.doJSONRequest(http.MethodPost, "/api/register", creds)
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, env.DB.Where("username = ?", "alice").First(&user).Error)
	require.Equal(t, "user", user.Role)
	require.NotEqual(t, "secret", user.PasswordHash)

	rec, c = env.doJSONRequest(http.MethodPost, "/api/login", creds)
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		IsAdmin      bool   `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.False(t, resp.IsAdmin)

	cookies := rec.Result().Cookies()
	names := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		names = append(names, ck.Name)
	}
	require.Contains(t, names, "accessToken")
	require.Contains(t, names, "refreshToken")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	creds := map[string]string{"username": "alice", "password": "secret"}

	rec, c := env.doJSONRequest(http.MethodPost, "/api/register", creds)
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, c = env.doJSONRequest(http.MethodPost, "/api/register", creds)
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/register", map[string]string{
		"username": "alice", "password": "secret",
	})
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, c = env.doJSONRequest(http.MethodPost, "/api/login", map[string]string{
		"username": "alice", "password": "wrong",
	})
	err := env.Auth.Login(c)
	require.Error(t, err)
}
