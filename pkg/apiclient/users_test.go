package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users", r.URL.Path)

		var req CreateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dispatcher1", req.Username)
		assert.Equal(t, "dispatcher", req.Role)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(User{
			Username:           req.Username,
			Role:               req.Role,
			Enabled:            true,
			MustChangePassword: true,
		})
	}))
	defer server.Close()

	c := New(server.URL, WithToken("admin-tok"))
	user, err := c.CreateUser(context.Background(), CreateUserRequest{
		Username: "dispatcher1",
		Password: "initial-pass-1",
		Role:     "dispatcher",
	})
	require.NoError(t, err)
	assert.True(t, user.MustChangePassword)
}

func TestListUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users", r.URL.Path)
		json.NewEncoder(w).Encode([]User{
			{Username: "admin", Role: "admin"},
			{Username: "alice", Role: "citizen"},
		})
	}))
	defer server.Close()

	c := New(server.URL, WithToken("admin-tok"))
	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
}

func TestGetUser_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"title":  "Not Found",
			"status": 404,
			"detail": "User not found",
		})
	}))
	defer server.Close()

	c := New(server.URL, WithToken("admin-tok"))
	_, err := c.GetUser(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestUpdateUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/users/alice", r.URL.Path)

		var req UpdateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Role)
		assert.Equal(t, "responder", *req.Role)
		assert.Nil(t, req.Email)

		json.NewEncoder(w).Encode(User{Username: "alice", Role: "responder", Enabled: true})
	}))
	defer server.Close()

	role := "responder"
	c := New(server.URL, WithToken("admin-tok"))
	user, err := c.UpdateUser(context.Background(), "alice", UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "responder", user.Role)
}

func TestDeleteUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/users/alice", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL, WithToken("admin-tok"))
	require.NoError(t, c.DeleteUser(context.Background(), "alice"))
}

func TestResetUserPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users/alice/password", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "new-pass-123", req["new_password"])
		assert.Empty(t, req["current_password"])

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL, WithToken("admin-tok"))
	require.NoError(t, c.ResetUserPassword(context.Background(), "alice", "new-pass-123"))
}

func TestChangeOwnPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/me/password", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "old-pass", req["current_password"])
		assert.Equal(t, "new-pass-123", req["new_password"])

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL, WithToken("tok"))
	require.NoError(t, c.ChangeOwnPassword(context.Background(), "old-pass", "new-pass-123"))
}

func TestSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/settings":
			json.NewEncoder(w).Encode([]Setting{{Key: "dispatch.auto_ack", Value: "false"}})
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/settings/dispatch.auto_ack":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			json.NewEncoder(w).Encode(Setting{Key: "dispatch.auto_ack", Value: req["value"]})
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(server.URL, WithToken("admin-tok"))

	settings, err := c.ListSettings(context.Background())
	require.NoError(t, err)
	require.Len(t, settings, 1)

	setting, err := c.SetSetting(context.Background(), "dispatch.auto_ack", "true")
	require.NoError(t, err)
	assert.Equal(t, "true", setting.Value)

	require.NoError(t, c.DeleteSetting(context.Background(), "dispatch.auto_ack"))
}
