package calendar

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewTokenStore(path, quietLogger())
	token := validToken()

	require.NoError(t, store.Save(token))
	loaded, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, loaded.AccessToken)
	assert.Equal(t, token.RefreshToken, loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))
	assert.Equal(t, TokenValid, store.Status())
}

func TestTokenStore_LoadRejectsEmptyCredential(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0600))

	_, err := NewTokenStore(path, quietLogger()).Load()

	assert.Error(t, err)
}

func TestTokenStore_Status(t *testing.T) {
	tests := []struct {
		name   string
		token  *oauth2.Token
		want   TokenStatus
		usable bool
	}{
		{"valid", validToken(), TokenValid, true},
		{
			name:  "expired with refresh token",
			token: &oauth2.Token{
				AccessToken:  "ya29.stale",
				RefreshToken: "1//cached",
				Expiry:       time.Now().Add(-time.Hour),
			},
			want:   TokenRefreshable,
			usable: true,
		},
		{
			name:  "expired without refresh token",
			token: &oauth2.Token{
				AccessToken: "ya29.stale",
				Expiry:      time.Now().Add(-time.Hour),
			},
			want: TokenExpired,
		},
		{"missing", nil, TokenMissing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"), quietLogger())
			if tt.token != nil {
				require.NoError(t, store.Save(tt.token))
			}

			status := store.Status()

			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.usable, status.Usable())
		})
	}
}

func TestTokenStatus_String(t *testing.T) {
	assert.Equal(t, "Valid", TokenValid.String())
	assert.Equal(t, "Expired (refreshable)", TokenRefreshable.String())
	assert.Equal(t, "Expired", TokenExpired.String())
	assert.Equal(t, "Required", TokenMissing.String())
}

func TestTokenStore_LoadsStaleToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewTokenStore(path, quietLogger())
	require.NoError(t, store.Save(&oauth2.Token{
		AccessToken: "ya29.stale",
		Expiry:      time.Now().Add(-time.Hour),
	}))

	// A stale token is still loadable; Authorize uses it as-is.
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "ya29.stale", loaded.AccessToken)
}

func TestTokenStore_KeepsScopeAndIDToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewTokenStore(path, quietLogger())
	token := validToken().WithExtra(map[string]any{
		"scope":    ScopeCalendarReadonly,
		"id_token": "eyJhbGciOi.payload.sig",
		"unused":   "dropped",
	})

	require.NoError(t, store.Save(token))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(first, &record))
	assert.Equal(t, ScopeCalendarReadonly, record["scope"])
	assert.Equal(t, "eyJhbGciOi.payload.sig", record["id_token"])
	assert.NotContains(t, record, "unused")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeCalendarReadonly, loaded.Extra("scope"))
	assert.Equal(t, "eyJhbGciOi.payload.sig", loaded.Extra("id_token"))

	// saving what was loaded rewrites the same bytes
	require.NoError(t, store.Save(loaded))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestTokenStore_NoExtrasWithoutScope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewTokenStore(path, quietLogger())

	require.NoError(t, store.Save(validToken()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"scope"`)
	assert.NotContains(t, string(raw), `"id_token"`)
}

func TestTokenStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewTokenStore(path, quietLogger())
	require.NoError(t, store.Save(validToken()))

	require.NoError(t, store.Clear())
	assert.NoFileExists(t, path)
	assert.Equal(t, TokenMissing, store.Status())

	// clearing twice is fine
	assert.NoError(t, store.Clear())
}

func TestTokenStore_SaveFailureIsPersistenceFailure(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "absent", "token.json"), quietLogger())

	err := store.Save(validToken())

	assert.Equal(t, PersistenceFailure, KindOf(err))
}

func TestEncryptedTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store, err := NewEncryptedTokenStore(path, quietLogger())
	require.NoError(t, err)

	require.NoError(t, store.Save(validToken()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "ya29.cached"), "token stored in clear text")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "ya29.cached", loaded.AccessToken)

	// the plain store can't read a sealed token
	_, err = NewTokenStore(path, quietLogger()).Load()
	assert.Error(t, err)
}
