package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/Godley/take-a-break/internal/security"
)

// TokenStore persists the credential record. Without an encryptor the file
// holds the token JSON with the granted scope and ID token alongside it.
type TokenStore struct {
	path      string
	encryptor *security.TokenEncryptor
	logger    *security.SecureLogger
}

// NewTokenStore stores the token at path in plain JSON.
func NewTokenStore(path string, logger *security.SecureLogger) *TokenStore {
	return &TokenStore{path: path, logger: logger}
}

// NewEncryptedTokenStore seals the token with a key whose salt sits next to path.
func NewEncryptedTokenStore(path string, logger *security.SecureLogger) (*TokenStore, error) {
	encryptor, err := security.NewTokenEncryptor(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token encryption: %w", err)
	}
	return &TokenStore{path: path, encryptor: encryptor, logger: logger}, nil
}

// storedToken is the on-disk record. oauth2.Token drops the extra response
// fields when marshalled, so the ones worth keeping ride next to it.
type storedToken struct {
	*oauth2.Token
	Scope   string `json:"scope,omitempty"`
	IDToken string `json:"id_token,omitempty"`
}

func newStoredToken(token *oauth2.Token) storedToken {
	record := storedToken{Token: token}
	record.Scope, _ = token.Extra("scope").(string)
	record.IDToken, _ = token.Extra("id_token").(string)
	return record
}

// oauth2Token reattaches the persisted extras so Extra("scope") works on a
// loaded token the same as on a freshly exchanged one.
func (r storedToken) oauth2Token() *oauth2.Token {
	extra := map[string]any{}
	if r.Scope != "" {
		extra["scope"] = r.Scope
	}
	if r.IDToken != "" {
		extra["id_token"] = r.IDToken
	}
	if len(extra) == 0 {
		return r.Token
	}
	return r.Token.WithExtra(extra)
}

func (s *TokenStore) Path() string {
	return s.path
}

// Load reads and decodes the stored token.
func (s *TokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	if s.encryptor != nil {
		data, err = s.encryptor.Decrypt(string(data))
		if err != nil {
			cryptoErr := security.NewCryptoError("token_decrypt", "failed to decrypt token").WithCause(err)
			s.logger.LogCryptoEvent("token_decrypt", false, cryptoErr.Error())
			return nil, cryptoErr
		}
		s.logger.LogCryptoEvent("token_decrypt", true, "")
	}

	record := storedToken{Token: &oauth2.Token{}}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("invalid token data: %w", err)
	}
	if record.AccessToken == "" && record.RefreshToken == "" {
		return nil, errors.New("token file holds no credential")
	}

	return record.oauth2Token(), nil
}

// Save overwrites the token file with token.
func (s *TokenStore) Save(token *oauth2.Token) error {
	data, err := json.Marshal(newStoredToken(token))
	if err != nil {
		return NewFlowError(PersistenceFailure, "save_token", "failed to marshal token").WithCause(err)
	}

	if s.encryptor != nil {
		sealed, err := s.encryptor.Encrypt(data)
		if err != nil {
			s.logger.LogCryptoEvent("token_encrypt", false, err.Error())
			return NewFlowError(PersistenceFailure, "save_token", "failed to encrypt token").WithCause(err)
		}
		s.logger.LogCryptoEvent("token_encrypt", true, "")
		data = []byte(sealed)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return NewFlowError(PersistenceFailure, "save_token", "failed to write token file").WithCause(err)
	}

	s.logger.LogAuthEvent("token_saved", true, map[string]any{
		"token_path": s.path,
		"encrypted":  s.encryptor != nil,
	})

	return nil
}

// Clear removes the stored token. A missing file is not an error.
func (s *TokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}

	s.logger.LogAuthEvent("token_cleared", true, map[string]any{
		"token_path": s.path,
	})

	return nil
}

// TokenStatus describes the stored credential as the CLI reports it.
type TokenStatus int

const (
	TokenMissing TokenStatus = iota
	TokenValid
	// TokenRefreshable is expired but carries a refresh token, so the next
	// API call renews it without prompting.
	TokenRefreshable
	TokenExpired
)

func (s TokenStatus) String() string {
	switch s {
	case TokenValid:
		return "Valid"
	case TokenRefreshable:
		return "Expired (refreshable)"
	case TokenExpired:
		return "Expired"
	default:
		return "Required"
	}
}

// Usable reports whether API calls can proceed without re-authorizing.
func (s TokenStatus) Usable() bool {
	return s == TokenValid || s == TokenRefreshable
}

// Status classifies the stored token.
func (s *TokenStore) Status() TokenStatus {
	token, err := s.Load()

	status := TokenMissing
	switch {
	case err != nil:
	case token.Valid():
		status = TokenValid
	case token.RefreshToken != "":
		status = TokenRefreshable
	default:
		status = TokenExpired
	}

	s.logger.LogAuthEvent("token_status", status.Usable(), map[string]any{
		"has_token": err == nil,
		"status":    status.String(),
	})

	return status
}
