// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/meetup-poll/cliparse"
	"github.com/danielhkuo/meetup-poll/db"
	"github.com/danielhkuo/meetup-poll/models"
	"github.com/danielhkuo/meetup-poll/session"
)

// TestSessionSecret signs test session tokens
const TestSessionSecret = "test-session-secret"

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Single connection so every statement sees the same memory DB.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		SessionSecret: TestSessionSecret,
		OwnerDelete:   true,
	}
}

// Sessions returns a session manager keyed with the test secret.
func Sessions() *session.Manager {
	return session.NewManager(TestSessionSecret)
}

// AuthHeader issues a bearer token for a test user.
func AuthHeader(t *testing.T, user models.User) string {
	t.Helper()

	token, err := Sessions().Issue(user, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return "Bearer " + token
}

// CreateTestOption inserts an option and returns it
func CreateTestOption(t *testing.T, conn *sql.DB, name, createdBy string) models.Option {
	t.Helper()

	mapURL := "https://maps.example.com/" + name
	opt := models.Option{
		ID:        uuid.New().String(),
		Name:      name,
		Location:  name + " street 1",
		MapURL:    &mapURL,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}

	_, err := conn.Exec(`
		INSERT INTO poll_option (id, name, location, map_url, created_by, created_at, vote_count)
		VALUES ($1, $2, $3, $4, $5, $6, 0)
	`, opt.ID, opt.Name, opt.Location, opt.MapURL, opt.CreatedBy, opt.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return opt
}

// CreateTestVote inserts a vote row directly, bypassing the store, and
// bumps the cached counter the way the store would.
func CreateTestVote(t *testing.T, conn *sql.DB, optionID, voterID string) models.Vote {
	t.Helper()

	v := models.Vote{
		ID:        uuid.New().String(),
		OptionID:  optionID,
		VoterID:   voterID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := conn.Exec(`
		INSERT INTO vote (id, option_id, voter_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, v.ID, v.OptionID, v.VoterID, v.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	_, err = conn.Exec(`
		UPDATE poll_option SET vote_count = vote_count + 1 WHERE id = $1
	`, optionID)
	if err != nil {
		t.Fatalf("Failed to bump vote counter: %v", err)
	}

	return v
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
