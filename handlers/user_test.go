package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"inkwell/utils"
)

func TestSignupDuplicateEmail(t *testing.T) {
	r, _ := newTestServer(t)

	signup(t, r, "alice", "alice@example.com", "password1")

	form := url.Values{}
	form.Set("username", "allie")
	form.Set("email", "alice@example.com")
	form.Set("password", "different")

	w := doRequest(r, http.MethodPost, "/signup", "application/x-www-form-urlencoded", form.Encode(), "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}

	var resp utils.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.Success || resp.ErrorKind != utils.KindConflict {
		t.Fatalf("expected conflict envelope, got %+v", resp)
	}
}

func TestSignupValidation(t *testing.T) {
	r, _ := newTestServer(t)

	form := url.Values{}
	form.Set("username", "bob")
	// email and password missing

	w := doRequest(r, http.MethodPost, "/signup", "application/x-www-form-urlencoded", form.Encode(), "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSignupTokenResolvesToSameUser(t *testing.T) {
	r, st := newTestServer(t)

	token := signup(t, r, "alice", "alice@example.com", "password1")

	claims, err := utils.ParseToken("handler-test-secret", token)
	if err != nil {
		t.Fatalf("parsing issued token: %v", err)
	}

	stored, err := st.Users.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("fetching stored user: %v", err)
	}
	if claims.UserID != stored.ID.Hex() {
		t.Fatalf("token user id %s does not match stored user %s", claims.UserID, stored.ID.Hex())
	}

	w := doRequest(r, http.MethodGet, "/getUser", "", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("getUser failed: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		User    struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.User.ID != stored.ID.Hex() || resp.User.Email != "alice@example.com" {
		t.Fatalf("getUser returned wrong user: %+v", resp.User)
	}
}

func TestGetUserExcludesPassword(t *testing.T) {
	r, _ := newTestServer(t)
	token := signup(t, r, "alice", "alice@example.com", "password1")

	w := doRequest(r, http.MethodGet, "/getUser", "", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("getUser failed: %d", w.Code)
	}

	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	user, ok := raw["user"].(map[string]any)
	if !ok {
		t.Fatalf("missing user object: %s", w.Body.String())
	}
	if _, present := user["password"]; present {
		t.Fatal("password must not appear in getUser response")
	}
}

func TestLogin(t *testing.T) {
	r, _ := newTestServer(t)
	signup(t, r, "alice", "alice@example.com", "password1")

	w := doRequest(r, http.MethodPost, "/login", "application/json",
		`{"email":"alice@example.com","password":"password1"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("expected token, got %s", w.Body.String())
	}

	// login token works on a protected route
	w = doRequest(r, http.MethodGet, "/myposts", "", "", resp.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("login token rejected on protected route: %d", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newTestServer(t)
	signup(t, r, "alice", "alice@example.com", "password1")

	w := doRequest(r, http.MethodPost, "/login", "application/json",
		`{"email":"alice@example.com","password":"nope-nope"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(r, http.MethodPost, "/login", "application/json",
		`{"email":"ghost@example.com","password":"whatever"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}
