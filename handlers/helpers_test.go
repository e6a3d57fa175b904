package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inkwell/config"
	"inkwell/handlers"
	"inkwell/models"
	"inkwell/routes"
	"inkwell/store"
)

func newTestServer(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:               "4000",
		JWTSecret:          "handler-test-secret",
		TokenTTLH:          1,
		PublicBaseURL:      "http://localhost:4000",
		UploadDir:          t.TempDir(),
		RateLimitPerMinute: 10000,
		GinMode:            gin.TestMode,
	}

	st := store.NewMemory()
	return routes.SetupRouter(handlers.New(st, cfg), cfg), st
}

func doRequest(r *gin.Engine, method, path, contentType string, body string, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// signup registers a user through the HTTP surface and returns the
// issued token.
func signup(t *testing.T, r *gin.Engine, username, email, password string) string {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("email", email)
	form.Set("password", password)

	w := doRequest(r, http.MethodPost, "/signup", "application/x-www-form-urlencoded", form.Encode(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("signup failed: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding signup response: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("expected token in signup response, got %s", w.Body.String())
	}
	return resp.Token
}

// seedUser inserts a user directly into the store.
func seedUser(t *testing.T, st *store.Store, username, email string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    email,
		Password: "irrelevant",
		Posts:    []primitive.ObjectID{},
		Date:     time.Now().Unix(),
	}
	if err := st.Users.Create(context.Background(), &user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

// seedPost inserts a post directly into the store.
func seedPost(t *testing.T, st *store.Store, owner models.User, title, category string, date int64) models.Post {
	t.Helper()
	ctx := context.Background()
	seq, err := st.Posts.NextSeq(ctx)
	if err != nil {
		t.Fatalf("allocating seq: %v", err)
	}
	post := models.Post{
		Seq:      seq,
		Title:    title,
		Content:  "content of " + title,
		Category: category,
		Image:    "http://localhost:4000/images/x.png",
		UserID:   owner.ID,
		Date:     date,
	}
	if err := st.Posts.Create(ctx, &post); err != nil {
		t.Fatalf("seeding post: %v", err)
	}
	if err := st.Users.AppendPost(ctx, owner.ID, post.ID); err != nil {
		t.Fatalf("linking post: %v", err)
	}
	return post
}
