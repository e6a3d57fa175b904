package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inkwell/config"
	"inkwell/middleware"
	"inkwell/store"
	"inkwell/utils"
)

// Handler bundles the injected dependencies all route handlers share.
type Handler struct {
	store *store.Store
	cfg   config.Config
}

// New builds a Handler over the given store and configuration.
func New(st *store.Store, cfg config.Config) *Handler {
	return &Handler{store: st, cfg: cfg}
}

// dbCtx bounds every store call so a stalled database cannot pin a
// request forever.
func dbCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 10*time.Second)
}

// currentUserID reads the authenticated user's id set by the auth
// middleware. A missing or malformed id means the gate was bypassed
// or the token was forged, so treat it as unauthenticated.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.UserIDKey))
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, utils.KindUnauthenticated, "Invalid user ID in token")
		return primitive.NilObjectID, false
	}
	return userID, true
}
