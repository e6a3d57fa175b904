package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inkwell/models"
	"inkwell/store"
	"inkwell/utils"
)

type signupRequest struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a new user from a multipart form with an optional
// profileImage file and returns a fresh token.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.KindValidationFailed, err.Error())
		return
	}

	profileImage := ""
	if file, err := c.FormFile("profileImage"); err == nil {
		name, err := utils.SaveUpload(file, filepath.Join(h.cfg.UploadDir, "profileImages"), "profileImage")
		if err != nil {
			utils.Sugar.Errorf("signup: saving avatar: %v", err)
			utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Failed to save profile image")
			return
		}
		profileImage = h.cfg.PublicBaseURL + "/profileImages/" + name
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Sugar.Errorf("signup: hashing password: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Failed to hash password")
		return
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Username:     req.Username,
		Email:        req.Email,
		Password:     hashed,
		ProfileImage: profileImage,
		Posts:        []primitive.ObjectID{},
		Date:         time.Now().Unix(),
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.store.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			utils.Fail(c, http.StatusConflict, utils.KindConflict, "Existing user found with same email")
			return
		}
		utils.Sugar.Errorf("signup: creating user: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID.Hex(), time.Duration(h.cfg.TokenTTLH)*time.Hour)
	if err != nil {
		utils.Sugar.Errorf("signup: signing token: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// Login checks credentials against the stored bcrypt hash and returns
// a token plus the user's avatar URL.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.KindValidationFailed, err.Error())
		return
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	user, err := h.store.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Fail(c, http.StatusUnauthorized, utils.KindUnauthenticated, "Wrong email or password")
			return
		}
		utils.Sugar.Errorf("login: fetching user: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Database error")
		return
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		utils.Fail(c, http.StatusUnauthorized, utils.KindUnauthenticated, "Wrong email or password")
		return
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID.Hex(), time.Duration(h.cfg.TokenTTLH)*time.Hour)
	if err != nil {
		utils.Sugar.Errorf("login: signing token: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"token":        token,
		"profileImage": user.ProfileImage,
	})
}

// GetUser returns the authenticated user's document, password
// excluded. The shared auth middleware has already parsed the token.
func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	user, err := h.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Fail(c, http.StatusNotFound, utils.KindNotFound, "User not found")
			return
		}
		utils.Sugar.Errorf("getUser: fetching user: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
