package handlers

import (
	"errors"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inkwell/models"
	"inkwell/store"
	"inkwell/utils"
)

type addPostRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

type postsByIdsRequest struct {
	PostIDs []string `json:"postIds" binding:"required"`
}

// AddPost creates a post owned by the authenticated user and appends
// its reference to the user's post list.
func (h *Handler) AddPost(c *gin.Context) {
	var req addPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.KindValidationFailed, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.store.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Fail(c, http.StatusNotFound, utils.KindNotFound, "User not found")
			return
		}
		utils.Sugar.Errorf("addPost: fetching user: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Database error")
		return
	}

	seq, err := h.store.Posts.NextSeq(ctx)
	if err != nil {
		utils.Sugar.Errorf("addPost: allocating id: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Error creating post")
		return
	}

	post := models.Post{
		ID:       primitive.NewObjectID(),
		Seq:      seq,
		Title:    utils.Sanitize(req.Title),
		Content:  utils.Sanitize(req.Content),
		Category: utils.Sanitize(req.Category),
		Image:    req.Image,
		UserID:   userID,
		Date:     time.Now().Unix(),
	}

	if err := h.store.Posts.Create(ctx, &post); err != nil {
		utils.Sugar.Errorf("addPost: inserting post: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Error creating post")
		return
	}

	if err := h.store.Users.AppendPost(ctx, userID, post.ID); err != nil {
		utils.Sugar.Errorf("addPost: linking post to user: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Error creating post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "title": post.Title})
}

// ListPosts returns one page of posts joined with author details,
// newest first, plus page bookkeeping.
func (h *Handler) ListPosts(c *gin.Context) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		utils.Fail(c, http.StatusBadRequest, utils.KindValidationFailed, "page must be a positive integer")
		return
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "5"), 10, 64)
	if err != nil || limit < 1 {
		utils.Fail(c, http.StatusBadRequest, utils.KindValidationFailed, "limit must be a positive integer")
		return
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	posts, total, err := h.store.Posts.List(ctx, page, limit)
	if err != nil {
		utils.Sugar.Errorf("listPosts: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Error fetching posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":       posts,
		"totalPages":  int64(math.Ceil(float64(total) / float64(limit))),
		"currentPage": page,
	})
}

// LatestPosts returns the six newest posts without the author join.
func (h *Handler) LatestPosts(c *gin.Context) {
	ctx, cancel := dbCtx(c)
	defer cancel()

	posts, err := h.store.Posts.Latest(ctx, 6)
	if err != nil {
		utils.Sugar.Errorf("latestPosts: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Error fetching latest posts")
		return
	}

	c.JSON(http.StatusOK, posts)
}

// PostsByCategory returns all posts whose category matches exactly,
// joined with author details.
func (h *Handler) PostsByCategory(c *gin.Context) {
	ctx, cancel := dbCtx(c)
	defer cancel()

	posts, err := h.store.Posts.ByCategory(ctx, c.Param("category"))
	if err != nil {
		utils.Sugar.Errorf("postsByCategory: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Error fetching posts by category")
		return
	}

	c.JSON(http.StatusOK, posts)
}

// PostsByIds resolves a list of post ids to hydrated posts. Invalid
// or unknown ids are silently dropped.
func (h *Handler) PostsByIds(c *gin.Context) {
	var req postsByIdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.KindValidationFailed, err.Error())
		return
	}

	ids := make([]primitive.ObjectID, 0, len(req.PostIDs))
	for _, raw := range req.PostIDs {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			ids = append(ids, id)
		}
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	posts, err := h.store.Posts.ByIDs(ctx, ids)
	if err != nil {
		utils.Sugar.Errorf("postsByIds: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Error fetching posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

// MyPosts returns the authenticated user's stored post references,
// not hydrated documents; clients resolve them via PostsByIds.
func (h *Handler) MyPosts(c *gin.Context) {
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
		utils.Sugar.Errorf("myPosts: fetching user: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Error fetching user posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": user.Posts})
}

// UpdatePost applies a partial owner-checked update from a multipart
// form; a newly uploaded image replaces the stored image URL.
func (h *Handler) UpdatePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.KindValidationFailed, "Invalid post ID")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	post, err := h.store.Posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Fail(c, http.StatusNotFound, utils.KindNotFound, "Post not found")
			return
		}
		utils.Sugar.Errorf("updatePost: fetching post: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Error updating post")
		return
	}

	if post.UserID != userID {
		utils.Fail(c, http.StatusForbidden, utils.KindForbidden, "Unauthorized action")
		return
	}

	if title := c.PostForm("title"); title != "" {
		post.Title = utils.Sanitize(title)
	}
	if content := c.PostForm("content"); content != "" {
		post.Content = utils.Sanitize(content)
	}
	if category := c.PostForm("category"); category != "" {
		post.Category = utils.Sanitize(category)
	}

	if file, ferr := c.FormFile("image"); ferr == nil {
		name, serr := utils.SaveUpload(file, filepath.Join(h.cfg.UploadDir, "images"), "image")
		if serr != nil {
			utils.Sugar.Errorf("updatePost: saving image: %v", serr)
			utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Failed to save image")
			return
		}
		post.Image = h.cfg.PublicBaseURL + "/images/" + name
	}

	if err := h.store.Posts.Update(ctx, post); err != nil {
		utils.Sugar.Errorf("updatePost: persisting post: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Error updating post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}
