package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/wavefeed/wavefeed/cmd/models"
	"github.com/wavefeed/wavefeed/cmd/utils"
	"github.com/wavefeed/wavefeed/service/media"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PostStore is the persistence surface the handlers mutate posts through.
type PostStore interface {
	Insert(post *models.Post) error
	FindByID(id uint) (*models.Post, error)
	FindAllNewestFirst() ([]models.Post, error)
	Save(post *models.Post) error
	Delete(post *models.Post) error
}

// MediaUploader turns uploaded files into durable provider URLs.
type MediaUploader interface {
	UploadBatch(ctx context.Context, files []media.File, kind media.Kind) ([]string, error)
}

type PostHandler struct {
	store    PostStore
	uploader MediaUploader
}

func NewPostHandler(store PostStore, uploader MediaUploader) *PostHandler {
	return &PostHandler{store: store, uploader: uploader}
}

func (h *PostHandler) RegisterRoutes(router *mux.Router) {
	// Post routes
	router.HandleFunc("/post", utils.AuthMiddleware(h.CreatePost)).Methods("POST")
	router.HandleFunc("/post", utils.AuthMiddleware(h.GetPosts)).Methods("GET")
	router.HandleFunc("/post/{id}", utils.AuthMiddleware(h.GetPost)).Methods("GET")
	router.HandleFunc("/post/{id}", utils.AuthMiddleware(h.UpdatePost)).Methods("PUT")
	router.HandleFunc("/post/{id}", utils.AuthMiddleware(h.DeletePost)).Methods("DELETE")

	// Like route toggles membership, one route for both directions
	router.HandleFunc("/post/{id}/like", utils.AuthMiddleware(h.LikePost)).Methods("POST")

	// Comment routes
	router.HandleFunc("/post/{id}/comment", utils.AuthMiddleware(h.AddComment)).Methods("POST")
	router.HandleFunc("/post/{id}/comment/{commentId}", utils.AuthMiddleware(h.DeleteComment)).Methods("DELETE")
}

type updatePostPayload struct {
	Content string `json:"content" validate:"required"`
}

type addCommentPayload struct {
	Text string `json:"text" validate:"required"`
}

func parsePostID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// loadPost fetches the post or writes the 404/500 response itself.
func (h *PostHandler) loadPost(w http.ResponseWriter, id uint) (*models.Post, bool) {
	post, err := h.store.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Post not found")
		} else {
			log.Error().Err(err).Uint("post_id", id).Msg("Failed to load post")
			utils.WriteError(w, http.StatusInternalServerError, "Failed to load post")
		}
		return nil, false
	}
	return post, true
}

func readMultipartFiles(headers []*multipart.FileHeader) ([]media.File, error) {
	files := make([]media.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, media.File{
			Data:     data,
			MimeType: header.Header.Get("Content-Type"),
		})
	}
	return files, nil
}

// writeUploadFailure maps uploader errors onto statuses. Validation failures
// keep their diagnostic; provider failures get logged and a generic 500.
func writeUploadFailure(w http.ResponseWriter, kind string, err error) {
	var typeErr *media.UnsupportedTypeError
	switch {
	case errors.Is(err, media.ErrEmptyFile):
		utils.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Failed to upload %s: %v", kind, err))
	case errors.As(err, &typeErr):
		utils.WriteError(w, http.StatusUnsupportedMediaType, fmt.Sprintf("Failed to upload %s: %v", kind, err))
	case errors.Is(err, media.ErrFileTooLarge):
		utils.WriteError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Failed to upload %s: %v", kind, err))
	default:
		log.Error().Err(err).Str("kind", kind).Msg("Media upload failed")
		utils.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to upload %s", kind))
	}
}

// CreatePost uploads the attached media and inserts a new post
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(50 << 20); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Error parsing form")
		return
	}

	content := r.FormValue("content")
	if content == "" {
		utils.WriteError(w, http.StatusBadRequest, "Content is required")
		return
	}

	imageHeaders := r.MultipartForm.File["images"]
	videoHeaders := r.MultipartForm.File["videos"]

	if len(imageHeaders) > models.MaxImagesPerPost {
		utils.WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("A maximum of %d images is allowed", models.MaxImagesPerPost))
		return
	}
	if len(videoHeaders) > models.MaxVideosPerPost {
		utils.WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("A maximum of %d videos is allowed", models.MaxVideosPerPost))
		return
	}
	if len(imageHeaders)+len(videoHeaders) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "At least one media file is required")
		return
	}

	imageFiles, err := readMultipartFiles(imageHeaders)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Error processing images")
		return
	}
	videoFiles, err := readMultipartFiles(videoHeaders)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Error processing videos")
		return
	}

	imageURLs, err := h.uploader.UploadBatch(r.Context(), imageFiles, media.KindImage)
	if err != nil {
		writeUploadFailure(w, "images", err)
		return
	}
	videoURLs, err := h.uploader.UploadBatch(r.Context(), videoFiles, media.KindVideo)
	if err != nil {
		writeUploadFailure(w, "videos", err)
		return
	}

	post := models.Post{
		AuthorID: userID,
		Content:  content,
		Media: datatypes.NewJSONType(models.MediaBundle{
			Images: imageURLs,
			Videos: videoURLs,
		}),
		Likes:    datatypes.NewJSONSlice([]uint{}),
		Comments: datatypes.NewJSONSlice([]models.Comment{}),
	}

	if err := h.store.Insert(&post); err != nil {
		log.Error().Err(err).Msg("Failed to create post")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	created, err := h.store.FindByID(post.ID)
	if err != nil {
		log.Error().Err(err).Uint("post_id", post.ID).Msg("Failed to load created post")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, "Post created successfully", map[string]interface{}{"post": created})
}

// GetPosts returns every post, newest first
func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.FindAllNewestFirst()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve posts")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to retrieve posts")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Posts retrieved successfully", map[string]interface{}{"posts": posts})
}

// GetPost returns one post with author and comment authors resolved
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, ok := h.loadPost(w, id)
	if !ok {
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Post retrieved successfully", map[string]interface{}{"post": post})
}

// UpdatePost replaces the content of a post
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var payload updatePostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Content is required")
		return
	}

	post, ok := h.loadPost(w, id)
	if !ok {
		return
	}

	post.Content = payload.Content
	if err := h.store.Save(post); err != nil {
		log.Error().Err(err).Uint("post_id", id).Msg("Failed to update post")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update post")
		return
	}

	updated, ok := h.loadPost(w, id)
	if !ok {
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Post updated successfully", map[string]interface{}{"post": updated})
}

// DeletePost removes a post and, with it, its embedded comments
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, ok := h.loadPost(w, id)
	if !ok {
		return
	}

	if err := h.store.Delete(post); err != nil {
		log.Error().Err(err).Uint("post_id", id).Msg("Failed to delete post")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Post deleted successfully", map[string]interface{}{"post": post})
}

// LikePost toggles the caller's like on a post
func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := parsePostID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, ok := h.loadPost(w, id)
	if !ok {
		return
	}

	liked := post.ToggleLike(userID)
	if err := h.store.Save(post); err != nil {
		log.Error().Err(err).Uint("post_id", id).Msg("Failed to save like")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to like post")
		return
	}

	updated, ok := h.loadPost(w, id)
	if !ok {
		return
	}

	message := "Post unliked successfully"
	if liked {
		message = "Post liked successfully"
	}
	utils.WriteSuccess(w, http.StatusOK, message, map[string]interface{}{"post": updated})
}

// AddComment appends a comment authored by the caller
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := parsePostID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var payload addCommentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Comment text is required")
		return
	}

	post, ok := h.loadPost(w, id)
	if !ok {
		return
	}

	post.AddComment(userID, payload.Text)
	if err := h.store.Save(post); err != nil {
		log.Error().Err(err).Uint("post_id", id).Msg("Failed to save comment")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	updated, ok := h.loadPost(w, id)
	if !ok {
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Comment added successfully", map[string]interface{}{"post": updated})
}

// DeleteComment removes a comment; only its author may do so
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := parsePostID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}
	commentID := mux.Vars(r)["commentId"]

	post, ok := h.loadPost(w, id)
	if !ok {
		return
	}

	comment, found := post.FindComment(commentID)
	if !found {
		utils.WriteError(w, http.StatusNotFound, "Comment not found")
		return
	}
	if comment.AuthorID != userID {
		utils.WriteError(w, http.StatusForbidden, "Unauthorized to delete this comment")
		return
	}

	post.RemoveComment(commentID)
	if err := h.store.Save(post); err != nil {
		log.Error().Err(err).Uint("post_id", id).Msg("Failed to delete comment")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}

	updated, ok := h.loadPost(w, id)
	if !ok {
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Comment deleted successfully", map[string]interface{}{"post": updated})
}
