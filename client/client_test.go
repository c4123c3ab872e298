package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavefeed/wavefeed/cmd/models"
	"gorm.io/gorm"
)

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func TestFetchPosts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/post", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, true, "Posts retrieved successfully", map[string]interface{}{
			"posts": []models.Post{
				{Model: gorm.Model{ID: 2}, Content: "newer"},
				{Model: gorm.Model{ID: 1}, Content: "older"},
			},
		})
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	posts, err := c.FetchPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Content)
}

func TestToggleLike(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/post/5/like", r.URL.Path)
		writeEnvelope(w, http.StatusOK, true, "Post liked successfully", map[string]interface{}{
			"post": models.Post{Model: gorm.Model{ID: 5}, Likes: []uint{9}},
		})
	}))
	defer server.Close()

	post, err := New(server.URL, "tok").ToggleLike(5)
	require.NoError(t, err)
	assert.Equal(t, []uint{9}, []uint(post.Likes))
}

func TestAddCommentSendsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "hi there", payload["text"])
		writeEnvelope(w, http.StatusOK, true, "Comment added successfully", map[string]interface{}{
			"post": models.Post{Model: gorm.Model{ID: 5}},
		})
	}))
	defer server.Close()

	_, err := New(server.URL, "tok").AddComment(5, "hi there")
	require.NoError(t, err)
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, false, "Post not found", nil)
	}))
	defer server.Close()

	_, err := New(server.URL, "tok").FetchPost(99)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Post not found", apiErr.Message)
}

func TestCreatePostCapsBatchesBeforeSubmit(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	c := New(server.URL, "tok")

	paths := make([]string, models.MaxImagesPerPost+1)
	for i := range paths {
		paths[i] = fmt.Sprintf("img%d.png", i)
	}
	_, err := c.CreatePost("hello", paths, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum of 5 images")

	_, err = c.CreatePost("hello", nil, []string{"a.mp4", "b.mp4", "c.mp4"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum of 2 videos")

	assert.Zero(t, requests, "capped submissions must never reach the network")
}

func TestCreatePostBuildsMultipart(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "pic.png")
	require.NoError(t, os.WriteFile(imgPath, []byte("png-bytes"), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "hello", r.FormValue("content"))
		require.Len(t, r.MultipartForm.File["images"], 1)
		header := r.MultipartForm.File["images"][0]
		assert.Equal(t, "pic.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		writeEnvelope(w, http.StatusCreated, true, "Post created successfully", map[string]interface{}{
			"post": models.Post{Model: gorm.Model{ID: 1}, Content: "hello"},
		})
	}))
	defer server.Close()

	post, err := New(server.URL, "tok").CreatePost("hello", []string{imgPath}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
}
