// Package client talks to the wavefeed post API and holds the feed state
// for a UI frontend.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"time"

	"github.com/wavefeed/wavefeed/cmd/models"
)

// APIError is a non-success answer from the server, carrying the
// human-readable message out of the response envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type postData struct {
	Post *models.Post `json:"post"`
}

type postsData struct {
	Posts []models.Post `json:"posts"`
}

// Client issues requests against one wavefeed server with one bearer token.
// It never retries; a failed call is reported back to the caller as-is.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(method, path string, body io.Reader, contentType string) (json.RawMessage, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{Status: resp.StatusCode}
	}
	if resp.StatusCode >= 400 || !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return env.Data, nil
}

func (c *Client) doPost(method, path string, body io.Reader, contentType string) (*models.Post, error) {
	raw, err := c.do(method, path, body, contentType)
	if err != nil {
		return nil, err
	}
	var data postData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data.Post, nil
}

// FetchPosts retrieves the whole feed, newest first.
func (c *Client) FetchPosts() ([]models.Post, error) {
	raw, err := c.do(http.MethodGet, "/post", nil, "")
	if err != nil {
		return nil, err
	}
	var data postsData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data.Posts, nil
}

func (c *Client) FetchPost(id uint) (*models.Post, error) {
	return c.doPost(http.MethodGet, fmt.Sprintf("/post/%d", id), nil, "")
}

// CreatePost submits content plus media files as multipart form data.
// Batch caps are enforced here before anything leaves the machine.
func (c *Client) CreatePost(content string, imagePaths, videoPaths []string) (*models.Post, error) {
	if len(imagePaths) > models.MaxImagesPerPost {
		return nil, fmt.Errorf("you can only upload a maximum of %d images", models.MaxImagesPerPost)
	}
	if len(videoPaths) > models.MaxVideosPerPost {
		return nil, fmt.Errorf("you can only upload a maximum of %d videos", models.MaxVideosPerPost)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("content", content); err != nil {
		return nil, err
	}
	for _, path := range imagePaths {
		if err := attachFile(writer, "images", path); err != nil {
			return nil, err
		}
	}
	for _, path := range videoPaths {
		if err := attachFile(writer, "videos", path); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return c.doPost(http.MethodPost, "/post", &buf, writer.FormDataContentType())
}

func (c *Client) UpdatePost(id uint, content string) (*models.Post, error) {
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, err
	}
	return c.doPost(http.MethodPut, fmt.Sprintf("/post/%d", id), bytes.NewReader(body), "application/json")
}

func (c *Client) DeletePost(id uint) (*models.Post, error) {
	return c.doPost(http.MethodDelete, fmt.Sprintf("/post/%d", id), nil, "")
}

func (c *Client) ToggleLike(id uint) (*models.Post, error) {
	return c.doPost(http.MethodPost, fmt.Sprintf("/post/%d/like", id), nil, "")
}

func (c *Client) AddComment(id uint, text string) (*models.Post, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}
	return c.doPost(http.MethodPost, fmt.Sprintf("/post/%d/comment", id), bytes.NewReader(body), "application/json")
}

func (c *Client) DeleteComment(id uint, commentID string) (*models.Post, error) {
	return c.doPost(http.MethodDelete, fmt.Sprintf("/post/%d/comment/%s", id, commentID), nil, "")
}

func attachFile(writer *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filepath.Base(path)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}
