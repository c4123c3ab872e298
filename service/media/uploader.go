package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"golang.org/x/sync/errgroup"
)

// MaxFileSize is the per-file ceiling enforced before any network call.
const MaxFileSize = 10 << 20 // 10 MiB

// Kind selects the provider resource type for an upload.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindAuto  Kind = "auto"
)

var allowedTypes = map[string]struct{}{
	"image/jpeg":    {},
	"image/png":     {},
	"image/gif":     {},
	"image/webp":    {},
	"image/svg+xml": {},

	"video/ogg":       {},
	"video/quicktime": {},
	"video/x-msvideo": {},
	"video/mp4":       {},
	"video/webm":      {},

	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},

	"audio/mpeg": {},
	"audio/ogg":  {},
	"audio/wav":  {},
}

var (
	ErrEmptyFile    = errors.New("file buffer is empty")
	ErrFileTooLarge = fmt.Errorf("file size exceeds maximum limit of %d MB", MaxFileSize/(1<<20))
)

// UnsupportedTypeError reports a declared MIME type outside the allow-list.
type UnsupportedTypeError struct {
	MimeType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("file type %s is not allowed", e.MimeType)
}

// UploadError carries the provider's diagnostic for a failed upload.
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed: %s", e.Reason)
}

// File is one buffered multipart file with its declared MIME type.
type File struct {
	Data     []byte
	MimeType string
}

type uploadFunc func(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)

// Uploader forwards validated files to the object-storage provider and
// returns durable public URLs. It keeps nothing locally and never retries.
type Uploader struct {
	upload uploadFunc
}

// NewUploader connects to the provider configured through CLOUDINARY_URL.
func NewUploader() (*Uploader, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, err
	}
	return &Uploader{upload: cld.Upload.Upload}, nil
}

// Upload sends one file to the provider and returns its public URL.
// Validation happens before any network call.
func (u *Uploader) Upload(ctx context.Context, file File, kind Kind) (string, error) {
	if len(file.Data) == 0 {
		return "", ErrEmptyFile
	}
	if _, ok := allowedTypes[file.MimeType]; !ok {
		return "", &UnsupportedTypeError{MimeType: file.MimeType}
	}
	if len(file.Data) > MaxFileSize {
		return "", ErrFileTooLarge
	}

	result, err := u.upload(ctx, bytes.NewReader(file.Data), uploader.UploadParams{
		ResourceType: string(kind),
	})
	if err != nil {
		return "", &UploadError{Reason: err.Error()}
	}
	if result.Error.Message != "" {
		return "", &UploadError{Reason: result.Error.Message}
	}
	if result.SecureURL == "" {
		return "", &UploadError{Reason: "secure URL is missing"}
	}

	return result.SecureURL, nil
}

// UploadBatch uploads all files of one kind concurrently. The first failure
// fails the whole batch; on success the returned URLs keep input order.
func (u *Uploader) UploadBatch(ctx context.Context, files []File, kind Kind) ([]string, error) {
	urls := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			url, err := u.Upload(ctx, file, kind)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
