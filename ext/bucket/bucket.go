package bucket

import (
	"context"
	"net/http"
	neturl "net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	_ "gocloud.dev/blob/s3blob"   // s3:// buckets

	"github.com/goto/folio/core/blog"
	_ "github.com/goto/folio/ext/bucket/ossblob" // oss:// buckets
	"github.com/goto/folio/internal/errors"
)

const (
	uploadsDir = "uploads"
	megabyte   = 1 << 20
)

// ImageStore keeps blog cover images in a blob bucket
type ImageStore struct {
	bucket     *blob.Bucket
	publicPath string
	maxSize    int64
}

// Open opens the bucket at url (file://, mem://, s3://, gs:// or oss://)
func Open(ctx context.Context, url, publicPath string, maxSizeMB int) (*ImageStore, error) {
	if err := ensureDir(url); err != nil {
		return nil, errors.InternalError(blog.EntityImage, "unable to create upload directory", err)
	}

	b, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, errors.InternalError(blog.EntityImage, "unable to open upload bucket", err)
	}
	return NewImageStore(b, publicPath, maxSizeMB), nil
}

// ensureDir creates the directory behind a file:// bucket, fileblob refuses missing ones
func ensureDir(rawURL string) error {
	u, err := neturl.Parse(rawURL)
	if err != nil || u.Scheme != "file" {
		return nil
	}
	return os.MkdirAll(filepath.FromSlash(u.Path), 0o755)
}

func NewImageStore(b *blob.Bucket, publicPath string, maxSizeMB int) *ImageStore {
	return &ImageStore{
		bucket:     b,
		publicPath: "/" + strings.Trim(publicPath, "/"),
		maxSize:    int64(maxSizeMB) * megabyte,
	}
}

// Upload writes the image under a random name and returns its public url
func (s *ImageStore) Upload(ctx context.Context, upload *blog.Upload) (string, error) {
	size := int64(len(upload.Content))
	if size == 0 {
		return "", errors.InvalidArgument(blog.EntityImage, "cover image is empty")
	}
	if size > s.maxSize {
		return "", errors.InvalidArgument(blog.EntityImage, "cover image of "+humanize.Bytes(uint64(size))+
			" exceeds limit of "+humanize.Bytes(uint64(s.maxSize)))
	}

	contentType := http.DetectContentType(upload.Content)
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.InvalidArgument(blog.EntityImage, "cover image has unsupported content type "+contentType)
	}

	key := path.Join(uploadsDir, uuid.NewString()+strings.ToLower(filepath.Ext(upload.Filename)))
	err := s.bucket.WriteAll(ctx, key, upload.Content, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.InternalError(blog.EntityImage, "unable to store cover image", err)
	}

	return path.Join(s.publicPath, key), nil
}

// Handler serves the stored uploads below the public path
func (s *ImageStore) Handler() http.Handler {
	return http.StripPrefix(s.publicPath, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if !strings.HasPrefix(key, uploadsDir+"/") {
			http.NotFound(w, r)
			return
		}

		attrs, err := s.bucket.Attributes(r.Context(), key)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		content, err := s.bucket.ReadAll(r.Context(), key)
		if err != nil {
			http.Error(w, "unable to read image", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", attrs.ContentType)
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Write(content)
	}))
}

func (s *ImageStore) PublicPath() string {
	return s.publicPath
}

func (s *ImageStore) Close() error {
	return s.bucket.Close()
}
