package v1beta1

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/goto/folio/core/blog"
	"github.com/goto/folio/internal/errors"
)

const (
	coverImageField = "cover_image"

	formMemory = 1 << 20
)

// parseBlogForm reads a blog spec and an optional cover image from a
// multipart or url encoded form
func parseBlogForm(w http.ResponseWriter, r *http.Request, maxUpload int64) (*blog.Spec, *blog.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+formMemory)
	if err := r.ParseMultipartForm(formMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, errors.InvalidArgument(blog.EntityBlog, "invalid form: "+err.Error())
	}

	spec := &blog.Spec{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Content:     r.FormValue("content"),
		Category:    r.FormValue("category"),
		Tags:        r.FormValue("tags"),
		References:  referencesFromForm(r),
	}

	cover, err := coverFromForm(r, maxUpload)
	if err != nil {
		return nil, nil, err
	}
	return spec, cover, nil
}

// referencesFromForm reads References[i].Url fields with consecutive indices
// starting at 0, entries without url are skipped
func referencesFromForm(r *http.Request) []blog.ReferenceSpec {
	var refs []blog.ReferenceSpec
	for i := 0; ; i++ {
		prefix := fmt.Sprintf("References[%d].", i)
		if _, ok := r.Form[prefix+"Url"]; !ok {
			return refs
		}

		url := strings.TrimSpace(r.FormValue(prefix + "Url"))
		if url == "" {
			continue
		}
		refs = append(refs, blog.ReferenceSpec{
			URL:         url,
			Title:       strings.TrimSpace(r.FormValue(prefix + "Title")),
			Description: strings.TrimSpace(r.FormValue(prefix + "Description")),
		})
	}
}

func coverFromForm(r *http.Request, maxUpload int64) (*blog.Upload, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[coverImageField]) == 0 {
		return nil, nil
	}

	header := r.MultipartForm.File[coverImageField][0]
	if header.Size == 0 {
		return nil, nil
	}
	if header.Size > maxUpload {
		return nil, errors.InvalidArgument(blog.EntityImage, fmt.Sprintf("cover image of %s exceeds limit of %s",
			humanize.Bytes(uint64(header.Size)), humanize.Bytes(uint64(maxUpload))))
	}

	file, err := header.Open()
	if err != nil {
		return nil, errors.InvalidArgument(blog.EntityImage, "unable to open cover image")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.InvalidArgument(blog.EntityImage, "unable to read cover image")
	}

	return &blog.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     content,
	}, nil
}
