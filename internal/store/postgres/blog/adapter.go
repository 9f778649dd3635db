package blog

import (
	"time"

	"github.com/google/uuid"

	"github.com/goto/folio/core/blog"
)

const (
	blogColumns     = `id, title, description, slug, content, category, tags, cover_image_url, user_id, published_at`
	imageColumns    = `id, blog_id, url, user_id`
	referenceColums = `id, blog_id, url, title, description`
	revisionColumns = `id, blog_id, content, edited_by, created_at`
)

type Blog struct {
	ID            uuid.UUID
	Title         string
	Description   string
	Slug          string
	Content       string
	Category      string
	Tags          []string
	CoverImageURL string
	UserID        string
	PublishedAt   time.Time
}

func (b Blog) toBlog() *blog.Blog {
	spec := &blog.Spec{
		Title:       b.Title,
		Description: b.Description,
		Content:     b.Content,
		Category:    b.Category,
		Tags:        blog.Tags(b.Tags).String(),
	}
	return blog.FromStorage(blog.ID(b.ID), spec, blog.Slug(b.Slug), b.CoverImageURL, b.UserID, b.PublishedAt)
}

type Image struct {
	ID     uuid.UUID
	BlogID uuid.UUID
	URL    string
	UserID string
}

func (i Image) toImage() *blog.Image {
	return blog.ImageFromStorage(i.ID, blog.ID(i.BlogID), i.URL, i.UserID)
}

type Reference struct {
	ID          int
	BlogID      uuid.UUID
	URL         string
	Title       string
	Description string
}

func (r Reference) toReference() *blog.Reference {
	return blog.ReferenceFromStorage(r.ID, blog.ID(r.BlogID), r.URL, r.Title, r.Description)
}

type Revision struct {
	ID        int
	BlogID    uuid.UUID
	Content   string
	EditedBy  string
	CreatedAt time.Time
}

func (r Revision) toRevision() *blog.Revision {
	return blog.RevisionFromStorage(blog.RevisionID(r.ID), blog.ID(r.BlogID), r.Content, r.EditedBy, r.CreatedAt)
}
