package blog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goto/folio/internal/errors"
)

const (
	EntityBlog = "blog"

	day = 24 * time.Hour
)

type ID uuid.UUID

func NewID() ID {
	return ID(uuid.New())
}

func IDFrom(raw string) (ID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ID{}, errors.InvalidArgument(EntityBlog, "invalid blog id "+raw)
	}
	return ID(id), nil
}

func (i ID) UUID() uuid.UUID {
	return uuid.UUID(i)
}

func (i ID) String() string {
	return uuid.UUID(i).String()
}

func (i ID) IsEmpty() bool {
	return uuid.UUID(i) == uuid.Nil
}

type Slug string

// SlugFrom lower cases the title and replaces spaces with dashes
func SlugFrom(title string) Slug {
	cleaned := strings.ToLower(strings.TrimSpace(title))
	return Slug(strings.ReplaceAll(cleaned, " ", "-"))
}

func (s Slug) String() string {
	return string(s)
}

type Tags []string

func TagsFrom(raw string) Tags {
	return strings.Fields(raw)
}

func (t Tags) String() string {
	return strings.Join(t, " ")
}

type Blog struct {
	id          ID
	title       string
	description string
	slug        Slug
	content     string
	category    string
	tags        Tags

	coverImageURL string
	publishedAt   time.Time
	userID        string

	images     []*Image
	references []*Reference
	revisions  []*Revision
}

func NewBlog(spec *Spec, userID string, publishedAt time.Time) (*Blog, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(userID) == "" {
		return nil, errors.InvalidArgument(EntityBlog, "blog author is empty")
	}

	b := &Blog{
		id:          NewID(),
		userID:      userID,
		publishedAt: publishedAt.UTC(),
	}
	b.apply(spec)
	return b, nil
}

// FromStorage rebuilds a blog read back from a store, it skips validation
func FromStorage(id ID, spec *Spec, slug Slug, coverImageURL, userID string, publishedAt time.Time) *Blog {
	b := &Blog{
		id:            id,
		userID:        userID,
		publishedAt:   publishedAt,
		coverImageURL: coverImageURL,
	}
	b.apply(spec)
	b.slug = slug
	return b
}

// Update replaces the editable fields with spec, the slug follows the title
func (b *Blog) Update(spec *Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	b.apply(spec)
	return nil
}

func (b *Blog) apply(spec *Spec) {
	b.title = strings.TrimSpace(spec.Title)
	b.description = spec.Description
	b.content = spec.Content
	b.category = spec.Category
	b.tags = TagsFrom(spec.Tags)
	b.slug = SlugFrom(spec.Title)
}

func (b *Blog) ID() ID                 { return b.id }
func (b *Blog) Title() string          { return b.title }
func (b *Blog) Description() string    { return b.description }
func (b *Blog) Slug() Slug             { return b.slug }
func (b *Blog) Content() string        { return b.content }
func (b *Blog) Category() string       { return b.category }
func (b *Blog) Tags() Tags             { return b.tags }
func (b *Blog) CoverImageURL() string  { return b.coverImageURL }
func (b *Blog) PublishedAt() time.Time { return b.publishedAt }
func (b *Blog) UserID() string         { return b.userID }
func (b *Blog) Images() []*Image       { return b.images }

func (b *Blog) References() []*Reference { return b.references }
func (b *Blog) Revisions() []*Revision   { return b.revisions }

func (b *Blog) SetCoverImageURL(url string) {
	b.coverImageURL = url
}

func (b *Blog) SetImages(images []*Image) {
	b.images = images
}

func (b *Blog) SetReferences(references []*Reference) {
	b.references = references
}

func (b *Blog) SetRevisions(revisions []*Revision) {
	b.revisions = revisions
}

// PublishedAgo describes the publish date relative to now
func (b *Blog) PublishedAgo(now time.Time) string {
	elapsed := now.Sub(b.publishedAt)
	switch {
	case elapsed < day:
		return "Today"
	case elapsed < 7*day:
		return fmt.Sprintf("%d days ago", int(elapsed/day))
	case elapsed < 30*day:
		return fmt.Sprintf("%d weeks ago", int(elapsed/(7*day)))
	default:
		return b.publishedAt.Format("1/2/2006")
	}
}
