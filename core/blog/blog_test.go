package blog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/goto/folio/core/blog"
	"github.com/goto/folio/internal/errors"
)

func TestEntityBlog(t *testing.T) {
	publishedAt := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	validSpec := func() *blog.Spec {
		return &blog.Spec{
			Title:       "  Go Generics Explained ",
			Description: "what type parameters buy you",
			Content:     "# Intro\nbody",
			Category:    "golang",
			Tags:        "go  generics\ttypes",
			References: []blog.ReferenceSpec{
				{URL: "https://go.dev/doc/tutorial/generics", Title: "Tutorial"},
			},
		}
	}

	t.Run("NewBlog", func(t *testing.T) {
		t.Run("returns error when spec is nil", func(t *testing.T) {
			b, err := blog.NewBlog(nil, "admin@example.com", publishedAt)

			assert.Nil(t, b)
			assert.True(t, errors.IsErrorType(err, errors.ErrInvalidArgument))
		})
		t.Run("returns error when title is blank", func(t *testing.T) {
			spec := validSpec()
			spec.Title = "   "

			b, err := blog.NewBlog(spec, "admin@example.com", publishedAt)

			assert.Nil(t, b)
			assert.True(t, errors.IsErrorType(err, errors.ErrInvalidArgument))
		})
		t.Run("returns error when reference url is missing", func(t *testing.T) {
			spec := validSpec()
			spec.References = append(spec.References, blog.ReferenceSpec{Title: "no url"})

			_, err := blog.NewBlog(spec, "admin@example.com", publishedAt)

			assert.True(t, errors.IsErrorType(err, errors.ErrInvalidArgument))
		})
		t.Run("returns error when reference url is not absolute", func(t *testing.T) {
			spec := validSpec()
			spec.References[0].URL = "go.dev"

			_, err := blog.NewBlog(spec, "admin@example.com", publishedAt)

			assert.True(t, errors.IsErrorType(err, errors.ErrInvalidArgument))
		})
		t.Run("returns error when author is empty", func(t *testing.T) {
			_, err := blog.NewBlog(validSpec(), "", publishedAt)

			assert.NotNil(t, err)
			assert.EqualError(t, err, "blog author is empty")
		})
		t.Run("creates blog with derived fields", func(t *testing.T) {
			b, err := blog.NewBlog(validSpec(), "admin@example.com", publishedAt)

			assert.Nil(t, err)
			assert.False(t, b.ID().IsEmpty())
			assert.Equal(t, "Go Generics Explained", b.Title())
			assert.Equal(t, blog.Slug("go-generics-explained"), b.Slug())
			assert.Equal(t, blog.Tags{"go", "generics", "types"}, b.Tags())
			assert.Equal(t, "golang", b.Category())
			assert.Equal(t, "admin@example.com", b.UserID())
			assert.Equal(t, publishedAt, b.PublishedAt())
		})
	})
	t.Run("Update", func(t *testing.T) {
		t.Run("keeps blog unchanged on invalid spec", func(t *testing.T) {
			b, err := blog.NewBlog(validSpec(), "admin@example.com", publishedAt)
			assert.Nil(t, err)

			err = b.Update(&blog.Spec{})

			assert.NotNil(t, err)
			assert.Equal(t, "Go Generics Explained", b.Title())
		})
		t.Run("moves slug with the title", func(t *testing.T) {
			b, err := blog.NewBlog(validSpec(), "admin@example.com", publishedAt)
			assert.Nil(t, err)
			id := b.ID()

			spec := validSpec()
			spec.Title = "Generics In Practice"
			err = b.Update(spec)

			assert.Nil(t, err)
			assert.Equal(t, id, b.ID())
			assert.Equal(t, blog.Slug("generics-in-practice"), b.Slug())
		})
	})
	t.Run("FromStorage", func(t *testing.T) {
		t.Run("keeps stored slug", func(t *testing.T) {
			id := blog.NewID()
			b := blog.FromStorage(id, validSpec(), "custom-slug", "/uploads/a.png", "admin@example.com", publishedAt)

			assert.Equal(t, id, b.ID())
			assert.Equal(t, blog.Slug("custom-slug"), b.Slug())
			assert.Equal(t, "/uploads/a.png", b.CoverImageURL())
		})
	})
	t.Run("PublishedAgo", func(t *testing.T) {
		b, err := blog.NewBlog(validSpec(), "admin@example.com", publishedAt)
		assert.Nil(t, err)

		cases := map[time.Duration]string{
			3 * time.Hour:       "Today",
			2*24*time.Hour + 1:  "2 days ago",
			15 * 24 * time.Hour: "2 weeks ago",
			45 * 24 * time.Hour: "3/10/2024",
		}
		for elapsed, expected := range cases {
			assert.Equal(t, expected, b.PublishedAgo(publishedAt.Add(elapsed)))
		}
	})
}

func TestIDFrom(t *testing.T) {
	t.Run("returns error for malformed id", func(t *testing.T) {
		_, err := blog.IDFrom("not-a-uuid")

		assert.True(t, errors.IsErrorType(err, errors.ErrInvalidArgument))
	})
	t.Run("parses valid id", func(t *testing.T) {
		id := blog.NewID()

		parsed, err := blog.IDFrom(id.String())

		assert.Nil(t, err)
		assert.Equal(t, id, parsed)
	})
}

func TestRevisionIDFrom(t *testing.T) {
	for _, raw := range []string{"", "abc", "1.5", "0", "-3"} {
		_, err := blog.RevisionIDFrom(raw)
		assert.True(t, errors.IsErrorType(err, errors.ErrInvalidArgument), raw)
	}

	id, err := blog.RevisionIDFrom("42")
	assert.Nil(t, err)
	assert.Equal(t, blog.RevisionID(42), id)
	assert.Equal(t, "42", id.String())
}

func TestSlugFrom(t *testing.T) {
	assert.Equal(t, blog.Slug("hello-world"), blog.SlugFrom("Hello World"))
	assert.Equal(t, blog.Slug("trimmed"), blog.SlugFrom("  Trimmed  "))
}
