package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goto/salt/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/goto/folio/core/blog"
	"github.com/goto/folio/core/blog/service"
	"github.com/goto/folio/core/event"
	"github.com/goto/folio/core/event/moderator"
	folioErrors "github.com/goto/folio/internal/errors"
)

func TestBlogService(t *testing.T) {
	ctx := context.Background()
	logger := log.NewNoop()
	admin := "admin@example.com"

	spec := &blog.Spec{
		Title:    "Hello World",
		Content:  "# Hello\nfirst",
		Category: "intro",
		Tags:     "hello world",
		References: []blog.ReferenceSpec{
			{URL: "https://example.com/a", Title: "A"},
		},
	}
	cover := &blog.Upload{Filename: "cover.png", Content: []byte("png")}

	eventOfType := func(eventType event.Type) interface{} {
		return mock.MatchedBy(func(ev moderator.Event) bool {
			changed, ok := ev.(*event.BlogChanged)
			return ok && changed.Type == eventType
		})
	}
	storedBlog := func() *blog.Blog {
		return blog.FromStorage(blog.NewID(), spec, "hello-world", "", admin, time.Now().Add(-48*time.Hour))
	}

	t.Run("Create", func(t *testing.T) {
		t.Run("returns error when spec is invalid", func(t *testing.T) {
			repo := new(blogRepo)
			defer repo.AssertExpectations(t)

			svc := service.NewBlogService(logger, repo, new(revisionRepo), new(imageStore), new(renderer), new(eventHandler))
			_, err := svc.Create(ctx, admin, &blog.Spec{}, nil)

			assert.True(t, folioErrors.IsErrorType(err, folioErrors.ErrInvalidArgument))
		})
		t.Run("returns error when cover upload fails", func(t *testing.T) {
			images := new(imageStore)
			images.On("Upload", ctx, cover).Return("", folioErrors.InvalidArgument(blog.EntityImage, "too large"))
			defer images.AssertExpectations(t)

			repo := new(blogRepo)
			defer repo.AssertExpectations(t)

			svc := service.NewBlogService(logger, repo, new(revisionRepo), images, new(renderer), new(eventHandler))
			_, err := svc.Create(ctx, admin, spec, cover)

			assert.EqualError(t, err, "too large")
		})
		t.Run("returns error when repository fails", func(t *testing.T) {
			repo := new(blogRepo)
			repo.On("Create", ctx, mock.Anything).Return(folioErrors.AlreadyExists(blog.EntityBlog, "slug already taken"))
			defer repo.AssertExpectations(t)

			revisions := new(revisionRepo)
			defer revisions.AssertExpectations(t)

			svc := service.NewBlogService(logger, repo, revisions, new(imageStore), new(renderer), new(eventHandler))
			_, err := svc.Create(ctx, admin, spec, nil)

			assert.True(t, folioErrors.IsErrorType(err, folioErrors.ErrAlreadyExists))
		})
		t.Run("returns error when revision cannot be recorded", func(t *testing.T) {
			repo := new(blogRepo)
			repo.On("Create", ctx, mock.Anything).Return(nil)

			revisions := new(revisionRepo)
			revisions.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

			svc := service.NewBlogService(logger, repo, revisions, new(imageStore), new(renderer), new(eventHandler))
			_, err := svc.Create(ctx, admin, spec, nil)

			assert.ErrorContains(t, err, "revision not recorded")
		})
		t.Run("creates blog with cover, references and first revision", func(t *testing.T) {
			images := new(imageStore)
			images.On("Upload", ctx, cover).Return("/media/uploads/abc.png", nil)
			defer images.AssertExpectations(t)

			repo := new(blogRepo)
			repo.On("Create", ctx, mock.MatchedBy(func(b *blog.Blog) bool {
				return len(b.References()) == 1 && len(b.Images()) == 1
			})).Return(nil)
			defer repo.AssertExpectations(t)

			revisions := new(revisionRepo)
			revisions.On("Create", ctx, mock.MatchedBy(func(rev *blog.Revision) bool {
				return rev.Content() == spec.Content && rev.EditedBy() == admin
			})).Return(nil)
			defer revisions.AssertExpectations(t)

			events := new(eventHandler)
			events.On("HandleEvent", eventOfType(event.BlogCreated)).Return()
			defer events.AssertExpectations(t)

			svc := service.NewBlogService(logger, repo, revisions, images, new(renderer), events)
			b, err := svc.Create(ctx, admin, spec, cover)

			assert.Nil(t, err)
			assert.Equal(t, blog.Slug("hello-world"), b.Slug())
			assert.Equal(t, "/media/uploads/abc.png", b.CoverImageURL())
			assert.Equal(t, "/media/uploads/abc.png", b.Images()[0].URL())
			assert.Equal(t, "https://example.com/a", b.References()[0].URL())
		})
	})
	t.Run("Update", func(t *testing.T) {
		t.Run("returns error when blog does not exist", func(t *testing.T) {
			id := blog.NewID()
			repo := new(blogRepo)
			repo.On("Get", ctx, id).Return(nil, folioErrors.NotFound(blog.EntityBlog, "no blog"))
			defer repo.AssertExpectations(t)

			svc := service.NewBlogService(logger, repo, new(revisionRepo), new(imageStore), new(renderer), new(eventHandler))
			_, err := svc.Update(ctx, admin, id, spec, nil)

			assert.True(t, folioErrors.IsErrorType(err, folioErrors.ErrNotFound))
		})
		t.Run("updates blog, replaces references and records revision", func(t *testing.T) {
			existing := storedBlog()
			updatedSpec := &blog.Spec{
				Title:   "Hello Again",
				Content: "# Hello\nsecond",
				References: []blog.ReferenceSpec{
					{URL: "https://example.com/b"},
					{URL: "https://example.com/c"},
				},
			}

			repo := new(blogRepo)
			repo.On("Get", ctx, existing.ID()).Return(existing, nil)
			repo.On("Update", ctx, existing).Return(nil)
			defer repo.AssertExpectations(t)

			revisions := new(revisionRepo)
			revisions.On("Create", ctx, mock.MatchedBy(func(rev *blog.Revision) bool {
				return rev.Content() == "# Hello\nsecond" && rev.BlogID() == existing.ID()
			})).Return(nil)
			defer revisions.AssertExpectations(t)

			events := new(eventHandler)
			events.On("HandleEvent", eventOfType(event.BlogUpdated)).Return()
			defer events.AssertExpectations(t)

			svc := service.NewBlogService(logger, repo, revisions, new(imageStore), new(renderer), events)
			b, err := svc.Update(ctx, admin, existing.ID(), updatedSpec, nil)

			assert.Nil(t, err)
			assert.Equal(t, blog.Slug("hello-again"), b.Slug())
			assert.Len(t, b.References(), 2)
		})
	})
	t.Run("Delete", func(t *testing.T) {
		t.Run("returns error when blog does not exist", func(t *testing.T) {
			id := blog.NewID()
			repo := new(blogRepo)
			repo.On("Get", ctx, id).Return(nil, folioErrors.NotFound(blog.EntityBlog, "no blog"))
			defer repo.AssertExpectations(t)

			svc := service.NewBlogService(logger, repo, new(revisionRepo), new(imageStore), new(renderer), new(eventHandler))
			err := svc.Delete(ctx, admin, id)

			assert.True(t, folioErrors.IsErrorType(err, folioErrors.ErrNotFound))
		})
		t.Run("deletes blog and raises event", func(t *testing.T) {
			existing := storedBlog()
			repo := new(blogRepo)
			repo.On("Get", ctx, existing.ID()).Return(existing, nil)
			repo.On("Delete", ctx, existing.ID()).Return(nil)
			defer repo.AssertExpectations(t)

			events := new(eventHandler)
			events.On("HandleEvent", eventOfType(event.BlogDeleted)).Return()
			defer events.AssertExpectations(t)

			svc := service.NewBlogService(logger, repo, new(revisionRepo), new(imageStore), new(renderer), events)
			err := svc.Delete(ctx, admin, existing.ID())

			assert.Nil(t, err)
		})
	})
	t.Run("GetDetail", func(t *testing.T) {
		t.Run("returns error when rendering fails", func(t *testing.T) {
			existing := storedBlog()
			repo := new(blogRepo)
			repo.On("GetBySlug", ctx, blog.Slug("hello-world")).Return(existing, nil)

			revisions := new(revisionRepo)
			revisions.On("GetByBlog", ctx, existing.ID()).Return([]*blog.Revision{}, nil)

			render := new(renderer)
			render.On("Render", existing.Content()).Return("", nil, errors.New("bad markdown"))

			svc := service.NewBlogService(logger, repo, revisions, new(imageStore), render, new(eventHandler))
			_, err := svc.GetDetail(ctx, "hello-world")

			assert.EqualError(t, err, "bad markdown")
		})
		t.Run("returns rendered blog with revisions", func(t *testing.T) {
			existing := storedBlog()
			revs := []*blog.Revision{
				blog.RevisionFromStorage(2, existing.ID(), "new", admin, time.Now()),
				blog.RevisionFromStorage(1, existing.ID(), "old", admin, time.Now().Add(-time.Hour)),
			}
			headings := []blog.Heading{{Level: 1, Text: "Hello", ID: "hello"}}

			repo := new(blogRepo)
			repo.On("GetBySlug", ctx, blog.Slug("hello-world")).Return(existing, nil)
			defer repo.AssertExpectations(t)

			revisions := new(revisionRepo)
			revisions.On("GetByBlog", ctx, existing.ID()).Return(revs, nil)
			defer revisions.AssertExpectations(t)

			render := new(renderer)
			render.On("Render", existing.Content()).Return(`<h1 id="hello">Hello</h1>`, headings, nil)
			defer render.AssertExpectations(t)

			svc := service.NewBlogService(logger, repo, revisions, new(imageStore), render, new(eventHandler))
			detail, err := svc.GetDetail(ctx, "hello-world")

			assert.Nil(t, err)
			assert.Equal(t, `<h1 id="hello">Hello</h1>`, detail.HTML)
			assert.Equal(t, headings, detail.Headings)
			assert.Equal(t, revs, detail.Blog.Revisions())
		})
	})
	t.Run("Search", func(t *testing.T) {
		t.Run("lists all blogs when query is blank", func(t *testing.T) {
			all := []*blog.Blog{storedBlog()}
			repo := new(blogRepo)
			repo.On("GetAll", ctx).Return(all, nil)
			defer repo.AssertExpectations(t)

			svc := service.NewBlogService(logger, repo, new(revisionRepo), new(imageStore), new(renderer), new(eventHandler))
			blogs, err := svc.Search(ctx, "  ")

			assert.Nil(t, err)
			assert.Equal(t, all, blogs)
		})
		t.Run("searches by trimmed title", func(t *testing.T) {
			repo := new(blogRepo)
			repo.On("SearchByTitle", ctx, "hello").Return([]*blog.Blog{}, nil)
			defer repo.AssertExpectations(t)

			svc := service.NewBlogService(logger, repo, new(revisionRepo), new(imageStore), new(renderer), new(eventHandler))
			blogs, err := svc.Search(ctx, " hello ")

			assert.Nil(t, err)
			assert.Empty(t, blogs)
		})
	})
}
