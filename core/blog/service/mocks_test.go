package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/goto/folio/core/blog"
	"github.com/goto/folio/core/event/moderator"
)

type blogRepo struct {
	mock.Mock
}

func (b *blogRepo) Create(ctx context.Context, bl *blog.Blog) error {
	return b.Called(ctx, bl).Error(0)
}

func (b *blogRepo) Update(ctx context.Context, bl *blog.Blog) error {
	return b.Called(ctx, bl).Error(0)
}

func (b *blogRepo) Delete(ctx context.Context, id blog.ID) error {
	return b.Called(ctx, id).Error(0)
}

func (b *blogRepo) Get(ctx context.Context, id blog.ID) (*blog.Blog, error) {
	args := b.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blog.Blog), args.Error(1)
}

func (b *blogRepo) GetBySlug(ctx context.Context, slug blog.Slug) (*blog.Blog, error) {
	args := b.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blog.Blog), args.Error(1)
}

func (b *blogRepo) GetAll(ctx context.Context) ([]*blog.Blog, error) {
	args := b.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*blog.Blog), args.Error(1)
}

func (b *blogRepo) SearchByTitle(ctx context.Context, query string) ([]*blog.Blog, error) {
	args := b.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*blog.Blog), args.Error(1)
}

type revisionRepo struct {
	mock.Mock
}

func (r *revisionRepo) Create(ctx context.Context, rev *blog.Revision) error {
	return r.Called(ctx, rev).Error(0)
}

func (r *revisionRepo) Get(ctx context.Context, id blog.RevisionID) (*blog.Revision, error) {
	args := r.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blog.Revision), args.Error(1)
}

func (r *revisionRepo) GetByBlog(ctx context.Context, blogID blog.ID) ([]*blog.Revision, error) {
	args := r.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*blog.Revision), args.Error(1)
}

type imageStore struct {
	mock.Mock
}

func (i *imageStore) Upload(ctx context.Context, upload *blog.Upload) (string, error) {
	args := i.Called(ctx, upload)
	return args.String(0), args.Error(1)
}

type renderer struct {
	mock.Mock
}

func (r *renderer) Render(content string) (string, []blog.Heading, error) {
	args := r.Called(content)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]blog.Heading), args.Error(2)
}

type eventHandler struct {
	mock.Mock
}

func (e *eventHandler) HandleEvent(ev moderator.Event) {
	e.Called(ev)
}
