package service

import (
	"context"
	"strings"
	"time"

	"github.com/goto/salt/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goto/folio/core/blog"
	"github.com/goto/folio/core/event"
	"github.com/goto/folio/core/event/moderator"
	"github.com/goto/folio/internal/errors"
)

var blogWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "folio_blog_writes_total",
	Help: "blog create, update and delete operations by outcome",
}, []string{"operation", "status"})

type BlogRepository interface {
	// Create stores the blog together with its references and images
	Create(ctx context.Context, b *blog.Blog) error
	// Update stores the editable fields, replaces references and adds new images
	Update(ctx context.Context, b *blog.Blog) error
	Delete(ctx context.Context, id blog.ID) error

	Get(ctx context.Context, id blog.ID) (*blog.Blog, error)
	GetBySlug(ctx context.Context, slug blog.Slug) (*blog.Blog, error)
	GetAll(ctx context.Context) ([]*blog.Blog, error)
	SearchByTitle(ctx context.Context, query string) ([]*blog.Blog, error)
}

type RevisionRepository interface {
	RevisionStore

	Create(ctx context.Context, rev *blog.Revision) error
	GetByBlog(ctx context.Context, blogID blog.ID) ([]*blog.Revision, error)
}

type ImageStore interface {
	Upload(ctx context.Context, upload *blog.Upload) (string, error)
}

type Renderer interface {
	Render(content string) (string, []blog.Heading, error)
}

type EventHandler interface {
	HandleEvent(moderator.Event)
}

type BlogService struct {
	repo         BlogRepository
	revisionRepo RevisionRepository
	imageStore   ImageStore
	renderer     Renderer
	eventHandler EventHandler
	logger       log.Logger

	now func() time.Time
}

func NewBlogService(logger log.Logger, repo BlogRepository, revisionRepo RevisionRepository, imageStore ImageStore,
	renderer Renderer, eventHandler EventHandler,
) *BlogService {
	return &BlogService{
		repo:         repo,
		revisionRepo: revisionRepo,
		imageStore:   imageStore,
		renderer:     renderer,
		eventHandler: eventHandler,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *BlogService) Create(ctx context.Context, userID string, spec *blog.Spec, cover *blog.Upload) (*blog.Blog, error) {
	b, err := blog.NewBlog(spec, userID, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.attachCover(ctx, b, userID, cover); err != nil {
		return nil, err
	}
	b.SetReferences(blog.ReferencesFrom(b.ID(), spec.References))

	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error("error creating blog [%s]: %s", b.Slug(), err)
		blogWrites.WithLabelValues("create", "failed").Inc()
		return nil, err
	}

	if err := s.recordRevision(ctx, b, userID); err != nil {
		blogWrites.WithLabelValues("create", "failed").Inc()
		return nil, err
	}

	blogWrites.WithLabelValues("create", "success").Inc()
	s.raiseEvent(event.NewBlogCreatedEvent(b, userID))
	return b, nil
}

func (s *BlogService) Update(ctx context.Context, userID string, id blog.ID, spec *blog.Spec, cover *blog.Upload) (*blog.Blog, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.Update(spec); err != nil {
		return nil, err
	}
	if err := s.attachCover(ctx, b, userID, cover); err != nil {
		return nil, err
	}
	b.SetReferences(blog.ReferencesFrom(b.ID(), spec.References))

	if err := s.repo.Update(ctx, b); err != nil {
		s.logger.Error("error updating blog [%s]: %s", id, err)
		blogWrites.WithLabelValues("update", "failed").Inc()
		return nil, err
	}

	if err := s.recordRevision(ctx, b, userID); err != nil {
		blogWrites.WithLabelValues("update", "failed").Inc()
		return nil, err
	}

	blogWrites.WithLabelValues("update", "success").Inc()
	s.raiseEvent(event.NewBlogUpdatedEvent(b, userID))
	return b, nil
}

func (s *BlogService) Delete(ctx context.Context, userID string, id blog.ID) error {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("error deleting blog [%s]: %s", id, err)
		blogWrites.WithLabelValues("delete", "failed").Inc()
		return err
	}

	blogWrites.WithLabelValues("delete", "success").Inc()
	s.raiseEvent(event.NewBlogDeletedEvent(b, userID))
	return nil
}

func (s *BlogService) Get(ctx context.Context, id blog.ID) (*blog.Blog, error) {
	return s.repo.Get(ctx, id)
}

// GetDetail loads a published blog with its revisions and rendered content
func (s *BlogService) GetDetail(ctx context.Context, slug blog.Slug) (*blog.Detail, error) {
	b, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	revisions, err := s.revisionRepo.GetByBlog(ctx, b.ID())
	if err != nil {
		return nil, err
	}
	b.SetRevisions(revisions)

	html, headings, err := s.renderer.Render(b.Content())
	if err != nil {
		return nil, err
	}

	return &blog.Detail{
		Blog:     b,
		HTML:     html,
		Headings: headings,
	}, nil
}

func (s *BlogService) GetAll(ctx context.Context) ([]*blog.Blog, error) {
	return s.repo.GetAll(ctx)
}

// Search lists blogs whose title contains query, all blogs when query is blank
func (s *BlogService) Search(ctx context.Context, query string) ([]*blog.Blog, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.GetAll(ctx)
	}
	return s.repo.SearchByTitle(ctx, query)
}

func (s *BlogService) attachCover(ctx context.Context, b *blog.Blog, userID string, cover *blog.Upload) error {
	if cover == nil {
		return nil
	}

	url, err := s.imageStore.Upload(ctx, cover)
	if err != nil {
		s.logger.Error("error uploading cover image for blog [%s]: %s", b.Slug(), err)
		return err
	}

	b.SetCoverImageURL(url)
	b.SetImages(append(b.Images(), blog.NewImage(b.ID(), url, userID)))
	return nil
}

func (s *BlogService) recordRevision(ctx context.Context, b *blog.Blog, userID string) error {
	rev := blog.NewRevision(b.ID(), b.Content(), userID, s.now())
	if err := s.revisionRepo.Create(ctx, rev); err != nil {
		s.logger.Error("error recording revision for blog [%s]: %s", b.ID(), err)
		return errors.AddErrContext(err, blog.EntityRevision, "blog saved but revision not recorded")
	}
	return nil
}

func (s *BlogService) raiseEvent(ev moderator.Event, err error) {
	if err != nil {
		s.logger.Error("error creating blog event: %s", err)
		return
	}
	s.eventHandler.HandleEvent(ev)
}
