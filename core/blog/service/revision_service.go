package service

import (
	"context"

	"github.com/goto/salt/log"
	"github.com/kushsharma/parallel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goto/folio/core/blog"
	"github.com/goto/folio/internal/errors"
	"github.com/goto/folio/internal/lib/linediff"
)

const invalidRevisions = "Invalid revision(s)"

var (
	diffsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folio_revision_diffs_total",
		Help: "revision diffs rendered",
	})
	diffFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_revision_diff_errors_total",
		Help: "errors occurred while diffing revisions",
	}, []string{"error"})
)

// RevisionStore looks up a stored revision by id
type RevisionStore interface {
	Get(ctx context.Context, id blog.RevisionID) (*blog.Revision, error)
}

type RevisionService struct {
	store  RevisionStore
	logger log.Logger
}

func NewRevisionService(logger log.Logger, store RevisionStore) *RevisionService {
	return &RevisionService{
		store:  store,
		logger: logger,
	}
}

// Diff aligns the content of two revisions line by line and renders both panes
func (s *RevisionService) Diff(ctx context.Context, oldID, newID blog.RevisionID) (linediff.Result, error) {
	revisions, err := s.fetch(ctx, oldID, newID)
	if err != nil {
		diffFailures.WithLabelValues(errors.TypeOf(err).String()).Inc()
		return linediff.Result{}, err
	}

	model := linediff.Align(revisions[oldID].Content(), revisions[newID].Content())
	diffsServed.Inc()
	return linediff.Render(model), nil
}

func (s *RevisionService) fetch(ctx context.Context, ids ...blog.RevisionID) (map[blog.RevisionID]*blog.Revision, error) {
	runner := parallel.NewRunner(parallel.WithLimit(len(ids)))
	for _, id := range ids {
		runner.Add(func(revID blog.RevisionID) func() (interface{}, error) {
			return func() (interface{}, error) {
				return s.store.Get(ctx, revID)
			}
		}(id))
	}

	revisions := make(map[blog.RevisionID]*blog.Revision, len(ids))
	for _, result := range runner.Run() {
		if result.Err != nil {
			if errors.IsErrorType(result.Err, errors.ErrNotFound) {
				return nil, errors.NotFound(blog.EntityRevision, invalidRevisions)
			}
			s.logger.Error("error fetching revision for diff: %s", result.Err)
			return nil, result.Err
		}
		if rev, ok := result.Val.(*blog.Revision); ok && rev != nil {
			revisions[rev.ID()] = rev
		}
	}

	for _, id := range ids {
		if _, ok := revisions[id]; !ok {
			return nil, errors.NotFound(blog.EntityRevision, invalidRevisions)
		}
	}
	return revisions, nil
}
