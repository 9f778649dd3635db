package blog

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goto/folio/core/blog"
	"github.com/goto/folio/internal/errors"
	"github.com/goto/folio/internal/store/postgres"
)

const (
	getRevisionByID     = `SELECT ` + revisionColumns + ` FROM blog_revision WHERE id = $1`
	getRevisionsForBlog = `SELECT ` + revisionColumns + ` FROM blog_revision WHERE blog_id = $1 ORDER BY created_at DESC, id DESC`
)

type RevisionRepository struct {
	db *pgxpool.Pool
}

func NewRevisionRepository(pool *pgxpool.Pool) *RevisionRepository {
	return &RevisionRepository{db: pool}
}

func (r RevisionRepository) Create(ctx context.Context, rev *blog.Revision) error {
	insertRevision := `INSERT INTO blog_revision (blog_id, content, edited_by, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, insertRevision, rev.BlogID().UUID(), rev.Content(), rev.EditedBy(), rev.CreatedAt())
	if postgres.ErrorCodeEqual(err, postgres.ErrPgCodeForeignKey) {
		return errors.NotFound(blog.EntityRevision, "no blog with id "+rev.BlogID().String())
	}
	return errors.WrapIfErr(blog.EntityRevision, "error inserting revision", err)
}

func (r RevisionRepository) Get(ctx context.Context, id blog.RevisionID) (*blog.Revision, error) {
	var rev Revision
	err := r.db.QueryRow(ctx, getRevisionByID, int(id)).
		Scan(&rev.ID, &rev.BlogID, &rev.Content, &rev.EditedBy, &rev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotFound(blog.EntityRevision, "no revision with id "+strconv.Itoa(int(id)))
		}
		return nil, errors.Wrap(blog.EntityRevision, "error reading revision", err)
	}
	return rev.toRevision(), nil
}

func (r RevisionRepository) GetByBlog(ctx context.Context, blogID blog.ID) ([]*blog.Revision, error) {
	rows, err := r.db.Query(ctx, getRevisionsForBlog, blogID.UUID())
	if err != nil {
		return nil, errors.Wrap(blog.EntityRevision, "error reading revisions", err)
	}
	defer rows.Close()

	var revisions []*blog.Revision
	for rows.Next() {
		var rev Revision
		if err := rows.Scan(&rev.ID, &rev.BlogID, &rev.Content, &rev.EditedBy, &rev.CreatedAt); err != nil {
			return nil, errors.Wrap(blog.EntityRevision, "error reading revision row", err)
		}
		revisions = append(revisions, rev.toRevision())
	}
	return revisions, rows.Err()
}
