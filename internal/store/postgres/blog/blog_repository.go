package blog

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goto/folio/core/blog"
	"github.com/goto/folio/internal/errors"
	"github.com/goto/folio/internal/store/postgres"
)

const (
	getBlogByID    = `SELECT ` + blogColumns + ` FROM blog WHERE id = $1`
	getBlogBySlug  = `SELECT ` + blogColumns + ` FROM blog WHERE slug = $1`
	getAllBlogs    = `SELECT ` + blogColumns + ` FROM blog ORDER BY published_at DESC`
	searchBlogs    = `SELECT ` + blogColumns + ` FROM blog WHERE title ILIKE '%' || $1 || '%' ESCAPE '\' ORDER BY published_at DESC`
	getImages      = `SELECT ` + imageColumns + ` FROM blog_image WHERE blog_id = ANY($1::uuid[]) ORDER BY created_at`
	getReferences  = `SELECT ` + referenceColums + ` FROM blog_reference WHERE blog_id = $1 ORDER BY id`
	likeEscapeChar = `\`
)

var likeEscaper = strings.NewReplacer(likeEscapeChar, likeEscapeChar+likeEscapeChar, "%", `\%`, "_", `\_`)

type BlogRepository struct {
	db *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{db: pool}
}

func (r BlogRepository) Create(ctx context.Context, b *blog.Blog) error {
	insertBlog := `INSERT INTO blog (` + blogColumns + `, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())`

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertBlog, b.ID().UUID(), b.Title(), b.Description(), b.Slug().String(), b.Content(),
			b.Category(), tagsOf(b), b.CoverImageURL(), b.UserID(), b.PublishedAt())
		if err != nil {
			return slugError(b, "error inserting blog", err)
		}

		if err := insertReferences(ctx, tx, b.ID(), b.References()); err != nil {
			return err
		}
		return insertImages(ctx, tx, b.Images())
	})
}

func (r BlogRepository) Update(ctx context.Context, b *blog.Blog) error {
	updateBlog := `UPDATE blog SET
	title = $2, description = $3, slug = $4, content = $5, category = $6, tags = $7, cover_image_url = $8,
	updated_at = NOW()
WHERE id = $1`

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, updateBlog, b.ID().UUID(), b.Title(), b.Description(), b.Slug().String(),
			b.Content(), b.Category(), tagsOf(b), b.CoverImageURL())
		if err != nil {
			return slugError(b, "error updating blog", err)
		}
		if result.RowsAffected() == 0 {
			return errors.NotFound(blog.EntityBlog, "no blog with id "+b.ID().String())
		}

		if _, err := tx.Exec(ctx, `DELETE FROM blog_reference WHERE blog_id = $1`, b.ID().UUID()); err != nil {
			return errors.Wrap(blog.EntityReference, "error removing old references", err)
		}
		if err := insertReferences(ctx, tx, b.ID(), b.References()); err != nil {
			return err
		}
		return insertImages(ctx, tx, b.Images())
	})
}

func (r BlogRepository) Delete(ctx context.Context, id blog.ID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM blog WHERE id = $1`, id.UUID())
	if err != nil {
		return errors.Wrap(blog.EntityBlog, "error deleting blog", err)
	}
	if result.RowsAffected() == 0 {
		return errors.NotFound(blog.EntityBlog, "no blog with id "+id.String())
	}
	return nil
}

func (r BlogRepository) Get(ctx context.Context, id blog.ID) (*blog.Blog, error) {
	return r.getOne(ctx, getBlogByID, id.UUID(), "no blog with id "+id.String())
}

func (r BlogRepository) GetBySlug(ctx context.Context, slug blog.Slug) (*blog.Blog, error) {
	return r.getOne(ctx, getBlogBySlug, slug.String(), "no blog with slug "+slug.String())
}

func (r BlogRepository) GetAll(ctx context.Context) ([]*blog.Blog, error) {
	return r.getMany(ctx, getAllBlogs)
}

func (r BlogRepository) SearchByTitle(ctx context.Context, query string) ([]*blog.Blog, error) {
	return r.getMany(ctx, searchBlogs, likeEscaper.Replace(query))
}

func (r BlogRepository) getOne(ctx context.Context, query string, arg interface{}, notFoundMsg string) (*blog.Blog, error) {
	row, err := scanBlog(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotFound(blog.EntityBlog, notFoundMsg)
		}
		return nil, errors.Wrap(blog.EntityBlog, "error reading blog", err)
	}
	b := row.toBlog()

	refs, err := r.references(ctx, b.ID())
	if err != nil {
		return nil, err
	}
	b.SetReferences(refs)

	if err := r.attachImages(ctx, []*blog.Blog{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r BlogRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]*blog.Blog, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(blog.EntityBlog, "error listing blogs", err)
	}
	defer rows.Close()

	var blogs []*blog.Blog
	for rows.Next() {
		row, err := scanBlog(rows)
		if err != nil {
			return nil, errors.Wrap(blog.EntityBlog, "error reading blog row", err)
		}
		blogs = append(blogs, row.toBlog())
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(blog.EntityBlog, "error listing blogs", err)
	}

	if err := r.attachImages(ctx, blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r BlogRepository) references(ctx context.Context, blogID blog.ID) ([]*blog.Reference, error) {
	rows, err := r.db.Query(ctx, getReferences, blogID.UUID())
	if err != nil {
		return nil, errors.Wrap(blog.EntityReference, "error reading references", err)
	}
	defer rows.Close()

	var refs []*blog.Reference
	for rows.Next() {
		var ref Reference
		if err := rows.Scan(&ref.ID, &ref.BlogID, &ref.URL, &ref.Title, &ref.Description); err != nil {
			return nil, errors.Wrap(blog.EntityReference, "error reading reference row", err)
		}
		refs = append(refs, ref.toReference())
	}
	return refs, rows.Err()
}

func (r BlogRepository) attachImages(ctx context.Context, blogs []*blog.Blog) error {
	if len(blogs) == 0 {
		return nil
	}

	byBlog := make(map[blog.ID]*blog.Blog, len(blogs))
	ids := make([]string, 0, len(blogs))
	for _, b := range blogs {
		byBlog[b.ID()] = b
		ids = append(ids, b.ID().String())
	}

	rows, err := r.db.Query(ctx, getImages, ids)
	if err != nil {
		return errors.Wrap(blog.EntityImage, "error reading images", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.BlogID, &img.URL, &img.UserID); err != nil {
			return errors.Wrap(blog.EntityImage, "error reading image row", err)
		}
		if b, ok := byBlog[blog.ID(img.BlogID)]; ok {
			b.SetImages(append(b.Images(), img.toImage()))
		}
	}
	return rows.Err()
}

func insertReferences(ctx context.Context, tx pgx.Tx, blogID blog.ID, refs []*blog.Reference) error {
	insertReference := `INSERT INTO blog_reference (blog_id, url, title, description) VALUES ($1, $2, $3, $4)`

	batch := &pgx.Batch{}
	for _, ref := range refs {
		batch.Queue(insertReference, blogID.UUID(), ref.URL(), ref.Title(), ref.Description())
	}
	return sendBatch(ctx, tx, batch, blog.EntityReference, "error inserting references")
}

func insertImages(ctx context.Context, tx pgx.Tx, images []*blog.Image) error {
	insertImage := `INSERT INTO blog_image (` + imageColumns + `, created_at) VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (id) DO NOTHING`

	batch := &pgx.Batch{}
	for _, img := range images {
		batch.Queue(insertImage, img.ID(), img.BlogID().UUID(), img.URL(), img.UserID())
	}
	return sendBatch(ctx, tx, batch, blog.EntityImage, "error inserting images")
}

func sendBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch, entity, msg string) error {
	if batch.Len() == 0 {
		return nil
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return errors.Wrap(entity, msg, err)
		}
	}
	return errors.WrapIfErr(entity, msg, results.Close())
}

func scanBlog(row pgx.Row) (Blog, error) {
	var b Blog
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.Slug, &b.Content, &b.Category, &b.Tags,
		&b.CoverImageURL, &b.UserID, &b.PublishedAt)
	return b, err
}

func slugError(b *blog.Blog, msg string, err error) error {
	if postgres.ErrorCodeEqual(err, postgres.ErrPgCodeUniqueConstraints) {
		return errors.AlreadyExists(blog.EntityBlog, "blog with slug "+b.Slug().String()+" already exists")
	}
	return errors.Wrap(blog.EntityBlog, msg, err)
}

func tagsOf(b *blog.Blog) []string {
	if b.Tags() == nil {
		return []string{}
	}
	return b.Tags()
}
