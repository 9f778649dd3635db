package blog

import (
	"strconv"
	"time"

	"github.com/goto/folio/internal/errors"
)

const EntityRevision = "blog_revision"

type RevisionID int

func RevisionIDFrom(raw string) (RevisionID, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.InvalidArgument(EntityRevision, "invalid revision id "+strconv.Quote(raw))
	}
	return RevisionID(id), nil
}

func (r RevisionID) String() string {
	return strconv.Itoa(int(r))
}

// Revision is a snapshot of the blog content saved after an edit.
type Revision struct {
	id        RevisionID
	blogID    ID
	content   string
	createdAt time.Time
	editedBy  string
}

func NewRevision(blogID ID, content, editedBy string, createdAt time.Time) *Revision {
	return &Revision{
		blogID:    blogID,
		content:   content,
		editedBy:  editedBy,
		createdAt: createdAt.UTC(),
	}
}

func RevisionFromStorage(id RevisionID, blogID ID, content, editedBy string, createdAt time.Time) *Revision {
	return &Revision{
		id:        id,
		blogID:    blogID,
		content:   content,
		editedBy:  editedBy,
		createdAt: createdAt,
	}
}

func (r *Revision) ID() RevisionID       { return r.id }
func (r *Revision) BlogID() ID           { return r.blogID }
func (r *Revision) Content() string      { return r.content }
func (r *Revision) CreatedAt() time.Time { return r.createdAt }
func (r *Revision) EditedBy() string     { return r.editedBy }
