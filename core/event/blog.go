package event

import (
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/goto/folio/core/blog"
	"github.com/goto/folio/internal/errors"
)

// BlogChanged is published whenever an admin creates, edits or removes a blog.
type BlogChanged struct {
	Event

	Type     Type
	Blog     *blog.Blog
	EditedBy string
}

func NewBlogCreatedEvent(b *blog.Blog, editedBy string) (*BlogChanged, error) {
	return newBlogEvent(BlogCreated, b, editedBy)
}

func NewBlogUpdatedEvent(b *blog.Blog, editedBy string) (*BlogChanged, error) {
	return newBlogEvent(BlogUpdated, b, editedBy)
}

func NewBlogDeletedEvent(b *blog.Blog, editedBy string) (*BlogChanged, error) {
	return newBlogEvent(BlogDeleted, b, editedBy)
}

func newBlogEvent(eventType Type, b *blog.Blog, editedBy string) (*BlogChanged, error) {
	baseEvent, err := NewBaseEvent()
	if err != nil {
		return nil, err
	}
	return &BlogChanged{
		Event:    baseEvent,
		Type:     eventType,
		Blog:     b,
		EditedBy: editedBy,
	}, nil
}

func (e BlogChanged) Bytes() ([]byte, error) {
	if e.Blog == nil {
		return nil, errors.InvalidArgument(blog.EntityBlog, "missing blog in event")
	}

	payload, err := structpb.NewStruct(map[string]interface{}{
		"event_id":    e.ID.String(),
		"event_type":  string(e.Type),
		"occurred_at": e.OccurredAt.Format(time.RFC3339),
		"edited_by":   e.EditedBy,
		"blog": map[string]interface{}{
			"id":       e.Blog.ID().String(),
			"title":    e.Blog.Title(),
			"slug":     e.Blog.Slug().String(),
			"category": e.Blog.Category(),
			"tags":     tagValues(e.Blog.Tags()),
		},
	})
	if err != nil {
		return nil, errors.InvalidArgument(blog.EntityBlog, "unable to convert event to proto struct")
	}

	return proto.Marshal(payload)
}

func tagValues(tags blog.Tags) []interface{} {
	values := make([]interface{}, len(tags))
	for i, t := range tags {
		values[i] = t
	}
	return values
}
