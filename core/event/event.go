package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	BlogCreated Type = "blog_created"
	BlogUpdated Type = "blog_updated"
	BlogDeleted Type = "blog_deleted"
)

type Event struct {
	ID         uuid.UUID
	OccurredAt time.Time
}

func NewBaseEvent() (Event, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:         id,
		OccurredAt: time.Now().UTC(),
	}, nil
}
