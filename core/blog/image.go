package blog

import "github.com/google/uuid"

const EntityImage = "blog_image"

type Image struct {
	id     uuid.UUID
	blogID ID
	url    string
	userID string
}

func NewImage(blogID ID, url, userID string) *Image {
	return &Image{
		id:     uuid.New(),
		blogID: blogID,
		url:    url,
		userID: userID,
	}
}

func ImageFromStorage(id uuid.UUID, blogID ID, url, userID string) *Image {
	return &Image{id: id, blogID: blogID, url: url, userID: userID}
}

func (i *Image) ID() uuid.UUID  { return i.id }
func (i *Image) BlogID() ID     { return i.blogID }
func (i *Image) URL() string    { return i.url }
func (i *Image) UserID() string { return i.userID }
