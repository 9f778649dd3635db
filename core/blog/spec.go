package blog

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goto/folio/internal/errors"
)

const maxTitleLength = 200

// Spec carries the editable fields of a blog as submitted by an admin.
type Spec struct {
	Title       string
	Description string
	Content     string
	Category    string
	Tags        string

	References []ReferenceSpec
}

type ReferenceSpec struct {
	URL         string
	Title       string
	Description string
}

func (s *Spec) Validate() error {
	if s == nil {
		return errors.InvalidArgument(EntityBlog, "blog spec is nil")
	}

	err := validation.ValidateStruct(s,
		validation.Field(&s.Title, validation.Required, validation.By(notBlank), validation.RuneLength(1, maxTitleLength)),
		validation.Field(&s.References),
	)
	if err != nil {
		return errors.InvalidArgument(EntityBlog, err.Error())
	}
	return nil
}

func (r ReferenceSpec) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required, is.RequestURL),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}
