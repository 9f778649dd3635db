package blog

const EntityReference = "blog_reference"

type Reference struct {
	id          int
	blogID      ID
	url         string
	title       string
	description string
}

// ReferencesFrom builds the references of a blog from a validated spec
func ReferencesFrom(blogID ID, specs []ReferenceSpec) []*Reference {
	refs := make([]*Reference, 0, len(specs))
	for _, s := range specs {
		refs = append(refs, &Reference{
			blogID:      blogID,
			url:         s.URL,
			title:       s.Title,
			description: s.Description,
		})
	}
	return refs
}

func ReferenceFromStorage(id int, blogID ID, url, title, description string) *Reference {
	return &Reference{
		id:          id,
		blogID:      blogID,
		url:         url,
		title:       title,
		description: description,
	}
}

func (r *Reference) ID() int             { return r.id }
func (r *Reference) BlogID() ID          { return r.blogID }
func (r *Reference) URL() string         { return r.url }
func (r *Reference) Title() string       { return r.title }
func (r *Reference) Description() string { return r.description }
