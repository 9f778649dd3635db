package v1beta1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/goto/salt/log"

	"github.com/goto/folio/core/blog"
	"github.com/goto/folio/internal/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

type blogResponse struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Slug          string              `json:"slug"`
	Content       string              `json:"content,omitempty"`
	Category      string              `json:"category"`
	Tags          []string            `json:"tags"`
	CoverImageURL string              `json:"coverImageUrl,omitempty"`
	PublishedAt   time.Time           `json:"publishedAt"`
	PublishedAgo  string              `json:"publishedAgo"`
	UserID        string              `json:"userId"`
	Images        []imageResponse     `json:"images,omitempty"`
	References    []referenceResponse `json:"references,omitempty"`
	Revisions     []revisionResponse  `json:"revisions,omitempty"`
}

type imageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type referenceResponse struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type revisionResponse struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	EditedBy  string    `json:"editedBy"`
}

type headingResponse struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

type detailResponse struct {
	Blog     blogResponse      `json:"blog"`
	HTML     string            `json:"html"`
	Headings []headingResponse `json:"headings"`
}

type diffResponse struct {
	LeftHTML  string `json:"leftHtml"`
	RightHTML string `json:"rightHtml"`
	Summary   string `json:"summary"`
}

func toBlogResponse(b *blog.Blog, now time.Time, withContent bool) blogResponse {
	resp := blogResponse{
		ID:            b.ID().String(),
		Title:         b.Title(),
		Description:   b.Description(),
		Slug:          b.Slug().String(),
		Category:      b.Category(),
		Tags:          b.Tags(),
		CoverImageURL: b.CoverImageURL(),
		PublishedAt:   b.PublishedAt(),
		PublishedAgo:  b.PublishedAgo(now),
		UserID:        b.UserID(),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if withContent {
		resp.Content = b.Content()
	}

	for _, img := range b.Images() {
		resp.Images = append(resp.Images, imageResponse{ID: img.ID().String(), URL: img.URL()})
	}
	for _, ref := range b.References() {
		resp.References = append(resp.References, referenceResponse{
			URL:         ref.URL(),
			Title:       ref.Title(),
			Description: ref.Description(),
		})
	}
	for _, rev := range b.Revisions() {
		resp.Revisions = append(resp.Revisions, revisionResponse{
			ID:        int(rev.ID()),
			CreatedAt: rev.CreatedAt(),
			EditedBy:  rev.EditedBy(),
		})
	}
	return resp
}

func toBlogsResponse(blogs []*blog.Blog, now time.Time) map[string][]blogResponse {
	list := make([]blogResponse, 0, len(blogs))
	for _, b := range blogs {
		list = append(list, toBlogResponse(b, now, false))
	}
	return map[string][]blogResponse{"blogs": list}
}

func writeJSON(l log.Logger, w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		l.Error("error writing response: %s", err)
	}
}

func writeError(l log.Logger, w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		var de *errors.DomainError
		if errors.As(err, &de) {
			l.Error(de.DebugString())
		} else {
			l.Error("internal error: %s", err)
		}
	}
	writeJSON(l, w, status, errorResponse{Error: err.Error()})
}
