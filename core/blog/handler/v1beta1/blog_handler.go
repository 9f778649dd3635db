package v1beta1

import (
	"context"
	"net/http"
	"time"

	"github.com/goto/salt/log"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"

	"github.com/goto/folio/core/blog"
	"github.com/goto/folio/internal/auth"
	"github.com/goto/folio/internal/errors"
	"github.com/goto/folio/internal/lib/linediff"
)

const megabyte = 1 << 20

type BlogService interface {
	Create(ctx context.Context, userID string, spec *blog.Spec, cover *blog.Upload) (*blog.Blog, error)
	Update(ctx context.Context, userID string, id blog.ID, spec *blog.Spec, cover *blog.Upload) (*blog.Blog, error)
	Delete(ctx context.Context, userID string, id blog.ID) error
	Get(ctx context.Context, id blog.ID) (*blog.Blog, error)
	GetDetail(ctx context.Context, slug blog.Slug) (*blog.Detail, error)
	GetAll(ctx context.Context) ([]*blog.Blog, error)
	Search(ctx context.Context, query string) ([]*blog.Blog, error)
}

type RevisionService interface {
	Diff(ctx context.Context, oldID, newID blog.RevisionID) (linediff.Result, error)
}

// Guard wraps handlers that only the admin may call
type Guard interface {
	Protect(next runtime.HandlerFunc) runtime.HandlerFunc
}

type BlogHandler struct {
	l               log.Logger
	blogService     BlogService
	revisionService RevisionService
	maxUpload       int64

	now func() time.Time
}

func NewBlogHandler(l log.Logger, blogService BlogService, revisionService RevisionService, maxUploadMB int) *BlogHandler {
	return &BlogHandler{
		l:               l,
		blogService:     blogService,
		revisionService: revisionService,
		maxUpload:       int64(maxUploadMB) * megabyte,
		now:             time.Now,
	}
}

func (h *BlogHandler) RegisterRoutes(mux *runtime.ServeMux, guard Guard) error {
	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{http.MethodGet, "/api/v1beta1/blogs", h.ListBlogs},
		{http.MethodGet, "/api/v1beta1/blogs/{slug}", h.GetBlog},
		{http.MethodGet, "/api/v1beta1/revisions/diff", h.DiffRevisions},
		{http.MethodGet, "/api/v1beta1/admin/blogs", guard.Protect(h.SearchBlogs)},
		{http.MethodPost, "/api/v1beta1/admin/blogs", guard.Protect(h.CreateBlog)},
		{http.MethodGet, "/api/v1beta1/admin/blogs/{id}", guard.Protect(h.GetBlogByID)},
		{http.MethodPut, "/api/v1beta1/admin/blogs/{id}", guard.Protect(h.UpdateBlog)},
		{http.MethodDelete, "/api/v1beta1/admin/blogs/{id}", guard.Protect(h.DeleteBlog)},
	}

	for _, route := range routes {
		if err := mux.HandlePath(route.method, route.pattern, route.handler); err != nil {
			return errors.InternalError(blog.EntityBlog, "unable to register "+route.pattern, err)
		}
	}
	return nil
}

func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	blogs, err := h.blogService.GetAll(r.Context())
	if err != nil {
		writeError(h.l, w, err)
		return
	}
	writeJSON(h.l, w, http.StatusOK, toBlogsResponse(blogs, h.now()))
}

func (h *BlogHandler) GetBlog(w http.ResponseWriter, r *http.Request, params map[string]string) {
	detail, err := h.blogService.GetDetail(r.Context(), blog.Slug(params["slug"]))
	if err != nil {
		writeError(h.l, w, err)
		return
	}

	headings := make([]headingResponse, 0, len(detail.Headings))
	for _, heading := range detail.Headings {
		headings = append(headings, headingResponse(heading))
	}
	writeJSON(h.l, w, http.StatusOK, detailResponse{
		Blog:     toBlogResponse(detail.Blog, h.now(), false),
		HTML:     detail.HTML,
		Headings: headings,
	})
}

func (h *BlogHandler) DiffRevisions(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	query := r.URL.Query()
	oldID, err := blog.RevisionIDFrom(query.Get("rev1"))
	if err != nil {
		writeError(h.l, w, err)
		return
	}
	newID, err := blog.RevisionIDFrom(query.Get("rev2"))
	if err != nil {
		writeError(h.l, w, err)
		return
	}

	result, err := h.revisionService.Diff(r.Context(), oldID, newID)
	if err != nil {
		writeError(h.l, w, err)
		return
	}
	writeJSON(h.l, w, http.StatusOK, toDiffResponse(result))
}

func (h *BlogHandler) SearchBlogs(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	blogs, err := h.blogService.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(h.l, w, err)
		return
	}
	writeJSON(h.l, w, http.StatusOK, toBlogsResponse(blogs, h.now()))
}

func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(h.l, w, err)
		return
	}

	spec, cover, err := parseBlogForm(w, r, h.maxUpload)
	if err != nil {
		writeError(h.l, w, err)
		return
	}

	created, err := h.blogService.Create(r.Context(), userID, spec, cover)
	if err != nil {
		writeError(h.l, w, err)
		return
	}
	writeJSON(h.l, w, http.StatusCreated, toBlogResponse(created, h.now(), true))
}

func (h *BlogHandler) GetBlogByID(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := blog.IDFrom(params["id"])
	if err != nil {
		writeError(h.l, w, err)
		return
	}

	b, err := h.blogService.Get(r.Context(), id)
	if err != nil {
		writeError(h.l, w, err)
		return
	}
	writeJSON(h.l, w, http.StatusOK, toBlogResponse(b, h.now(), true))
}

func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(h.l, w, err)
		return
	}
	id, err := blog.IDFrom(params["id"])
	if err != nil {
		writeError(h.l, w, err)
		return
	}

	spec, cover, err := parseBlogForm(w, r, h.maxUpload)
	if err != nil {
		writeError(h.l, w, err)
		return
	}

	updated, err := h.blogService.Update(r.Context(), userID, id, spec, cover)
	if err != nil {
		writeError(h.l, w, err)
		return
	}
	writeJSON(h.l, w, http.StatusOK, toBlogResponse(updated, h.now(), true))
}

func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(h.l, w, err)
		return
	}
	id, err := blog.IDFrom(params["id"])
	if err != nil {
		writeError(h.l, w, err)
		return
	}

	if err := h.blogService.Delete(r.Context(), userID, id); err != nil {
		writeError(h.l, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func currentUser(r *http.Request) (string, error) {
	userID, ok := auth.UserFrom(r.Context())
	if !ok {
		return "", errors.Forbidden(blog.EntityBlog, "admin user is required")
	}
	return userID, nil
}
