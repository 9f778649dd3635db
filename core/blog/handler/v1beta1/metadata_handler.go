package v1beta1

import (
	"context"
	"net/http"

	"github.com/goto/salt/log"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"

	"github.com/goto/folio/internal/errors"
)

type TitleFetcher interface {
	FetchTitle(ctx context.Context, url string) (string, error)
}

type MetadataHandler struct {
	l       log.Logger
	fetcher TitleFetcher
}

func NewMetadataHandler(l log.Logger, fetcher TitleFetcher) *MetadataHandler {
	return &MetadataHandler{l: l, fetcher: fetcher}
}

func (h *MetadataHandler) RegisterRoutes(mux *runtime.ServeMux) error {
	if err := mux.HandlePath(http.MethodGet, "/api/v1beta1/metadata/fetch-title", h.FetchTitle); err != nil {
		return errors.InternalError("metadata", "unable to register fetch title route", err)
	}
	return nil
}

func (h *MetadataHandler) FetchTitle(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	title, err := h.fetcher.FetchTitle(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		writeError(h.l, w, err)
		return
	}
	writeJSON(h.l, w, http.StatusOK, map[string]string{"title": title})
}
