package v1beta1

import (
	"encoding/json"
	"net/http"

	"github.com/goto/salt/log"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"

	"github.com/goto/folio/internal/errors"
)

type VersionResponse struct {
	Server string `json:"server"`
	Client string `json:"client,omitempty"`
}

type VersionHandler struct {
	l       log.Logger
	version string
}

func NewVersionHandler(l log.Logger, version string) *VersionHandler {
	return &VersionHandler{
		l:       l,
		version: version,
	}
}

func (sv *VersionHandler) RegisterRoutes(mux *runtime.ServeMux) error {
	if err := mux.HandlePath(http.MethodGet, "/api/v1beta1/version", sv.Version); err != nil {
		return errors.InternalError("version", "unable to register version route", err)
	}
	return nil
}

// Version reports the server build, the caller may pass its own as ?client=
func (sv *VersionHandler) Version(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	client := r.URL.Query().Get("client")
	if client != "" {
		sv.l.Info("client with version %s requested for ping ", client)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(VersionResponse{Server: sv.version, Client: client}); err != nil {
		sv.l.Error("unable to write version response: %v", err)
	}
}
