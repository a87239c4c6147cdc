package regions

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/pkg/handlers"
	"github.com/JaimeStill/pdf-editor/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP endpoints for region operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "regions"),
	}
}

// Routes returns the region endpoints, nested under a document.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/documents/{id}",
		Tags:    []string{"Regions"},
		Schemas: Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/regions", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "/regions", Handler: h.Insert, OpenAPI: Spec.Insert},
			{Method: "PUT", Pattern: "/regions/{rid}/content", Handler: h.ReplaceContent, OpenAPI: Spec.ReplaceContent},
			{Method: "PUT", Pattern: "/regions/{rid}/properties", Handler: h.SetProperty, OpenAPI: Spec.SetProperty},
			{Method: "DELETE", Pattern: "/regions/{rid}", Handler: h.Delete, OpenAPI: Spec.Delete},
			{Method: "GET", Pattern: "/fonts", Handler: h.Fonts, OpenAPI: Spec.Fonts},
		},
	}
}

type contentRequest struct {
	Text string `json:"text"`
}

type propertyRequest struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// List answers ?page=N with one page and ?q=text with a search across the
// document. Without either it returns every region.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}

	var (
		result []overlay.Region
		err    error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		result, err = h.sys.Search(r.Context(), id, q)
	} else {
		page, ok := h.page(w, r)
		if !ok {
			return
		}
		result, err = h.sys.List(r.Context(), id, page)
	}
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Insert(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}

	cmd, err := handlers.DecodeJSON[InsertCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	region, err := h.sys.Insert(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, region)
}

func (h *Handler) ReplaceContent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}

	req, err := handlers.DecodeJSON[contentRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	region, err := h.sys.ReplaceContent(r.Context(), id, overlay.ID(r.PathValue("rid")), req.Text)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, region)
}

func (h *Handler) SetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}

	req, err := handlers.DecodeJSON[propertyRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	region, err := h.sys.SetProperty(r.Context(), id, overlay.ID(r.PathValue("rid")), req.Property, req.Value)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, region)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id, overlay.ID(r.PathValue("rid"))); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Fonts(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}
	page, ok := h.page(w, r)
	if !ok {
		return
	}

	fonts, err := h.sys.Fonts(r.Context(), id, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fonts)
}

func (h *Handler) documentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) (*int, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return nil, true
	}

	page, err := strconv.Atoi(raw)
	if err != nil {
		err = fmt.Errorf("%w: %q", ErrInvalidPage, raw)
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return nil, false
	}
	return &page, true
}
