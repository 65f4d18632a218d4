package site

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/ropereralk/enterprise-directory/internal/transport"
)

type ServiceAPI interface {
	Create(dto CreateSiteDTO) (*Site, error)
	Get(id uuid.UUID) (*Site, error)
	GetByCompany(companyID uuid.UUID, limit, offset int) ([]*Site, error)
	Update(id uuid.UUID, dto UpdateSiteDTO) (*Site, error)
	Patch(id uuid.UUID, dto PatchSiteDTO) (*Site, error)
	SoftDelete(id uuid.UUID) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

func (h *Handler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var dto CreateSiteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateSite: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, s)
}

func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	s, err := h.Service.Get(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) GetCompanySites(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.parseID(w, r, "companyID")
	if !ok {
		return
	}
	limit, offset := transport.Pagination(r)

	sites, err := h.Service.GetByCompany(companyID, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"sites": sites})
}

func (h *Handler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	var dto UpdateSiteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateSite: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.Service.Update(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) PatchSite(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	var dto PatchSiteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("PatchSite: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.Service.Patch(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.SoftDelete(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		h.Logger.Error("invalid site request id", "param", param, "value", chi.URLParam(r, param))
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
