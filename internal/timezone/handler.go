package timezone

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/ropereralk/enterprise-directory/internal/transport"
)

type ServiceAPI interface {
	ListActive() ([]*TimeZone, error)
	Get(id int) (*TimeZone, error)
	GetByZoneID(zoneID string) (*TimeZone, error)
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

func (h *Handler) GetTimeZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.Service.ListActive()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"timezones": zones})
}

func (h *Handler) GetTimeZone(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.Logger.Error("invalid time zone id", "value", chi.URLParam(r, "id"))
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	zone, err := h.Service.Get(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, zone)
}

// GetTimeZoneByZoneID resolves a zone by its IANA identifier. The
// identifier contains a slash, so the route match spans the rest of the
// path ("Asia/Kolkata" arrives as two segments).
func (h *Handler) GetTimeZoneByZoneID(w http.ResponseWriter, r *http.Request) {
	zoneID := chi.URLParam(r, "*")
	if zoneID == "" {
		h.WriteError(w, http.StatusBadRequest, "invalid zone id")
		return
	}

	zone, err := h.Service.GetByZoneID(zoneID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, zone)
}
