package http

import (
	"net/http"

	"github.com/stocklight/stocklight/internal/view"
)

type viewHandler struct {
	svc *Service
}

func newViewHandler(svc *Service) *viewHandler {
	return &viewHandler{svc: svc}
}

func (h *viewHandler) get(w http.ResponseWriter, r *http.Request) {
	h.svc.respond(w, r, http.StatusOK, h.svc.session.Render())
}

type setLayoutRequest struct {
	Layout string `json:"layout"`
}

func (h *viewHandler) setLayout(w http.ResponseWriter, r *http.Request) {
	req, err := decode[setLayoutRequest](r)
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	layout, err := view.ParseLayout(req.Layout)
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.session.SetLayout(layout)
	h.svc.respond(w, r, http.StatusOK, h.svc.session.Render())
}

type setSearchRequest struct {
	Input string `json:"input"`
}

// setSearch feeds one edit of the search box. The response reflects the
// state before the debounce elapses; clients poll the view to observe the
// committed term.
func (h *viewHandler) setSearch(w http.ResponseWriter, r *http.Request) {
	req, err := decode[setSearchRequest](r)
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.session.SetSearchInput(req.Input)
	h.svc.respond(w, r, http.StatusAccepted, h.svc.session.Render())
}

type setPageRequest struct {
	Page int `json:"page"`
}

func (h *viewHandler) setPage(w http.ResponseWriter, r *http.Request) {
	req, err := decode[setPageRequest](r)
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.session.SetPage(req.Page)
	h.svc.respond(w, r, http.StatusOK, h.svc.session.Render())
}
