package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stocklight/stocklight/internal/apperr"
	"github.com/stocklight/stocklight/internal/form"
	"github.com/stocklight/stocklight/internal/query"
)

type productHandler struct {
	svc *Service
}

func newProductHandler(svc *Service) *productHandler {
	return &productHandler{svc: svc}
}

// list is the stateless query endpoint: filter by the search param,
// return the requested page.
func (h *productHandler) list(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			h.svc.respondError(w, r, apperr.ValidationErr.WrapParent(err))
			return
		}
		page = parsed
	}

	result := query.Search(h.svc.catalogSvc.Snapshot(), r.URL.Query().Get("search"), page)
	h.svc.respond(w, r, http.StatusOK, result)
}

func (h *productHandler) create(w http.ResponseWriter, r *http.Request) {
	raw, err := decode[form.Raw](r)
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}
	raw.ID = ""

	record, fieldErrs := h.svc.forms.Validate(raw)
	if fieldErrs != nil {
		h.svc.respondError(w, r, fieldErrs)
		return
	}

	saved, err := h.svc.catalogSvc.Save(r.Context(), record)
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.respond(w, r, http.StatusCreated, saved)
}

func (h *productHandler) update(w http.ResponseWriter, r *http.Request) {
	raw, err := decode[form.Raw](r)
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}
	// The path, not the body, names the record being replaced.
	raw.ID = chi.URLParam(r, "id")

	record, fieldErrs := h.svc.forms.Validate(raw)
	if fieldErrs != nil {
		h.svc.respondError(w, r, fieldErrs)
		return
	}

	existing, ok := h.svc.catalogSvc.Get(record.ID)
	if !ok {
		h.svc.respondError(w, r, apperr.ProductNotFoundErr)
		return
	}
	// createdAt is immutable and isActive is not part of the form.
	record.CreatedAt = existing.CreatedAt
	record.IsActive = existing.IsActive

	saved, err := h.svc.catalogSvc.Save(r.Context(), record)
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.respond(w, r, http.StatusOK, saved)
}

type resetResponse struct {
	Count int `json:"count"`
}

func (h *productHandler) reset(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.catalogSvc.Reset(r.Context())
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.session.Reset()

	h.svc.respond(w, r, http.StatusOK, resetResponse{Count: count})
}
