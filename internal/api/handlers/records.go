package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/legion/internal/api/httpx"
	"github.com/baharkarakas/legion/internal/api/validate"
	"github.com/baharkarakas/legion/internal/models"
	"github.com/baharkarakas/legion/internal/services"
)

type RecordHandler struct {
	svc *services.RecordService
}

func NewRecordHandler(svc *services.RecordService) *RecordHandler {
	return &RecordHandler{svc: svc}
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	recs, err := h.svc.List(r.Context(), models.RecordFilter{Workout: q.Get("workoutId"), MemberID: q.Get("memberId")})
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, recs)
}

func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recordId")
	if err := validate.Param("recordId", id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, rec)
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewRecord
	raw, err := httpx.Decode(r, &in)
	if err == nil {
		err = validate.RequiredKeys(raw, "workout", "memberId", "record")
	}
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	rec, err := h.svc.Create(r.Context(), in)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusCreated, rec)
}

func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recordId")
	var p models.RecordPatch
	err := validate.Param("recordId", id)
	if err == nil {
		err = httpx.DecodePatch(r, &p)
	}
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	rec, err := h.svc.Update(r.Context(), id, p)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, rec)
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recordId")
	if err := validate.Param("recordId", id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
