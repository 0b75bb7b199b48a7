package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/legion/internal/api/httpx"
	"github.com/baharkarakas/legion/internal/api/validate"
	"github.com/baharkarakas/legion/internal/models"
	"github.com/baharkarakas/legion/internal/query"
	"github.com/baharkarakas/legion/internal/services"
)

type WorkoutHandler struct {
	svc     *services.WorkoutService
	records *services.RecordService
}

func NewWorkoutHandler(svc *services.WorkoutService, records *services.RecordService) *WorkoutHandler {
	return &WorkoutHandler{svc: svc, records: records}
}

// workoutParams keeps length and page nil when absent, so "?page=" is
// distinguishable from no page at all.
func workoutParams(q url.Values) query.WorkoutParams {
	p := query.WorkoutParams{
		Mode:      q.Get("mode"),
		Equipment: q.Get("equipment"),
		Sort:      q.Get("sort"),
	}
	if q.Has("length") {
		v := q.Get("length")
		p.Length = &v
	}
	if q.Has("page") {
		v := q.Get("page")
		p.Page = &v
	}
	return p
}

func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	ws, err := h.svc.List(r.Context(), workoutParams(r.URL.Query()))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, ws)
}

func (h *WorkoutHandler) Random(w http.ResponseWriter, r *http.Request) {
	p := workoutParams(r.URL.Query())
	p.Length, p.Page = nil, nil
	wo, err := h.svc.Random(r.Context(), p)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, wo)
}

func (h *WorkoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workoutId")
	if err := validate.Param("workoutId", id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	wo, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, wo)
}

func (h *WorkoutHandler) Records(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workoutId")
	if err := validate.Param("workoutId", id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	recs, err := h.records.ForWorkout(r.Context(), id)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, recs)
}

func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewWorkout
	raw, err := httpx.Decode(r, &in)
	if err == nil {
		err = validate.RequiredKeys(raw, "name", "mode", "equipment", "exercises", "trainerTips")
	}
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	wo, err := h.svc.Create(r.Context(), in)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusCreated, wo)
}

func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workoutId")
	var p models.WorkoutPatch
	err := validate.Param("workoutId", id)
	if err == nil {
		err = httpx.DecodePatch(r, &p)
	}
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	wo, err := h.svc.Update(r.Context(), id, p)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, wo)
}

func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workoutId")
	if err := validate.Param("workoutId", id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
