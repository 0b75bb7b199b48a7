package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/legion/internal/api/httpx"
	"github.com/baharkarakas/legion/internal/api/validate"
	"github.com/baharkarakas/legion/internal/models"
	"github.com/baharkarakas/legion/internal/services"
)

type MemberHandler struct {
	svc *services.MemberService
}

func NewMemberHandler(svc *services.MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	members, err := h.svc.List(r.Context(), models.MemberFilter{Gender: q.Get("gender"), Email: q.Get("email")})
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, members)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "memberId")
	if err := validate.Param("memberId", id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, m)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewMember
	raw, err := httpx.Decode(r, &in)
	if err == nil {
		err = validate.RequiredKeys(raw, "name", "gender", "dateOfBirth", "email")
	}
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	m, err := h.svc.Create(r.Context(), in)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusCreated, m)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "memberId")
	var p models.MemberPatch
	err := validate.Param("memberId", id)
	if err == nil {
		err = httpx.DecodePatch(r, &p)
	}
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	m, err := h.svc.Update(r.Context(), id, p)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, m)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "memberId")
	if err := validate.Param("memberId", id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
