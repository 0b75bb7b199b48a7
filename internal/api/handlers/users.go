package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/legion/internal/api/httpx"
	"github.com/baharkarakas/legion/internal/api/validate"
	"github.com/baharkarakas/legion/internal/models"
	"github.com/baharkarakas/legion/internal/services"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.svc.List(r.Context(), models.UserFilter{Role: q.Get("role"), OrganizationID: q.Get("organizationId")})
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userId")
	if err := validate.Param("userId", id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, u)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewUser
	raw, err := httpx.Decode(r, &in)
	if err == nil {
		err = validate.RequiredKeys(raw, "email", "password")
	}
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	u, err := h.svc.Create(r.Context(), in)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusCreated, u)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userId")
	var p models.UserPatch
	err := validate.Param("userId", id)
	if err == nil {
		err = httpx.DecodePatch(r, &p)
	}
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	u, err := h.svc.Update(r.Context(), id, p)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, u)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userId")
	if err := validate.Param("userId", id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
