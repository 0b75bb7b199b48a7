package handlers

import (
	"net/http"

	"github.com/baharkarakas/legion/internal/api/httpx"
	"github.com/baharkarakas/legion/internal/api/validate"
	"github.com/baharkarakas/legion/internal/models"
	"github.com/baharkarakas/legion/internal/services"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register creates a user. The role defaults to athlete.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in models.NewUser
	raw, err := httpx.Decode(r, &in)
	if err == nil {
		err = validate.RequiredKeys(raw, "email", "password")
	}
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	sess, err := h.svc.Register(r.Context(), in)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusCreated, sess)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	raw, err := httpx.Decode(r, &req)
	if err == nil {
		err = validate.RequiredKeys(raw, "email", "password")
	}
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, sess)
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	raw, err := httpx.Decode(r, &req)
	if err == nil {
		err = validate.RequiredKeys(raw, "refreshToken")
	}
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	sess, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, sess)
}
