package handlers

import (
	"net/http"

	"github.com/baharkarakas/legion/internal/api/httpx"
)

type health struct {
	Service string `json:"service"`
	Healthy bool   `json:"healthy"`
}

func Health(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteOK(w, http.StatusOK, health{Service: "legion", Healthy: true})
}
