package handler

import (
	"net/http"

	"github.com/xenking/uto-pedidos/internal/web"
)

// Form serves the order registration page.
func (h *Handler) Form(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(web.Form)
}

// Static serves the form's assets under /static/.
func (h *Handler) Static() http.Handler {
	return http.StripPrefix("/static/", http.FileServerFS(web.Static()))
}
