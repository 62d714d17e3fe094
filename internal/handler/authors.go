package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/xenking/uto-pedidos/pkg/httpmiddleware"
)

// Authors of the project, reported by GET /api/autores.
var Authors = []string{
	"Julian Corredor",
	"Camila Assia",
	"Jose Otero",
}

// ListAuthors returns the fixed author list. It never touches the store.
func (h *Handler) ListAuthors(w http.ResponseWriter, _ *http.Request) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("autores")
	e.ArrStart()
	for _, a := range Authors {
		e.Str(a)
	}
	e.ArrEnd()
	e.ObjEnd()

	httpmiddleware.WriteJSON(w, http.StatusOK, e.Bytes())
}
