package httpmiddleware

import (
	"net/http"

	"github.com/go-faster/jx"
)

// Values of the "status" field in status responses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WriteJSON writes an already encoded JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// The status line is out; a failed write means the client went away.
	_, _ = w.Write(body)
}

// WriteStatus writes {"status": status, "mensaje": mensaje}.
func WriteStatus(w http.ResponseWriter, code int, status, mensaje string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("status")
	e.Str(status)
	e.FieldStart("mensaje")
	e.Str(mensaje)
	e.ObjEnd()

	WriteJSON(w, code, e.Bytes())
}

// WriteError writes an error status response.
func WriteError(w http.ResponseWriter, code int, mensaje string) {
	WriteStatus(w, code, StatusError, mensaje)
}
