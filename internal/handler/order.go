package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/uto-pedidos/internal/domain/order"
	"github.com/xenking/uto-pedidos/pkg/httpmiddleware"
)

// Response messages of the intake endpoint.
const (
	MsgAccepted  = "Recibido en Centro de Distribución"
	MsgInvalid   = "Payload inválido"
	MsgMalformed = "JSON inválido"
	MsgInternal  = "Error interno"
)

// SubmitOrder reads the request body, hands it to the order service, and maps
// the result (or error) to a JSON status response.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		zctx.From(r.Context()).Debug("Read order body", zap.Error(err))
		httpmiddleware.WriteError(w, http.StatusBadRequest, MsgMalformed)
		return
	}

	if _, err := h.orders.Submit(r.Context(), body); err != nil {
		mapOrderError(w, r, err)
		return
	}
	httpmiddleware.WriteStatus(w, http.StatusOK, httpmiddleware.StatusSuccess, MsgAccepted)
}

// mapOrderError converts domain errors to client-visible responses.
func mapOrderError(w http.ResponseWriter, r *http.Request, err error) {
	lg := zctx.From(r.Context())

	switch {
	case errors.Is(err, order.ErrMalformedBody):
		lg.Debug("Malformed order body", zap.Error(err))
		httpmiddleware.WriteError(w, http.StatusBadRequest, MsgMalformed)
	case errors.Is(err, order.ErrInvalidOrder):
		lg.Debug("Order rejected", zap.Error(err))
		httpmiddleware.WriteError(w, http.StatusBadRequest, MsgInvalid)
	default:
		lg.Error("Submit order", zap.Error(err))
		httpmiddleware.WriteError(w, http.StatusInternalServerError, MsgInternal)
	}
}
