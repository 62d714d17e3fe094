package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service encapsulates order intake: parse, validate, append.
type Service struct {
	store   Store
	metrics *Metrics
	now     func() time.Time
}

// NewService creates an intake Service appending admitted orders to store.
func NewService(store Store, metrics *Metrics) *Service {
	return &Service{
		store:   store,
		metrics: metrics,
		now:     time.Now,
	}
}

// Submit decodes body and admits it as an order. It fails with
// ErrMalformedBody when body is not JSON and with a *ValidationError when the
// payload breaks the order rules; in both cases the store is untouched.
func (s *Service) Submit(ctx context.Context, body []byte) (*Order, error) {
	p, err := ParsePayload(body)
	if err != nil {
		s.metrics.RecordRejected(ctx, RejectMalformed)
		return nil, err
	}
	return s.Admit(ctx, p)
}

// Admit validates an already decoded payload and appends it to the store.
func (s *Service) Admit(ctx context.Context, p Payload) (*Order, error) {
	req, err := Validate(p)
	if err != nil {
		s.metrics.RecordRejected(ctx, RejectInvalid)
		return nil, err
	}

	o := Order{
		ID:         uuid.New().String(),
		Cliente:    req.Cliente,
		Producto:   req.Producto,
		Cantidad:   req.Cantidad,
		Ciudad:     req.Ciudad,
		ReceivedAt: s.now(),
	}
	if err := s.store.Append(ctx, o); err != nil {
		return nil, errors.Wrap(err, "append order")
	}
	s.metrics.RecordAdmitted(ctx)

	zctx.From(ctx).Info("Nueva orden",
		zap.String("id", o.ID),
		zap.String("producto", o.Producto),
		zap.String("cliente", o.Cliente),
		zap.Int64("cantidad", o.Cantidad),
	)
	return &o, nil
}
