// Package client is a typed HTTP client for the order intake API.
package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/uto-pedidos/pkg/health"
)

// OrderRequest is an order submission.
type OrderRequest struct {
	Cliente  string
	Producto string
	Cantidad int64
	Ciudad   string
}

// Encode writes the request as a JSON object.
func (r OrderRequest) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("cliente")
	e.Str(r.Cliente)
	e.FieldStart("producto")
	e.Str(r.Producto)
	e.FieldStart("cantidad")
	e.Int64(r.Cantidad)
	e.FieldStart("ciudad")
	e.Str(r.Ciudad)
	e.ObjEnd()
}

// StatusResponse is the body of a submission response together with its
// HTTP status code.
type StatusResponse struct {
	Code    int
	Status  string
	Mensaje string
}

// Accepted reports whether the order was admitted.
func (r *StatusResponse) Accepted() bool {
	return r.Code == http.StatusOK && r.Status == "success"
}

// Client talks to a running intake service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the service at baseURL. A nil httpClient means
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// WaitReady blocks until the service readiness probe passes.
func (c *Client) WaitReady(ctx context.Context, cfg health.WaitConfig) error {
	return health.WaitReady(ctx, c.http, c.baseURL+"/readyz", cfg)
}

// SubmitOrder posts req to /api/pedidos. Rejections are not errors: inspect
// the returned StatusResponse.
func (c *Client) SubmitOrder(ctx context.Context, req OrderRequest) (*StatusResponse, error) {
	var e jx.Encoder
	req.Encode(&e)
	return c.SubmitRaw(ctx, e.Bytes())
}

// SubmitRaw posts an arbitrary body to /api/pedidos.
func (c *Client) SubmitRaw(ctx context.Context, body []byte) (*StatusResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/pedidos", body)
	if err != nil {
		return nil, err
	}

	out := &StatusResponse{Code: resp.code}
	if err := jx.DecodeBytes(resp.body).ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "status":
			out.Status, err = d.Str()
		case "mensaje":
			out.Mensaje, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		return nil, errors.Wrapf(err, "decode response (status %d)", resp.code)
	}
	return out, nil
}

// Authors fetches the project author list.
func (c *Client) Authors(ctx context.Context) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/autores", nil)
	if err != nil {
		return nil, err
	}
	if resp.code != http.StatusOK {
		return nil, errors.Errorf("unexpected status %d", resp.code)
	}

	var authors []string
	if err := jx.DecodeBytes(resp.body).ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "autores" {
			return d.Skip()
		}
		return d.Arr(func(d *jx.Decoder) error {
			s, err := d.Str()
			if err != nil {
				return err
			}
			authors = append(authors, s)
			return nil
		})
	}); err != nil {
		return nil, errors.Wrap(err, "decode authors")
	}
	return authors, nil
}

type rawResponse struct {
	code int
	body []byte
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*rawResponse, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}
	return &rawResponse{code: resp.StatusCode, body: data}, nil
}
