package httpmiddleware

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/sdk/zctx"
	"github.com/klauspost/pgzip"
	"go.uber.org/zap"
)

// gzipBody closes both the inflating reader and the original body.
type gzipBody struct {
	*pgzip.Reader
	orig io.Closer
}

func (b gzipBody) Close() error {
	err := b.Reader.Close()
	if cerr := b.orig.Close(); err == nil {
		err = cerr
	}
	return err
}

// Decompress returns a middleware that transparently inflates request bodies
// sent with Content-Encoding: gzip. A body without a valid gzip header is
// answered with 400; corruption further into the stream surfaces as a read
// error to the wrapped handler.
func Decompress() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.EqualFold(strings.TrimSpace(r.Header.Get("Content-Encoding")), "gzip") {
				next.ServeHTTP(w, r)
				return
			}

			zr, err := pgzip.NewReader(r.Body)
			if err != nil {
				zctx.From(r.Context()).Debug("Invalid gzip body", zap.Error(err))
				WriteError(w, http.StatusBadRequest, "Cuerpo gzip inválido")
				return
			}

			r2 := r.Clone(r.Context())
			r2.Body = gzipBody{Reader: zr, orig: r.Body}
			r2.Header.Del("Content-Encoding")
			r2.Header.Del("Content-Length")
			r2.ContentLength = -1
			next.ServeHTTP(w, r2)
		})
	}
}
