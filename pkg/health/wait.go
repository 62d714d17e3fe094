package health

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-faster/errors"
)

// WaitConfig bounds how long WaitReady polls.
type WaitConfig struct {
	// Attempts is the maximum number of probes. Defaults to 10.
	Attempts uint
	// Interval is the delay before the second probe. Defaults to 100ms.
	Interval time.Duration
	// MaxInterval caps the exponential delay between probes. Defaults to 2s.
	MaxInterval time.Duration
}

// WaitReady polls url until it answers 200 or the attempts are exhausted.
// Callers that launch the service use it before sending any traffic.
func WaitReady(ctx context.Context, client *http.Client, url string, cfg WaitConfig) error {
	if cfg.Attempts == 0 {
		cfg.Attempts = 10
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 100 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 2 * time.Second
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.Interval
	b.MaxInterval = cfg.MaxInterval

	probe := func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return struct{}{}, backoff.Permanent(errors.Wrap(err, "create request"))
		}
		resp, err := client.Do(req)
		if err != nil {
			return struct{}{}, errors.Wrap(err, "probe")
		}
		defer func() { _ = resp.Body.Close() }()
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode != http.StatusOK {
			return struct{}{}, errors.Errorf("readiness status %d", resp.StatusCode)
		}
		return struct{}{}, nil
	}

	if _, err := backoff.Retry(ctx, probe,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(cfg.Attempts),
	); err != nil {
		return errors.Wrapf(err, "wait for %s", url)
	}
	return nil
}
