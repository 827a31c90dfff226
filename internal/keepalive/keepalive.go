package keepalive

import (
	e "authsvc/internal/core/domain/errors"
	"authsvc/internal/core/domain/logging"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultInterval = 10 * time.Minute

// Pinger periodically requests a URL so that hosting platforms do not put an idle instance to sleep.
type Pinger struct {
	log      logging.Logger
	client   *http.Client
	url      string
	interval time.Duration
}

func New(log logging.Logger, client *http.Client, url string, interval time.Duration) *Pinger {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Pinger{log: log, client: client, url: url, interval: interval}
}

// Run pings on every tick until ctx is done. Failures are logged and never stop the loop.
func (p *Pinger) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info(
		ctx,
		"Starting keep-alive pinger.",
		logging.Entry("url", p.url),
		logging.Entry("intervalMinutes", p.interval.Minutes()),
	)

loop:
	for {
		select {
		case <-ctx.Done():
			p.log.Info(context.Background(), "Stopping keep-alive pinger.")
			break loop
		case <-ticker.C:
			status, err := p.Ping(ctx)
			if err != nil {
				p.log.Error(ctx, "Keep-alive ping failed.", logging.Entry("err", err))
				continue
			}
			p.log.Info(ctx, "Keep-alive ping done.", logging.Entry("status", status))
		}
	}
}

func (p *Pinger) Ping(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, fmt.Errorf("could not create keep-alive request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
