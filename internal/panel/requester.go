package panel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"enet_panel/internal/logger"
)

// Fetcher issues a non-blocking GET and calls done with the body on success.
type Fetcher interface {
	Get(path string, done func(body string))
}

// Requester is the Fetcher used against a real device. Requests inherit the
// panel lifetime context and have no timeout of their own.
type Requester struct {
	ctx    context.Context
	client *http.Client
	base   *url.URL
	log    *logger.Logger

	mu       sync.Mutex
	idle     *sync.Cond
	inflight int
}

// NewRequester resolves request paths against baseURL. A nil client uses a
// fresh http.Client without a timeout.
func NewRequester(ctx context.Context, baseURL string, client *http.Client, log *logger.Logger) (*Requester, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse device url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("device url %q must be absolute", baseURL)
	}
	if client == nil {
		client = &http.Client{}
	}
	if log == nil {
		log = logger.Nop()
	}
	r := &Requester{ctx: ctx, client: client, base: base, log: log}
	r.idle = sync.NewCond(&r.mu)
	return r, nil
}

// Get returns immediately. done runs on the request goroutine, at most once,
// and only for a fully read 200 response.
func (r *Requester) Get(path string, done func(body string)) {
	target, err := r.resolve(path)
	if err != nil {
		r.log.Debugw("request_bad_path", "path", path, "err", err)
		return
	}

	r.mu.Lock()
	r.inflight++
	r.mu.Unlock()

	go func() {
		defer r.done()
		body, ok := r.fetch(target)
		if ok && done != nil {
			done(body)
		}
	}()
}

// Wait blocks until every issued request and its callback have returned.
// Unlike a WaitGroup it tolerates Get being called concurrently, e.g. by the
// refresh timer during shutdown.
func (r *Requester) Wait() {
	r.mu.Lock()
	for r.inflight > 0 {
		r.idle.Wait()
	}
	r.mu.Unlock()
}

func (r *Requester) done() {
	r.mu.Lock()
	r.inflight--
	if r.inflight == 0 {
		r.idle.Broadcast()
	}
	r.mu.Unlock()
}

func (r *Requester) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	return r.base.ResolveReference(ref).String(), nil
}

func (r *Requester) fetch(target string) (string, bool) {
	req, err := http.NewRequestWithContext(r.ctx, http.MethodGet, target, nil)
	if err != nil {
		r.log.Debugw("request_build_failed", "url", target, "err", err)
		return "", false
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Debugw("request_failed", "url", target, "err", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		r.log.Debugw("request_not_ok", "url", target, "status", resp.StatusCode)
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.log.Debugw("request_body_failed", "url", target, "err", err)
		return "", false
	}
	return string(body), true
}
