package sync

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"soloquest/internal/engine"
)

const watchRetryDelay = 2 * time.Second

// HTTPRemote talks to a soloquest sync daemon. It implements RemoteStore
// over plain HTTP plus an SSE watch stream.
type HTTPRemote struct {
	base   string
	client *http.Client
	logger *slog.Logger
}

func NewHTTPRemote(base string, logger *slog.Logger) *HTTPRemote {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPRemote{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

func (r *HTTPRemote) stateURL(code string) string {
	return r.base + "/v1/state/" + url.PathEscape(code)
}

func (r *HTTPRemote) Push(ctx context.Context, code string, st engine.State) error {
	body, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.stateURL(code), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("push state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push state: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (r *HTTPRemote) Fetch(ctx context.Context, code string) (*engine.State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.stateURL(code), nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch state: unexpected status %d", resp.StatusCode)
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		// Malformed remote data means "no remote profile yet".
		r.logger.Warn("ignoring malformed remote document", "err", err)
		return nil, nil
	}
	st, ok := decodeState(env.State, r.logger)
	if !ok {
		return nil, nil
	}
	return st, nil
}

// Watch streams SSE frames from the daemon, reconnecting until ctx ends.
func (r *HTTPRemote) Watch(ctx context.Context, code string, fn func(engine.State)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.watchOnce(ctx, code, fn); err != nil && ctx.Err() == nil {
			r.logger.Warn("watch stream dropped, reconnecting", "err", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(watchRetryDelay):
		}
	}
}

func (r *HTTPRemote) watchOnce(ctx context.Context, code string, fn func(engine.State)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.stateURL(code)+"/watch", nil)
	if err != nil {
		return fmt.Errorf("build watch request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	// No client timeout on the streaming connection; ctx governs its life.
	streamClient := &http.Client{}
	resp, err := streamClient.Do(req)
	if err != nil {
		return fmt.Errorf("open watch stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("watch stream: unexpected status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var env Envelope
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &env); err != nil {
			r.logger.Warn("ignoring malformed watch frame", "err", err)
			continue
		}
		if st, ok := decodeState(env.State, r.logger); ok {
			fn(*st)
		}
	}
	return scanner.Err()
}

func decodeState(raw json.RawMessage, logger *slog.Logger) (*engine.State, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var st engine.State
	if err := json.Unmarshal(raw, &st); err != nil {
		logger.Warn("ignoring malformed remote state", "err", err)
		return nil, false
	}
	if st.History == nil {
		st.History = map[string]engine.DayProgress{}
	}
	return &st, true
}
