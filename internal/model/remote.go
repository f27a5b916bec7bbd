// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/nutriplan/internal/metrics"
	"github.com/tomtom215/nutriplan/internal/models"
)

// RemoteConfig configures a model served over HTTP by a sidecar process.
type RemoteConfig struct {
	// URL is the prediction endpoint, e.g. http://model:8500/predict.
	URL string

	// Timeout bounds a single prediction call.
	Timeout time.Duration

	// PerSlot declares that the server understands the "slot" field.
	PerSlot bool

	// Version names the model deployed behind URL. It scopes cached
	// predictions; bump it when the sidecar is redeployed.
	Version string

	// Breaker settings. Zero values select the defaults below.
	BreakerMaxRequests  uint32
	BreakerInterval     time.Duration
	BreakerTimeout      time.Duration
	BreakerMinRequests  uint32
	BreakerFailureRatio float64
}

type predictRequest struct {
	Features [][]float64 `json:"features"`
	Slot     string      `json:"slot,omitempty"`
}

type predictResponse struct {
	Prediction string `json:"prediction"`
	Error      string `json:"error,omitempty"`
}

// Remote calls a model server. Calls pass through a circuit breaker so an
// unhealthy server fails fast instead of stalling every request.
type Remote struct {
	url     string
	version string
	perSlot bool
	client  *http.Client
	cb      *gobreaker.CircuitBreaker[string]
	name    string
	logger  zerolog.Logger
	closed  atomic.Bool
}

// NewRemote builds a Remote. The HTTP client may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRemote(cfg RemoteConfig, client *http.Client, logger zerolog.Logger) (*Remote, error) {
	if cfg.URL == "" {
		return nil, errors.New("remote model URL is required")
	}
	if !strings.HasPrefix(cfg.URL, "http://") && !strings.HasPrefix(cfg.URL, "https://") {
		return nil, fmt.Errorf("remote model URL must be http(s), got %q", cfg.URL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.BreakerMaxRequests == 0 {
		cfg.BreakerMaxRequests = 3
	}
	if cfg.BreakerInterval <= 0 {
		cfg.BreakerInterval = time.Minute
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}
	if cfg.BreakerMinRequests == 0 {
		cfg.BreakerMinRequests = 5
	}
	if cfg.BreakerFailureRatio <= 0 || cfg.BreakerFailureRatio > 1 {
		cfg.BreakerFailureRatio = 0.6
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	r := &Remote{
		url:     cfg.URL,
		version: cfg.Version,
		perSlot: cfg.PerSlot,
		client:  client,
		name:    "model-server",
		logger:  logger.With().Str("component", "model").Str("backend", BackendRemote).Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(r.name).Set(0)

	r.cb = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        r.name,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= cfg.BreakerFailureRatio {
				r.logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("Opening model circuit breaker")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.Info().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("Model circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
		// the caller giving up is not a server failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return r, nil
}

// Predict implements Predictor.
func (r *Remote) Predict(ctx context.Context, f Features) (string, error) {
	return r.execute(ctx, predictRequest{Features: [][]float64{f.Vector()}})
}

// PredictSlot implements SlotPredictor.
func (r *Remote) PredictSlot(ctx context.Context, slot models.Slot, f Features) (string, error) {
	if !r.perSlot {
		return "", ErrSlotsUnsupported
	}
	return r.execute(ctx, predictRequest{Features: [][]float64{f.Vector()}, Slot: string(slot)})
}

// SupportsSlots implements SlotPredictor.
func (r *Remote) SupportsSlots() bool {
	return r.perSlot
}

// CacheNamespace scopes cached predictions to the endpoint and the
// configured model version.
func (r *Remote) CacheNamespace() string {
	ns := BackendRemote + ":" + r.url
	if r.version != "" {
		ns += ":" + r.version
	}
	return ns
}

// State returns the circuit breaker state name.
func (r *Remote) State() string {
	return stateToString(r.cb.State())
}

// Close implements Model.
func (r *Remote) Close() error {
	r.closed.Store(true)
	r.client.CloseIdleConnections()
	return nil
}

func (r *Remote) execute(ctx context.Context, req predictRequest) (string, error) {
	if r.closed.Load() {
		return "", ErrClosed
	}

	label, err := r.cb.Execute(func() (string, error) {
		return r.call(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(r.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(r.name, "failure").Inc()
		}
		return "", fmt.Errorf("remote prediction: %w", err)
	}
	metrics.CircuitBreakerRequests.WithLabelValues(r.name, "success").Inc()
	return label, nil
}

func (r *Remote) call(ctx context.Context, body predictRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out predictResponse
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil && resp.StatusCode == http.StatusOK {
			return "", fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return "", fmt.Errorf("model server returned %d: %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("model server returned %d", resp.StatusCode)
	}
	if out.Prediction == "" {
		return "", errors.New("model server returned an empty prediction")
	}
	return out.Prediction, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

var (
	_ Model         = (*Remote)(nil)
	_ SlotPredictor = (*Remote)(nil)
)
