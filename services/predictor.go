package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"ridedemand/ensemble"
	"ridedemand/logging"
	"ridedemand/metrics"
	"ridedemand/models"
)

var ErrModelUnavailable = errors.New("model unavailable")

const (
	MsgUnavailable = "Machine learning model is not available. Please check server logs."
	MsgInternal    = "An error occurred: prediction failed."
	invalidPrefix  = "Invalid input: "
)

// Model is anything that maps a feature vector to a trip volume.
type Model interface {
	Predict(x []float64) (float64, error)
}

type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureInvalidInput
	FailureUnavailable
	FailureInternal
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureInvalidInput:
		return "invalid_input"
	case FailureUnavailable:
		return "unavailable"
	case FailureInternal:
		return "internal"
	}
	return "unknown"
}

// Result is either a predicted trip count or the reason there is none.
type Result struct {
	Trips   int
	Failure FailureKind
	Message string
}

func (r Result) OK() bool {
	return r.Failure == FailureNone
}

func failed(kind FailureKind, msg string) Result {
	metrics.PredictionsFailed.WithLabelValues(kind.String()).Inc()
	return Result{Failure: kind, Message: msg}
}

// Predictor serves predictions from a model loaded once at start. It is
// Ready when a model is held and Unavailable otherwise; it never changes
// state after construction and is safe for concurrent use.
type Predictor struct {
	model       Model
	loadErr     error
	fingerprint string
	cache       *PredictionCache
	logger      *slog.Logger
}

// NewPredictor wraps an already loaded model.
func NewPredictor(model Model, cache *PredictionCache, logger *slog.Logger) *Predictor {
	p := &Predictor{model: model, cache: cache, logger: logger, fingerprint: "mem"}
	if model == nil {
		p.loadErr = ErrModelUnavailable
	}
	metrics.ModelReady.Set(boolGauge(p.Ready()))
	return p
}

// LoadPredictor loads the artifact at path. A missing or unreadable
// artifact yields an Unavailable predictor rather than an error.
func LoadPredictor(path string, cache *PredictionCache, logger *slog.Logger) *Predictor {
	p := &Predictor{cache: cache, logger: logger}

	model, err := ensemble.Load(path, models.FeatureNames)
	if err == nil {
		p.fingerprint, err = fileFingerprint(path)
	}
	if err != nil {
		p.loadErr = fmt.Errorf("%w: %w", ErrModelUnavailable, err)
		logging.LogError(logger, "model not loaded", err, slog.String("path", path))
	} else {
		p.model = model
		logging.LogOperation(logger, "model loaded",
			slog.String("path", path),
			slog.String("fingerprint", p.fingerprint))
	}

	metrics.ModelReady.Set(boolGauge(p.Ready()))
	return p
}

func (p *Predictor) Ready() bool {
	return p.model != nil
}

// LoadErr explains why the predictor is Unavailable.
func (p *Predictor) LoadErr() error {
	return p.loadErr
}

// PredictForm parses, validates and evaluates a form submission.
func (p *Predictor) PredictForm(ctx context.Context, f models.PredictionForm) Result {
	if !p.Ready() {
		return failed(FailureUnavailable, MsgUnavailable)
	}
	req, err := ParseForm(f)
	if err != nil {
		return failed(FailureInvalidInput, invalidPrefix+err.Error())
	}
	return p.Predict(ctx, req)
}

// Predict validates a parsed request and evaluates the model. The model is
// never called for an invalid request.
func (p *Predictor) Predict(ctx context.Context, req models.PredictionRequest) Result {
	if !p.Ready() {
		return failed(FailureUnavailable, MsgUnavailable)
	}
	if err := Validate(req); err != nil {
		return failed(FailureInvalidInput, invalidPrefix+err.Error())
	}

	key := p.cacheKey(req)
	if trips, ok := p.cache.Get(ctx, key); ok {
		metrics.PredictionCacheHits.Inc()
		metrics.PredictionsServed.Inc()
		return Result{Trips: trips}
	}

	raw, err := p.infer(req.Features())
	if err != nil {
		logging.LogError(logging.ContextLogger(ctx, p.logger), "inference failed", err,
			slog.Int("hour", req.Hour),
			slog.Int("day", req.Day),
			slog.Int("dayofweek", req.DayOfWeek),
			slog.Int("month", req.Month))
		return failed(FailureInternal, MsgInternal)
	}

	// half to even, as the web form has always rounded
	trips := int(math.RoundToEven(raw))
	p.cache.Set(ctx, key, trips)
	metrics.PredictionsServed.Inc()
	return Result{Trips: trips}
}

func (p *Predictor) infer(x []float64) (out float64, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panicked: %v", r)
		}
		metrics.InferenceDuration.Observe(time.Since(start).Seconds())
	}()

	out, err = p.model.Predict(x)
	if err == nil && (math.IsNaN(out) || math.IsInf(out, 0)) {
		err = fmt.Errorf("non-finite prediction %v", out)
	}
	return out, err
}

func (p *Predictor) cacheKey(req models.PredictionRequest) string {
	return fmt.Sprintf("prediction:%s:%d:%d:%d:%d:%s:%s",
		p.fingerprint, req.Hour, req.Day, req.DayOfWeek, req.Month,
		strconv.FormatFloat(req.Lat, 'g', -1, 64),
		strconv.FormatFloat(req.Lon, 'g', -1, 64))
}

// fileFingerprint identifies an artifact so that replicas sharing a cache
// never mix predictions from different training runs.
func fileFingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil))[:16], nil
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
