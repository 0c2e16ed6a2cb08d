// Package identify runs the species identification pipeline and serves it
// over HTTP.
package identify

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"fishlog-identify/internal/common/errors"
	"fishlog-identify/internal/common/logger"
	"fishlog-identify/internal/common/metrics"
	"fishlog-identify/internal/common/middleware"
	"fishlog-identify/internal/common/observability"
	"fishlog-identify/internal/models"
	"fishlog-identify/internal/species"
	"fishlog-identify/internal/suggestion"
)

// DefaultImagePrefix is prepended to images sent without a data scheme.
const DefaultImagePrefix = "data:image/jpeg;base64,"

// UnmatchedMessage explains an unmatched outcome to the caller.
const UnmatchedMessage = "No known species matched the image"

// DirectoryLoader builds the species directory for one request.
type DirectoryLoader interface {
	Load(ctx context.Context) (*species.Directory, error)
	SourceName() string
}

// Classifier sends an instruction and an image to the external model and
// returns its answer decoded as one JSON object, plus the raw answer text.
type Classifier interface {
	ClassifyObject(ctx context.Context, instruction, image string) (models.Record, string, error)
}

// Service runs identification requests against a directory loader and
// the classifier.
type Service struct {
	loader     DirectoryLoader
	classifier Classifier
	logger     logger.Logger
	obs        *observability.Observability
}

// NewService creates a Service. obs may be nil.
func NewService(loader DirectoryLoader, classifier Classifier, log logger.Logger, obs *observability.Observability) *Service {
	return &Service{
		loader:     loader,
		classifier: classifier,
		logger:     log.With(map[string]interface{}{"component": "identify"}),
		obs:        obs,
	}
}

// NormalizeImage returns image as a data URL, adding the default JPEG
// prefix to bare base64 payloads.
func NormalizeImage(image string) string {
	image = strings.TrimSpace(image)
	if image == "" || strings.HasPrefix(image, "data:") {
		return image
	}
	return DefaultImagePrefix + image
}

// Identify runs one request through the pipeline. Steps run strictly in
// order: the directory must be loaded before the prompt can be built.
// Returned errors are *errors.StandardError values.
func (s *Service) Identify(ctx context.Context, image string) (resp *models.IdentifyResponse, err error) {
	start := time.Now()
	mode := PromptOpen
	log := s.logger.With(map[string]interface{}{
		"requestId": middleware.RequestIDFromContext(ctx),
	})

	ctx, span := s.obs.StartSpan(ctx, "identify")
	defer func() {
		outcome := outcomeOf(resp, err)
		span.SetAttributes(attribute.String("outcome", outcome), attribute.String("prompt_mode", string(mode)))
		span.End()

		metrics.IdentifyRequests.WithLabelValues(outcome).Inc()
		metrics.IdentifyDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
		s.obs.RecordRequest(ctx, outcome)
		if err != nil {
			stdErr := errors.Normalize(err)
			metrics.IdentifyErrors.WithLabelValues(string(stdErr.Code), errors.GetErrorCategory(stdErr.Code)).Inc()
		}
	}()

	image = NormalizeImage(image)
	if image == "" {
		return nil, errors.NewMissingImageError()
	}

	dir := s.loadDirectory(ctx, log)

	prompt, mode := BuildPrompt(dir)
	log = log.With(map[string]interface{}{
		"promptMode":    string(mode),
		"directorySize": dir.Len(),
	})

	obj, raw, err := s.classify(ctx, prompt, image)
	if err != nil {
		log.Error("Classifier call failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	list := suggestion.Extract(obj)
	if len(list) == 0 {
		log.Warn("Classifier answer had no usable suggestion", map[string]interface{}{
			"answer": errors.Truncate(raw, errors.MaxDebugLength),
		})
		return nil, errors.NewNoSuggestionError(raw)
	}

	if suggestion.AllUnmatched(list) {
		log.Info("Image did not match any species", map[string]interface{}{
			"suggestionCount": len(list),
		})
		return &models.IdentifyResponse{
			Suggestions: []models.Suggestion{},
			Unmatched:   true,
			Error:       UnmatchedMessage,
		}, nil
	}

	list = matchAll(list, dir, mode == PromptConstrained)
	for _, sg := range list {
		metrics.SuggestionsReturned.WithLabelValues(string(sg.Source), boolLabel(sg.Matched)).Inc()
	}

	log.Info("Identification completed", map[string]interface{}{
		"suggestionCount": len(list),
		"primary":         list[0].Species,
		"primaryMatched":  list[0].Matched,
		"durationMs":      time.Since(start).Milliseconds(),
	})
	return &models.IdentifyResponse{Suggestions: list}, nil
}

// loadDirectory returns nil on any failure; the caller carries on with
// the open prompt.
func (s *Service) loadDirectory(ctx context.Context, log logger.Logger) *species.Directory {
	source := s.loader.SourceName()
	ctx, span := s.obs.StartSpan(ctx, "identify.load_directory", attribute.String("source", source))
	defer span.End()

	start := time.Now()
	dir, err := s.loader.Load(ctx)
	s.obs.RecordStageDuration(ctx, "load_directory", time.Since(start))

	if err != nil {
		degraded := errors.NewDirectoryLoadFailedError(source, err)
		span.RecordError(err)
		metrics.DirectoryLoads.WithLabelValues(source, "failed").Inc()
		log.Warn("Species directory unavailable, using open prompt", map[string]interface{}{
			"errorCode": string(degraded.Code),
			"details":   degraded.Details,
		})
		return nil
	}

	metrics.DirectoryLoads.WithLabelValues(source, "ok").Inc()
	metrics.DirectorySize.Set(float64(dir.Len()))
	span.SetAttributes(attribute.Int("directory_size", dir.Len()))
	return dir
}

func (s *Service) classify(ctx context.Context, prompt, image string) (models.Record, string, error) {
	ctx, span := s.obs.StartSpan(ctx, "identify.classify")
	defer span.End()

	start := time.Now()
	obj, raw, err := s.classifier.ClassifyObject(ctx, prompt, image)
	elapsed := time.Since(start)
	s.obs.RecordStageDuration(ctx, "classify", elapsed)

	result := "ok"
	if err != nil {
		result = string(errors.Normalize(err).Code)
		span.RecordError(err)
	}
	metrics.ClassifierDuration.WithLabelValues(result).Observe(elapsed.Seconds())
	return obj, raw, err
}

// matchAll resolves each suggestion against dir. Matched labels are
// replaced by the canonical label. In constrained mode a label outside the
// catalog is kept and flagged as unmatched.
func matchAll(list []models.Suggestion, dir *species.Directory, constrained bool) []models.Suggestion {
	out := make([]models.Suggestion, len(list))
	for i, sg := range list {
		if label, ok := dir.Match(sg.Species); ok {
			sg.Species = label
			sg.Matched = true
			sg.Source = models.SourceDatabase
		} else {
			sg.Matched = false
			sg.Source = models.SourceAI
			sg.Unmatched = constrained
		}
		out[i] = sg
	}
	return out
}

func outcomeOf(resp *models.IdentifyResponse, err error) string {
	switch {
	case err != nil:
		return "error"
	case resp == nil:
		return "error"
	case resp.Unmatched:
		return "unmatched"
	}
	for _, sg := range resp.Suggestions {
		if sg.Matched {
			return "matched"
		}
	}
	return "unconfirmed"
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
