// Package classifier calls the external image-classification model and
// unwraps its answer.
package classifier

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fishlog-identify/internal/common/errors"
	commonhttp "fishlog-identify/internal/common/http"
	"fishlog-identify/internal/common/logger"
	"fishlog-identify/internal/models"
)

const maxResponseBytes = 1 << 20

// Client sends one instruction and one image per call.
type Client struct {
	config     Config
	httpClient *commonhttp.Client
	logger     logger.Logger
}

func NewClient(cfg Config, httpClient *commonhttp.Client, log logger.Logger) *Client {
	return &Client{config: cfg, httpClient: httpClient, logger: log}
}

// Classify sends the instruction and image and returns the answer text
// from the response envelope. Failures are *errors.StandardError values.
func (c *Client) Classify(ctx context.Context, instruction, image string) (string, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	body := request{
		Model:        c.config.Model,
		Instructions: instruction,
		Input: []inputMessage{{
			Role: "user",
			Content: []inputContent{{
				Type:     "input_image",
				ImageURL: image,
				Detail:   c.config.ImageDetail,
			}},
		}},
		MaxOutputTokens: c.config.MaxOutputTokens,
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + responsesPath
	headers := map[string]string{"Authorization": "Bearer " + c.config.APIKey}

	start := time.Now()
	resp, err := c.httpClient.PostJSON(ctx, url, headers, body)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errors.NewClassifierTimeoutError(c.config.Timeout)
		}
		return "", errors.NewClassifierTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errors.NewClassifierTimeoutError(c.config.Timeout)
		}
		return "", errors.NewClassifierTransportError(fmt.Errorf("read response: %w", err))
	}

	c.logger.Debug("Classifier responded", map[string]interface{}{
		"status":     resp.StatusCode,
		"durationMs": time.Since(start).Milliseconds(),
		"bytes":      len(raw),
	})

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", errors.NewClassifierFailedError(resp.StatusCode, string(raw))
	}

	text, err := Text(raw)
	if err != nil {
		return "", errors.NewClassifierMalformedOutputError(string(raw), err)
	}
	return text, nil
}

// ClassifyObject calls Classify and decodes the answer as one JSON object.
func (c *Client) ClassifyObject(ctx context.Context, instruction, image string) (models.Record, string, error) {
	text, err := c.Classify(ctx, instruction, image)
	if err != nil {
		return nil, "", err
	}
	obj, err := ParseObject(text)
	if err != nil {
		return nil, text, errors.NewClassifierMalformedOutputError(text, err)
	}
	return obj, text, nil
}
