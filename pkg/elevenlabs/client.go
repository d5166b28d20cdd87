// Package elevenlabs is a small client for the ElevenLabs REST API covering the
// two calls the bot needs: listing voices and synthesizing speech.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sipeed/picotts/pkg/logger"
	"github.com/sipeed/picotts/pkg/metrics"
)

const (
	// DefaultBaseURL is the public ElevenLabs API root.
	DefaultBaseURL = "https://api.elevenlabs.io/v1"

	// DefaultVoiceID is Rachel, used when nothing else is configured.
	DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

	// ModelMultilingual is the fixed synthesis model.
	ModelMultilingual = "eleven_multilingual_v2"

	defaultStability       = 0.5
	defaultSimilarityBoost = 0.75

	defaultSynthesizeTimeout = 60 * time.Second
	defaultListTimeout       = 10 * time.Second

	// errorBodyLimit caps how much of a failed response is kept for logging.
	errorBodyLimit = 4096

	opSynthesize = "synthesize"
	opListVoices = "list_voices"
)

// Voice is a directory entry.
type Voice struct {
	VoiceID string `json:"voice_id"`
	Name    string `json:"name"`
}

// SynthesisRequest is one text-to-speech call.
type SynthesisRequest struct {
	Text    string
	VoiceID string
}

// Client talks to the ElevenLabs API with a single API key.
type Client struct {
	apiKey            string
	baseURL           string
	httpClient        *http.Client
	synthesizeTimeout time.Duration
	listTimeout       time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeouts overrides the per-call deadlines for listing and synthesis.
func WithTimeouts(list, synthesize time.Duration) Option {
	return func(c *Client) {
		if list > 0 {
			c.listTimeout = list
		}
		if synthesize > 0 {
			c.synthesizeTimeout = synthesize
		}
	}
}

// NewClient creates a client. An empty apiKey is allowed; HasCredential
// reports it so callers can short-circuit before any network call.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:            apiKey,
		baseURL:           DefaultBaseURL,
		httpClient:        &http.Client{},
		synthesizeTimeout: defaultSynthesizeTimeout,
		listTimeout:       defaultListTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasCredential reports whether an API key was configured.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

type synthesizeBody struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize converts text to audio/mpeg bytes. Every failure comes back as *Error.
func (c *Client) Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error) {
	start := time.Now()
	audio, err := c.synthesize(ctx, req)
	metrics.ObserveProviderRequest(opSynthesize, outcomeOf(err), time.Since(start))
	if err != nil {
		c.logFailure(err, map[string]any{"voice_id": req.VoiceID, "text_length": len(req.Text)})
		return nil, err
	}

	logger.DebugCF("elevenlabs", "Speech synthesized", map[string]any{
		"voice_id":   req.VoiceID,
		"size_bytes": len(audio),
		"elapsed":    time.Since(start).String(),
	})
	return audio, nil
}

func (c *Client) synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, &Error{Op: opSynthesize, Kind: KindUnknown, Err: ErrEmptyText}
	}

	payload, err := json.Marshal(synthesizeBody{
		Text:    req.Text,
		ModelID: ModelMultilingual,
		VoiceSettings: voiceSettings{
			Stability:       defaultStability,
			SimilarityBoost: defaultSimilarityBoost,
		},
	})
	if err != nil {
		return nil, &Error{Op: opSynthesize, Kind: KindUnknown, Err: fmt.Errorf("marshal request: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.synthesizeTimeout)
	defer cancel()

	endpoint := c.baseURL + "/text-to-speech/" + url.PathEscape(req.VoiceID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Op: opSynthesize, Kind: KindUnknown, Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Op: opSynthesize, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(opSynthesize, resp); err != nil {
		return nil, err
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: opSynthesize, Kind: KindTransport, Err: fmt.Errorf("read audio: %w", err)}
	}
	return audio, nil
}

type voicesResponse struct {
	Voices []Voice `json:"voices"`
}

// ListVoices returns the provider's voices in the order it sends them.
func (c *Client) ListVoices(ctx context.Context) ([]Voice, error) {
	start := time.Now()
	voices, err := c.listVoices(ctx)
	metrics.ObserveProviderRequest(opListVoices, outcomeOf(err), time.Since(start))
	if err != nil {
		c.logFailure(err, nil)
		return nil, err
	}

	logger.InfoCF("elevenlabs", "Fetched voices", map[string]any{"count": len(voices)})
	return voices, nil
}

func (c *Client) listVoices(ctx context.Context) ([]Voice, error) {
	ctx, cancel := context.WithTimeout(ctx, c.listTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/voices", nil)
	if err != nil {
		return nil, &Error{Op: opListVoices, Kind: KindUnknown, Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Op: opListVoices, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(opListVoices, resp); err != nil {
		return nil, err
	}

	var body voicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &Error{Op: opListVoices, Kind: KindUnknown, Err: fmt.Errorf("decode voices: %w", err)}
	}

	voices := make([]Voice, 0, len(body.Voices))
	voices = append(voices, body.Voices...)
	return voices, nil
}

func checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	kind := KindProvider
	if resp.StatusCode == http.StatusUnauthorized {
		kind = KindCredential
	}
	return &Error{
		Op:         op,
		Kind:       kind,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

func (c *Client) logFailure(err error, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["error"] = err.Error()

	e, ok := err.(*Error)
	if !ok {
		logger.ErrorCF("elevenlabs", "Unexpected provider failure", fields)
		return
	}
	fields["op"] = e.Op
	fields["kind"] = e.Kind.String()
	if e.StatusCode != 0 {
		fields["status"] = e.StatusCode
		fields["body"] = e.Body
	}

	switch e.Kind {
	case KindCredential:
		logger.ErrorCF("elevenlabs", "ElevenLabs API key is invalid or missing", fields)
	case KindProvider:
		logger.ErrorCF("elevenlabs", "ElevenLabs HTTP error", fields)
	case KindTransport:
		logger.ErrorCF("elevenlabs", "ElevenLabs request error", fields)
	default:
		logger.ErrorCF("elevenlabs", "Unexpected error calling ElevenLabs", fields)
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return "success"
	}
	return KindOf(err).String()
}
