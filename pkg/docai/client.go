package docai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/docai-showcase/docai/internal/utils"
)

// Client talks to the Document AI REST surface using API-key auth. The SDK
// is deliberately not used: key-restricted REST access needs no service
// account and keeps the response as plain JSON for the result model.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for a base endpoint of the form
// https://us-documentai.googleapis.com/v1/projects/{project}/locations/{location}.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// NewClientFromEnv creates a client from DOCAI_ENDPOINT and DOCAI_API_KEY.
func NewClientFromEnv() (*Client, error) {
	endpoint := os.Getenv("DOCAI_ENDPOINT")
	apiKey := os.Getenv("DOCAI_API_KEY")
	if endpoint == "" {
		return nil, fmt.Errorf("DOCAI_ENDPOINT environment variable not set")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("DOCAI_API_KEY environment variable not set")
	}
	return NewClient(endpoint, apiKey), nil
}

// Processor describes one processor configured in the project.
type Processor struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Type        string `json:"type" yaml:"type"`
	State       string `json:"state" yaml:"state"`
	ID          string `json:"id" yaml:"id"`
}

// ListProcessors discovers the processors available in the project.
func (c *Client) ListProcessors(ctx context.Context) ([]Processor, error) {
	body, err := c.get(ctx, c.endpoint+"/processors")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Processors []struct {
			Name        string `json:"name"`
			DisplayName string `json:"displayName"`
			Type        string `json:"type"`
			State       string `json:"state"`
		} `json:"processors"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode processor list: %w", err)
	}

	processors := make([]Processor, 0, len(resp.Processors))
	for _, proc := range resp.Processors {
		id := proc.Name
		if idx := strings.LastIndex(proc.Name, "/"); idx >= 0 {
			id = proc.Name[idx+1:]
		}
		state := proc.State
		if state == "" {
			state = "UNKNOWN"
		}
		processors = append(processors, Processor{
			Name:        proc.Name,
			DisplayName: proc.DisplayName,
			Type:        proc.Type,
			State:       state,
			ID:          id,
		})
	}

	slog.Info("Listed processors", "count", len(processors))
	return processors, nil
}

// ProcessOptions tunes a process request.
type ProcessOptions struct {
	// FieldMask limits the response to the named document fields.
	FieldMask string
	// EnableLayoutChunking asks the layout parser to also populate
	// chunkedDocument, using the showcase defaults.
	EnableLayoutChunking bool
}

// ProcessDocument runs synchronous (online) processing and parses the
// returned document. Any upstream failure is terminal for this attempt and
// surfaces as a single descriptive error; no partial result is synthesized.
func (c *Client) ProcessDocument(ctx context.Context, processorID string, data []byte, mimeType string, opts *ProcessOptions) (*AnalysisResult, error) {
	reqBody := map[string]any{
		"rawDocument": map[string]any{
			"content":  base64.StdEncoding.EncodeToString(data),
			"mimeType": mimeType,
		},
	}
	if opts != nil {
		if opts.FieldMask != "" {
			reqBody["fieldMask"] = opts.FieldMask
		}
		if opts.EnableLayoutChunking {
			reqBody["processOptions"] = map[string]any{
				"layoutConfig": map[string]any{
					"chunkingConfig": map[string]any{
						"chunkSize":               500,
						"includeAncestorHeadings": true,
					},
				},
			}
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal process request: %w", err)
	}

	slog.Info("Processing document", "processor", processorID, "mime", mimeType, "size", len(data))

	endpoint := fmt.Sprintf("%s/processors/%s:process", c.endpoint, url.PathEscape(processorID))
	body, err := c.post(ctx, endpoint, payload)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Document json.RawMessage `json:"document"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode process response: %w", err)
	}
	if len(resp.Document) == 0 {
		resp.Document = json.RawMessage("{}")
	}

	result, err := ParseDocument(resp.Document)
	if err != nil {
		return nil, err
	}

	slog.Info("Document processing completed", "variant", result.Variant().String(), "pages", len(result.Pages()))
	return result, nil
}

// TestConnection verifies connectivity by listing processors.
func (c *Client) TestConnection(ctx context.Context) (bool, string) {
	processors, err := c.ListProcessors(ctx)
	if err != nil {
		return false, fmt.Sprintf("Connection failed: %v", utils.MaskSensitiveError(err))
	}
	return true, fmt.Sprintf("Connection successful! Found %d processor(s).", len(processors))
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.withKey(endpoint), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, endpoint string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.withKey(endpoint), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) withKey(endpoint string) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + "key=" + url.QueryEscape(c.apiKey)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, utils.MaskSensitiveError(fmt.Errorf("document AI request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document AI API error: %d - %s", resp.StatusCode, truncateBody(body))
	}
	return body, nil
}

// truncateBody keeps error messages readable while still giving context.
func truncateBody(body []byte) string {
	const limit = 500
	s := string(body)
	if len(s) > limit {
		return s[:limit] + "... (truncated)"
	}
	return s
}
