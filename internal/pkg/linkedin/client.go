package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ShareResult is the collaborator's response to a share request.
// The endpoint may acknowledge a published post, or report that posting is
// administratively disabled and the content was kept as a remote draft.
type ShareResult struct {
	Draft   bool   `json:"draft"`
	Message string `json:"message"`
	PostURN string `json:"postUrn"`
	PostURL string `json:"postUrl"`
}

// Sharer posts finished content through the extension-backed LinkedIn bridge.
type Sharer interface {
	Share(ctx context.Context, content string, mediaKeys []string) (*ShareResult, error)
}

// Client talks to the posting collaborator over plain JSON HTTP.
type Client struct {
	endpoint string
	token    string
	client   *http.Client
}

// New creates a client for the given collaborator endpoint.
func New(endpoint, token string) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(strings.TrimSpace(endpoint), "/"),
		token:    token,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type shareRequest struct {
	Content   string   `json:"content"`
	MediaKeys []string `json:"mediaKeys,omitempty"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Share submits content for posting. A non-2xx status or transport failure
// returns an error; a {draft:true} body is a successful outcome and is
// reported through ShareResult, not as an error.
func (c *Client) Share(ctx context.Context, content string, mediaKeys []string) (*ShareResult, error) {
	if c.endpoint == "" {
		return nil, errors.New("linkedin endpoint is not configured")
	}

	body, err := json.Marshal(shareRequest{Content: content, MediaKeys: mediaKeys})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/share", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if json.Unmarshal(respBody, &eb) == nil {
			if msg := firstNonEmpty(eb.Error, eb.Message); msg != "" {
				return nil, fmt.Errorf("linkedin share failed: %s", msg)
			}
		}
		return nil, fmt.Errorf("linkedin share failed: status %d", resp.StatusCode)
	}

	// Decoded loosely on purpose: the collaborator's draft downgrade carries
	// no version marker, and unknown fields must not turn success into error.
	var result ShareResult
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &result); err != nil {
			return nil, fmt.Errorf("linkedin share: malformed response: %w", err)
		}
	}
	return &result, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
