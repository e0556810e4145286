package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RelayClient calls the chat relay endpoint over HTTP.
type RelayClient struct {
	httpClient *http.Client
	url        string
}

func NewRelayClient(url string, timeout time.Duration) *RelayClient {
	return &RelayClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

type relayRequest struct {
	UserQuery string `json:"userQuery"`
}

type relayReply struct {
	Reply string `json:"reply"`
	Error string `json:"error"`
}

func (c *RelayClient) Ask(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(relayRequest{UserQuery: query})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("relay server error: %s", resp.Status)
	}

	var out relayReply
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode relay reply: %w", err)
	}
	if out.Error != "" {
		return "", errors.New(out.Error)
	}
	if out.Reply == "" {
		return "", errors.New("relay reply is empty")
	}
	return out.Reply, nil
}
