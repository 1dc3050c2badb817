package inviteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mediaconnect/doctor-invites/pkg/models"
)

// FallbackFailureMessage is used when the endpoint rejects an invitation
// without saying why.
const FallbackFailureMessage = "Invitation could not be sent"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Client defines the interface for the invitation endpoint
type Client interface {
	SendInvite(ctx context.Context, req models.InviteRequest) (models.InviteResult, error)
}

type clientImpl struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient creates a new invitation endpoint client. A zero timeout means the
// request runs until the server answers or the context ends.
func NewClient(baseURL, path, token string, timeout time.Duration) Client {
	return &clientImpl{
		endpoint:   strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *clientImpl) SendInvite(ctx context.Context, invite models.InviteRequest) (models.InviteResult, error) {
	jsonPayload, err := json.Marshal(invite)
	if err != nil {
		return models.InviteResult{}, fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return models.InviteResult{}, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.InviteResult{}, fmt.Errorf("error sending invitation: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.InviteResult{}, fmt.Errorf("error reading response: %w", err)
	}

	var payload struct {
		Message string `json:"message"`
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := FallbackFailureMessage
		if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Message) != "" {
			message = payload.Message
		}
		return models.Failed(resp.StatusCode, message), nil
	}

	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return models.InviteResult{}, fmt.Errorf("error parsing response: %w", err)
		}
	}

	return models.Succeeded(payload.Message), nil
}
