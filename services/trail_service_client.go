package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TrailServiceClient fetches trail metadata by id. The integration is
// optional: the client is only constructed when TRAIL_SERVICE_URL is set,
// and saved-trail details leave the trail fields null without it.
type TrailServiceClient struct {
	BaseURL string
	Client  *http.Client
}

func NewTrailServiceClient(baseURL string) *TrailServiceClient {
	return &TrailServiceClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetTrailByID calls GET /api/trails/{trailId}, decoding error payloads
// into domain errors.
func (c *TrailServiceClient) GetTrailByID(trailID string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/api/trails/%s", c.BaseURL, trailID)

	resp, err := c.Client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("trail %s: %w", trailID, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("trail service returned %d: %s", resp.StatusCode, string(body))
	}

	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
