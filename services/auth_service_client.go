package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// AuthServiceClient looks up user records on the auth service. Only used
// to enrich profile responses with the user's first name, so callers
// tolerate failures.
type AuthServiceClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewAuthServiceClient(baseURL, token string) *AuthServiceClient {
	return &AuthServiceClient{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetUserByID calls GET /api/v1/users/{userId} with a small bounded retry.
func (c *AuthServiceClient) GetUserByID(userID string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/api/v1/users/%s", c.BaseURL, userID)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		if c.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.Token)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("AuthService user lookup returned %d for %s", resp.StatusCode, userID)
			return nil, fmt.Errorf("auth service returned %d", resp.StatusCode)
		}

		var out map[string]interface{}
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	return nil, fmt.Errorf("auth service unreachable after retries: %w", lastErr)
}

// FetchFirstName extracts the firstName field for a user, returning nil on
// any failure so profile reads degrade instead of erroring.
func (c *AuthServiceClient) FetchFirstName(userID string) *string {
	if c == nil {
		return nil
	}
	data, err := c.GetUserByID(userID)
	if err != nil {
		log.Printf("⚠️  Could not fetch user data from auth-service: %v", err)
		return nil
	}
	if name, ok := data["firstName"].(string); ok && name != "" {
		return &name
	}
	return nil
}
