package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nodaire/dashhub/config"
	"github.com/nodaire/dashhub/constants"
	"github.com/nodaire/dashhub/logger"
)

// Client fetches dashboard resources from the upstream backend API.
// Response schemas are owned by the backend; this layer only decodes them.
type Client interface {
	FetchConfig(ctx context.Context) (*ConfigResponse, error)
	FetchStatus(ctx context.Context) (*StatusResponse, error)
	FetchGraph(ctx context.Context) (*GraphResponse, error)
	FetchLogs(ctx context.Context) (*LogResponse, error)
}

type client struct {
	cfg config.Config
}

func NewClient(cfg config.Config) *client {
	return &client{
		cfg: cfg,
	}
}

func (c *client) FetchConfig(ctx context.Context) (*ConfigResponse, error) {
	configResponse := &ConfigResponse{}
	err := c.fetchJSON(ctx, "/api/config", configResponse)
	if err != nil {
		return nil, err
	}
	return configResponse, nil
}

func (c *client) FetchStatus(ctx context.Context) (*StatusResponse, error) {
	statusResponse := &StatusResponse{}
	err := c.fetchJSON(ctx, "/api/status", statusResponse)
	if err != nil {
		return nil, err
	}
	return statusResponse, nil
}

func (c *client) FetchGraph(ctx context.Context) (*GraphResponse, error) {
	graphResponse := &GraphResponse{}
	err := c.fetchJSON(ctx, "/api/graph", graphResponse)
	if err != nil {
		return nil, err
	}
	return graphResponse, nil
}

func (c *client) FetchLogs(ctx context.Context) (*LogResponse, error) {
	logResponse := &LogResponse{}
	err := c.fetchJSON(ctx, "/api/logs", logResponse)
	if err != nil {
		return nil, err
	}
	return logResponse, nil
}

func (c *client) fetchJSON(ctx context.Context, endpoint string, target any) error {
	httpClient := &http.Client{Timeout: constants.BACKEND_REQUEST_TIMEOUT}
	url := c.cfg.GetBackendURL() + endpoint

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		logger.Logger.Error().Err(err).
			Str("url", url).
			Msg("Error creating request to backend endpoint")
		return err
	}
	setDefaultRequestHeaders(req)

	res, err := httpClient.Do(req)
	if err != nil {
		logger.Logger.Error().Err(err).
			Str("url", url).
			Msg("Failed to fetch from backend API")
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		logger.Logger.Error().Err(err).
			Str("url", url).
			Msg("Failed to read response body")
		return errors.New("failed to read response body")
	}

	if res.StatusCode >= 300 {
		logger.Logger.Error().
			Str("url", url).
			Str("body", string(body)).
			Int("status_code", res.StatusCode).
			Msg("Backend endpoint returned non-success code")
		return fmt.Errorf("backend endpoint returned non-success code: %s", string(body))
	}

	err = json.Unmarshal(body, target)
	if err != nil {
		logger.Logger.Error().Err(err).
			Str("url", url).
			Str("body", string(body)).
			Msg("Failed to decode backend API response")
		return err
	}

	return nil
}

func setDefaultRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Dashhub")
	req.Header.Set("Content-Type", "application/json")
}
