// Package hive provides a client for the Hive text-moderation API,
// used to verify that the configured API key is valid before relying on
// the moderation path.
package hive

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/modai-labs/paritycheck/internal/config"
)

const moderationPath = "/api/v3/hive/text-moderation"

// checkText is the sample input submitted during a key check.
const checkText = "This is a test message to verify the API key works correctly."

type Client struct {
	client *resty.Client
	apiKey string
}

// NewClient builds a Hive client from environment configuration. A
// missing API key is a configuration error.
func NewClient(cfg *config.HiveEnvConfig) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if cfg.HiveAPIKey == "" {
		return nil, fmt.Errorf("MODAI_HIVE_API_KEY is not set")
	}

	client := resty.New().
		SetBaseURL(cfg.HiveBaseURL).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetTimeout(cfg.HiveTimeout).
		SetAuthToken(cfg.HiveAPIKey)

	return &Client{client: client, apiKey: cfg.HiveAPIKey}, nil
}

// CheckKey submits a sample moderation request and classifies the
// response. Transport failures (connect, timeout) are returned as
// errors; HTTP-level rejections come back as a non-OK result.
func (c *Client) CheckKey(ctx context.Context) (KeyCheckResult, error) {
	log.Info().Str("key", RedactKey(c.apiKey)).Msg("checking Hive API key")

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(moderationRequest{Input: []moderationInput{{Text: checkText}}}).
		Post(moderationPath)
	if err != nil {
		log.Error().Err(err).Msg("hive key check request failed")
		return KeyCheckResult{}, fmt.Errorf("hive key check: %w", err)
	}

	result := KeyCheckResult{
		StatusCode: resp.StatusCode(),
		Body:       resp.String(),
	}
	switch {
	case resp.StatusCode() == 200:
		result.Category = KeyCheckOK
	case resp.StatusCode() == 401:
		result.Category = KeyCheckUnauthorized
		log.Error().Msg("hive authentication failed, API key is invalid")
	case resp.StatusCode() == 403:
		result.Category = KeyCheckForbidden
		log.Error().Msg("hive forbidden, API key may lack required permissions")
	default:
		result.Category = KeyCheckUnexpected
		log.Error().Int("status", resp.StatusCode()).Str("body", resp.String()).Msg("hive key check returned unexpected status")
	}
	return result, nil
}

// RedactKey keeps only the leading and trailing characters of a key for
// log output.
func RedactKey(key string) string {
	if len(key) <= 15 {
		return "***"
	}
	return key[:10] + "..." + key[len(key)-5:]
}
