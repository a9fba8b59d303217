// Package launcher starts pages of the contacts application.
package launcher

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/model"
)

// HTTPStarter asks a contacts application to start an ability by posting the
// want to its HTTP endpoint.
type HTTPStarter struct {
	client *resty.Client
}

// NewHTTPStarter returns an HTTPStarter for the contacts application at
// baseURL.
func NewHTTPStarter(baseURL string) *HTTPStarter {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)
	return &HTTPStarter{client: c}
}

// StartAbility posts want to /abilities/start. Any status other than 2xx is
// an error.
func (s *HTTPStarter) StartAbility(ctx context.Context, want model.Want) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(&want).
		Post("/abilities/start")
	if err != nil {
		return fmt.Errorf("start ability request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("start ability %s: status %d: %s", want.AbilityName, resp.StatusCode(), resp.String())
	}
	return nil
}

// LogStarter only logs the want. It is used when no contacts application is
// configured.
type LogStarter struct {
	Logger zerolog.Logger
}

func (s LogStarter) StartAbility(_ context.Context, want model.Want) error {
	s.Logger.Info().
		Str("bundle", want.BundleName).
		Str("ability", want.AbilityName).
		Interface("parameters", want.Parameters).
		Msg("no contacts application configured, want not delivered")
	return nil
}
