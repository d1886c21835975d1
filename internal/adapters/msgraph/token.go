package msgraph

import (
	"context"
	"os"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvTokenProvider reads a pre-acquired bearer token from an environment
// variable. Token acquisition flows live outside this tool.
type EnvTokenProvider struct {
	envVar string
}

// NewEnvTokenProvider creates a provider reading from envVar.
func NewEnvTokenProvider(envVar string) *EnvTokenProvider {
	return &EnvTokenProvider{envVar: envVar}
}

// Token returns the bearer token, or domain.ErrTokenMissing when the
// variable is unset or empty.
func (p *EnvTokenProvider) Token(_ context.Context) (string, error) {
	token := os.Getenv(p.envVar)
	if token == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrTokenMissing, "reading bearer token"), "env", p.envVar)
	}
	return token, nil
}
