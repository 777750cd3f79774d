package azkaban

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/shaiso/azkaban-submitter/internal/domain"
)

// Authenticator обменивает логин и пароль на session.id.
type Authenticator struct {
	endpoint  Endpoint
	transport Transport
	logger    *slog.Logger
}

// NewAuthenticator создаёт Authenticator.
func NewAuthenticator(endpoint Endpoint, t Transport, logger *slog.Logger) *Authenticator {
	return &Authenticator{endpoint: endpoint, transport: t, logger: logger}
}

// Login выполняет action=login.
//
// Никогда не возвращает ошибку: транспортные сбои и ошибки разбора
// попадают в поле error результата.
func (a *Authenticator) Login(ctx context.Context, username, password string) *domain.AuthResult {
	form := url.Values{
		"action":   {"login"},
		"username": {username},
		"password": {password},
	}

	body, err := a.transport.PostForm(ctx, a.endpoint.String(), form)
	if err != nil {
		a.logger.Debug("login request failed", "user", username, "error", err)
		return domain.NewAuthFailure(err.Error())
	}

	var res domain.AuthResult
	if err := decode(body, &res); err != nil {
		return domain.NewAuthFailure(err.Error())
	}
	if !res.HasError() && res.SessionID.IsZero() {
		return domain.NewAuthFailure("login response has no session.id")
	}

	if res.HasError() {
		a.logger.Debug("login rejected", "user", username, "error", res.Error)
	} else {
		a.logger.Debug("logged in", "user", username)
	}
	return &res
}

func decode(body string, v any) error {
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeResponse, err)
	}
	return nil
}
