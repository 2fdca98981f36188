package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"guesthouse/config"
	"guesthouse/infras/jwt"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/auth/model/dto"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/shared/metrics"
	"guesthouse/shared/password"
)

const (
	invalidPassword = "invalid password"

	loginAccepted = "accepted"
	loginRejected = "rejected"
	loginError    = "error"
)

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return loginAccepted
	case failure.IsClientError(err):
		return loginRejected
	default:
		return loginError
	}
}

// Auth guards the admin area with one shared password.
type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	defer func() {
		metrics.IncAdminLogin(loginOutcome(err))
	}()

	if s.cfg.App.AdminPasswordHash == "" {
		log.Error().Msg("admin password hash is not configured")

		return res, failure.Unauthorized(invalidPassword) // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, s.cfg.App.AdminPasswordHash); err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Msg("failed to verify admin password")

			return res, fmt.Errorf("failed to verify password: %w", err)
		}

		log.Warn().Msg("admin login attempt with wrong password")

		return res, failure.Unauthorized(invalidPassword) // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(constant.AdminSubject, constant.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	log.Info().Msg("admin logged in")

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}
