package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"taskpad/config"
	"taskpad/infras/jwt"
	"taskpad/infras/kafka"
	"taskpad/infras/otel"
	"taskpad/internal/domains/auth/model/dto"
	userModel "taskpad/internal/domains/user/model"
	userRepo "taskpad/internal/domains/user/repository"
	"taskpad/shared"
	"taskpad/shared/constant"
	gDto "taskpad/shared/dto"
	"taskpad/shared/failure"
	"taskpad/shared/password"
)

const (
	eventKeyUserRegistered = "user.registered"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	producer   kafka.Producer
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwtService jwt.JWT, producer kafka.Producer) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwtService,
		producer:   producer,
	}
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.Conflict("Email already registered")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.userRepo.Insert(ctx, req.ToUserModel(hashedPassword))
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	go s.publishUserEvent(ctx, eventKeyUserRegistered, userID, req.Email)

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userRepo.Get(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up user by email")

		return res, fmt.Errorf("failed to look up user by email: %w", err)
	}

	if user.ID == 0 {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.NotFound("User not found")
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.InvalidCredentials("Invalid password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// RefreshToken verifies the presented token under the refresh secret and
// issues a fresh access token. Every failure collapses to the same
// unauthorized response: the caller must not be able to tell an expired
// token from a deleted account. The underlying cause is only logged.
func (s *serviceImpl) RefreshToken(ctx context.Context, refreshToken string) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.Verify(refreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("refresh token verification failed")

		return res, failure.Unauthorized("Invalid refresh token")
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(claims.UserID, userModel.FieldID, userModel.TableName))
	if err != nil || user.ID == 0 {
		log.Warn().Err(err).Int64("user_id", claims.UserID).Msg("refresh token user lookup failed")

		return res, failure.Unauthorized("Invalid refresh token")
	}

	accessToken, err := s.jwtService.Issue(user.ID, user.Email, jwt.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue access token")

		return res, fmt.Errorf("failed to issue access token: %w", err)
	}

	res.AccessToken = accessToken

	return res, nil
}

func (s *serviceImpl) publishUserEvent(ctx context.Context, key string, userID int64, email string) {
	c := context.WithoutCancel(ctx)

	err := s.producer.SendMessages(c, s.cfg.Kafka.Topics.UserEvents, kafka.Message{
		Key: key,
		Value: map[string]any{
			"user_id": userID,
			"email":   email,
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("event", key).Msg("failed to publish user event")
	}
}
