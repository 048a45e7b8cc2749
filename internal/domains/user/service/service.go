package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"taskpad/config"
	"taskpad/infras/otel"
	"taskpad/internal/domains/user/model"
	"taskpad/internal/domains/user/model/dto"
	"taskpad/internal/domains/user/repository"
	"taskpad/shared"
	"taskpad/shared/constant"
	"taskpad/shared/failure"
)

type User interface {
	GetProfile(ctx context.Context, id int64) (dto.UserResponse, error)
}

type serviceImpl struct {
	repo repository.User
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.User, cfg *config.Config, otel otel.Otel) User {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) GetProfile(ctx context.Context, id int64) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 {
		return res, failure.NotFound("User not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}
