package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"taskpad/config"
	"taskpad/infras/kafka"
	"taskpad/infras/otel"
	"taskpad/internal/domains/todo/model"
	"taskpad/internal/domains/todo/model/dto"
	"taskpad/internal/domains/todo/repository"
	"taskpad/shared"
	"taskpad/shared/cache"
	"taskpad/shared/constant"
	gDto "taskpad/shared/dto"
	"taskpad/shared/failure"
)

const (
	cacheGetTodo     = "todo:get"
	cacheGetAllTodos = "todo:gets"

	eventKeyTodoCreated = "todo.created"
	eventKeyTodoUpdated = "todo.updated"
	eventKeyTodoDeleted = "todo.deleted"
)

type Todo interface {
	Create(ctx context.Context, req dto.CreateTodoRequest, userID int64) (dto.TodoResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, userID int64, title string) ([]dto.TodoResponse, gDto.Meta, error)
	Get(ctx context.Context, id int64) (dto.TodoResponse, error)
	Update(ctx context.Context, req dto.UpdateTodoRequest, id, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
}

type serviceImpl struct {
	repo     repository.Todo
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	producer kafka.Producer
}

func New(repo repository.Todo, cfg *config.Config, redisCache cache.RedisCache, otel otel.Otel, producer kafka.Producer) Todo {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    redisCache,
		otel:     otel,
		producer: producer,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest, userID int64) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	todo := req.ToModel(userID)

	id, err := s.repo.Insert(ctx, todo)
	if err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		return res, fmt.Errorf("failed to create todo: %w", err)
	}

	todo.ID = id
	res.FromModel(todo)

	s.afterMutation(ctx, eventKeyTodoCreated, id, userID)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, userID int64, title string) (res []dto.TodoResponse, meta gDto.Meta, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	type cachedListing struct {
		Todos []dto.TodoResponse `json:"todos"`
		Meta  gDto.Meta          `json:"meta"`
	}

	cacheKey := shared.BuildCacheKey(
		cacheGetAllTodos,
		strconv.FormatInt(userID, 10),
		strconv.Itoa(params.Page),
		strconv.Itoa(params.Limit),
		params.SortBy,
		params.SortDir,
		title,
	)

	var cached cachedListing
	if cacheErr := s.cache.Get(ctx, cacheKey, &cached); cacheErr == nil {
		return cached.Todos, cached.Meta, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	if title != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    title,
			Table:    model.TableName,
		})
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count todos")

		return res, meta, fmt.Errorf("failed to count todos: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos")

		return res, meta, fmt.Errorf("failed to get todos: %w", err)
	}

	res = dto.TodoResponsesFromModels(models)
	meta = gDto.Meta{
		Page:      params.Page,
		Limit:     params.Limit,
		TotalData: total,
		TotalPage: shared.CalculateTotalPage(total, params.Limit),
	}

	if cacheErr := s.cache.Save(ctx, cacheKey, cachedListing{Todos: res, Meta: meta}, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Msg("failed to cache todo listing")
	}

	return res, meta, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTodo, strconv.FormatInt(id, 10))

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	todo, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get todo")

		return res, fmt.Errorf("failed to get todo: %w", err)
	}

	if todo.ID == 0 {
		return res, failure.NotFound("Todo not found") // nolint:wrapcheck
	}

	res.FromModel(todo)

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Msg("failed to cache todo")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTodoRequest, id, userID int64) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateTodoRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := s.mutationFilter(id, userID)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if todo exists")

		return fmt.Errorf("failed to check if todo exists: %w", err)
	}

	if !exist {
		return failure.NotFound("Todo not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update todo")

		return fmt.Errorf("failed to update todo: %w", err)
	}

	s.afterMutation(ctx, eventKeyTodoUpdated, id, userID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id, userID int64) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	filter := s.mutationFilter(id, userID)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if todo exists")

		return fmt.Errorf("failed to check if todo exists: %w", err)
	}

	if !exist {
		return failure.NotFound("Todo not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete todo")

		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.afterMutation(ctx, eventKeyTodoDeleted, id, userID)

	return nil
}

// mutationFilter matches by id only unless ownership enforcement is enabled,
// in which case the owning user id is part of the match. The reference
// behavior allows any authenticated user to mutate any todo by id.
func (s *serviceImpl) mutationFilter(id, userID int64) gDto.FilterGroup {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if s.cfg.App.EnforceTodoOwnership {
		filter.Operator = gDto.FilterGroupOperatorAnd
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    userID,
			Table:    model.TableName,
		})
	}

	return filter
}

func (s *serviceImpl) afterMutation(ctx context.Context, eventKey string, id, userID int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetTodo)
		shared.InvalidateCaches(c, s.cache, cacheGetAllTodos)

		err := s.producer.SendMessages(c, s.cfg.Kafka.Topics.TodoEvents, kafka.Message{
			Key: eventKey,
			Value: map[string]any{
				"todo_id": id,
				"user_id": userID,
			},
		})
		if err != nil {
			log.Warn().Err(err).Str("event", eventKey).Msg("failed to publish todo event")
		}
	}()
}
