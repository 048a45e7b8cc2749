package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"taskpad/config"
	kafkaMocks "taskpad/infras/kafka/mocks"
	"taskpad/infras/otel/mocks"
	todoMocks "taskpad/internal/domains/todo/mocks"
	"taskpad/internal/domains/todo/model"
	"taskpad/internal/domains/todo/model/dto"
	"taskpad/internal/domains/todo/service"
	cacheMocks "taskpad/shared/cache/mocks"
	gDto "taskpad/shared/dto"
	"taskpad/shared/failure"
)

func newService(t *testing.T, enforceOwnership bool) (service.Todo, *todoMocks.MockTodo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := todoMocks.NewMockTodo(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300
	cfg.App.EnforceTodoOwnership = enforceOwnership

	svc := service.New(mockRepo, cfg, cacheMocks.NewMissCache(), mocks.NewOtel(), kafkaMocks.NewProducer())

	return svc, mockRepo
}

func TestTodoService_Create(t *testing.T) {
	svc, mockRepo := newService(t, false)

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, todo model.Todo) (int64, error) {
			assert.Equal(t, "buy milk", todo.Title)
			assert.Equal(t, int64(9), todo.UserID)

			return int64(3), nil
		})

	res, err := svc.Create(context.Background(), dto.CreateTodoRequest{
		Title:       "buy milk",
		Description: "two liters",
	}, 9)

	require.NoError(t, err)
	assert.Equal(t, int64(3), res.ID)
	assert.Equal(t, "buy milk", res.Title)
	assert.Equal(t, int64(9), res.UserID)
}

func TestTodoService_Create_RepositoryFailure(t *testing.T) {
	svc, mockRepo := newService(t, false)

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(int64(0), errors.New("insert failed"))

	_, err := svc.Create(context.Background(), dto.CreateTodoRequest{Title: "x"}, 1)

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestTodoService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mockRepo *todoMocks.MockTodo)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func(mockRepo *todoMocks.MockTodo) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Todo{
						ID:        5,
						Title:     "buy milk",
						UserID:    9,
						CreatedAt: time.Now(),
					}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(mockRepo *todoMocks.MockTodo) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Todo{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository failure",
			setupMock: func(mockRepo *todoMocks.MockTodo) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Todo{}, errors.New("db down"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo := newService(t, false)
			tt.setupMock(mockRepo)

			res, err := svc.Get(context.Background(), 5)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, int64(5), res.ID)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestTodoService_GetAll(t *testing.T) {
	svc, mockRepo := newService(t, false)

	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"}

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(12, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), params, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Todo, error) {
			// listing is always scoped to the requesting user
			require.NotEmpty(t, filter.Filters)
			first, ok := filter.Filters[0].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, model.FieldUserID, first.Field)
			assert.Equal(t, int64(9), first.Value)

			return []model.Todo{
				{ID: 1, Title: "a", UserID: 9, CreatedAt: time.Now()},
				{ID: 2, Title: "b", UserID: 9, CreatedAt: time.Now()},
			}, nil
		})

	res, meta, err := svc.GetAll(context.Background(), params, 9, "")

	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, 12, meta.TotalData)
	assert.Equal(t, 2, meta.TotalPage)
	assert.Equal(t, 1, meta.Page)
}

func TestTodoService_GetAll_TitleFilter(t *testing.T) {
	svc, mockRepo := newService(t, false)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), params, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Todo, error) {
			require.Len(t, filter.Filters, 2)
			second, ok := filter.Filters[1].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, model.FieldTitle, second.Field)
			assert.Equal(t, gDto.FilterOperatorLike, second.Operator)

			return []model.Todo{{ID: 1, Title: "milk", UserID: 9}}, nil
		})

	res, _, err := svc.GetAll(context.Background(), params, 9, "milk")

	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestTodoService_Update(t *testing.T) {
	title := "new title"

	tests := []struct {
		name      string
		req       dto.UpdateTodoRequest
		setupMock func(mockRepo *todoMocks.MockTodo)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			req:  dto.UpdateTodoRequest{Title: title},
			setupMock: func(mockRepo *todoMocks.MockTodo) {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, title, fields[model.FieldTitle])

						return nil
					})
			},
		},
		{
			name:      "empty request",
			req:       dto.UpdateTodoRequest{},
			setupMock: func(_ *todoMocks.MockTodo) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "todo not found",
			req:  dto.UpdateTodoRequest{Title: title},
			setupMock: func(mockRepo *todoMocks.MockTodo) {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo := newService(t, false)
			tt.setupMock(mockRepo)

			err := svc.Update(context.Background(), tt.req, 5, 9)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestTodoService_Delete(t *testing.T) {
	svc, mockRepo := newService(t, false)

	mockRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	mockRepo.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), 5, 9))
}

func TestTodoService_Delete_NotFound(t *testing.T) {
	svc, mockRepo := newService(t, false)

	mockRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	err := svc.Delete(context.Background(), 5, 9)

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestTodoService_OwnershipEnforcement(t *testing.T) {
	assertFilter := func(t *testing.T, filter gDto.FilterGroup, wantOwnership bool) {
		t.Helper()

		if !wantOwnership {
			assert.Len(t, filter.Filters, 1)

			return
		}

		require.Len(t, filter.Filters, 2)
		owner, ok := filter.Filters[1].(gDto.Filter)
		require.True(t, ok)
		assert.Equal(t, model.FieldUserID, owner.Field)
		assert.Equal(t, int64(9), owner.Value)
	}

	for _, enforce := range []bool{false, true} {
		name := "disabled"
		if enforce {
			name = "enabled"
		}

		t.Run(name, func(t *testing.T) {
			svc, mockRepo := newService(t, enforce)

			mockRepo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
					assertFilter(t, filter, enforce)

					return true, nil
				})

			mockRepo.EXPECT().
				Delete(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) error {
					assertFilter(t, filter, enforce)

					return nil
				})

			assert.NoError(t, svc.Delete(context.Background(), 5, 9))
		})
	}
}
