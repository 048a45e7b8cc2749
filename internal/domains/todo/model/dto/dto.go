package dto

import (
	"taskpad/internal/domains/todo/model"
	"taskpad/shared/constant"
	"taskpad/shared/timezone"
)

type CreateTodoRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// ToModel builds a todo owned by the given user. The owner always comes from
// the verified identity, never from the request body.
func (c *CreateTodoRequest) ToModel(userID int64) model.Todo {
	return model.Todo{
		Title:       c.Title,
		Description: c.Description,
		UserID:      userID,
		CreatedAt:   timezone.Now(),
	}
}

type UpdateTodoRequest struct {
	Title       string `db:"title"       json:"title"       validate:"omitempty,max=255"`
	Description string `db:"description" json:"description" validate:"omitempty,max=255"`
}

type TodoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      int64  `json:"user_id"`
	CreatedAt   string `json:"created_at"`
}

func (r *TodoResponse) FromModel(model model.Todo) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.UserID = model.UserID
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

func TodoResponsesFromModels(models []model.Todo) []TodoResponse {
	responses := make([]TodoResponse, len(models))
	for i, mod := range models {
		responses[i].FromModel(mod)
	}

	return responses
}
