package turntasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
)

// TaskDTO is the transport shape for one turn checklist.
type TaskDTO struct {
	ID        uuid.UUID            `json:"id"`
	Unit      string               `json:"unit"`
	Status    enums.TurnTaskStatus `json:"status"`
	Items     []string             `json:"items"`
	DoneItems []string             `json:"done_items"`
	DueDate   *time.Time           `json:"due_date,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// FromModel converts a stored task into its transport shape.
func FromModel(task *models.TurnTask) *TaskDTO {
	if task == nil {
		return nil
	}
	return &TaskDTO{
		ID:        task.ID,
		Unit:      task.Unit,
		Status:    task.Status,
		Items:     append([]string{}, task.Items...),
		DoneItems: append([]string{}, task.DoneItems...),
		DueDate:   task.DueDate,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// FromModels converts a task slice.
func FromModels(tasks []models.TurnTask) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for i := range tasks {
		out = append(out, *FromModel(&tasks[i]))
	}
	return out
}

// CreateTaskInput is the validated payload for a new checklist.
type CreateTaskInput struct {
	Unit    string
	Items   []string
	DueDate *time.Time
}

// UpdateTaskInput carries partial checklist edits.
type UpdateTaskInput struct {
	Unit    *string
	Status  *string
	Items   *[]string
	DueDate *time.Time
}

// ListFilter narrows the checklist listing.
type ListFilter struct {
	Status *enums.TurnTaskStatus
	Unit   *string
}
