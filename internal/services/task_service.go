package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/founder-command-center/internal/constants"
	"github.com/yukikurage/founder-command-center/internal/dto"
	"github.com/yukikurage/founder-command-center/internal/models"
	"github.com/yukikurage/founder-command-center/internal/repository"
	"gorm.io/gorm"
)

// TaskService handles task business logic
type TaskService struct {
	*resource[models.Task, dto.TaskPayload]
}

// NewTaskService creates a new TaskService
func NewTaskService(store *repository.Store) *TaskService {
	return &TaskService{
		resource: &resource[models.Task, dto.TaskPayload]{
			store: store,
			name:  "task",
			repo:  func(s *repository.Store) repository.ScopedRepository[models.Task] { return s.Tasks },
			id:    func(t *models.Task) uint64 { return t.ID },
			apply: applyTask,
		},
	}
}

func applyTask(ctx context.Context, tx *repository.Store, ownerID uint64, task *models.Task, payload dto.TaskPayload, creating bool) error {
	v := NewValidationError()

	switch d := payload.Description; {
	case !d.Set:
		if creating {
			v.Add("description", msgRequired)
		}
	case d.Null:
		v.Add("description", msgNull)
	default:
		normalized, err := dto.NormalizeDescription(d.Value)
		switch {
		case errors.Is(err, dto.ErrDescriptionBlank):
			v.Add("description", msgBlank)
		case err != nil:
			v.Add("description", msgInvalidBlocks)
		default:
			task.Description = normalized
		}
	}

	if due := payload.DueDate; due.Set {
		if due.Invalid {
			v.Add("due_date", msgInvalidDate)
		} else if due.Null || due.Value == "" {
			task.DueDate = nil
		} else if parsed, err := dto.ParseDate(due.Value); err != nil {
			v.Add("due_date", msgInvalidDate)
		} else {
			task.DueDate = &parsed
		}
	}

	switch s := payload.Status; {
	case !s.Set:
		if creating {
			task.Status = models.TaskStatusTodo
		}
	case s.Null:
		v.Add("status", msgNull)
	case s.Invalid:
		v.Add("status", invalidChoice(s.RawText()))
	case !models.TaskStatus(s.Value).Valid():
		v.Add("status", invalidChoice(s.Value))
	default:
		task.Status = models.TaskStatus(s.Value)
	}

	optionalText(v, "notes", payload.Notes, 0, &task.Notes)

	// Relations must belong to the same owner as the task.
	if err := applyRelation(v, "client_id", payload.ClientID, &task.ClientID, func(id uint64) error {
		_, err := tx.Clients.Find(ctx, ownerID, id)
		return err
	}); err != nil {
		return err
	}
	if err := applyRelation(v, "assigned_worker_id", payload.AssignedWorkerID, &task.AssignedWorkerID, func(id uint64) error {
		_, err := tx.Workers.Find(ctx, ownerID, id)
		return err
	}); err != nil {
		return err
	}

	return v.Err()
}

// applyRelation resolves a relation id written as a number or a numeric
// string. An empty string clears the relation like null. Numbers that cannot
// name a row are reported like missing rows.
func applyRelation(v *ValidationError, field string, in dto.Optional[dto.PK], dst **uint64, find func(id uint64) error) error {
	if !in.Set {
		return nil
	}
	if in.Null || (in.Invalid && in.RawKind() == "str" && strings.TrimSpace(in.RawText()) == "") {
		*dst = nil
		return nil
	}
	if in.Invalid {
		switch kind := in.RawKind(); kind {
		case "int", "float":
			v.Add(field, invalidPK(in.RawText()))
		default:
			v.Add(field, incorrectPKType(kind))
		}
		return nil
	}

	id := uint64(in.Value)
	if err := find(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			v.Add(field, invalidPK(id))
			return nil
		}
		return fmt.Errorf("failed to resolve %s: %w", field, err)
	}

	*dst = &id
	return nil
}

// Analytics summarises the owner's tasks by status and client.
func (s *TaskService) Analytics(ctx context.Context, ownerID uint64) (*dto.AnalyticsDTO, error) {
	var result *dto.AnalyticsDTO
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.FindByID(ctx, ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		counts, err := tx.Tasks.CountByStatus(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to count tasks: %w", err)
		}

		top, err := tx.Tasks.TopClients(ctx, ownerID, constants.TopClientsLimit)
		if err != nil {
			return fmt.Errorf("failed to rank clients: %w", err)
		}

		var total int64
		for _, n := range counts {
			total += n
		}

		topClients := make([]dto.TopClientDTO, len(top))
		for i, row := range top {
			topClients[i] = dto.TopClientDTO{ID: row.ClientID, Name: row.Name, TaskCount: row.TaskCount}
		}

		result = &dto.AnalyticsDTO{
			TotalTasks:      total,
			CompletedTasks:  counts[models.TaskStatusDone],
			TodoTasks:       counts[models.TaskStatusTodo],
			InProgressTasks: counts[models.TaskStatusInProgress],
			BlockedTasks:    counts[models.TaskStatusBlocked],
			TopClients:      topClients,
			User:            dto.ToUserDTO(*user),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
