package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/yukikurage/founder-command-center/internal/models"
	"gorm.io/datatypes"
)

// DateLayout is the wire format of task due dates.
const DateLayout = "2006-01-02"

var (
	ErrDescriptionBlank   = errors.New("description is blank")
	ErrDescriptionInvalid = errors.New("description must be a list of blocks")
	ErrInvalidDate        = errors.New("invalid date")
)

// TaskPayload is the writable subset of a task. Relations are written by id.
type TaskPayload struct {
	Description      Optional[json.RawMessage] `json:"description"`
	DueDate          Optional[string]          `json:"due_date"`
	Status           Optional[string]          `json:"status"`
	Notes            Optional[string]          `json:"notes"`
	ClientID         Optional[PK]              `json:"client_id"`
	AssignedWorkerID Optional[PK]              `json:"assigned_worker_id"`
}

// TaskDTO represents a task in API responses with relations expanded.
type TaskDTO struct {
	ID             uint64            `json:"id"`
	Description    json.RawMessage   `json:"description"`
	DueDate        *string           `json:"due_date"`
	Status         models.TaskStatus `json:"status"`
	Notes          *string           `json:"notes"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Client         *ClientDTO        `json:"client"`
	AssignedWorker *WorkerDTO        `json:"assigned_worker"`
}

// ToTaskDTO converts a Task model to TaskDTO. Relations are included when
// preloaded.
func ToTaskDTO(task models.Task) TaskDTO {
	out := TaskDTO{
		ID:          task.ID,
		Description: json.RawMessage(task.Description),
		Status:      task.Status,
		Notes:       task.Notes,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if len(out.Description) == 0 {
		out.Description = json.RawMessage("[]")
	}

	if task.DueDate != nil {
		formatted := FormatDate(*task.DueDate)
		out.DueDate = &formatted
	}

	if task.Client != nil {
		client := ToClientDTO(*task.Client)
		out.Client = &client
	}

	if task.AssignedWorker != nil {
		worker := ToWorkerDTO(*task.AssignedWorker)
		out.AssignedWorker = &worker
	}

	return out
}

// ToTaskDTOs converts a slice of tasks, never returning nil.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskDTO(task)
	}
	return out
}

// FormatDate renders the calendar date of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp and returns midnight
// UTC of that calendar date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrInvalidDate
}

// NormalizeDescription validates a rich-text description. A list of block
// objects is kept as is; a plain string is wrapped in a single paragraph.
func NormalizeDescription(raw json.RawMessage) (datatypes.JSON, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, ErrDescriptionBlank
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if strings.TrimSpace(text) == "" {
			return nil, ErrDescriptionBlank
		}
		return paragraph(text)
	}

	var blocks []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, ErrDescriptionInvalid
	}
	if len(blocks) == 0 {
		return nil, ErrDescriptionBlank
	}
	for _, block := range blocks {
		if block == nil {
			return nil, ErrDescriptionInvalid
		}
		var blockType string
		if err := json.Unmarshal(block["type"], &blockType); err != nil || blockType == "" {
			return nil, ErrDescriptionInvalid
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return nil, ErrDescriptionInvalid
	}
	return datatypes.JSON(compact.Bytes()), nil
}

type textRun struct {
	Type   string         `json:"type"`
	Text   string         `json:"text"`
	Styles map[string]any `json:"styles"`
}

type paragraphBlock struct {
	Type    string    `json:"type"`
	Content []textRun `json:"content"`
}

func paragraph(text string) (datatypes.JSON, error) {
	encoded, err := json.Marshal([]paragraphBlock{{
		Type:    "paragraph",
		Content: []textRun{{Type: "text", Text: text, Styles: map[string]any{}}},
	}})
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(encoded), nil
}
