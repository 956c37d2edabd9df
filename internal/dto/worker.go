package dto

import (
	"time"

	"github.com/yukikurage/founder-command-center/internal/models"
)

// WorkerPayload is the writable subset of a worker.
type WorkerPayload struct {
	Name         Optional[string] `json:"name"`
	Skills       Optional[string] `json:"skills"`
	Availability Optional[string] `json:"availability"`
	ContactEmail Optional[string] `json:"contact_email"`
}

// WorkerDTO represents a worker in API responses
type WorkerDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Skills       *string   `json:"skills"`
	Availability *string   `json:"availability"`
	ContactEmail *string   `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToWorkerDTO converts a Worker model to WorkerDTO
func ToWorkerDTO(worker models.Worker) WorkerDTO {
	return WorkerDTO{
		ID:           worker.ID,
		Name:         worker.Name,
		Skills:       worker.Skills,
		Availability: worker.Availability,
		ContactEmail: worker.ContactEmail,
		CreatedAt:    worker.CreatedAt,
	}
}

// ToWorkerDTOs converts a slice of workers, never returning nil.
func ToWorkerDTOs(workers []models.Worker) []WorkerDTO {
	out := make([]WorkerDTO, len(workers))
	for i, worker := range workers {
		out[i] = ToWorkerDTO(worker)
	}
	return out
}
