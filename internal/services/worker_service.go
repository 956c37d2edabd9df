package services

import (
	"context"

	"github.com/yukikurage/founder-command-center/internal/dto"
	"github.com/yukikurage/founder-command-center/internal/models"
	"github.com/yukikurage/founder-command-center/internal/repository"
)

// WorkerService handles worker business logic
type WorkerService struct {
	*resource[models.Worker, dto.WorkerPayload]
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(store *repository.Store) *WorkerService {
	return &WorkerService{
		resource: &resource[models.Worker, dto.WorkerPayload]{
			store: store,
			name:  "worker",
			repo:  func(s *repository.Store) repository.ScopedRepository[models.Worker] { return s.Workers },
			id:    func(w *models.Worker) uint64 { return w.ID },
			apply: applyWorker,
		},
	}
}

func applyWorker(_ context.Context, _ *repository.Store, _ uint64, worker *models.Worker, payload dto.WorkerPayload, creating bool) error {
	v := NewValidationError()
	requiredText(v, "name", payload.Name, creating, 255, &worker.Name)
	optionalText(v, "skills", payload.Skills, 0, &worker.Skills)
	optionalText(v, "availability", payload.Availability, 100, &worker.Availability)
	optionalEmail(v, "contact_email", payload.ContactEmail, 254, &worker.ContactEmail)
	return v.Err()
}
