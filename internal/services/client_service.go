package services

import (
	"context"

	"github.com/yukikurage/founder-command-center/internal/dto"
	"github.com/yukikurage/founder-command-center/internal/models"
	"github.com/yukikurage/founder-command-center/internal/repository"
)

// ClientService handles client business logic
type ClientService struct {
	*resource[models.Client, dto.ClientPayload]
}

// NewClientService creates a new ClientService
func NewClientService(store *repository.Store) *ClientService {
	return &ClientService{
		resource: &resource[models.Client, dto.ClientPayload]{
			store: store,
			name:  "client",
			repo:  func(s *repository.Store) repository.ScopedRepository[models.Client] { return s.Clients },
			id:    func(c *models.Client) uint64 { return c.ID },
			apply: applyClient,
		},
	}
}

func applyClient(_ context.Context, _ *repository.Store, _ uint64, client *models.Client, payload dto.ClientPayload, creating bool) error {
	v := NewValidationError()
	requiredText(v, "name", payload.Name, creating, 255, &client.Name)
	optionalEmail(v, "contact_email", payload.ContactEmail, 254, &client.ContactEmail)
	optionalText(v, "phone", payload.Phone, 50, &client.Phone)
	optionalText(v, "notes", payload.Notes, 0, &client.Notes)
	return v.Err()
}
