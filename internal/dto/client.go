package dto

import (
	"time"

	"github.com/yukikurage/founder-command-center/internal/models"
)

// ClientPayload is the writable subset of a client.
type ClientPayload struct {
	Name         Optional[string] `json:"name"`
	ContactEmail Optional[string] `json:"contact_email"`
	Phone        Optional[string] `json:"phone"`
	Notes        Optional[string] `json:"notes"`
}

// ClientDTO represents a client in API responses
type ClientDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email"`
	Phone        *string   `json:"phone"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToClientDTO converts a Client model to ClientDTO
func ToClientDTO(client models.Client) ClientDTO {
	return ClientDTO{
		ID:           client.ID,
		Name:         client.Name,
		ContactEmail: client.ContactEmail,
		Phone:        client.Phone,
		Notes:        client.Notes,
		CreatedAt:    client.CreatedAt,
	}
}

// ToClientDTOs converts a slice of clients, never returning nil.
func ToClientDTOs(clients []models.Client) []ClientDTO {
	out := make([]ClientDTO, len(clients))
	for i, client := range clients {
		out[i] = ToClientDTO(client)
	}
	return out
}
