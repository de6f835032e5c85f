// AngelaMos | 2026
// dto.go

package category

import (
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/storage"
)

const (
	NameMinLength = 2
	NameMaxLength = 100
)

type CategoryRequest struct {
	Name  string            `json:"name"  validate:"required,min=2,max=100"`
	Image *storage.ImageDTO `json:"image" validate:"omitempty"`
}

type CategoryResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Image     *storage.ImageDTO `json:"image,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}

func ToCategoryResponse(c *Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Image:     storage.ToDTO(c.Image),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToCategoryResponseList(categories []Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses
}
