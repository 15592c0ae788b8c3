package dto

import (
	"github.com/rentspot/rentspot-api/internal/models"
	"github.com/rentspot/rentspot-api/internal/utils"
)

// PropertyImageDTO represents one gallery entry in API responses
type PropertyImageDTO struct {
	ID         uint64 `json:"id"`
	PropertyID uint64 `json:"propertyId"`
	URL        string `json:"url"`
	IsPrimary  bool   `json:"isPrimary"`
	OrderIndex int    `json:"orderIndex"`
}

// PropertyDTO represents a listing in API responses. Image carries the
// resolved primary image.
type PropertyDTO struct {
	ID             uint64                `json:"id"`
	OwnerID        uint64                `json:"owner_id"`
	Title          string                `json:"title"`
	Price          float64               `json:"price"`
	Bedrooms       int                   `json:"bedrooms"`
	Bathrooms      int                   `json:"bathrooms"`
	Garages        int                   `json:"garages"`
	Aircon         bool                  `json:"aircon"`
	Balcony        bool                  `json:"balcony"`
	PetsConsidered bool                  `json:"petsConsidered"`
	Furnished      bool                  `json:"furnished"`
	Type           models.PropertyType   `json:"type"`
	Status         models.PropertyStatus `json:"status"`
	Lat            float64               `json:"lat"`
	Lng            float64               `json:"lng"`
	Address        string                `json:"address"`
	Image          string                `json:"image"`
	Images         []PropertyImageDTO    `json:"images,omitempty"`
	Owner          *OwnerDTO             `json:"owner,omitempty"`
}

// PropertyListResponse is the search envelope.
type PropertyListResponse struct {
	Properties []PropertyDTO            `json:"properties"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToPropertyImageDTO converts a PropertyImage model to PropertyImageDTO
func ToPropertyImageDTO(image models.PropertyImage) PropertyImageDTO {
	return PropertyImageDTO{
		ID:         image.ID,
		PropertyID: image.PropertyID,
		URL:        image.URL,
		IsPrimary:  image.IsPrimary,
		OrderIndex: image.OrderIndex,
	}
}

// ToPropertyDTO converts a Property model to PropertyDTO. The primary image
// is resolved per property from the preloaded gallery.
func ToPropertyDTO(property models.Property, includeImages bool) PropertyDTO {
	dto := PropertyDTO{
		ID:             property.ID,
		OwnerID:        property.OwnerID,
		Title:          property.Title,
		Price:          property.Price,
		Bedrooms:       property.Bedrooms,
		Bathrooms:      property.Bathrooms,
		Garages:        property.Garages,
		Aircon:         property.Aircon,
		Balcony:        property.Balcony,
		PetsConsidered: property.PetsConsidered,
		Furnished:      property.Furnished,
		Type:           property.Type,
		Status:         property.Status,
		Lat:            property.Lat,
		Lng:            property.Lng,
		Address:        property.Address,
		Image:          property.PrimaryImageURL(),
	}

	if includeImages {
		dto.Images = make([]PropertyImageDTO, len(property.Images))
		for i, image := range property.Images {
			dto.Images[i] = ToPropertyImageDTO(image)
		}
	}

	// Include owner contact if preloaded
	if property.Owner.ID != 0 {
		avatar := property.Owner.AvatarURL
		if avatar == "" {
			avatar = "no-avatar"
		}
		dto.Owner = &OwnerDTO{
			Name:   property.Owner.Name,
			Email:  property.Owner.Email,
			Phone:  property.Owner.Phone,
			Avatar: avatar,
		}
	}

	return dto
}

// ToPropertyListResponse converts a page of search results to the envelope
func ToPropertyListResponse(properties []models.Property, total int64, params utils.PaginationParams) PropertyListResponse {
	items := make([]PropertyDTO, len(properties))
	for i, property := range properties {
		items[i] = ToPropertyDTO(property, false)
	}

	return PropertyListResponse{
		Properties: items,
		Pagination: utils.NewPaginationResponse(total, params),
	}
}
