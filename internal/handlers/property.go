package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rentspot/rentspot-api/internal/dto"
	apierrors "github.com/rentspot/rentspot-api/internal/errors"
	"github.com/rentspot/rentspot-api/internal/middleware"
	"github.com/rentspot/rentspot-api/internal/models"
	"github.com/rentspot/rentspot-api/internal/repository"
	"github.com/rentspot/rentspot-api/internal/services"
	"github.com/rentspot/rentspot-api/internal/storage"
	"github.com/rentspot/rentspot-api/internal/utils"
)

// PropertyHandler coordinates listing-related HTTP handlers.
type PropertyHandler struct {
	propertyService *services.PropertyService
	images          storage.ImageStore
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertyService *services.PropertyService, images storage.ImageStore) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		images:          images,
	}
}

// buildFilter assembles the search filter from query parameters. Type values
// accept symbolic names or numeric codes; unknown values are dropped.
func buildFilter(c *gin.Context, params utils.PaginationParams) repository.PropertyFilter {
	filter := repository.PropertyFilter{
		Keyword: c.Query("keyword"),
		Page:    params.Page,
		Limit:   params.Limit,
	}

	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		filter.MaxPrice = &v
	}

	bedrooms := c.Query("bedrooms")
	if bedrooms == "" {
		bedrooms = c.Query("minBedrooms")
	}
	if v, err := strconv.Atoi(bedrooms); err == nil {
		filter.Bedrooms = &v
	}
	if v, err := strconv.Atoi(c.Query("bathrooms")); err == nil {
		filter.Bathrooms = &v
	}

	rawTypes := c.Query("type")
	if rawTypes == "" {
		rawTypes = c.Query("propertyTypes")
	}
	if rawTypes != "" && rawTypes != "all" {
		for _, t := range strings.Split(rawTypes, ",") {
			if parsed, ok := models.ParsePropertyType(strings.TrimSpace(t)); ok {
				filter.Types = append(filter.Types, parsed)
			}
		}
	}

	if raw := c.Query("status"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			status := models.PropertyStatus(v)
			filter.Status = &status
		}
	}

	return filter
}

// List is the public property search.
func (h *PropertyHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := buildFilter(c, params)

	properties, total, err := h.propertyService.Search(filter)
	if err != nil {
		apierrors.InternalError(c, "Error fetching properties")
		return
	}

	c.JSON(http.StatusOK, dto.ToPropertyListResponse(properties, total, params))
}

// Get returns one listing with its gallery and owner contact.
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid property ID")
		return
	}

	property, err := h.propertyService.Get(id)
	if err != nil {
		respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPropertyDTO(*property, true))
}

// ListMine returns the caller's own listings.
func (h *PropertyHandler) ListMine(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	properties, err := h.propertyService.ListForOwner(userID)
	if err != nil {
		apierrors.InternalError(c, "Error fetching your properties")
		return
	}

	items := make([]dto.PropertyDTO, len(properties))
	for i, property := range properties {
		items[i] = dto.ToPropertyDTO(property, true)
	}

	c.JSON(http.StatusOK, gin.H{"properties": items})
}

type propertyRequest struct {
	Title          *string                `json:"title"`
	Price          *float64               `json:"price"`
	Bedrooms       *int                   `json:"bedrooms"`
	Bathrooms      *int                   `json:"bathrooms"`
	Garages        *int                   `json:"garages"`
	Aircon         *bool                  `json:"aircon"`
	Balcony        *bool                  `json:"balcony"`
	PetsConsidered *bool                  `json:"petsConsidered"`
	Furnished      *bool                  `json:"furnished"`
	Type           *models.PropertyType   `json:"type"`
	Status         *models.PropertyStatus `json:"status"`
	Lat            *float64               `json:"lat"`
	Lng            *float64               `json:"lng"`
	Address        *string                `json:"address"`
	Image          *string                `json:"image"`
	Images         []string               `json:"images"`
	ReplaceImages  bool                   `json:"replaceAllImages"`
}

// Create adds a new listing. Landlord or admin only (enforced by the route
// group).
func (h *PropertyHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreatePropertyInput{OwnerID: userID, Images: req.Images}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.Price != nil {
		input.Price = *req.Price
	}
	if req.Bedrooms != nil {
		input.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		input.Bathrooms = *req.Bathrooms
	}
	if req.Garages != nil {
		input.Garages = *req.Garages
	}
	if req.Aircon != nil {
		input.Aircon = *req.Aircon
	}
	if req.Balcony != nil {
		input.Balcony = *req.Balcony
	}
	if req.PetsConsidered != nil {
		input.PetsConsidered = *req.PetsConsidered
	}
	if req.Furnished != nil {
		input.Furnished = *req.Furnished
	}
	if req.Type != nil {
		input.Type = *req.Type
	}
	if req.Status != nil {
		input.Status = *req.Status
	}
	if req.Lat != nil {
		input.Lat = *req.Lat
	}
	if req.Lng != nil {
		input.Lng = *req.Lng
	}
	if req.Address != nil {
		input.Address = *req.Address
	}
	if req.Image != nil {
		input.ImageURL = *req.Image
	}

	property, err := h.propertyService.Create(input)
	if err != nil {
		respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Property created successfully",
		"property": dto.ToPropertyDTO(*property, true),
	})
}

// Update applies a partial update to a listing.
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid property ID")
		return
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	property, err := h.propertyService.Update(id, services.UpdatePropertyInput{
		Title:           req.Title,
		Price:           req.Price,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		Garages:         req.Garages,
		Aircon:          req.Aircon,
		Balcony:         req.Balcony,
		PetsConsidered:  req.PetsConsidered,
		Furnished:       req.Furnished,
		Type:            req.Type,
		Status:          req.Status,
		Lat:             req.Lat,
		Lng:             req.Lng,
		Address:         req.Address,
		Images:          req.Images,
		ReplaceAllImage: req.ReplaceImages,
	}, userID, role)
	if err != nil {
		respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Property updated successfully",
		"property": dto.ToPropertyDTO(*property, true),
	})
}

// Delete removes a listing: soft status transition first, permanent removal
// on an already-removed listing (admin only).
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid property ID")
		return
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	result, err := h.propertyService.Delete(id, userID, role)
	if err != nil {
		respondPropertyError(c, err)
		return
	}

	message := "Property removed successfully"
	if result.Hard {
		message = "Property deleted permanently"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Upload stores a single image and returns its URL.
func (h *PropertyHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		apierrors.BadRequest(c, "No image file provided")
		return
	}

	if !middleware.ValidImageUpload(file) {
		apierrors.BadRequest(c, "Only image files are allowed")
		return
	}

	src, err := file.Open()
	if err != nil {
		apierrors.InternalError(c, "Error uploading image")
		return
	}
	defer src.Close()

	url, err := h.images.Save(file.Filename, src)
	if err != nil {
		apierrors.InternalError(c, "Error uploading image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Image uploaded successfully",
		"imageUrl": url,
	})
}

// UploadMultiple stores a batch of images; when a property ID is supplied
// the images are attached to that listing's gallery.
func (h *PropertyHandler) UploadMultiple(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		apierrors.BadRequest(c, "No image files provided")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		apierrors.BadRequest(c, "No image files provided")
		return
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		if !middleware.ValidImageUpload(file) {
			apierrors.BadRequest(c, "Only image files are allowed")
			return
		}

		src, err := file.Open()
		if err != nil {
			apierrors.InternalError(c, "Error uploading images")
			return
		}

		url, err := h.images.Save(file.Filename, src)
		src.Close()
		if err != nil {
			apierrors.InternalError(c, "Error uploading images")
			return
		}
		urls = append(urls, url)
	}

	if raw := c.PostForm("propertyId"); raw != "" {
		propertyID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid property ID")
			return
		}

		userID, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)

		images, err := h.propertyService.AddImages(propertyID, urls, userID, role)
		if err != nil {
			respondPropertyError(c, err)
			return
		}

		items := make([]dto.PropertyImageDTO, len(images))
		for i, image := range images {
			items[i] = dto.ToPropertyImageDTO(image)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Images uploaded and saved to property",
			"images":  items,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Images uploaded successfully",
		"images":  urls,
	})
}

// FavoriteStatus reports whether the caller saved this listing.
func (h *PropertyHandler) FavoriteStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid property ID")
		return
	}

	userID, _ := middleware.GetUserID(c)

	favorited, err := h.propertyService.FavoriteStatus(id, userID)
	if err != nil {
		apierrors.InternalError(c, "Error checking favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

// AddFavorite saves the listing for the caller.
func (h *PropertyHandler) AddFavorite(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid property ID")
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := h.propertyService.AddFavorite(id, userID); err != nil {
		respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Property saved to favorites"})
}

// RemoveFavorite unsaves the listing for the caller.
func (h *PropertyHandler) RemoveFavorite(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid property ID")
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := h.propertyService.RemoveFavorite(id, userID); err != nil {
		respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property removed from favorites"})
}

func respondPropertyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPropertyNotFound):
		apierrors.NotFound(c, "Property not found")
	case errors.Is(err, services.ErrFavoriteNotFound):
		apierrors.NotFound(c, "Favorite not found")
	case errors.Is(err, services.ErrPropertyForbidden):
		apierrors.Forbidden(c, "You can only manage your own properties")
	case errors.Is(err, services.ErrMissingPropertyFields):
		apierrors.BadRequestWithDetails(c, "Missing required fields",
			[]string{"title", "price", "bedrooms", "bathrooms", "lat", "lng", "address"})
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
