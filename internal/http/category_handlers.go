package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"phuongnam/internal/domain"
	"phuongnam/internal/service"
)

// @Summary List categories
// @Description Active categories only, unless all=true.
// @Tags categories
// @Produce json
// @Param all query bool false "Include disabled categories"
// @Success 200 {object} Envelope{data=[]domain.Category}
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	includeInactive := false
	if v := c.Query("all"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid all")
			return
		}
		includeInactive = b
	}
	cats, err := s.catalog.ListCategories(c, includeInactive)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Categories fetched successfully", cats)
}

// @Summary Get category by id
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} Envelope{data=domain.Category}
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /categories/{id} [get]
func (s *Server) getCategory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	cat, err := s.catalog.GetCategory(c, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Category fetched successfully", cat)
}

type createCategoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param input body createCategoryReq true "Category"
// @Success 201 {object} Envelope{data=domain.Category}
// @Failure 400 {object} Envelope
// @Router /categories [post]
func (s *Server) createCategory(c *gin.Context) {
	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cat, err := s.catalog.CreateCategory(c, domain.Category{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Category created successfully", cat)
}

type updateCategoryReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Active      *bool   `json:"active"`
}

// @Summary Update category
// @Description Partial update; absent fields stay unchanged.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param input body updateCategoryReq true "Fields to update"
// @Success 200 {object} Envelope{data=domain.Category}
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /categories/{id} [put]
func (s *Server) updateCategory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cat, err := s.catalog.UpdateCategory(c, id, service.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Category updated successfully", cat)
}

// @Summary Disable category
// @Description Soft delete: the category stays with active=false.
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /categories/{id} [delete]
func (s *Server) deleteCategory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.catalog.DisableCategory(c, id); err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Category disabled successfully", nil)
}
