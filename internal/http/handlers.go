package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"phuongnam/internal/domain"
	"phuongnam/internal/repository"
	"phuongnam/internal/service"
)

type Server struct {
	engine  *gin.Engine
	catalog *service.CatalogService
	chat    *service.ChatService
	env     string
}

func NewServer(catalog *service.CatalogService, chat *service.ChatService, env, imagesDir string) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{engine: r, catalog: catalog, chat: chat, env: env}
	s.registerRoutes(imagesDir)
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes(imagesDir string) {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if imagesDir != "" {
		s.engine.Static("/images", imagesDir)
	}

	api := s.engine.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/test", s.test)

		foods := api.Group("/foods")
		foods.GET("", s.listFoods)
		foods.GET("/search", s.searchFoods)
		foods.GET("/popular", s.popularFoods)
		foods.GET("/stats", s.foodStats)
		foods.GET("/:id", s.getFood)
		foods.POST("", s.createFood)
		foods.PUT("/:id", s.updateFood)
		foods.PATCH("/:id/stock", s.updateStock)
		foods.DELETE("/:id", s.deleteFood)

		categories := api.Group("/categories")
		categories.GET("", s.listCategories)
		categories.GET("/:id", s.getCategory)
		categories.POST("", s.createCategory)
		categories.PUT("/:id", s.updateCategory)
		categories.DELETE("/:id", s.deleteCategory)

		api.POST("/chat", s.postChat)
	}
}

// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} Envelope
// @Router /health [get]
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "API is running successfully",
		"version":     "1.0.0",
		"environment": s.env,
		"timestamp":   time.Now().UTC(),
	})
}

// @Summary Connectivity probe
// @Tags system
// @Produce json
// @Success 200 {object} Envelope
// @Router /test [get]
func (s *Server) test(c *gin.Context) {
	respond(c, http.StatusOK, "Backend is connected and running!", nil)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// queryInt64 reads an optional integer query parameter; ok reports
// whether the value was parseable when present.
func queryInt64(c *gin.Context, name string) (*int64, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// queryPage reads limit or offset; both must be non-negative integers.
func queryPage(c *gin.Context, name string) (int, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// @Summary List foods
// @Description Returns one page of foods matching all supplied filters.
// @Tags foods
// @Produce json
// @Param search query string false "Keyword matched against name and description"
// @Param category query int false "Category ID"
// @Param minPrice query int false "Minimum price"
// @Param maxPrice query int false "Maximum price"
// @Param available query bool false "Only available foods"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page start" default(0)
// @Success 200 {object} Envelope{data=[]domain.Food}
// @Failure 400 {object} Envelope
// @Router /foods [get]
func (s *Server) listFoods(c *gin.Context) {
	var f repository.FoodFilter
	f.Search = c.Query("search")

	var ok bool
	if f.CategoryID, ok = queryInt64(c, "category"); !ok {
		respondError(c, http.StatusBadRequest, "invalid category")
		return
	}
	if f.MinPrice, ok = queryInt64(c, "minPrice"); !ok {
		respondError(c, http.StatusBadRequest, "invalid minPrice")
		return
	}
	if f.MaxPrice, ok = queryInt64(c, "maxPrice"); !ok {
		respondError(c, http.StatusBadRequest, "invalid maxPrice")
		return
	}
	if v := c.Query("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid available")
			return
		}
		f.Available = &b
	}
	if f.Limit, ok = queryPage(c, "limit"); !ok {
		respondError(c, http.StatusBadRequest, "invalid limit")
		return
	}
	if f.Offset, ok = queryPage(c, "offset"); !ok {
		respondError(c, http.StatusBadRequest, "invalid offset")
		return
	}
	if f.Limit == 0 {
		f.Limit = service.DefaultLimit
	}

	foods, total, err := s.catalog.ListFoods(c, f)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondList(c, "Foods fetched successfully", foods, total, f.Limit, f.Offset)
}

// @Summary Search foods
// @Tags foods
// @Produce json
// @Param q query string true "Search keyword"
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {object} Envelope{data=[]domain.Food}
// @Failure 400 {object} Envelope
// @Router /foods/search [get]
func (s *Server) searchFoods(c *gin.Context) {
	q := c.Query("q")
	limit, ok := queryPage(c, "limit")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid limit")
		return
	}
	foods, total, err := s.catalog.SearchFoods(c, q, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, Envelope{
		Success:   true,
		Message:   "Search completed successfully",
		Data:      foods,
		Query:     q,
		Total:     &total,
		Timestamp: time.Now().UTC(),
	})
}

// @Summary Popular foods
// @Description Foods ranked by historical order count descending.
// @Tags foods
// @Produce json
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {object} Envelope{data=[]domain.PopularFood}
// @Router /foods/popular [get]
func (s *Server) popularFoods(c *gin.Context) {
	limit, ok := queryPage(c, "limit")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid limit")
		return
	}
	foods, err := s.catalog.PopularFoods(c, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Popular foods fetched successfully", foods)
}

// @Summary Catalog statistics
// @Tags foods
// @Produce json
// @Success 200 {object} Envelope{data=domain.FoodStats}
// @Router /foods/stats [get]
func (s *Server) foodStats(c *gin.Context) {
	stats, err := s.catalog.Stats(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Stats fetched successfully", stats)
}

// @Summary Get food by id
// @Tags foods
// @Produce json
// @Param id path int true "Food ID"
// @Success 200 {object} Envelope{data=domain.Food}
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /foods/{id} [get]
func (s *Server) getFood(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	food, err := s.catalog.GetFood(c, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Food fetched successfully", food)
}

type createFoodReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	CategoryID  int64  `json:"category_id"`
	Available   *bool  `json:"available"`
	Stock       int64  `json:"stock"`
	Ingredients string `json:"ingredients"`
	CookingTime int    `json:"cooking_time"`
	Calories    int    `json:"calories"`
	SpiceLevel  int    `json:"spice_level"`
	ImageURL    string `json:"image_url"`
}

// @Summary Create food
// @Tags foods
// @Accept json
// @Produce json
// @Param input body createFoodReq true "Food"
// @Success 201 {object} Envelope{data=domain.Food}
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /foods [post]
func (s *Server) createFood(c *gin.Context) {
	var req createFoodReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json")
		return
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	food, err := s.catalog.CreateFood(c, domain.Food{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Available:   available,
		Stock:       req.Stock,
		Ingredients: req.Ingredients,
		CookingTime: req.CookingTime,
		Calories:    req.Calories,
		SpiceLevel:  req.SpiceLevel,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Food created successfully", food)
}

type updateFoodReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	CategoryID  *int64  `json:"category_id"`
	Available   *bool   `json:"available"`
	Stock       *int64  `json:"stock"`
	Ingredients *string `json:"ingredients"`
	CookingTime *int    `json:"cooking_time"`
	Calories    *int    `json:"calories"`
	SpiceLevel  *int    `json:"spice_level"`
	ImageURL    *string `json:"image_url"`
}

// @Summary Update food
// @Description Partial update; absent fields stay unchanged.
// @Tags foods
// @Accept json
// @Produce json
// @Param id path int true "Food ID"
// @Param input body updateFoodReq true "Fields to update"
// @Success 200 {object} Envelope{data=domain.Food}
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /foods/{id} [put]
func (s *Server) updateFood(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateFoodReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json")
		return
	}
	food, err := s.catalog.UpdateFood(c, id, service.UpdateFoodInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Available:   req.Available,
		Stock:       req.Stock,
		Ingredients: req.Ingredients,
		CookingTime: req.CookingTime,
		Calories:    req.Calories,
		SpiceLevel:  req.SpiceLevel,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Food updated successfully", food)
}

type updateStockReq struct {
	Stock *int64 `json:"stock"`
}

// @Summary Update food stock
// @Tags foods
// @Accept json
// @Produce json
// @Param id path int true "Food ID"
// @Param input body updateStockReq true "New stock quantity"
// @Success 200 {object} Envelope{data=domain.Food}
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /foods/{id}/stock [patch]
func (s *Server) updateStock(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateStockReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Stock == nil {
		respondError(c, http.StatusBadRequest, "stock is required")
		return
	}
	food, err := s.catalog.UpdateStock(c, id, *req.Stock)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Stock updated successfully", food)
}

// @Summary Delete food
// @Tags foods
// @Produce json
// @Param id path int true "Food ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /foods/{id} [delete]
func (s *Server) deleteFood(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.catalog.DeleteFood(c, id); err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Food deleted successfully", nil)
}
