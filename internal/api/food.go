package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/illineats/backend/internal/catalog"
	"github.com/illineats/backend/internal/service"
	"github.com/illineats/backend/internal/tags"
)

// FoodHandler serves the menu browsing routes
type FoodHandler struct {
	foods service.IFoodService
}

// NewFoodHandler creates a new FoodHandler
func NewFoodHandler(foods service.IFoodService) *FoodHandler {
	return &FoodHandler{foods: foods}
}

// RegisterRoutes registers the food routes
func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/foods", h.ListFoods)
	router.GET("/foods/:id", h.GetFood)
	router.GET("/halls/:hall/menu", h.HallMenu)
	router.GET("/halls/:hall/status", h.HallStatus)
	router.GET("/schedule", h.Schedule)
}

// foodListParams are the browse query parameters
type foodListParams struct {
	Page         int      `form:"page" binding:"omitempty,min=0"`
	PageSize     int      `form:"pageSize" binding:"omitempty,min=0"`
	SortFields   string   `form:"sortFields"`
	DiningHall   string   `form:"diningHall"`
	MealType     string   `form:"mealType"`
	SearchTerm   string   `form:"searchTerm"`
	DateServed   string   `form:"dateServed"`
	Allergens    string   `form:"allergens"`
	Preferences  string   `form:"preferences"`
	Serving      string   `form:"serving"`
	RatingFilter *float64 `form:"ratingFilter" binding:"omitempty,min=0,max=100"`
}

func (p *foodListParams) query() catalog.Query {
	return catalog.Query{
		Page:             p.Page,
		PageSize:         p.PageSize,
		Sort:             catalog.ParseSortFields(p.SortFields),
		DiningHall:       p.DiningHall,
		MealType:         p.MealType,
		DateServed:       p.DateServed,
		Search:           p.SearchTerm,
		ExcludeAllergens: tags.ParseList(p.Allergens),
		Preferences:      tags.ParseWords(p.Preferences),
		Serving:          p.Serving,
		MinRating:        p.RatingFilter,
	}
}

// ListFoods runs the filter, sort and paginate pipeline
func (h *FoodHandler) ListFoods(c *gin.Context) {
	var params foodListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.foods.ListFoods(c.Request.Context(), params.query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetFood returns a single food with serving status per entry
func (h *FoodHandler) GetFood(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	food, err := h.foods.GetFood(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// HallMenu returns a hall's foods grouped by facility
func (h *FoodHandler) HallMenu(c *gin.Context) {
	menu, err := h.foods.HallMenu(c.Request.Context(), c.Param("hall"), c.Query("mealType"), c.Query("dateServed"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

// HallStatus returns the current state of each of a hall's meals
func (h *FoodHandler) HallStatus(c *gin.Context) {
	status, err := h.foods.HallStatus(c.Request.Context(), c.Param("hall"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Schedule returns the serving windows
func (h *FoodHandler) Schedule(c *gin.Context) {
	c.JSON(http.StatusOK, h.foods.Schedule())
}
