package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/server/serializer"
	"github.com/shishikan-sg/shishikan/internal/server/service"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
)

// list contains all list handlers.
type list struct {
	db     database.Client
	lists  service.ListService
	foods  service.FoodService
	search service.SearchService
}

type pageParams struct {
	Page        int
	HitsPerPage int
}

// Index renders the lists of the current user.
func (h *list) Index(c echo.Context) error {
	user := currentUser(c)

	lists, err := h.lists.Lists(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serializer.Lists(lists, user))
}

// Create creates a list owned by the current user.
func (h *list) Create(c echo.Context) error {
	var params service.CreateListParams
	if err := c.Bind(&params); err != nil {
		return err
	}
	if err := c.Validate(&params); err != nil {
		return err
	}

	user := currentUser(c)
	list, err := h.lists.Create(user, params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, serializer.List(list, user))
}

// Show renders a list with its owner.
func (h *list) Show(c echo.Context) error {
	list, owner, err := h.lists.Find(currentUser(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serializer.List(list, owner))
}

// UserLists renders the lists of a user.
// Private lists are only rendered to their owner.
func (h *list) UserLists(c echo.Context) error {
	owner, lists, err := h.lists.UserLists(currentUser(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serializer.Lists(lists, owner))
}

// AddFood adds a food to a list of the current user.
func (h *list) AddFood(c echo.Context) error {
	var params service.AddFoodParams
	if err := c.Bind(&params); err != nil {
		return err
	}
	if err := c.Validate(&params); err != nil {
		return err
	}

	food, err := h.foods.Add(c.Request().Context(), currentUser(c), c.Param("id"), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, serializer.Food(food.Food, food.Categories, food.Tags))
}

// Foods renders a page of the hits of a list.
func (h *list) Foods(c echo.Context) error {
	var params pageParams
	err := echo.QueryParamsBinder(c).
		Int("page", &params.Page).
		Int("hits_per_page", &params.HitsPerPage).
		BindError()
	if err != nil {
		return sskerror.BadRequest("Invalid pagination params.")
	}

	result, err := h.search.ListFoods(c.Request().Context(), currentUser(c), c.Param("id"), params.Page, params.HitsPerPage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
