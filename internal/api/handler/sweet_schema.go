package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// sweetRequest carries the mutable sweet fields for create and update.
type sweetRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

func (r sweetRequest) toInput() ports.SweetInput {
	return ports.SweetInput{
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Quantity: r.Quantity,
	}
}

// restockRequest is the optional body of the restock endpoint. A missing or
// zero amount means the default of one unit.
type restockRequest struct {
	Amount int `json:"amount" validate:"gte=0"`
}

// searchFilter parses the optional search query parameters. Malformed price
// bounds are a 400, not a silently ignored filter.
func searchFilter(c echo.Context) (ports.SweetFilter, error) {
	filter := ports.SweetFilter{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
	}

	if raw := c.QueryParam("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "minPrice must be a number")
		}
		filter.MinPrice = &v
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "maxPrice must be a number")
		}
		filter.MaxPrice = &v
	}

	return filter, nil
}
