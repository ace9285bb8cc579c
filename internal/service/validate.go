package service

import (
	"fmt"
	"strings"

	"github.com/mindstore/backoffice/internal/apperr"
)

const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"

	DefaultMaxPageSize = 100

	minQueryPrice = 0
	maxQueryPrice = 1000
)

// Sort fields are allow-listed per entity and mapped to column names,
// so client input never reaches the ORDER BY clause directly.
var productSortColumns = map[string]string{
	"id":          "id",
	"title":       "title",
	"description": "description",
	"price":       "price",
}

var userSortColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"email": "email",
}

func validatePages(page, pageSize, maxPageSize int) error {
	if page < 1 {
		return apperr.InvalidParameter("Page must be 1 or greater")
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return apperr.InvalidParameter(fmt.Sprintf("Page size must be between 1 and %d", maxPageSize))
	}
	return nil
}

func descending(direction string) (bool, error) {
	switch direction {
	case DirectionAsc:
		return false, nil
	case DirectionDesc:
		return true, nil
	default:
		return false, apperr.NotAllowedValue("Direction not allowed")
	}
}

// Product fields match case-insensitively.
func productSortColumn(field string) (string, error) {
	col, ok := productSortColumns[strings.ToLower(field)]
	if !ok {
		return "", apperr.InvalidParameter("Field not allowed")
	}
	return col, nil
}

func userSortColumn(field string) (string, error) {
	col, ok := userSortColumns[field]
	if !ok {
		return "", apperr.InvalidParameter("Field not allowed")
	}
	return col, nil
}

func validatePriceRange(minPrice, maxPrice int) error {
	if minPrice < minQueryPrice || maxPrice > maxQueryPrice {
		return apperr.NotAllowedValue(fmt.Sprintf("Price must be between %d and %d", minQueryPrice, maxQueryPrice))
	}
	return nil
}
