package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListParams is what list endpoints accept: paging, sort and string filters.
type ListParams struct {
	Page     int
	PageSize int
	Sort     string
	Desc     bool
	Filters  map[string]string
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p ListParams) Filter(key string) (string, bool) {
	v, ok := p.Filters[key]
	return v, ok && v != ""
}

// ParseListParams reads page, page_size, sort, order and the given filter keys.
// Keys ending in "_id" must hold a positive integer.
func ParseListParams(c *gin.Context, filterKeys ...string) (ListParams, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return ListParams{}, ErrInvalidPage
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || pageSize < 1 || pageSize > MaxPageSize {
		return ListParams{}, ErrInvalidPageSize
	}

	params := ListParams{
		Page:     page,
		PageSize: pageSize,
		Sort:     c.Query("sort"),
		Desc:     strings.EqualFold(c.Query("order"), "desc"),
		Filters:  make(map[string]string, len(filterKeys)),
	}
	for _, key := range filterKeys {
		v := strings.TrimSpace(c.Query(key))
		if v == "" {
			continue
		}
		if strings.HasSuffix(key, "_id") {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil || id == 0 {
				return ListParams{}, ErrInvalidInput
			}
			v = strconv.FormatUint(id, 10)
		}
		params.Filters[key] = v
	}
	return params, nil
}

type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPage[T any](items []T, params ListParams, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if params.PageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(params.PageSize)))
	}
	return Page[T]{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
