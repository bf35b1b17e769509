package pagination

import (
	"strconv"

	"github.com/foliolabs/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Query is the page/size pair parsed from the request query string.
type Query struct {
	Page int
	Size int
}

// Offset converts the page number into a row offset.
func (q Query) Offset() int { return (q.Page - 1) * q.Size }

// FromContext reads page and size, clamping both to sane bounds. Bad or
// missing values fall back to the defaults instead of erroring.
func FromContext(c *gin.Context) Query {
	q := Query{
		Page: intQuery(c, "page", DefaultPage),
		Size: intQuery(c, "size", DefaultSize),
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Size < 1 {
		q.Size = DefaultSize
	}
	if q.Size > MaxSize {
		q.Size = MaxSize
	}
	return q
}

// Paginate runs the count and the windowed select for one page, returning
// the page metadata alongside dest.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}

	if err := db.Offset(q.Offset()).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	totalPage := int((total + int64(q.Size) - 1) / int64(q.Size))

	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
	}, nil
}

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
