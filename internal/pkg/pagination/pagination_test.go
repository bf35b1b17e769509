package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestFromContext(t *testing.T) {
	cases := map[string]struct {
		query string
		page  int
		size  int
	}{
		"defaults":       {"", 1, 10},
		"explicit":       {"page=3&size=25", 3, 25},
		"negative page":  {"page=-2", 1, 10},
		"zero size":      {"size=0", 1, 10},
		"size clamped":   {"size=500", 1, 100},
		"garbage values": {"page=abc&size=xyz", 1, 10},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			q := FromContext(queryContext(t, tc.query))
			assert.Equal(t, tc.page, q.Page)
			assert.Equal(t, tc.size, q.Size)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Query{Page: 1, Size: 10}.Offset())
	assert.Equal(t, 40, Query{Page: 3, Size: 20}.Offset())
}
