package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/libros/pkg/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestJSON(t *testing.T) {
	t.Run("nil输出为null", func(t *testing.T) {
		c, w := newTestContext()
		JSON(c, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", w.Body.String())
	})

	t.Run("数组原样输出", func(t *testing.T) {
		c, w := newTestContext()
		JSON(c, []int{1, 2})

		assert.JSONEq(t, `[1,2]`, w.Body.String())
	})
}

func TestMessages(t *testing.T) {
	c, w := newTestContext()
	Deleted(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"deleted"}`, w.Body.String())

	c, w = newTestContext()
	NotFound(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"not found"}`, w.Body.String())
}

func TestError(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"数据库错误映射为500", apperrors.WrapCode(errors.New("locked"), apperrors.ErrCodeDatabaseError, "写入失败"), 500, `{"message":"internal server error"}`},
		{"普通错误映射为500", errors.New("boom"), 500, `{"message":"internal server error"}`},
		{"不存在映射为404", apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在"), 404, `{"message":"not found"}`},
		{"请求体错误映射为400", apperrors.WrapCode(errors.New("unexpected EOF"), apperrors.ErrCodeBindError, "请求体解析失败"), 400, `{"message":"invalid request body"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newTestContext()
			Error(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
			assert.True(t, c.IsAborted())
			require.Len(t, c.Errors, 1)
			assert.Equal(t, tc.err, c.Errors[0].Err)
		})
	}
}
