package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("Error包含错误码和内部错误", func(t *testing.T) {
		inner := errors.New("disk I/O error")
		err := WrapCode(inner, ErrCodeDatabaseError, "查询图书失败")

		assert.Equal(t, "[50001] 查询图书失败: disk I/O error", err.Error())
		assert.ErrorIs(t, err, inner)
	})

	t.Run("没有内部错误时只输出错误码和消息", func(t *testing.T) {
		assert.Equal(t, "[40402] 图书不存在", New(ErrCodeBookNotFound, "图书不存在").Error())
	})

	t.Run("GetAppError包装普通错误", func(t *testing.T) {
		appErr := GetAppError(errors.New("boom"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
	})

	t.Run("GetAppError穿透fmt包装", func(t *testing.T) {
		bindErr := WrapCode(errors.New("unexpected EOF"), ErrCodeBindError, "请求体解析失败")
		wrapped := fmt.Errorf("handler: %w", bindErr)
		assert.Same(t, bindErr, GetAppError(wrapped))
	})
}

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		code   int
		status int
	}{
		{ErrCodeBookNotFound, 404},
		{ErrCodeBindError, 400},
		{ErrCodeDatabaseError, 500},
		{ErrCodeCacheError, 500},
		{ErrCodeInternal, 500},
		{0, 500},
		{123, 500},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.status, New(tc.code, "x").HTTPStatus(), "code=%d", tc.code)
	}
}
