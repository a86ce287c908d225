package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/libros/pkg/errors"
)

// 对外约定的提示信息
const (
	MessageDeleted       = "deleted"
	MessageNotFound      = "not found"
	MessageBadRequest    = "invalid request body"
	MessageInternalError = "internal server error"
)

// MessageBody 只有提示信息的响应体
// 例如：{"message":"not found"}
type MessageBody struct {
	Message string `json:"message"`
}

// JSON 成功响应（HTTP 200，直接输出数据，不包裹信封）
// 设计说明：客户端约定的是资源本身（对象、数组或null），而不是{code,data}结构
func JSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Message 指定状态码返回提示信息
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, MessageBody{Message: message})
}

// Deleted 删除成功
func Deleted(c *gin.Context) {
	Message(c, http.StatusOK, MessageDeleted)
}

// NotFound 资源不存在
func NotFound(c *gin.Context) {
	Message(c, http.StatusNotFound, MessageNotFound)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	result, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
//
// 内部错误挂到gin.Context上，由访问日志中间件统一记录，
// 客户端只看到与状态码对应的通用提示
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	_ = c.Error(err)

	status := appErr.HTTPStatus()
	c.AbortWithStatusJSON(status, MessageBody{Message: statusMessage(status)})
}

// statusMessage 状态码对应的通用提示
func statusMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return MessageNotFound
	case http.StatusBadRequest:
		return MessageBadRequest
	default:
		return MessageInternalError
	}
}
