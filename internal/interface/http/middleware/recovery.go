package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/libros/pkg/response"
)

// Recovery panic恢复中间件
// panic被记录为error日志,客户端收到500 {"message":"internal server error"},进程继续运行
// gin自带的堆栈输出关闭,统一走slog
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.Error("请求处理panic",
			slog.String("request_id", GetRequestID(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("panic", fmt.Sprint(recovered)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.MessageBody{Message: response.MessageInternalError})
	})
}
