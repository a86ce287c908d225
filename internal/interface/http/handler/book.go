package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/libros/internal/application/book"
	"github.com/xiebiao/libros/internal/interface/http/dto"
	apperrors "github.com/xiebiao/libros/pkg/errors"
	"github.com/xiebiao/libros/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooksUseCase  *appbook.ListBooksUseCase
	getBookUseCase    *appbook.GetBookUseCase
	createBookUseCase *appbook.CreateBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	createBookUseCase *appbook.CreateBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:  listBooksUseCase,
		getBookUseCase:    getBookUseCase,
		createBookUseCase: createBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
	}
}

// ListBooks 查询全部图书
// @Summary      图书列表
// @Description  返回全部图书,按ID升序
// @Tags         图书
// @Produce      json
// @Success      200 {array}  appbook.BookDTO
// @Failure      500 {object} response.MessageBody "存储错误"
// @Router       /book [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.listBooksUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, books)
}

// GetBook 查询图书详情
// @Summary      图书详情
// @Description  图书不存在(或ID不是数字)时返回200和null
// @Tags         图书
// @Produce      json
// @Param        id  path     string true "图书ID"
// @Success      200 {object} appbook.BookDTO
// @Failure      500 {object} response.MessageBody "存储错误"
// @Router       /book/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, valid := parseID(c)

	result, err := h.getBookUseCase.Execute(c.Request.Context(), appbook.GetBookRequest{ID: id, Valid: valid})
	if err != nil {
		response.Error(c, err)
		return
	}
	if !result.Found {
		response.JSON(c, nil)
		return
	}
	response.JSON(c, result.Book)
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  所有字段可选,未提供的字段保存为null
// @Tags         图书
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request body     dto.BookRequest true "图书信息"
// @Success      200     {object} appbook.BookDTO
// @Failure      400     {object} response.MessageBody "请求体无法解析"
// @Failure      500     {object} response.MessageBody "存储错误"
// @Router       /book [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定
	req, ok := bindBook(c)
	if !ok {
		return
	}

	// 2. 调用应用层用例
	result, err := h.createBookUseCase.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 返回创建后的完整记录
	response.JSON(c, result)
}

// UpdateBook 部分更新图书
// @Summary      更新图书
// @Description  只更新请求中出现的字段
// @Tags         图书
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id      path     string          true "图书ID"
// @Param        request body     dto.BookRequest true "要更新的字段"
// @Success      200     {object} appbook.BookDTO
// @Failure      400     {object} response.MessageBody "请求体无法解析"
// @Failure      404     {object} response.MessageBody "图书不存在"
// @Failure      500     {object} response.MessageBody "存储错误"
// @Router       /book/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	// 1. 先解析请求体:格式错误优先返回400
	req, ok := bindBook(c)
	if !ok {
		return
	}
	id, valid := parseID(c)

	// 2. 调用应用层用例
	result, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:    id,
		Valid: valid,
		Input: req.ToInput(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 不存在返回404
	if !result.Found {
		response.NotFound(c)
		return
	}
	response.JSON(c, result.Book)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Param        id  path     string true "图书ID"
// @Success      200 {object} response.MessageBody "deleted"
// @Failure      404 {object} response.MessageBody "图书不存在"
// @Failure      500 {object} response.MessageBody "存储错误"
// @Router       /book/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, valid := parseID(c)

	result, err := h.deleteBookUseCase.Execute(c.Request.Context(), appbook.DeleteBookRequest{ID: id, Valid: valid})
	if err != nil {
		response.Error(c, err)
		return
	}
	if !result.Deleted {
		response.NotFound(c)
		return
	}
	response.Deleted(c)
}

// parseID 解析路径中的图书ID
// 不是非负整数时返回valid=false,由用例按"不存在"处理
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// bindBook 绑定请求体(按Content-Type选择JSON或表单)
// 空请求体等同于没有字段
func bindBook(c *gin.Context) (dto.BookRequest, bool) {
	var req dto.BookRequest
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperrors.WrapCode(err, apperrors.ErrCodeBindError, "请求体解析失败"))
		return req, false
	}
	return req, true
}
