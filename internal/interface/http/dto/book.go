package dto

import (
	"bytes"
	"encoding/json"

	appbook "github.com/xiebiao/libros/internal/application/book"
)

// BookRequest HTTP图书请求(创建/更新共用)
// 说明:
// - 同时支持application/json和application/x-www-form-urlencoded
// - 所有字段都是可选的文本,指针为nil表示请求中没有该字段(JSON中的null也按没有处理)
// - 未知字段会被忽略
type BookRequest struct {
	Autor     *Text `json:"autor" form:"autor" swaggertype:"string" example:"Orwell"`
	ISBN      *Text `json:"isbn" form:"isbn" swaggertype:"string" example:"123"`
	Editorial *Text `json:"editorial" form:"editorial" swaggertype:"string" example:"Secker"`
	Paginas   *Text `json:"paginas" form:"paginas" swaggertype:"string" example:"328"`
}

// Text 按原样保存的文本字段
// JSON字符串取其内容;数字、布尔、对象、数组不做校验,保存其JSON字面量,
// 如{"paginas":328}保存为"328"
type Text string

// UnmarshalJSON 实现json.Unmarshaler
func (t *Text) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*t = Text(buf.String())
	return nil
}

// ToInput 转换为应用层输入
func (r BookRequest) ToInput() appbook.BookInput {
	return appbook.BookInput{
		Autor:     (*string)(r.Autor),
		ISBN:      (*string)(r.ISBN),
		Editorial: (*string)(r.Editorial),
		Paginas:   (*string)(r.Paginas),
	}
}
