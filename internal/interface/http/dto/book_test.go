package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/libros/internal/interface/http/dto"
)

func TestBookRequestJSON(t *testing.T) {
	t.Run("非字符串值保存字面量", func(t *testing.T) {
		var req dto.BookRequest
		require.NoError(t, json.Unmarshal([]byte(`{"autor":"Orwell","isbn":true,"editorial":{"a": [1, 2]},"paginas":328}`), &req))

		in := req.ToInput()
		assert.Equal(t, "Orwell", *in.Autor)
		assert.Equal(t, "true", *in.ISBN)
		assert.Equal(t, `{"a":[1,2]}`, *in.Editorial)
		assert.Equal(t, "328", *in.Paginas)
	})

	t.Run("数字字面量不做转换", func(t *testing.T) {
		var req dto.BookRequest
		require.NoError(t, json.Unmarshal([]byte(`{"paginas":3.280e2}`), &req))
		assert.Equal(t, "3.280e2", *req.ToInput().Paginas)
	})

	t.Run("null和缺失字段都是nil", func(t *testing.T) {
		var req dto.BookRequest
		require.NoError(t, json.Unmarshal([]byte(`{"autor":null}`), &req))

		in := req.ToInput()
		assert.Nil(t, in.Autor)
		assert.Nil(t, in.ISBN)
	})

	t.Run("字符串中的转义被解码", func(t *testing.T) {
		var req dto.BookRequest
		require.NoError(t, json.Unmarshal([]byte(`{"autor":"Cortázar \"J\""}`), &req))
		assert.Equal(t, `Cortázar "J"`, *req.ToInput().Autor)
	})
}
