package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// bookID 解析路径参数:id，非法ID按图书不存在处理
func bookID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, book.ErrBookNotFound
	}
	return uint(id), nil
}

func bookPath(id uint) string {
	return fmt.Sprintf("/books/%d", id)
}
