// Package pagination 页码解析与越界修正
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Page 修正后的分页信息
type Page struct {
	Number     int   // 当前页码（从1开始）
	Size       int   // 每页大小
	Total      int64 // 总记录数
	TotalPages int   // 总页数，空结果时为1
}

// ParseNumber 解析请求中的页码，非数字返回1
// 溢出int的正数按最大值处理，由Resolve修正到最后一页
func ParseNumber(raw string) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return math.MaxInt
		}
		return 1
	}
	return n
}

// Resolve 根据总数修正页码：
// 小于1取第1页，超过最后一页取最后一页，空结果固定为第1页（共1页）
func Resolve(total int64, size, requested int) Page {
	if size < 1 {
		size = 1
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{Number: number, Size: size, Total: total, TotalPages: totalPages}
}

// Offset SQL OFFSET
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}
