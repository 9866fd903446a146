package rating

import (
	"time"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Rating 用户对图书的评分,每个(用户,图书)只保留一条
type Rating struct {
	ID        uint
	UserID    uint
	BookID    uint
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary 单本图书的评分汇总
// Average为nil表示还没有人评分(不是0分)
type Summary struct {
	BookID  uint
	Average *float64
	Count   int64
}

// ValidateScore 评分必须在1-5之间
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return ErrInvalidScore
	}
	return nil
}
