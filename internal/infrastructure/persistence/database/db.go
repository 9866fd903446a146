package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 生产使用MySQL，本地开发和测试使用SQLite（database.driver切换）
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 启动时AutoMigrate表结构
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dialector = openSQLite(cfg.Database.DSN())
	default:
		dialector = mysql.Open(cfg.Database.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// 唯一索引冲突统一转换为gorm.ErrDuplicatedKey
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 外键约束在子表建表时创建，GORM会按依赖顺序建表
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&CategoryModel{},
		&TagModel{},
		&BookModel{},
		&RatingModel{},
		&CommentModel{},
	)
}

// UserModel GORM用户模型
// 这是infrastructure层的数据模型，domain/user/entity.go是领域实体，Repository负责两者之间的转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;size:150;not null;comment:用户名"`
	Email     string    `gorm:"size:254;not null;default:'';comment:邮箱"`
	FirstName string    `gorm:"size:150;not null;default:'';comment:名"`
	LastName  string    `gorm:"size:150;not null;default:'';comment:姓"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (UserModel) TableName() string {
	return "users"
}

// CategoryModel 分类
type CategoryModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:50;not null;comment:分类名"`
	CreatedAt time.Time
}

func (CategoryModel) TableName() string {
	return "categories"
}

// TagModel 标签
type TagModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:50;not null;comment:标签名"`
	CreatedAt time.Time
}

func (TagModel) TableName() string {
	return "tags"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 分类可为空,分类删除时置NULL
// 2. 标签通过book_tags(book_id, tag_id)多对多关联
// 3. 作者删除时级联删除其图书
// 4. created_at索引服务于列表的倒序分页
type BookModel struct {
	ID          uint           `gorm:"primaryKey"`
	Title       string         `gorm:"index;size:100;not null;comment:书名"`
	Description string         `gorm:"type:text;not null;comment:图书描述(富文本)"`
	CoverKey    string         `gorm:"size:255;not null;default:'';comment:封面对象键"`
	CategoryID  *uint          `gorm:"index;comment:分类ID"`
	Category    *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Tags        []TagModel     `gorm:"many2many:book_tags;joinForeignKey:BookID;joinReferences:TagID;constraint:OnDelete:CASCADE"`
	AuthorID    uint           `gorm:"index;not null;comment:作者用户ID"`
	Author      *UserModel     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
}

func (BookModel) TableName() string {
	return "books"
}

// RatingModel 评分
// (user_id, book_id)唯一索引是评分upsert的冲突目标
type RatingModel struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"not null;uniqueIndex:uk_ratings_user_book,priority:1"`
	BookID    uint       `gorm:"not null;index;uniqueIndex:uk_ratings_user_book,priority:2"`
	Score     int        `gorm:"not null;check:chk_ratings_score,score >= 1 AND score <= 5;comment:评分1-5"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Book      *BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RatingModel) TableName() string {
	return "ratings"
}

// CommentModel 评论
type CommentModel struct {
	ID        uint       `gorm:"primaryKey"`
	BookID    uint       `gorm:"index:idx_comments_book_created,priority:1;not null"`
	UserID    uint       `gorm:"index;not null"`
	Content   string     `gorm:"type:text;not null"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Book      *BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"index:idx_comments_book_created,priority:2"`
}

func (CommentModel) TableName() string {
	return "comments"
}
