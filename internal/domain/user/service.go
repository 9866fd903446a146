package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// hashCost bcrypt计算强度，cost每+1耗时翻倍
var hashCost = 12

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]{1,150}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	hasLetter       = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit        = regexp.MustCompile(`[0-9]`)
)

// 用户领域错误
var (
	ErrInvalidUsername = apperrors.New(apperrors.ErrCodeInvalidParams, "用户名只能包含字母、数字和@.+-_，最长150个字符")
	ErrInvalidEmail    = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
)

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（如密码加密、验证）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
type Service interface {
	// Register 用户注册，email可以为空
	Register(ctx context.Context, username, email, password string) (*User, error)

	// Login 用户名+密码登录
	Login(ctx context.Context, username, password string) (*User, error)

	// GetByID 获取用户
	GetByID(ctx context.Context, id uint) (*User, error)

	// UpdateProfile 修改个人资料
	UpdateProfile(ctx context.Context, id uint, p Profile) (*User, error)
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
// 业务规则：
// 1. 用户名格式校验，唯一性由数据库UNIQUE索引保证
// 2. 密码强度校验（8-20位，包含字母和数字）
// 3. 密码bcrypt加密
func (s *service) Register(ctx context.Context, username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	user := NewUser(username, email, string(hashedPassword))
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 用户不存在和密码错误返回同一个错误，避免枚举用户名
func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, apperrors.ErrInvalidPassword
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, apperrors.Wrap(err, "密码验证失败")
	}
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id uint, p Profile) (*User, error) {
	if err := validateUsername(strings.TrimSpace(p.Username)); err != nil {
		return nil, err
	}
	if err := validateEmail(strings.TrimSpace(p.Email)); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.UpdateProfile(p)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// =========================================
// 辅助函数：业务规则校验
// =========================================

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func validateEmail(email string) error {
	if email != "" && !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// validatePasswordStrength 8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}
