package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// ProfileUseCase 个人资料查看与修改
type ProfileUseCase struct {
	userService user.Service
	log         *zap.Logger
}

// NewProfileUseCase 创建个人资料用例
func NewProfileUseCase(userService user.Service, log *zap.Logger) *ProfileUseCase {
	return &ProfileUseCase{userService: userService, log: log}
}

// UpdateProfileRequest 可修改的字段，提交即完整内容
type UpdateProfileRequest struct {
	UserID    uint
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// Get 当前用户资料
func (uc *ProfileUseCase) Get(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := uc.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(u)
	return &info, nil
}

// Update 修改资料，用户名被占用返回ErrUsernameDuplicate
func (uc *ProfileUseCase) Update(ctx context.Context, req UpdateProfileRequest) (info *UserInfo, err error) {
	ctx, span := tracing.StartSpan(ctx, "UpdateProfile")
	defer func() { tracing.End(span, err) }()

	u, err := uc.userService.UpdateProfile(ctx, req.UserID, user.Profile{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("个人资料已更新", zap.Uint("user_id", u.ID))
	out := toUserInfo(u)
	return &out, nil
}
