package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/masaladesk/restro_backend/config"
	"github.com/masaladesk/restro_backend/utils"
	"gorm.io/gorm"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email     string    `gorm:"size:100;not null;unique" json:"email" binding:"required"`
	Password  string    `gorm:"size:255;not null" json:"password"`
	Role      UserRole  `gorm:"type:enum('admin','staff');default:staff" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (result *User) PrepareGive() {
	result.Password = ""
}

type LoginInfo struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

/*
caches:
	Token:$token    -> user id, removed on logout
	Tokens:$userId  -> set of the user's live tokens
*/

// Login checks credentials and issues a JWT. The token is recorded in redis
// so Logout can revoke it before expiry.
func Login(ctx context.Context, email string, password string) (*LoginInfo, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, utils.NewValidationError("email and password are required")
	}

	db := config.GetDB()
	var user User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewValidationError("invalid credentials")
		}
		return nil, err
	}

	if err := utils.ComparePassword(user.Password, password); err != nil {
		return nil, utils.NewValidationError("invalid credentials")
	}

	token, err := utils.JwtGenerate(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	if err := config.SetRedisValue("Token:"+token, fmt.Sprint(user.ID), 0); err != nil {
		return nil, err
	}
	if err := config.AddRedisSet("Tokens:"+fmt.Sprint(user.ID), token); err != nil {
		return nil, err
	}

	return &LoginInfo{
		Token: token,
		Name:  user.Name,
		Role:  string(user.Role),
	}, nil
}

// Logout destroys the current session.
func Logout(ctx context.Context) (bool, error) {
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok || token == "" {
		return false, utils.NewValidationError("token is required")
	}
	if err := config.RemoveRedisKey("Token:" + token); err != nil {
		return false, err
	}
	if userId, ok := utils.GetUserIdFromContext(ctx); ok {
		if err := config.RemoveRedisSetMember("Tokens:"+fmt.Sprint(userId), token); err != nil {
			return false, err
		}
	}
	return true, nil
}

// UpdateStoreSettings renames the signed-in user's store display name.
func UpdateStoreSettings(ctx context.Context, storeName string) error {
	if strings.TrimSpace(storeName) == "" {
		return utils.NewValidationError("store name is required")
	}
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return utils.NewValidationError("user is required")
	}

	db := config.GetDB()
	return db.WithContext(ctx).Model(&User{}).
		Where("id = ?", userId).
		Update("name", strings.TrimSpace(storeName)).Error
}
