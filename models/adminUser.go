package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminDisabled      = errors.New("admin user is disabled")
)

type AdminUser struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewAdminUser struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInfo struct {
	Token string     `json:"access_token"`
	Type  string     `json:"token_type"`
	Admin *AdminUser `json:"admin"`
}

func CreateAdminUser(ctx context.Context, input *NewAdminUser) (*AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := utils.ValidateUnique[AdminUser](ctx, "email", email, 0); err != nil {
		return nil, err
	}
	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	admin := AdminUser{
		Email:    email,
		Name:     input.Name,
		Password: hashed,
		IsActive: true,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, utils.StoreError(err)
	}
	return &admin, nil
}

// Login checks the credentials and issues a JWT for the admin console.
func Login(ctx context.Context, email string, password string) (*LoginInfo, error) {
	db := config.GetDB()

	var admin AdminUser
	err := db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).Take(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePassword(admin.Password, password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, ErrAdminDisabled
	}

	token, err := utils.JwtGenerate(admin.ID, admin.Email, utils.AdminRole)
	if err != nil {
		return nil, err
	}
	return &LoginInfo{Token: token, Type: "bearer", Admin: &admin}, nil
}
