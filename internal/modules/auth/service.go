package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/folio-space/core/internal/models"
	sessionpkg "github.com/folio-space/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Login(ctx context.Context, username, password, ip, ua string) (string, error) {
	var u models.UserModel
	if err := s.db.WithContext(ctx).Select("id, password").
		Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(3 * time.Second)
			return "", errUserNotFound
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		time.Sleep(3 * time.Second)
		return "", errWrongPassword
	}

	token, _, err := sessionpkg.Issue(s.db.WithContext(ctx), u.ID, ip, ua, sessionpkg.DefaultTTL)
	if err != nil {
		return "", err
	}

	now := time.Now()
	_ = s.db.WithContext(ctx).Model(&models.UserModel{}).Where("id = ?", u.ID).
		Updates(map[string]interface{}{"last_login_time": &now, "last_login_ip": ip}).Error
	return token, nil
}

// Register creates the owner account. It refuses once any user row exists.
func (s *Service) Register(ctx context.Context, dto *RegisterDTO) (*models.UserModel, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errOwnerRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := dto.Name
	if name == "" {
		name = dto.Username
	}
	u := models.UserModel{Username: dto.Username, Password: string(hash), Name: name, Mail: dto.Mail}
	return &u, s.db.WithContext(ctx).Create(&u).Error
}

func (s *Service) Owner(ctx context.Context, userID string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.WithContext(ctx).
		Select("id, username, name, mail, last_login_time, last_login_ip, created_at, updated_at").
		Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *Service) ListTokens(ctx context.Context, userID string) ([]models.APIToken, error) {
	var tokens []models.APIToken
	return tokens, s.db.WithContext(ctx).
		Where("user_id = ? AND (expired_at IS NULL OR expired_at > ?)", userID, time.Now()).
		Order("created_at DESC").Find(&tokens).Error
}

func (s *Service) CreateToken(ctx context.Context, userID string, dto *CreateTokenDTO) (*models.APIToken, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	token := "pfo" + hex.EncodeToString(b)

	t := models.APIToken{
		UserID:    userID,
		Token:     token,
		Name:      dto.Name,
		ExpiredAt: dto.Expired,
	}
	return &t, s.db.WithContext(ctx).Create(&t).Error
}

func (s *Service) DeleteToken(ctx context.Context, userID, tokenID string) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", tokenID, userID).
		Delete(&models.APIToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("token not found")
	}
	return nil
}
