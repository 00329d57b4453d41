package profile

import (
	"context"
	"errors"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SaveProfileDTO struct {
	Name          string `json:"name"`
	Title         string `json:"title"`
	Bio           string `json:"bio"`
	AboutHeadline string `json:"about_headline"`
	AvatarURL     string `json:"avatar_url"`
	AboutImageURL string `json:"about_image_url"`
	ResumeURL     string `json:"resume_url"`
	VideoURL      string `json:"video_url"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Location      string `json:"location"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Get returns the profile row, or nil when none has been saved yet.
func (s *Service) Get(ctx context.Context) (*models.ProfileModel, error) {
	var p models.ProfileModel
	if err := s.db.WithContext(ctx).Order("created_at ASC").First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Save creates the row on first call and updates it in place afterwards, so
// the table never grows past one row.
func (s *Service) Save(ctx context.Context, dto *SaveProfileDTO) (*models.ProfileModel, error) {
	existing, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"name":            dto.Name,
		"title":           dto.Title,
		"bio":             dto.Bio,
		"about_headline":  dto.AboutHeadline,
		"avatar_url":      dto.AvatarURL,
		"about_image_url": dto.AboutImageURL,
		"resume_url":      dto.ResumeURL,
		"video_url":       dto.VideoURL,
		"email":           dto.Email,
		"phone":           dto.Phone,
		"location":        dto.Location,
	}

	if existing == nil {
		p := models.ProfileModel{
			Name: dto.Name, Title: dto.Title, Bio: dto.Bio,
			AboutHeadline: dto.AboutHeadline,
			AvatarURL:     dto.AvatarURL, AboutImageURL: dto.AboutImageURL,
			ResumeURL: dto.ResumeURL, VideoURL: dto.VideoURL,
			Email: dto.Email, Phone: dto.Phone, Location: dto.Location,
		}
		return &p, s.db.WithContext(ctx).Create(&p).Error
	}

	if err := s.db.WithContext(ctx).Model(existing).Updates(fields).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx)
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/profile")
	g.GET("", h.get)
	g.PUT("", authMW, h.save)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context())
	if err != nil {
		if database.IsMissingTable(err) {
			response.SchemaMissing(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) save(c *gin.Context) {
	var dto SaveProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Save(c.Request.Context(), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, p)
}
