package message

import (
	"context"
	"errors"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubmitMessageDTO struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Submit(ctx context.Context, dto *SubmitMessageDTO) (*models.ContactMessageModel, error) {
	m := models.ContactMessageModel{
		Name: dto.Name, Email: dto.Email, Subject: dto.Subject, Message: dto.Message,
	}
	return &m, s.db.WithContext(ctx).Create(&m).Error
}

func (s *Service) ListAll(ctx context.Context) ([]models.ContactMessageModel, error) {
	var items []models.ContactMessageModel
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) UnreadCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ContactMessageModel{}).
		Where("is_read = ?", false).Count(&count).Error
	return count, err
}

func (s *Service) MarkRead(ctx context.Context, id string, read bool) error {
	res := s.db.WithContext(ctx).Model(&models.ContactMessageModel{}).
		Where("id = ?", id).Update("is_read", read)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.ContactMessageModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/messages")
	g.POST("", h.submit)

	a := g.Group("", authMW)
	a.GET("", h.list)
	a.GET("/unread-count", h.unreadCount)
	a.PATCH("/:id/read", h.markRead)
	a.PATCH("/:id/unread", h.markUnread)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitMessageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.Submit(c.Request.Context(), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, m)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		if database.IsMissingTable(err) {
			response.SchemaMissing(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) unreadCount(c *gin.Context) {
	count, err := h.svc.UnreadCount(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"count": count})
}

func (h *Handler) markRead(c *gin.Context)   { h.setRead(c, true) }
func (h *Handler) markUnread(c *gin.Context) { h.setRead(c, false) }

func (h *Handler) setRead(c *gin.Context, read bool) {
	if err := h.svc.MarkRead(c.Request.Context(), c.Param("id"), read); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"status": true})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
