package timeline

import (
	"context"
	"errors"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SaveEntryDTO struct {
	Type        string `json:"type" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

type UpdateEntryDTO struct {
	Type        *string `json:"type"`
	Title       *string `json:"title"`
	Institution *string `json:"institution"`
	Period      *string `json:"period"`
	Description *string `json:"description"`
	OrderIndex  *int    `json:"order_index"`
}

func validType(t string) bool {
	return t == models.TimelineExperience || t == models.TimelineEducation
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// List returns timeline entries, optionally filtered by type, in the order
// the public page renders them.
func (s *Service) List(ctx context.Context, entryType string) ([]models.TimelineModel, error) {
	tx := s.db.WithContext(ctx)
	if entryType != "" {
		tx = tx.Where("type = ?", entryType)
	}
	var items []models.TimelineModel
	err := tx.Order("order_index ASC, created_at ASC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.TimelineModel, error) {
	var m models.TimelineModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, dto *SaveEntryDTO) (*models.TimelineModel, error) {
	m := models.TimelineModel{
		Type: dto.Type, Title: dto.Title, Institution: dto.Institution,
		Period: dto.Period, Description: dto.Description, OrderIndex: dto.OrderIndex,
	}
	return &m, s.db.WithContext(ctx).Create(&m).Error
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateEntryDTO) (*models.TimelineModel, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}
	updates := map[string]interface{}{}
	if dto.Type != nil {
		updates["type"] = *dto.Type
	}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Institution != nil {
		updates["institution"] = *dto.Institution
	}
	if dto.Period != nil {
		updates["period"] = *dto.Period
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.OrderIndex != nil {
		updates["order_index"] = *dto.OrderIndex
	}
	return m, s.db.WithContext(ctx).Model(m).Updates(updates).Error
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.TimelineModel{}, "id = ?", id)
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
	g := rg.Group("/timeline")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) get(c *gin.Context) {
	m, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if m == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, m)
}

func (h *Handler) list(c *gin.Context) {
	entryType := c.Query("type")
	if entryType != "" && !validType(entryType) {
		response.BadRequest(c, "type must be experience or education")
		return
	}
	items, err := h.svc.List(c.Request.Context(), entryType)
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

func (h *Handler) create(c *gin.Context) {
	var dto SaveEntryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if !validType(dto.Type) {
		response.UnprocessableEntity(c, "type must be experience or education")
		return
	}
	m, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, m)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateEntryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.Type != nil && !validType(*dto.Type) {
		response.UnprocessableEntity(c, "type must be experience or education")
		return
	}
	m, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if m == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, m)
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
