package offering

import (
	"context"
	"errors"
	"time"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SaveOfferingDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Features    string `json:"features"`
}

type UpdateOfferingDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Features    *string `json:"features"`
}

type offeringResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Features    string    `json:"features"`
	FeatureList []string  `json:"feature_list"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(m *models.OfferingModel) offeringResponse {
	return offeringResponse{
		ID: m.ID, Title: m.Title, Description: m.Description, Icon: m.Icon,
		Features:    m.Features,
		FeatureList: models.SplitCommaList(m.Features),
		CreatedAt:   m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) ListAll(ctx context.Context) ([]models.OfferingModel, error) {
	var items []models.OfferingModel
	err := s.db.WithContext(ctx).Order("title ASC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.OfferingModel, error) {
	var m models.OfferingModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, dto *SaveOfferingDTO) (*models.OfferingModel, error) {
	m := models.OfferingModel{
		Title: dto.Title, Description: dto.Description,
		Icon: dto.Icon, Features: dto.Features,
	}
	return &m, s.db.WithContext(ctx).Create(&m).Error
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateOfferingDTO) (*models.OfferingModel, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}
	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Icon != nil {
		updates["icon"] = *dto.Icon
	}
	if dto.Features != nil {
		updates["features"] = *dto.Features
	}
	return m, s.db.WithContext(ctx).Model(m).Updates(updates).Error
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.OfferingModel{}, "id = ?", id)
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
	g := rg.Group("/services")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
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
	out := make([]offeringResponse, len(items))
	for i, m := range items {
		out[i] = toResponse(&m)
	}
	response.OK(c, out)
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
	response.OK(c, toResponse(m))
}

func (h *Handler) create(c *gin.Context) {
	var dto SaveOfferingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(m))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateOfferingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
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
	response.OK(c, toResponse(m))
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
