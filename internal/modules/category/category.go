package category

import (
	"context"
	"errors"
	"strings"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SaveCategoryDTO struct {
	Name string `json:"name" binding:"required"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) ListAll(ctx context.Context) ([]models.ProjectCategoryModel, error) {
	var items []models.ProjectCategoryModel
	err := s.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (s *Service) Create(ctx context.Context, name string) (*models.ProjectCategoryModel, error) {
	name = strings.TrimSpace(name)
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ProjectCategoryModel{}).
		Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errCategoryExists
	}
	m := models.ProjectCategoryModel{Name: name}
	return &m, s.db.WithContext(ctx).Create(&m).Error
}

func (s *Service) Rename(ctx context.Context, id, name string) (*models.ProjectCategoryModel, error) {
	name = strings.TrimSpace(name)
	var m models.ProjectCategoryModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&m).Update("name", name).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete removes the category row only. Projects keep whatever category
// string they were saved with; the filter list just stops offering it.
func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.ProjectCategoryModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var errCategoryExists = errors.New("category already exists")

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/project-categories")
	g.GET("", h.list)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.rename)
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
	response.OK(c, items)
}

func (h *Handler) create(c *gin.Context) {
	var dto SaveCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.Create(c.Request.Context(), dto.Name)
	if err != nil {
		if errors.Is(err, errCategoryExists) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, m)
}

func (h *Handler) rename(c *gin.Context) {
	var dto SaveCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.Rename(c.Request.Context(), c.Param("id"), dto.Name)
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
