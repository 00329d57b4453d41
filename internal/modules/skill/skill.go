package skill

import (
	"context"
	"errors"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateSkillDTO struct {
	Name       string `json:"name" binding:"required"`
	Category   string `json:"category"`
	Percentage int    `json:"percentage" binding:"min=0,max=100"`
	Icon       string `json:"icon"`
	IconURL    string `json:"icon_url"`
}

type UpdateSkillDTO struct {
	Name       *string `json:"name"`
	Category   *string `json:"category"`
	Percentage *int    `json:"percentage"`
	Icon       *string `json:"icon"`
	IconURL    *string `json:"icon_url"`
}

type skillGroup struct {
	Category string              `json:"category"`
	Skills   []models.SkillModel `json:"skills"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) ListAll(ctx context.Context) ([]models.SkillModel, error) {
	var items []models.SkillModel
	err := s.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

// ListGrouped buckets skills by category, categories in first-seen name order.
func (s *Service) ListGrouped(ctx context.Context) ([]skillGroup, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	index := map[string]int{}
	groups := []skillGroup{}
	for _, item := range items {
		cat := item.Category
		if cat == "" {
			cat = "Other"
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, skillGroup{Category: cat, Skills: []models.SkillModel{}})
		}
		groups[i].Skills = append(groups[i].Skills, item)
	}
	return groups, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.SkillModel, error) {
	var m models.SkillModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateSkillDTO) (*models.SkillModel, error) {
	m := models.SkillModel{
		Name: dto.Name, Category: dto.Category, Percentage: dto.Percentage,
		Icon: dto.Icon, IconURL: dto.IconURL,
	}
	return &m, s.db.WithContext(ctx).Create(&m).Error
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateSkillDTO) (*models.SkillModel, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Category != nil {
		updates["category"] = *dto.Category
	}
	if dto.Percentage != nil {
		updates["percentage"] = *dto.Percentage
	}
	if dto.Icon != nil {
		updates["icon"] = *dto.Icon
	}
	if dto.IconURL != nil {
		updates["icon_url"] = *dto.IconURL
	}
	return m, s.db.WithContext(ctx).Model(m).Updates(updates).Error
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.SkillModel{}, "id = ?", id)
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
	g := rg.Group("/skills")
	g.GET("", h.list)
	g.GET("/grouped", h.listGrouped)
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
	response.OK(c, items)
}

func (h *Handler) listGrouped(c *gin.Context) {
	groups, err := h.svc.ListGrouped(c.Request.Context())
	if err != nil {
		if database.IsMissingTable(err) {
			response.SchemaMissing(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, groups)
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

func (h *Handler) create(c *gin.Context) {
	var dto CreateSkillDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
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
	var dto UpdateSkillDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.Percentage != nil && (*dto.Percentage < 0 || *dto.Percentage > 100) {
		response.UnprocessableEntity(c, "percentage must be between 0 and 100")
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
