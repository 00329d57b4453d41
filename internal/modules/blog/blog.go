package blog

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/pagination"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Strikethrough,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// RenderHTML converts markdown content to HTML. On a render failure the raw
// markdown comes back so the post still displays.
func RenderHTML(markdown string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(markdown), &buf); err != nil {
		return markdown
	}
	return buf.String()
}

type SavePostDTO struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Category string `json:"category"`
	ReadTime string `json:"read_time"`
	ImageURL string `json:"image_url"`
}

type UpdatePostDTO struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	ReadTime *string `json:"read_time"`
	ImageURL *string `json:"image_url"`
}

type postResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	Category    string    `json:"category"`
	ReadTime    string    `json:"read_time"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(m *models.BlogPostModel, withHTML bool) postResponse {
	out := postResponse{
		ID: m.ID, Title: m.Title, Content: m.Content,
		Category: m.Category, ReadTime: m.ReadTime, ImageURL: m.ImageURL,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
	if withHTML {
		out.ContentHTML = RenderHTML(m.Content)
	}
	return out
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(ctx context.Context, q pagination.Query, category string) ([]models.BlogPostModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.BlogPostModel{})
	if category != "" {
		tx = tx.Where("category = ?", category)
	}
	tx = tx.Order("created_at DESC")
	var items []models.BlogPostModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) ListAll(ctx context.Context) ([]models.BlogPostModel, error) {
	var items []models.BlogPostModel
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.BlogPostModel, error) {
	var m models.BlogPostModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, dto *SavePostDTO) (*models.BlogPostModel, error) {
	m := models.BlogPostModel{
		Title: dto.Title, Content: dto.Content, Category: dto.Category,
		ReadTime: dto.ReadTime, ImageURL: dto.ImageURL,
	}
	return &m, s.db.WithContext(ctx).Create(&m).Error
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdatePostDTO) (*models.BlogPostModel, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}
	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.Category != nil {
		updates["category"] = *dto.Category
	}
	if dto.ReadTime != nil {
		updates["read_time"] = *dto.ReadTime
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	return m, s.db.WithContext(ctx).Model(m).Updates(updates).Error
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.BlogPostModel{}, "id = ?", id)
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
	g := rg.Group("/blogs")
	g.GET("", h.list)
	g.GET("/all", h.listAll)
	g.GET("/:id", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(c.Request.Context(), q, c.Query("category"))
	if err != nil {
		if database.IsMissingTable(err) {
			response.SchemaMissing(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	out := make([]postResponse, len(items))
	for i, m := range items {
		out[i] = toResponse(&m, false)
	}
	response.Paged(c, out, pag)
}

func (h *Handler) listAll(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		if database.IsMissingTable(err) {
			response.SchemaMissing(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	out := make([]postResponse, len(items))
	for i, m := range items {
		out[i] = toResponse(&m, false)
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
	response.OK(c, toResponse(m, true))
}

func (h *Handler) create(c *gin.Context) {
	var dto SavePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(m, false))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdatePostDTO
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
	response.OK(c, toResponse(m, false))
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
