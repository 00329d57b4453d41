package project

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TechStackInput accepts either a JSON array or the comma-separated string the
// dashboard's free-text field submits.
type TechStackInput []string

func (t *TechStackInput) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = arr
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = models.SplitCommaList(raw)
	return nil
}

type CreateProjectDTO struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	ImageURL    string         `json:"image_url"`
	VideoURL    string         `json:"video_url"`
	GalleryType string         `json:"gallery_type"`
	TechStack   TechStackInput `json:"tech_stack"`
	LiveURL     string         `json:"live_url"`
	GithubURL   string         `json:"github_url"`
	Featured    bool           `json:"featured"`
	Gallery     []string       `json:"gallery"`
}

type UpdateProjectDTO struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	ImageURL    *string         `json:"image_url"`
	VideoURL    *string         `json:"video_url"`
	GalleryType *string         `json:"gallery_type"`
	TechStack   *TechStackInput `json:"tech_stack"`
	LiveURL     *string         `json:"live_url"`
	GithubURL   *string         `json:"github_url"`
	Featured    *bool           `json:"featured"`
	Gallery     []string        `json:"gallery"`
}

type ListQuery struct {
	Category string
	Featured *bool
}

type projectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	VideoURL    string    `json:"video_url"`
	GalleryType string    `json:"gallery_type"`
	TechStack   []string  `json:"tech_stack"`
	LiveURL     string    `json:"live_url"`
	GithubURL   string    `json:"github_url"`
	Featured    bool      `json:"featured"`
	Gallery     []string  `json:"gallery"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(p *models.ProjectModel) projectResponse {
	stack := []string(p.TechStack)
	if stack == nil {
		stack = []string{}
	}
	gallery := make([]string, 0, len(p.Gallery))
	for _, img := range p.Gallery {
		gallery = append(gallery, img.ImageURL)
	}
	galleryType := p.GalleryType
	if galleryType == "" {
		galleryType = models.GalleryTypeImage
	}
	return projectResponse{
		ID: p.ID, Title: p.Title, Description: p.Description, Category: p.Category,
		ImageURL: p.ImageURL, VideoURL: p.VideoURL, GalleryType: galleryType,
		TechStack: stack, LiveURL: p.LiveURL, GithubURL: p.GithubURL,
		Featured: p.Featured, Gallery: gallery,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(ctx context.Context, q ListQuery) ([]models.ProjectModel, error) {
	tx := s.db.WithContext(ctx).Preload("Gallery", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Featured != nil {
		tx = tx.Where("featured = ?", *q.Featured)
	}
	var items []models.ProjectModel
	err := tx.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.ProjectModel, error) {
	var p models.ProjectModel
	err := s.db.WithContext(ctx).Preload("Gallery", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts the project and its gallery rows in one transaction, so a
// failed gallery insert never leaves a half-created project behind.
func (s *Service) Create(ctx context.Context, dto *CreateProjectDTO) (*models.ProjectModel, error) {
	galleryType := dto.GalleryType
	if galleryType == "" {
		galleryType = models.GalleryTypeImage
	}
	p := models.ProjectModel{
		Title: dto.Title, Description: dto.Description, Category: dto.Category,
		ImageURL: dto.ImageURL, VideoURL: dto.VideoURL, GalleryType: galleryType,
		TechStack: models.StringArray(dto.TechStack),
		LiveURL:   dto.LiveURL, GithubURL: dto.GithubURL, Featured: dto.Featured,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		return insertGallery(tx, p.ID, dto.Gallery)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, p.ID)
}

// Update applies partial field updates and, when a gallery is submitted,
// replaces the gallery set atomically. A nil gallery leaves existing rows
// untouched; an empty slice clears them.
func (s *Service) Update(ctx context.Context, id string, dto *UpdateProjectDTO) (*models.ProjectModel, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil || existing == nil {
		return existing, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Category != nil {
		updates["category"] = *dto.Category
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if dto.VideoURL != nil {
		updates["video_url"] = *dto.VideoURL
	}
	if dto.GalleryType != nil {
		updates["gallery_type"] = *dto.GalleryType
	}
	if dto.TechStack != nil {
		updates["tech_stack"] = models.StringArray(*dto.TechStack)
	}
	if dto.LiveURL != nil {
		updates["live_url"] = *dto.LiveURL
	}
	if dto.GithubURL != nil {
		updates["github_url"] = *dto.GithubURL
	}
	if dto.Featured != nil {
		updates["featured"] = *dto.Featured
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.ProjectModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if dto.Gallery != nil {
			if err := tx.Where("project_id = ?", id).Delete(&models.ProjectImageModel{}).Error; err != nil {
				return err
			}
			return insertGallery(tx, id, dto.Gallery)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes the project together with its gallery rows.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.ProjectModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("project_id = ?", id).Delete(&models.ProjectImageModel{}).Error
	})
}

func insertGallery(tx *gorm.DB, projectID string, urls []string) error {
	for _, url := range urls {
		if url == "" {
			continue
		}
		img := models.ProjectImageModel{ProjectID: projectID, ImageURL: url}
		if err := tx.Create(&img).Error; err != nil {
			return err
		}
	}
	return nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/projects")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{Category: c.Query("category")}
	switch c.Query("featured") {
	case "true", "1":
		v := true
		q.Featured = &v
	case "false", "0":
		v := false
		q.Featured = &v
	}

	items, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		if database.IsMissingTable(err) {
			response.SchemaMissing(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	out := make([]projectResponse, len(items))
	for i, p := range items {
		out[i] = toResponse(&p)
	}
	response.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(p))
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.GalleryType != "" && dto.GalleryType != models.GalleryTypeImage && dto.GalleryType != models.GalleryTypeVideo {
		response.UnprocessableEntity(c, "gallery_type must be image or video")
		return
	}
	p, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(p))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.GalleryType != nil && *dto.GalleryType != models.GalleryTypeImage && *dto.GalleryType != models.GalleryTypeVideo {
		response.UnprocessableEntity(c, "gallery_type must be image or video")
		return
	}
	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(p))
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
