package aggregate

import (
	"context"
	"errors"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Payload is the single-request bootstrap the public site loads on first
// paint instead of a fetch per section.
type SkillGroup struct {
	Category string              `json:"category"`
	Skills   []models.SkillModel `json:"skills"`
}

type Payload struct {
	Profile      *models.ProfileModel          `json:"profile"`
	Skills       []models.SkillModel           `json:"skills"`
	SkillGroups  []SkillGroup                  `json:"skill_groups"`
	Projects     []models.ProjectModel         `json:"projects"`
	Categories   []models.ProjectCategoryModel `json:"project_categories"`
	Services     []models.OfferingModel        `json:"services"`
	WhyChooseMe  []models.WhyChooseMeModel     `json:"why_choose_me"`
	Timeline     []models.TimelineModel        `json:"timeline"`
	Testimonials []models.TestimonialModel     `json:"testimonials"`
	SocialLinks  []models.SocialLinkModel      `json:"social_links"`
	RecentBlogs  []models.BlogPostModel        `json:"recent_blogs"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Build assembles the payload. A section whose table does not exist yet comes
// back empty rather than failing the whole bootstrap.
func (s *Service) Build(ctx context.Context) (*Payload, error) {
	db := s.db.WithContext(ctx)
	p := &Payload{
		Skills:       []models.SkillModel{},
		Projects:     []models.ProjectModel{},
		Categories:   []models.ProjectCategoryModel{},
		Services:     []models.OfferingModel{},
		WhyChooseMe:  []models.WhyChooseMeModel{},
		Timeline:     []models.TimelineModel{},
		Testimonials: []models.TestimonialModel{},
		SocialLinks:  []models.SocialLinkModel{},
		RecentBlogs:  []models.BlogPostModel{},
	}

	var profile models.ProfileModel
	err := db.Order("created_at ASC").First(&profile).Error
	switch {
	case err == nil:
		p.Profile = &profile
	case errors.Is(err, gorm.ErrRecordNotFound) || database.IsMissingTable(err):
	default:
		return nil, err
	}

	steps := []func() error{
		func() error { return db.Order("name ASC").Find(&p.Skills).Error },
		func() error {
			return db.Preload("Gallery", func(g *gorm.DB) *gorm.DB { return g.Order("created_at ASC") }).
				Order("created_at DESC").Find(&p.Projects).Error
		},
		func() error { return db.Order("name ASC").Find(&p.Categories).Error },
		func() error { return db.Order("title ASC").Find(&p.Services).Error },
		func() error { return db.Order("order_index ASC, created_at ASC").Find(&p.WhyChooseMe).Error },
		func() error { return db.Order("order_index ASC, created_at ASC").Find(&p.Timeline).Error },
		func() error { return db.Order("created_at DESC").Find(&p.Testimonials).Error },
		func() error { return db.Order("created_at ASC").Find(&p.SocialLinks).Error },
		func() error { return db.Order("created_at DESC").Limit(3).Find(&p.RecentBlogs).Error },
	}
	for _, step := range steps {
		if err := step(); err != nil && !database.IsMissingTable(err) {
			return nil, err
		}
	}
	p.SkillGroups = groupSkills(p.Skills)
	return p, nil
}

// groupSkills buckets by category, categories in first-seen order, uncategorized
// skills under "Other".
func groupSkills(items []models.SkillModel) []SkillGroup {
	index := map[string]int{}
	groups := []SkillGroup{}
	for _, item := range items {
		cat := item.Category
		if cat == "" {
			cat = "Other"
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, SkillGroup{Category: cat, Skills: []models.SkillModel{}})
		}
		groups[i].Skills = append(groups[i].Skills, item)
	}
	return groups
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, _ gin.HandlerFunc) {
	rg.GET("/aggregate", h.get)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Build(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, p)
}
