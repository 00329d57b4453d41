package option

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/folio-space/core/internal/models"
	redispkg "github.com/folio-space/core/internal/pkg/redis"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const likeCounterName = "like_this"

type Service struct {
	db  *gorm.DB
	rdb *redispkg.Client
}

func NewService(db *gorm.DB, rdb *redispkg.Client) *Service {
	return &Service{db: db, rdb: rdb}
}

func (s *Service) get(ctx context.Context, name string) (*models.OptionModel, error) {
	var m models.OptionModel
	if err := s.db.WithContext(ctx).First(&m, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Service) LikeCount(ctx context.Context) (int64, error) {
	m, err := s.get(ctx, likeCounterName)
	if err != nil || m == nil {
		return 0, err
	}
	n, _ := strconv.ParseInt(m.Value, 10, 64)
	return n, nil
}

// Like increments the counter once per IP per day. The redis guard key makes
// repeat clicks from the same visitor a no-op until it expires.
func (s *Service) Like(ctx context.Context, ip string) (int64, bool, error) {
	if s.rdb != nil && ip != "" {
		key := fmt.Sprintf("folio:like_this:%s:%s", time.Now().Format("2006-01-02"), ip)
		fresh, err := s.rdb.Raw().SetNX(ctx, key, 1, 24*time.Hour).Result()
		if err == nil && !fresh {
			count, err := s.LikeCount(ctx)
			return count, false, err
		}
	}

	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.OptionModel
		err := tx.First(&m, "name = ?", likeCounterName).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m = models.OptionModel{Name: likeCounterName, Value: "1"}
			count = 1
			return tx.Create(&m).Error
		}
		if err != nil {
			return err
		}
		n, _ := strconv.ParseInt(m.Value, 10, 64)
		count = n + 1
		return tx.Model(&m).Update("value", strconv.FormatInt(count, 10)).Error
	})
	return count, err == nil, err
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, _ gin.HandlerFunc) {
	rg.GET("/like_this", h.count)
	rg.POST("/like_this", h.like)
}

func (h *Handler) count(c *gin.Context) {
	count, err := h.svc.LikeCount(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"count": count})
}

func (h *Handler) like(c *gin.Context) {
	count, counted, err := h.svc.Like(c.Request.Context(), c.ClientIP())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"count": count, "counted": counted})
}
