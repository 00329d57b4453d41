package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	appcfg "github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/pagination"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler manages upload, retrieval, and cleanup of stored objects. With S3
// configured, objects go to the bucket; otherwise they land in the local
// static dir and are served back from /files/static.
type Handler struct {
	db        *gorm.DB
	storage   appcfg.StorageConfig
	staticDir string
	s3        *S3Store
}

type storedObject struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

func NewHandler(db *gorm.DB, cfg *appcfg.AppConfig) *Handler {
	h := &Handler{
		db:        db,
		storage:   cfg.Storage,
		staticDir: cfg.StaticDir(),
	}
	if cfg.Storage.S3.Enable {
		if store, err := NewS3Store(cfg.Storage.S3); err == nil {
			h.s3 = store
		}
	}
	return h
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/files")

	g.GET("/static/:name", h.serveStatic)

	a := g.Group("", authMW)
	a.POST("/upload", h.upload)
	a.POST("/batch-upload", h.batchUpload)
	a.POST("/link", h.link)
	a.GET("", h.list)
	a.GET("/orphans/count", h.countOrphans)
	a.POST("/orphans/cleanup", h.cleanupOrphans)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) serveStatic(c *gin.Context) {
	name := safeName(c.Param("name"))
	if name == "" {
		response.NotFound(c)
		return
	}
	path := filepath.Join(h.staticDir, name)
	if _, err := os.Stat(path); err != nil {
		response.NotFound(c)
		return
	}
	c.Header("Cache-Control", "public, max-age=31536000")
	c.File(path)
}

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	obj, err := h.storeOne(c, fileHeader)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, obj)
}

// batchUpload stores every file of the request or none of them. When one file
// fails, already stored objects from the same batch are removed before the
// error goes back, so the gallery never ends up half-filled.
func (h *Handler) batchUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		response.BadRequest(c, "files is required")
		return
	}

	for _, fh := range headers {
		if err := validateFile(fh.Filename, fh.Size, h.storage.AllowedExtensions, h.storage.MaxSizeMB); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	stored := make([]storedObject, 0, len(headers))
	for _, fh := range headers {
		obj, err := h.storeOne(c, fh)
		if err != nil {
			for _, done := range stored {
				h.discardStored(c.Request.Context(), done)
			}
			response.UnprocessableEntity(c, fmt.Sprintf("upload %s failed: %v", fh.Filename, err))
			return
		}
		stored = append(stored, *obj)
	}
	response.Created(c, stored)
}

// link marks uploaded URLs as bound to an entity, keeping them out of the
// orphan sweep. The dashboard calls it right after a successful save.
func (h *Handler) link(c *gin.Context) {
	var body struct {
		URLs []string `json:"urls" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.MarkLinked(c.Request.Context(), body.URLs); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"status": true})
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	tx := h.db.WithContext(c.Request.Context()).
		Model(&models.FileReferenceModel{}).
		Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		tx = tx.Where("status = ?", status)
	}

	var refs []models.FileReferenceModel
	pag, err := pagination.Paginate(tx, q, &refs)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, refs, pag)
}

func (h *Handler) countOrphans(c *gin.Context) {
	var count int64
	err := h.db.WithContext(c.Request.Context()).
		Model(&models.FileReferenceModel{}).
		Where("status = ?", models.FileRefPending).Count(&count).Error
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"count": count})
}

func (h *Handler) cleanupOrphans(c *gin.Context) {
	maxAge := time.Hour
	if raw := c.Query("max_age_minutes"); raw != "" {
		var minutes int
		if _, err := fmt.Sscanf(raw, "%d", &minutes); err == nil && minutes > 0 {
			maxAge = time.Duration(minutes) * time.Minute
		}
	}

	deleted, err := h.SweepOrphans(c.Request.Context(), time.Now().Add(-maxAge))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": deleted})
}

func (h *Handler) delete(c *gin.Context) {
	var ref models.FileReferenceModel
	if err := h.db.WithContext(c.Request.Context()).
		First(&ref, "id = ?", c.Param("id")).Error; err != nil {
		response.NotFound(c)
		return
	}

	h.removeStored(c.Request.Context(), ref.FileName, ref.FileURL)
	if err := h.db.WithContext(c.Request.Context()).Delete(&ref).Error; err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// SweepOrphans removes pending references created before the cutoff together
// with their stored objects. Also run periodically from the scheduler.
func (h *Handler) SweepOrphans(ctx context.Context, cutoff time.Time) (int, error) {
	var refs []models.FileReferenceModel
	if err := h.db.WithContext(ctx).
		Where("status = ? AND created_at <= ?", models.FileRefPending, cutoff).
		Find(&refs).Error; err != nil {
		return 0, err
	}

	deleted := 0
	for _, ref := range refs {
		h.removeStored(ctx, ref.FileName, ref.FileURL)
		if err := h.db.WithContext(ctx).Delete(&models.FileReferenceModel{}, "id = ?", ref.ID).Error; err == nil {
			deleted++
		}
	}
	return deleted, nil
}

// MarkLinked flips references for the given URLs out of pending so the sweep
// leaves them alone. Called when an entity save binds an uploaded URL.
func (h *Handler) MarkLinked(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	return h.db.WithContext(ctx).
		Model(&models.FileReferenceModel{}).
		Where("file_url IN ? AND status = ?", urls, models.FileRefPending).
		Update("status", models.FileRefLinked).Error
}

func (h *Handler) storeOne(c *gin.Context, fh *multipart.FileHeader) (*storedObject, error) {
	if err := validateFile(fh.Filename, fh.Size, h.storage.AllowedExtensions, h.storage.MaxSizeMB); err != nil {
		return nil, err
	}

	name := buildFileName(fh.Filename)

	var fileURL string
	if h.s3 != nil {
		src, err := fh.Open()
		if err != nil {
			return nil, err
		}
		payload, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, err
		}
		now := time.Now()
		key := fmt.Sprintf("uploads/%s/%s/%s", now.Format("2006"), now.Format("01"), name)
		contentType := detectContentType(fh.Filename, payload, fh.Header.Get("Content-Type"))
		fileURL, err = h.s3.Put(c.Request.Context(), key, payload, contentType)
		if err != nil {
			return nil, err
		}
	} else {
		if err := os.MkdirAll(h.staticDir, 0o755); err != nil {
			return nil, err
		}
		if err := c.SaveUploadedFile(fh, filepath.Join(h.staticDir, name)); err != nil {
			return nil, err
		}
		fileURL = "/api/v1/files/static/" + name
	}

	// Without the reference row the object is untrackable: it would never show
	// up in the file list and the orphan sweep could not reclaim it. Treat the
	// bookkeeping write as part of the upload.
	if err := h.db.WithContext(c.Request.Context()).Create(&models.FileReferenceModel{
		FileName: name,
		FileURL:  fileURL,
		Status:   models.FileRefPending,
	}).Error; err != nil {
		h.removeStored(c.Request.Context(), name, fileURL)
		return nil, fmt.Errorf("record upload: %w", err)
	}

	return &storedObject{Name: name, URL: fileURL, Size: fh.Size}, nil
}

// discardStored undoes a completed storeOne: the object and its reference row
// both go away, as if the file had never been uploaded.
func (h *Handler) discardStored(ctx context.Context, obj storedObject) {
	h.removeStored(ctx, obj.Name, obj.URL)
	_ = h.db.WithContext(ctx).
		Delete(&models.FileReferenceModel{}, "file_url = ?", obj.URL).Error
}

func (h *Handler) removeStored(ctx context.Context, name, fileURL string) {
	if h.s3 != nil {
		if key := h.s3.KeyFromURL(fileURL); key != "" {
			_ = h.s3.Remove(ctx, key)
		}
		return
	}
	if name = safeName(name); name != "" {
		_ = os.Remove(filepath.Join(h.staticDir, name))
	}
}
