package app

import (
	"net/http"
	"time"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/modules/aggregate"
	"github.com/folio-space/core/internal/modules/auth"
	"github.com/folio-space/core/internal/modules/blog"
	"github.com/folio-space/core/internal/modules/category"
	"github.com/folio-space/core/internal/modules/message"
	"github.com/folio-space/core/internal/modules/offering"
	"github.com/folio-space/core/internal/modules/option"
	"github.com/folio-space/core/internal/modules/profile"
	"github.com/folio-space/core/internal/modules/project"
	"github.com/folio-space/core/internal/modules/skill"
	"github.com/folio-space/core/internal/modules/social"
	"github.com/folio-space/core/internal/modules/storage/file"
	"github.com/folio-space/core/internal/modules/system/health"
	"github.com/folio-space/core/internal/modules/system/tasks"
	"github.com/folio-space/core/internal/modules/testimonial"
	"github.com/folio-space/core/internal/modules/timeline"
	"github.com/folio-space/core/internal/modules/why"
	pkgredis "github.com/folio-space/core/internal/pkg/redis"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":     "folio-core",
		"version":  "1.0.0",
		"homepage": "https://github.com/folio-space/core",
	}

	// Auth resolves before the limiter so owner traffic is never throttled.
	r.Use(middleware.OptionalAuth(db))
	r.Use(middleware.RateLimit(rc.Raw(), a.logger))
	r.Use(middleware.Idempotence(rc.Raw()))

	api := r.Group(apiPrefix)
	api.Use(middleware.HTTPCache(rc.Raw(), middleware.HTTPCacheOptions{
		TTL:       15 * time.Second,
		Disable:   a.cfg.IsDev(),
		SkipPaths: httpCacheSkipPaths(),
	}))

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	api.GET("/clean_cache", authMW, func(c *gin.Context) {
		deleted, err := middleware.PurgeHTTPCache(c.Request.Context(), rc.Raw())
		if err != nil {
			response.InternalError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": deleted})
	})

	health.RegisterRoutes(api, db, rc, authMW)

	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)

	profile.NewHandler(profile.NewService(db)).RegisterRoutes(api, authMW)
	skill.NewHandler(skill.NewService(db)).RegisterRoutes(api, authMW)
	project.NewHandler(project.NewService(db)).RegisterRoutes(api, authMW)
	category.NewHandler(category.NewService(db)).RegisterRoutes(api, authMW)
	offering.NewHandler(offering.NewService(db)).RegisterRoutes(api, authMW)
	why.NewHandler(why.NewService(db)).RegisterRoutes(api, authMW)
	timeline.NewHandler(timeline.NewService(db)).RegisterRoutes(api, authMW)
	testimonial.NewHandler(testimonial.NewService(db)).RegisterRoutes(api, authMW)
	social.NewHandler(social.NewService(db)).RegisterRoutes(api, authMW)
	blog.NewHandler(blog.NewService(db)).RegisterRoutes(api, authMW)
	message.NewHandler(message.NewService(db)).RegisterRoutes(api, authMW)

	aggregate.NewHandler(aggregate.NewService(db)).RegisterRoutes(api, authMW)
	option.NewHandler(option.NewService(db, rc)).RegisterRoutes(api, authMW)

	a.files = file.NewHandler(db, a.cfg)
	a.files.RegisterRoutes(api, authMW)

	tasks.NewHandler(a.sched).RegisterRoutes(api, authMW)
}

func httpCacheSkipPaths() []string {
	return []string{
		apiPrefix + "/like_this",
		apiPrefix + "/clean_cache",
		apiPrefix + "/health",
		apiPrefix + "/ping",
		apiPrefix + "/files/static/*",
	}
}
