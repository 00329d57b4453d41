package health

import (
	"net/http"
	"runtime"
	"time"

	pkgredis "github.com/folio-space/core/internal/pkg/redis"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var processStart = time.Now()

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, rc *pkgredis.Client, authMW gin.HandlerFunc) {
	rg.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		dbOK := err == nil && sqlDB.PingContext(c.Request.Context()) == nil

		redisOK := true
		if rc != nil {
			redisOK = rc.Raw().Ping(c.Request.Context()).Err() == nil
		}

		status := "ok"
		code := http.StatusOK
		if !dbOK || !redisOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": dbOK,
			"redis":    redisOK,
		})
	})

	rg.GET("/health/system", authMW, func(c *gin.Context) {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		response.OK(c, gin.H{
			"uptime_ms":  time.Since(processStart).Milliseconds(),
			"goroutines": runtime.NumGoroutine(),
			"heap_bytes": mem.HeapAlloc,
			"go_version": runtime.Version(),
		})
	})
}
