// Package api contains all endpoints available
package api

import (
	"healthwallet/api/middleware"
	"healthwallet/api/pkg/security"
	"healthwallet/api/storage"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Argon  *security.ArgonHash
	Store  storage.Store
}

// New wires the router around an already opened database and file
// store so that the lifecycle of both stays with the caller
func New(db *gorm.DB, st storage.Store) (*API, error) {
	a := &API{
		DB:    db,
		Argon: security.New(),
		Store: st,
	}

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware()
	authLimit := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 10,
		Burst:             30,
	})
	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a JWT token
		main.HEAD("/validate", jwt, a.Validate)
	}

	auth := main.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/register	-> Registers a new user
		auth.POST("/register", authLimit, a.UserRegister)

		// POST /api/auth/login 	-> Logs in a user and returns a JWT token
		auth.POST("/login", authLimit, a.UserLogin)

		// GET /api/auth/me		-> Returns the current user's profile
		auth.GET("/me", jwt, a.UserFetch)

		// DELETE /api/auth/me 		-> Deletes the current user and everything they own
		auth.DELETE("/me", jwt, a.UserDelete)
	}

	reports := main.Group("/reports", jwt)
	{
		// POST /api/reports		-> Uploads a new report (multipart: file + metadata)
		reports.POST("", middleware.BodySizeLimiter(maxUploadSize+1<<20), a.ReportUpload)

		// GET /api/reports		-> Lists the caller's reports with optional filters
		reports.GET("", a.ReportFetchBulk)

		// GET /api/reports/shared	-> Lists reports shared with the caller
		reports.GET("/shared", a.ReportFetchShared)

		// GET /api/reports/:id		-> Returns one report (owner or grant recipient)
		reports.GET("/:id", a.ReportFetch)

		// GET /api/reports/:id/download -> Streams the stored file
		reports.GET("/:id/download", a.ReportDownload)

		// DELETE /api/reports/:id	-> Deletes a report owned by the caller
		reports.DELETE("/:id", a.ReportDelete)
	}

	vitals := main.Group("/vitals", jwt, middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/vitals/types	-> Returns the fixed type -> unit map
		vitals.GET("/types", cacheFor(60), a.VitalTypes)

		// GET /api/vitals/trends	-> Aggregates + chart series over a trailing window
		vitals.GET("/trends", a.VitalTrends)

		// POST /api/vitals		-> Records a new vital reading
		vitals.POST("", a.VitalCreate)

		// GET /api/vitals		-> Lists the caller's readings
		vitals.GET("", a.VitalFetchBulk)

		// GET /api/vitals/:id		-> Returns one reading
		vitals.GET("/:id", a.VitalFetch)

		// PUT /api/vitals/:id		-> Partially updates a reading
		vitals.PUT("/:id", a.VitalUpdate)

		// DELETE /api/vitals/:id	-> Deletes a reading
		vitals.DELETE("/:id", a.VitalDelete)
	}

	sharing := main.Group("/sharing", jwt, middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/sharing		-> Creates a grant for one of the caller's reports
		sharing.POST("", a.ShareCreate)

		// GET /api/sharing/report/:reportId -> Lists grants on one report (owner only)
		sharing.GET("/report/:reportId", a.ShareFetchForReport)

		// GET /api/sharing/by-me	-> Grants the caller created
		sharing.GET("/by-me", a.ShareFetchByMe)

		// GET /api/sharing/with-me	-> Grants pointing at the caller's email
		sharing.GET("/with-me", a.ShareFetchWithMe)

		// PUT /api/sharing/:id		-> Changes a grant's access type (owner only)
		sharing.PUT("/:id", a.ShareUpdate)

		// DELETE /api/sharing/:id	-> Revokes a grant (owner only)
		sharing.DELETE("/:id", a.ShareRevoke)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
