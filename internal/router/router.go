package router

import (
	"html/template"

	"ProfileBoard/docs"
	"ProfileBoard/internal/handler"
	"ProfileBoard/internal/logger"
	"ProfileBoard/internal/middleware"
	"ProfileBoard/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const healthPath = "/healthz"

type Config struct {
	UploadDir         string
	MaxUploadBytes    int64
	CORSOrigins       []string
	AuthRatePerMinute int
	InviteCode        string
	SwaggerEnabled    bool
}

// New wires middleware, templates and routes.
func New(cfg Config, h *handler.Handler, sessions *session.Manager, tmpl *template.Template, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	// 아바타 업로드 여유분 포함
	router.MaxMultipartMemory = cfg.MaxUploadBytes + 1<<20

	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(log.Named("http"), healthPath),
		cors.New(corsConfig(cfg.CORSOrigins)),
		middleware.ErrorHandler(log.Named("error")),
	)

	router.GET(healthPath, h.Health)
	router.Static("/img", cfg.UploadDir)
	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = "/"
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	web := router.Group("/", sessions.Middleware())
	{
		web.GET("/", h.Index)

		guest := web.Group("/", middleware.CheckNotLogin())
		{
			limited := middleware.RateLimitByIP(cfg.AuthRatePerMinute)
			guest.GET("/signup", h.SignupPage)
			guest.POST("/signup", limited, middleware.InviteCode(cfg.InviteCode), h.Signup)
			guest.GET("/signin", h.SigninPage)
			guest.POST("/signin", limited, h.Signin)
		}

		member := web.Group("/", middleware.CheckLogin())
		{
			member.GET("/signout", h.Signout)
			member.GET("/user", h.Profile)
			member.POST("/user/name", h.UpdateName)
			member.POST("/user/password", h.UpdatePassword)
			member.POST("/user/avatar", h.UpdateAvatar)
			member.POST("/user/bio", h.UpdateBio)
		}
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	return config
}
