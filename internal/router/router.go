package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/handler"
	"github.com/intraportal/internal/logging"
	"github.com/intraportal/internal/view"
	"go.uber.org/zap"
)

// SessionName is the cookie that carries the admin session.
const SessionName = "portal_session"

// StaticAssetsPath serves Options.StaticDir. The page layout links its
// stylesheet below it.
const StaticAssetsPath = "/static/assets"

// Options configures SetupRouter.
type Options struct {
	SessionSecret string
	UploadDir     string
	UploadURLPath string
	StaticDir     string
	Logger        *zap.Logger
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) (*gin.Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(logging.GinMiddleware(logger), logging.Recovery(logger))

	// 配置会话中间件
	secret := opts.SessionSecret
	if secret == "" {
		secret = "portal-session"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(SessionName, store))

	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// 静态文件服务
	if opts.StaticDir != "" {
		r.Static(StaticAssetsPath, opts.StaticDir)
	}
	if opts.UploadDir != "" {
		uploadURL := "/" + strings.Trim(opts.UploadURLPath, "/")
		if uploadURL != "/" {
			r.Static(uploadURL, opts.UploadDir)
		}
		if uploadURL != "/uploads" {
			r.Static("/uploads", opts.UploadDir)
		}
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/page/:slug", api.ShowPage)
	r.GET("/admin/pages/:id/preview", api.AuthRequired(), api.PreviewPage)

	apiGroup := r.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/login", api.Login)
		authGroup.POST("/logout", api.Logout)
		authGroup.GET("/me", api.AuthRequired(), api.Me)

		apiGroup.GET("/news", api.ListNews)
		apiGroup.GET("/news/featured", api.FeaturedNews)
		apiGroup.GET("/news/:id", api.GetNews)

		apiGroup.GET("/events", api.ListEvents)
		apiGroup.GET("/events/upcoming", api.UpcomingEvents)
		apiGroup.GET("/events/:id", api.GetEvent)

		apiGroup.GET("/albums", api.ListAlbums)
		apiGroup.GET("/albums/:id", api.GetAlbum)
		apiGroup.GET("/albums/:id/photos", api.ListAlbumPhotos)
		apiGroup.GET("/photos", api.ListPhotos)
		apiGroup.GET("/photos/:id", api.GetPhoto)

		apiGroup.GET("/employees", api.ListEmployees)
		apiGroup.GET("/employees/departments", api.ListDepartments)
		apiGroup.GET("/employees/:id", api.GetEmployee)

		apiGroup.GET("/pages", api.ListPages)
		apiGroup.GET("/pages/slug/:slug", api.GetPageBySlug)
		apiGroup.GET("/pages/:id", api.GetPage)

		apiGroup.GET("/menus", api.MenuTree)
		apiGroup.GET("/menus/flat", api.ListMenuItems)

		apiGroup.GET("/templates", api.ListTemplates)
		apiGroup.GET("/templates/:id", api.GetTemplate)
		apiGroup.GET("/block-types", api.ListBlockTypes)
		apiGroup.GET("/block-types/:type/editor", api.BlockEditor)
		apiGroup.GET("/icons", api.ListIcons)

		apiGroup.GET("/settings/hero", api.GetHeroSettings)
		apiGroup.GET("/settings/ticker", api.GetTickerSettings)

		apiGroup.GET("/embed/check", api.CheckEmbed)

		// 需要认证的管理接口
		admin := apiGroup.Group("")
		admin.Use(api.AuthRequired())
		{
			admin.POST("/news", api.CreateNews)
			admin.PUT("/news/:id", api.UpdateNews)
			admin.DELETE("/news/:id", api.DeleteNews)

			admin.POST("/events", api.CreateEvent)
			admin.PUT("/events/:id", api.UpdateEvent)
			admin.DELETE("/events/:id", api.DeleteEvent)

			admin.POST("/albums", api.CreateAlbum)
			admin.PUT("/albums/:id", api.UpdateAlbum)
			admin.DELETE("/albums/:id", api.DeleteAlbum)
			admin.POST("/photos", api.CreatePhoto)
			admin.PUT("/photos/:id", api.UpdatePhoto)
			admin.DELETE("/photos/:id", api.DeletePhoto)

			admin.POST("/employees", api.CreateEmployee)
			admin.PUT("/employees/:id", api.UpdateEmployee)
			admin.DELETE("/employees/:id", api.DeleteEmployee)

			admin.POST("/pages", api.CreatePage)
			admin.PUT("/pages/:id", api.UpdatePage)
			admin.DELETE("/pages/:id", api.DeletePage)
			admin.POST("/pages/:id/duplicate", api.DuplicatePage)
			admin.PATCH("/pages/:id/publish", api.PublishPage)
			admin.POST("/pages/:id/blocks", api.AddPageBlock)
			admin.PATCH("/pages/:id/blocks/:index/move", api.MovePageBlock)
			admin.DELETE("/pages/:id/blocks/:index", api.DeletePageBlock)
			admin.POST("/blocks/render", api.RenderBlock)

			admin.POST("/menus", api.CreateMenuItem)
			admin.PUT("/menus/reorder", api.ReorderMenu)
			admin.PUT("/menus/:id", api.UpdateMenuItem)
			admin.DELETE("/menus/:id", api.DeleteMenuItem)
			admin.PATCH("/menus/:id/visibility", api.ToggleMenuVisibility)
			admin.PATCH("/menus/:id/move", api.MoveMenuItem)

			admin.PUT("/settings/hero", api.UpdateHeroSettings)
			admin.PUT("/settings/ticker", api.UpdateTickerSettings)

			admin.POST("/upload", api.UploadImage)
			admin.POST("/seed", api.Seed)
			admin.GET("/dashboard/stats", api.DashboardStats)

			users := admin.Group("/users")
			users.Use(api.AdminRequired())
			{
				users.GET("", api.ListUsers)
				users.GET("/:id", api.GetUser)
				users.POST("", api.CreateUser)
				users.PUT("/:id", api.UpdateUser)
				users.DELETE("/:id", api.DeleteUser)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		api.NotFound(c)
	})

	return r, nil
}
