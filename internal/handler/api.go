package handler

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/block"
	"github.com/intraportal/internal/menu"
	"github.com/intraportal/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultSiteName is shown in page titles when Options.SiteName is empty.
const DefaultSiteName = "GYS Intranet Portal"

// Options configures NewAPI.
type Options struct {
	JWTSecret    string
	TokenTTL     time.Duration
	UploadDir    string
	UploadURL    string
	MaxUpload    int64
	EmbedTimeout time.Duration
	SiteBaseURL  string
	SiteName     string
	Seed         service.SeedOptions
	Logger       *zap.Logger
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	auth      *service.AuthService
	users     *service.UserService
	pages     *service.PageService
	templates *service.TemplateService
	menus     *service.MenuService
	news      *service.NewsService
	events    *service.EventService
	albums    *service.AlbumService
	photos    *service.PhotoService
	employees *service.EmployeeService
	settings  *service.SettingsService
	embeds    *service.EmbedService
	uploads   *service.UploadService
	seeds     *service.SeedService
	dashboard *service.DashboardService
	renderer  *block.Renderer
	logger    *zap.Logger
	siteName  string
	seedOpts  service.SeedOptions
	now       func() time.Time
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) (*API, error) {
	templates, err := service.NewTemplateService()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	siteName := strings.TrimSpace(opts.SiteName)
	if siteName == "" {
		siteName = DefaultSiteName
	}

	return &API{
		db:        gdb,
		auth:      service.NewAuthService(gdb, opts.JWTSecret, opts.TokenTTL),
		users:     service.NewUserService(gdb),
		pages:     service.NewPageService(gdb, templates),
		templates: templates,
		menus:     service.NewMenuService(gdb),
		news:      service.NewNewsService(gdb),
		events:    service.NewEventService(gdb),
		albums:    service.NewAlbumService(gdb),
		photos:    service.NewPhotoService(gdb),
		employees: service.NewEmployeeService(gdb),
		settings:  service.NewSettingsService(gdb),
		embeds:    service.NewEmbedService(opts.EmbedTimeout, opts.SiteBaseURL),
		uploads:   service.NewUploadService(opts.UploadDir, opts.UploadURL, opts.MaxUpload),
		seeds:     service.NewSeedService(gdb),
		dashboard: service.NewDashboardService(gdb),
		renderer:  block.NewRenderer(),
		logger:    logger,
		siteName:  siteName,
		seedOpts:  opts.Seed,
		now:       time.Now,
	}, nil
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Embeds exposes the probe service so callers can swap its HTTP client.
func (a *API) Embeds() *service.EmbedService {
	return a.embeds
}

// navigation renders the visible menu for the current request path.
func (a *API) navigation(current string) (template.HTML, template.HTML, []*menu.Node, menu.RenderOptions) {
	opts := menu.RenderOptions{Current: current}
	nodes, err := a.menus.Tree(true)
	if err != nil {
		a.logger.Warn("load menu tree failed", zap.Error(err))
		return "", "", nil, opts
	}
	if slugs, err := a.pages.SlugMap(); err == nil {
		opts.PageSlugs = slugs
	} else {
		a.logger.Warn("load page slugs failed", zap.Error(err))
	}
	return menu.RenderDesktop(nodes, opts), menu.RenderMobile(nodes, opts), nodes, opts
}

func (a *API) renderHTML(c *gin.Context, status int, name string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["desktopMenu"]; !exists {
		desktop, mobile, _, _ := a.navigation(c.Request.URL.Path)
		payload["desktopMenu"] = desktop
		payload["mobileMenu"] = mobile
	}
	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = a.siteName
	}
	if _, exists := payload["metaTitle"]; !exists {
		payload["metaTitle"] = a.siteName
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = a.now().Year()
	}

	c.HTML(status, name, payload)
}

func (a *API) renderNotFound(c *gin.Context, message string) {
	a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{
		"metaTitle": "Not found",
		"message":   message,
		"noindex":   true,
	})
}

// NotFound renders the HTML 404 page for unmatched routes.
func (a *API) NotFound(c *gin.Context) {
	a.renderNotFound(c, "")
}
