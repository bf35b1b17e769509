package admin

import (
	"html/template"
	"net/http"

	"github.com/foliolabs/core/internal/config"
	"github.com/foliolabs/core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// pageData feeds the shared admin shell template.
type pageData struct {
	SiteTitle string
	Page      string
	Email     string
}

var shellTmpl = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="robots" content="noindex">
<title>{{.Page}} | {{.SiteTitle}}</title>
</head>
<body>
<header>
  <nav>
    <a href="/admin">Dashboard</a>
    <a href="/admin/posts">Posts</a>
    <a href="/admin/projects">Projects</a>
    <a href="/admin/settings">Settings</a>
  </nav>
  <span>{{.Email}}</span>
</header>
<main id="admin-root" data-page="{{.Page}}" data-email="{{.Email}}">
  <h1>{{.Page}}</h1>
</main>
</body>
</html>
`))

var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="robots" content="noindex">
<title>Sign in | {{.SiteTitle}}</title>
</head>
<body>
<form id="login" method="post" action="/api/admin/login">
  <label>Email <input type="email" name="email" autocomplete="username" required></label>
  <label>Password <input type="password" name="password" autocomplete="current-password" required></label>
  <button type="submit">Sign in</button>
</form>
</body>
</html>
`))

// Pages serves the admin HTML surface. Everything except the login page
// sits behind the redirecting gate.
type Pages struct {
	cfg *config.AppConfig
}

func NewPages(cfg *config.AppConfig) *Pages {
	return &Pages{cfg: cfg}
}

// RegisterRoutes mounts /admin/login publicly and every other admin page
// behind the page gate, which redirects anonymous visitors to the login
// form instead of answering 401.
func (p *Pages) RegisterRoutes(r *gin.Engine) {
	r.GET(middleware.LoginPath, middleware.OptionalAdmin(p.cfg), p.login)

	gated := r.Group("/admin", middleware.AdminGatePage(p.cfg))
	gated.GET("", p.page("Dashboard"))
	gated.GET("/posts", p.page("Posts"))
	gated.GET("/posts/new", p.page("New post"))
	gated.GET("/posts/:id/edit", p.page("Edit post"))
	gated.GET("/projects", p.page("Projects"))
	gated.GET("/projects/new", p.page("New project"))
	gated.GET("/projects/:id/edit", p.page("Edit project"))
	gated.GET("/settings", p.page("Settings"))
}

func (p *Pages) login(c *gin.Context) {
	// An authenticated admin has no business on the login form.
	if middleware.IsAuthenticated(c) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = loginTmpl.Execute(c.Writer, pageData{SiteTitle: p.cfg.Site.Title})
}

func (p *Pages) page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Status(http.StatusOK)
		c.Header("Content-Type", "text/html; charset=utf-8")
		_ = shellTmpl.Execute(c.Writer, pageData{
			SiteTitle: p.cfg.Site.Title,
			Page:      name,
			Email:     middleware.CurrentAdminEmail(c),
		})
	}
}
