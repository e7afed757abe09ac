package handlers

import (
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-backoffice/internal/auth"
	"github.com/spec-kit/pos-backoffice/internal/service"
)

var loginPage = template.Must(template.New("login").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>{{.Service}} - Sign in</title></head>
<body>
<form id="login" method="post" action="/api/auth/login">
  <label>Email <input type="email" name="email" required></label>
  <label>Password <input type="password" name="password" required></label>
  <button type="submit">Sign in</button>
</form>
</body>
</html>
`))

var dashboardPage = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>{{.Service}} - Dashboard</title></head>
<body>
<p>Signed in as {{.Email}}{{if .Roles}} ({{.Roles}}){{end}}</p>
{{if .OutletID}}<p>Outlet {{.OutletID}}</p>{{else}}<p>No outlet selected</p>{{end}}
<form method="post" action="/api/auth/logout"><button type="submit">Sign out</button></form>
</body>
</html>
`))

// PagesHandler renders the minimal server-side pages.
type PagesHandler struct {
	serviceName  string
	outletCookie string
}

// NewPagesHandler constructs handler.
func NewPagesHandler(serviceName, outletCookie string) *PagesHandler {
	return &PagesHandler{serviceName: serviceName, outletCookie: outletCookie}
}

// LoginPage handles GET /login.
func (h *PagesHandler) LoginPage(c *fiber.Ctx) error {
	return h.render(c, loginPage, fiber.Map{"Service": h.serviceName})
}

// Dashboard handles GET /dashboard and its subpaths. The page gate has
// already verified the session.
func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	claims, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	data := fiber.Map{
		"Service": h.serviceName,
		"Email":   claims.Email,
		"Roles":   strings.Join(claims.Roles, ", "),
	}
	if outletID, ok := service.SelectedOutlet(c, h.outletCookie); ok {
		data["OutletID"] = outletID
	}
	return h.render(c, dashboardPage, data)
}

func (h *PagesHandler) render(c *fiber.Ctx, tmpl *template.Template, data fiber.Map) error {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.SendString(sb.String())
}
