package ecellweb

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ecellfcrit/ecellweb/content"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return a.renderAdminLogin(c, http.StatusOK, false)
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.Logger.Warn("admin login failed", zap.String("remote_ip", c.RealIP()))
	return a.renderAdminLogin(c, http.StatusUnauthorized, true)
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) renderAdminLogin(c echo.Context, code int, showError bool) error {
	if a.Views.AdminLogin == nil {
		if showError {
			return apiError(c, code, "Invalid password")
		}
		return apiError(c, http.StatusUnauthorized, "Login required")
	}
	return RenderStatus(c, code, a.Views.AdminLogin(showError, CsrfToken(c)))
}

// renderAdminDashboard lists contact submissions from the content store next
// to the locally stored subscribers and registrations. A content store
// failure is reported in the message instead of failing the page.
func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	page := AdminPage{Message: msg, Submissions: []content.ContactSubmission{}}
	ctx := c.Request().Context()

	var g errgroup.Group
	g.Go(func() error {
		subs, err := a.Contact.List(ctx)
		if err != nil {
			a.Logger.Error("listing contact submissions failed", zap.Error(err))
			page.Message = "Contact submissions are unavailable right now."
			return nil
		}
		page.Submissions = subs
		return nil
	})
	g.Go(func() error {
		subs, err := a.Store.ListSubscribers()
		page.Subscribers = subs
		return err
	})
	g.Go(func() error {
		regs, err := a.Store.ListRegistrations(c.QueryParam("event"))
		page.Registrations = regs
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if a.Views.AdminDashboard == nil {
		return c.JSON(http.StatusOK, page)
	}
	return Render(c, a.Views.AdminDashboard(page, CsrfToken(c)))
}
