package ecellweb

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// renderPage renders page with view, or writes page as JSON when no view is
// registered for it.
func renderPage[P any](c echo.Context, view func(P) templ.Component, page P) error {
	if view == nil {
		return c.JSON(http.StatusOK, page)
	}
	return Render(c, view(page))
}

// apiResponse is the JSON envelope of the /api/ endpoints.
type apiResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func apiError(c echo.Context, code int, msg string) error {
	return c.JSON(code, apiResponse{Success: false, Error: msg})
}

func apiValidationError(c echo.Context, msg string, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, apiResponse{Success: false, Error: msg, Fields: fields})
}
