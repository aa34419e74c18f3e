package ecellweb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ecellfcrit/ecellweb/content"
	"github.com/ecellfcrit/ecellweb/mail"
)

func (a *App) setupAPIRoutes() {
	api := a.Echo.Group("/api")
	api.GET("/linkedin", a.handleLinkedInPosts)
	api.POST("/linkedin", a.handleLinkedInFeatured)
	api.GET("/contact", a.handleContactList)
	api.POST("/contact", a.handleContact, a.limitForms)
	api.POST("/newsletter", a.handleNewsletter, a.limitForms)
	api.POST("/events/register", a.handleRegister, a.limitForms)
}

// limitForms rejects clients that submit forms too often.
func (a *App) limitForms(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !a.formLimiter.Allow(c.RealIP()) {
			return apiError(c, http.StatusTooManyRequests, "Too many requests. Try again later.")
		}
		return next(c)
	}
}

type postsResponse struct {
	Success bool           `json:"success"`
	Posts   []content.Post `json:"posts"`
	Message string         `json:"message"`
}

type featuredPostsResponse struct {
	Success       bool           `json:"success"`
	FeaturedPosts []content.Post `json:"featuredPosts"`
	Message       string         `json:"message"`
}

// handleLinkedInPosts serves GET /api/linkedin?limit=N. Fetch failures yield
// an empty list, never an error response.
func (a *App) handleLinkedInPosts(c echo.Context) error {
	limit := content.RecentPostsLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > content.AllPostsLimit {
			return apiError(c, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", content.AllPostsLimit))
		}
		limit = n
	}
	posts := a.Services.Posts.GetRecentPosts(c.Request().Context(), limit)
	return c.JSON(http.StatusOK, postsResponse{
		Success: true,
		Posts:   posts,
		Message: fmt.Sprintf("Retrieved %d LinkedIn posts", len(posts)),
	})
}

func (a *App) handleLinkedInFeatured(c echo.Context) error {
	posts := a.Services.Posts.GetFeaturedPosts(c.Request().Context())
	return c.JSON(http.StatusOK, featuredPostsResponse{
		Success:       true,
		FeaturedPosts: posts,
		Message:       fmt.Sprintf("Retrieved %d featured LinkedIn posts", len(posts)),
	})
}

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

func (a *App) handleContact(c echo.Context) error {
	var form ContactForm
	fields, err := bindForm(c, &form)
	if err != nil {
		return apiError(c, http.StatusBadRequest, "Invalid request body")
	}
	if fields != nil {
		return apiValidationError(c, "Name, email, and message are required fields", fields)
	}
	id, err := a.Contact.Submit(c.Request().Context(), form)
	if err != nil {
		a.Logger.Error("contact submission failed", zap.Error(err))
		return apiError(c, http.StatusInternalServerError, "Failed to submit contact form. Please try again later.")
	}
	return c.JSON(http.StatusOK, contactResponse{
		Success: true,
		Message: "Thank you for your message! We will get back to you soon.",
		ID:      id,
	})
}

type submissionsResponse struct {
	Success     bool                        `json:"success"`
	Submissions []content.ContactSubmission `json:"submissions"`
	Total       int                         `json:"total"`
	Message     string                      `json:"message"`
}

func (a *App) handleContactList(c echo.Context) error {
	if !IsAdmin(c) {
		return apiError(c, http.StatusUnauthorized, "Unauthorized")
	}
	subs, err := a.Contact.List(c.Request().Context())
	if err != nil {
		a.Logger.Error("listing contact submissions failed", zap.Error(err))
		return apiError(c, http.StatusInternalServerError, "Failed to fetch contact submissions")
	}
	return c.JSON(http.StatusOK, submissionsResponse{
		Success:     true,
		Submissions: subs,
		Total:       len(subs),
		Message:     "Contact submissions retrieved successfully",
	})
}

func (a *App) handleNewsletter(c echo.Context) error {
	var form NewsletterForm
	fields, err := bindForm(c, &form)
	if err != nil {
		return apiError(c, http.StatusBadRequest, "Invalid request body")
	}
	if fields != nil {
		return apiValidationError(c, "Validation error", fields)
	}

	interests := make([]string, 0, len(form.Interests))
	for _, in := range form.Interests {
		if s := Slugify(in); s != "" {
			interests = append(interests, s)
		}
	}
	err = a.Store.AddSubscriber(Subscriber{Email: form.Email, Name: form.Name, Interests: interests})
	switch {
	case errors.Is(err, ErrAlreadySubscribed):
		return c.JSON(http.StatusOK, apiResponse{Success: true, Message: "You are already subscribed to our newsletter!"})
	case err != nil:
		a.Logger.Error("newsletter subscription failed", zap.Error(err))
		return apiError(c, http.StatusInternalServerError, "Subscription failed. Please try again later.")
	}

	a.sendMail(c.Request().Context(), mail.Message{
		To:      form.Email,
		Subject: fmt.Sprintf("Welcome to %s Newsletter!", a.Config.Name),
		Text:    welcomeText(a.Config.Name, form.Name),
	})
	return c.JSON(http.StatusOK, apiResponse{Success: true, Message: "Successfully subscribed to our newsletter!"})
}

type registrationResponse struct {
	Success        bool   `json:"success"`
	RegistrationID string `json:"registrationId"`
	Message        string `json:"message"`
}

func (a *App) handleRegister(c echo.Context) error {
	var form RegistrationForm
	fields, err := bindForm(c, &form)
	if err != nil {
		return apiError(c, http.StatusBadRequest, "Invalid request body")
	}
	if fields != nil {
		return apiValidationError(c, "Validation error", fields)
	}

	ctx := c.Request().Context()
	ev, ok := a.Services.Events.GetEventByID(ctx, form.EventID)
	if !ok || !registrationOpen(ev) {
		return apiError(c, http.StatusBadRequest, "Sorry, this event is full or registration is closed.")
	}

	reg := Registration{
		ID:           uuid.NewString(),
		EventID:      ev.ID,
		Name:         form.Name,
		Email:        form.Email,
		Phone:        form.Phone,
		Department:   form.Department,
		Year:         form.Year,
		Experience:   form.Experience,
		Expectations: form.Expectations,
		TeamMembers:  form.TeamMembers,
	}
	err = a.Store.SaveRegistration(reg)
	switch {
	case errors.Is(err, ErrAlreadyRegistered):
		return apiError(c, http.StatusConflict, "You are already registered for this event.")
	case err != nil:
		a.Logger.Error("event registration failed", zap.String("event", ev.ID), zap.Error(err))
		return apiError(c, http.StatusInternalServerError, "Registration failed. Please try again later.")
	}

	a.sendMail(ctx, mail.Message{
		To:      form.Email,
		Subject: fmt.Sprintf("Event Registration Confirmation - %s", a.Config.Name),
		Text:    confirmationText(a.Config.Name, form.Name, ev, reg.ID),
	})
	return c.JSON(http.StatusOK, registrationResponse{
		Success:        true,
		RegistrationID: reg.ID,
		Message:        "Registration successful! Check your email for confirmation.",
	})
}

// sendMail delivers msg; failures are logged and never fail the request.
func (a *App) sendMail(ctx context.Context, msg mail.Message) {
	if err := a.mailer.Send(ctx, msg); err != nil {
		a.Logger.Warn("sending mail failed", zap.String("subject", msg.Subject), zap.Error(err))
	}
}

func welcomeText(site, name string) string {
	greeting := "Hello,"
	if name != "" {
		greeting = "Hello " + name + ","
	}
	return fmt.Sprintf(`%s

Welcome to the %s community!

You'll now receive updates about:
- Upcoming events and workshops
- Startup opportunities
- Industry insights
- Success stories from our community

Best regards,
%s Team
`, greeting, site, site)
}

func confirmationText(site, name string, ev content.Event, regID string) string {
	when := ev.Date.Format("Monday, 2 January 2006")
	where := ev.Location
	if where == "" {
		where = "to be announced"
	}
	return fmt.Sprintf(`Dear %s,

Thank you for registering for %s!

Registration ID: %s
Date: %s
Venue: %s

We'll send you more details closer to the event date.

Best regards,
%s Team
`, name, ev.Title, regID, when, where, site)
}
