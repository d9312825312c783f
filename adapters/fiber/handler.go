package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/lborres/kindercrew/core"
	"github.com/lborres/kindercrew/dashboard"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (a *Adapter) getSession(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(a.session.State())
}

func (a *Adapter) login(c fiber.Ctx) error {
	var input loginInput
	if err := c.Bind().Body(&input); err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request body")
	}

	if !a.session.Login(c.Context(), input.Email, input.Password) {
		return writeError(c, http.StatusUnauthorized, "login failed")
	}
	return c.Status(http.StatusOK).JSON(a.session.State())
}

func (a *Adapter) register(c fiber.Ctx) error {
	var input registerInput
	if err := c.Bind().Body(&input); err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request body")
	}

	if !a.session.Register(c.Context(), input.Email, input.Password, input.Name) {
		return writeError(c, http.StatusBadRequest, "registration failed")
	}
	return c.Status(http.StatusCreated).JSON(a.session.State())
}

func (a *Adapter) logout(c fiber.Ctx) error {
	a.session.Logout(c.Context())
	return c.Status(http.StatusOK).JSON(a.session.State())
}

func (a *Adapter) listChildren(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(a.board.ChildViews())
}

func (a *Adapter) addChild(c fiber.Ctx) error {
	var input dashboard.NewChild
	if err := c.Bind().Body(&input); err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request body")
	}
	child, err := a.board.AddChild(input)
	if err != nil {
		return handleBoardError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(child)
}

func (a *Adapter) screenTime(c fiber.Ctx) error {
	entries, err := a.board.ScreenTime(c.Params("id"))
	if err != nil {
		return handleBoardError(c, err)
	}
	return c.Status(http.StatusOK).JSON(entries)
}

func (a *Adapter) getFilters(c fiber.Ctx) error {
	settings, err := a.board.Filters(c.Params("id"))
	if err != nil {
		return handleBoardError(c, err)
	}
	return c.Status(http.StatusOK).JSON(settings)
}

func (a *Adapter) putFilters(c fiber.Ctx) error {
	var input dashboard.FilterSettings
	if err := c.Bind().Body(&input); err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request body")
	}
	settings, err := a.board.UpdateFilters(c.Params("id"), input)
	if err != nil {
		return handleBoardError(c, err)
	}
	return c.Status(http.StatusOK).JSON(settings)
}

// listAlerts accepts ?status=active or ?status=resolved.
func (a *Adapter) listAlerts(c fiber.Ctx) error {
	var alerts []dashboard.Alert
	switch c.Query("status") {
	case "":
		alerts = a.board.Alerts()
	case "active":
		alerts = a.board.ActiveAlerts()
	case "resolved":
		alerts = a.board.ResolvedAlerts()
	default:
		return writeError(c, http.StatusBadRequest, "status must be active or resolved")
	}
	return c.Status(http.StatusOK).JSON(dashboard.AlertViews(alerts, a.board.Now()))
}

func (a *Adapter) resolveAlert(c fiber.Ctx) error {
	alert, err := a.board.ResolveAlert(c.Params("id"))
	if err != nil {
		return handleBoardError(c, err)
	}
	return c.Status(http.StatusOK).JSON(alert)
}

func (a *Adapter) dismissAlert(c fiber.Ctx) error {
	if err := a.board.DismissAlert(c.Params("id")); err != nil {
		return handleBoardError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (a *Adapter) listReports(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(dashboard.ReportViews(a.board.Reports(), a.board.Now()))
}

func (a *Adapter) submitReport(c fiber.Ctx) error {
	var input dashboard.NewReport
	if err := c.Bind().Body(&input); err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request body")
	}
	report, err := a.board.SubmitReport(input)
	if err != nil {
		return handleBoardError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(report)
}

func (a *Adapter) upvoteReport(c fiber.Ctx) error {
	report, err := a.board.UpvoteReport(c.Params("id"))
	if err != nil {
		return handleBoardError(c, err)
	}
	return c.Status(http.StatusOK).JSON(report)
}

func writeError(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(core.ErrorResponse{Error: msg})
}

// handleBoardError maps dashboard errors to HTTP responses
func handleBoardError(c fiber.Ctx, err error) error {
	return writeError(c, mapErrorToStatus(err), err.Error())
}

// mapErrorToStatus maps dashboard error types to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, dashboard.ErrChildNotFound),
		errors.Is(err, dashboard.ErrAlertNotFound),
		errors.Is(err, dashboard.ErrReportNotFound):
		return http.StatusNotFound

	case errors.Is(err, dashboard.ErrChildNameRequired),
		errors.Is(err, dashboard.ErrInvalidAge),
		errors.Is(err, dashboard.ErrReportTypeRequired),
		errors.Is(err, dashboard.ErrInvalidReportType),
		errors.Is(err, dashboard.ErrDescriptionRequired),
		errors.Is(err, dashboard.ErrInvalidScreenLimit):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
