package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/service"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/session"
)

// ReportHandler handles report submission and the two listing pages.
type ReportHandler struct {
	reportService service.ReportService
	sessions      session.Store
	mapsKey       string
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService, sessions session.Store, mapsKey string) *ReportHandler {
	return &ReportHandler{reportService: reportService, sessions: sessions, mapsKey: mapsKey}
}

// ReportForm represents a report submission. Coordinates arrive as text and
// must parse as floating point; address is optional.
type ReportForm struct {
	Latitude     string `form:"latitude" validate:"required"`
	Longitude    string `form:"longitude" validate:"required"`
	Description  string `form:"description" validate:"required"`
	Date         string `form:"date" validate:"required"`
	Time         string `form:"time" validate:"required"`
	IncidentType string `form:"incident_type" validate:"required"`
	Address      string `form:"address"`
}

// ReportPage renders the submission form.
func (h *ReportHandler) ReportPage(c echo.Context) error {
	return c.Render(http.StatusOK, "report", pageData(c, h.sessions, map[string]interface{}{
		"MapsKey": h.mapsKey,
	}))
}

// SubmitReport validates and persists a report owned by the current user.
// Persistence failures are reported as a warning, never a crash.
func (h *ReportHandler) SubmitReport(c echo.Context) error {
	var form ReportForm
	if err := c.Bind(&form); err != nil {
		flash(c, h.sessions, "warning", "Please fill all required fields and select a location")
		return c.Redirect(http.StatusFound, "/report")
	}
	if err := c.Validate(&form); err != nil {
		flash(c, h.sessions, "warning", "Please fill all required fields and select a location")
		return c.Redirect(http.StatusFound, "/report")
	}
	lat, latErr := strconv.ParseFloat(form.Latitude, 64)
	lng, lngErr := strconv.ParseFloat(form.Longitude, 64)
	if latErr != nil || lngErr != nil {
		flash(c, h.sessions, "warning", "Please fill all required fields and select a location")
		return c.Redirect(http.StatusFound, "/report")
	}

	input := service.ReportInput{
		Latitude:     lat,
		Longitude:    lng,
		Description:  strings.TrimSpace(form.Description),
		Date:         form.Date,
		Time:         form.Time,
		Address:      form.Address,
		IncidentType: form.IncidentType,
	}
	if _, err := h.reportService.Submit(c.Request().Context(), currentSession(c).UserID, input); err != nil {
		c.Logger().Errorf("submit report: %v", err)
		flash(c, h.sessions, "warning", "Error submitting report")
		return c.Redirect(http.StatusFound, "/report")
	}

	flash(c, h.sessions, "success", "Report submitted successfully!")
	return c.Redirect(http.StatusFound, "/report")
}

// Check lists every report, newest first.
func (h *ReportHandler) Check(c echo.Context) error {
	reports, err := h.reportService.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list reports: %v", err)
		flash(c, h.sessions, "warning", "Could not load reports")
	}
	return c.Render(http.StatusOK, "check", pageData(c, h.sessions, map[string]interface{}{
		"Reports": reports,
		"MapsKey": h.mapsKey,
	}))
}

// MyReports lists only the current user's reports, newest first.
func (h *ReportHandler) MyReports(c echo.Context) error {
	reports, err := h.reportService.ListMine(c.Request().Context(), currentSession(c).UserID)
	if err != nil {
		c.Logger().Errorf("list own reports: %v", err)
		flash(c, h.sessions, "warning", "Could not load reports")
	}
	return c.Render(http.StatusOK, "check", pageData(c, h.sessions, map[string]interface{}{
		"Reports": reports,
		"MapsKey": h.mapsKey,
	}))
}
