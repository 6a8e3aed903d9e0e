package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yen-network/internal/service"
)

// AdminHandler serves /api/admin. Routes must sit behind RequireAdmin.
type AdminHandler struct {
	reports *service.ReportService
	users   *service.UserService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(reports *service.ReportService, users *service.UserService) *AdminHandler {
	return &AdminHandler{reports: reports, users: users}
}

// Stats returns platform counts and funding totals.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.reports.Stats(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"stats": stats})
}

// Users returns every account.
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.users.ListAll(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserProfiles(users))
}

// FundingReport downloads the funding report as a PDF.
func (h *AdminHandler) FundingReport(c *gin.Context) {
	pdf, err := h.reports.FundingReportPDF(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	filename := fmt.Sprintf("funding-report-%s.pdf", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
