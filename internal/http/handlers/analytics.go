package handlers

import (
	"net/http"
	"strconv"

	"admindash/internal/services"

	"github.com/gin-gonic/gin"
)

func usageDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.Query("days"))
	if err != nil {
		days = 0
	}
	return services.ClampUsageDays(days)
}

func (a API) Overview(c *gin.Context) {
	ov, err := a.Analytics.Overview(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, ov)
}

func (a API) Usage(c *gin.Context) {
	report, err := a.Analytics.Usage(c.Request.Context(), usageDays(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, report)
}

func (a API) UsageReportPDF(c *gin.Context) {
	pdf, filename, err := a.Analytics.UsageReportPDF(c.Request.Context(), usageDays(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
