package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/usecase/report"
)

type ReportHandler struct {
	service *report.Service
}

func NewReportHandler(service *report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Financials(c *gin.Context) {
	rep, err := h.service.Financials(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "Could not build financial report.")
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *ReportHandler) Transactions(c *gin.Context) {
	filter := report.TransactionFilter{}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			filter.From = &from
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			filter.To = &to
		}
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	page, err := h.service.Transactions(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_transactions", "Could not list transactions.")
		return
	}

	c.JSON(http.StatusOK, page)
}
