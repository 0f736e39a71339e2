// Package handler holds the gin HTTP handlers. Each handler binds the
// request, delegates to its service, and translates errors to status
// codes; no market logic lives here.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tradeagent/internal/service"
)

type Market struct {
	market *service.MarketService
	log    *logrus.Logger
}

func NewMarket(market *service.MarketService, log *logrus.Logger) *Market {
	return &Market{market: market, log: log}
}

// Data serves POST /api/market-data: a single action-dispatched
// endpoint mirroring the dashboard's data contract.
func (h *Market) Data(ctx *gin.Context) {
	var req service.Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	payload, err := h.market.Dispatch(ctx.Request.Context(), req)
	if err != nil {
		var se *service.StatusError
		if errors.As(err, &se) {
			ctx.JSON(se.Status, gin.H{"error": se.Message})
			return
		}
		h.log.WithField("action", req.Action).WithError(err).Error("market dispatch failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	ctx.JSON(http.StatusOK, payload)
}
