package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/loan_application_app/internal/core/ports/services"
	"github.com/SscSPs/loan_application_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencyListerSvc
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencyListerSvc) {
	h := &currencyHandler{currencyService: currencyService}

	rg.GET("/currencies", h.listCurrencies)
}

// listCurrencies godoc
// @Summary List currencies
// @Description Lists the currency codes supported by the exchange rate provider, in provider order
// @Tags currencies
// @Produce  json
// @Success 200 {array} string
// @Failure 502 {object} map[string]string "Exchange rate provider error"
// @Failure 500 {object} map[string]string "Failed to list currencies"
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	codes, err := h.currencyService.GetCurrencies(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list currencies")
		return
	}

	logger.Debug("Listed currencies", slog.Int("count", len(codes)))
	c.JSON(http.StatusOK, codes)
}
