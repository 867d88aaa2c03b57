package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"grid-backtest/internal/api/models"
	"grid-backtest/internal/data"

	"github.com/gin-gonic/gin"
)

// ListTickers handles GET /api/v1/tickers.
// Serves the static tickers file when present, otherwise the built-in list.
func ListTickers(c *gin.Context) {
	list, err := data.LoadTickers(data.GetDefaultTickersPath())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("TickersHandler: failed to load tickers file: %v", err)
		}
		list = data.DefaultTickers()
	}

	log.Printf("TickersHandler: returning %d tickers", len(list.Tickers))
	c.JSON(http.StatusOK, models.TickerListResponse{
		Result:  "success",
		Tickers: list.Tickers,
	})
}
