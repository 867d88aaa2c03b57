package handlers

import (
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"grid-backtest/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RealtimeHandler serves simulated tick data for frontend visualization.
// Live broker ticks are out of scope; the stream is a random walk around a
// reference price so chart components have something to render.
type RealtimeHandler struct {
	upgrader websocket.Upgrader
}

// NewRealtimeHandler creates a new realtime handler
func NewRealtimeHandler() *RealtimeHandler {
	return &RealtimeHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The API already allows all origins via CORS.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

const realtimeBasePrice = 170.0

// GetRealtime handles GET /api/v1/realtime?symbol=...&max_ticks=...
// (JSON poll shape kept for the existing frontend).
func (h *RealtimeHandler) GetRealtime(c *gin.Context) {
	symbol := c.DefaultQuery("symbol", "AAPL")
	maxTicks := 10
	if v := c.Query("max_ticks"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxTicks = parsed
		}
	}

	now := time.Now()
	ticks := make([]models.Tick, maxTicks)
	for i := range ticks {
		ticks[i] = models.Tick{
			Time:  now.Add(time.Duration(i) * time.Second).Format(time.RFC3339),
			Price: roundCents(realtimeBasePrice + rand.Float64()*2 - 1),
		}
	}

	c.JSON(http.StatusOK, models.RealtimeResponse{
		Result: "success",
		Symbol: symbol,
		Ticks:  ticks,
	})
}

// StreamRealtime handles GET /api/v1/realtime/ws: upgrades to a websocket and
// pushes one tick per second until the client goes away.
func (h *RealtimeHandler) StreamRealtime(c *gin.Context) {
	symbol := c.DefaultQuery("symbol", "AAPL")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("RealtimeHandler: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("RealtimeHandler: streaming ticks for symbol=%s", symbol)

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	price := realtimeBasePrice
	for range ticker.C {
		price = roundCents(price + rand.Float64()*0.5 - 0.25)
		tick := models.Tick{
			Time:  time.Now().Format(time.RFC3339),
			Price: price,
		}
		if err := conn.WriteJSON(tick); err != nil {
			log.Printf("RealtimeHandler: client disconnected (symbol=%s): %v", symbol, err)
			return
		}
	}
}

func roundCents(x float64) float64 {
	return float64(int(x*100+0.5)) / 100
}
