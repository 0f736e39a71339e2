package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tradeagent/internal/chat"
	"tradeagent/internal/model"
)

type Chat struct {
	assembler *chat.Assembler
	relay     *chat.Relay
	log       *logrus.Logger
}

func NewChat(assembler *chat.Assembler, relay *chat.Relay, log *logrus.Logger) *Chat {
	return &Chat{assembler: assembler, relay: relay, log: log}
}

// Stream serves POST /api/chat: assembles the market-aware system
// prompt, opens the gateway stream, and relays SSE bytes verbatim.
func (h *Chat) Stream(ctx *gin.Context) {
	var req model.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c := ctx.Request.Context()
	systemPrompt := h.assembler.SystemPrompt(c, req)

	upstream, err := h.relay.Open(c, systemPrompt, req.Messages)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrRateLimited):
			ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again shortly."})
		case errors.Is(err, chat.ErrQuotaExhausted):
			ctx.JSON(http.StatusPaymentRequired, gin.H{"error": "AI credits exhausted. Please add credits in Settings."})
		default:
			h.log.WithError(err).Error("gateway open failed")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "AI service unavailable"})
		}
		return
	}
	defer upstream.Close()

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Status(http.StatusOK)

	buf := make([]byte, 4096)
	for {
		select {
		case <-c.Done():
			// Client went away; the deferred Close tears down the
			// upstream request.
			return
		default:
		}
		n, err := upstream.Read(buf)
		if n > 0 {
			if _, werr := ctx.Writer.Write(buf[:n]); werr != nil {
				return
			}
			ctx.Writer.Flush()
		}
		if err != nil {
			if err != io.EOF {
				h.log.WithError(err).Debug("gateway stream ended abnormally")
			}
			return
		}
	}
}
