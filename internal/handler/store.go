package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tradeagent/internal/store"
)

type Store struct {
	store *store.Store
	log   *logrus.Logger
}

func NewStore(s *store.Store, log *logrus.Logger) *Store {
	return &Store{store: s, log: log}
}

func (h *Store) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrUnknownCollection):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Unknown collection"})
	case errors.Is(err, store.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	default:
		h.log.WithError(err).Error("store operation failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// List serves GET /api/store/:collection.
func (h *Store) List(ctx *gin.Context) {
	records, err := h.store.List(ctx.Param("collection"))
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, records)
}

// Get serves GET /api/store/:collection/:id.
func (h *Store) Get(ctx *gin.Context) {
	rec, err := h.store.Get(ctx.Param("collection"), ctx.Param("id"))
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rec)
}

// Put serves POST /api/store/:collection and PUT
// /api/store/:collection/:id. The body is the opaque record payload.
func (h *Store) Put(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil || !json.Valid(body) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, err := h.store.Put(ctx.Param("collection"), ctx.Param("id"), body)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"id": id})
}

// Delete serves DELETE /api/store/:collection/:id.
func (h *Store) Delete(ctx *gin.Context) {
	if err := h.store.Delete(ctx.Param("collection"), ctx.Param("id")); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}
