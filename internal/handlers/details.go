package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediassist/internal/clinic"
	"mediassist/internal/store"
	"mediassist/internal/utils"
)

// Operation codes carried in the request body's Type field.
const (
	TypeCreate = 1
	TypeUpdate = 2
	TypeList   = 4
	TypeDelete = 5
)

// ListView turns stored rows into the rows a list answers with.
type ListView[M any] func(c *gin.Context, rows []M) (any, error)

// DetailsHandler serves one kind's RPC endpoint, dispatching on Type.
type DetailsHandler[M any, P store.Entity[M]] struct {
	Kind  clinic.Kind
	Store store.Store[M]
	View  ListView[M]
	Log   *zap.Logger
}

// NewDetailsHandler creates a handler answering lists with the stored rows.
func NewDetailsHandler[M any, P store.Entity[M]](kind clinic.Kind, s store.Store[M], log *zap.Logger) *DetailsHandler[M, P] {
	return &DetailsHandler[M, P]{Kind: kind, Store: s, Log: log.With(zap.String("kind", string(kind)))}
}

type envelope struct {
	Type *int `json:"Type"`
}

// Handle is the gin handler for POST /<Kind>Details.
func (h *DetailsHandler[M, P]) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if env.Type == nil {
		utils.BadRequest(c, "Type is required")
		return
	}

	switch *env.Type {
	case TypeList:
		h.list(c)
		return
	case TypeCreate, TypeUpdate, TypeDelete:
	default:
		utils.BadRequest(c, fmt.Sprintf("Unsupported Type %d", *env.Type))
		return
	}

	var rec M
	if err := json.Unmarshal(body, &rec); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	switch *env.Type {
	case TypeCreate:
		h.create(c, &rec)
	case TypeUpdate:
		h.update(c, &rec)
	case TypeDelete:
		h.delete(c, P(&rec).GetID())
	}
}

func (h *DetailsHandler[M, P]) list(c *gin.Context) {
	rows, err := h.Store.List(c.Request.Context())
	if err != nil {
		h.Log.Error("list failed", zap.Error(err))
		utils.InternalServerError(c, "Failed to list "+h.Kind.Noun()+" records")
		return
	}
	if rows == nil {
		rows = []M{}
	}
	if h.View == nil {
		utils.Success(c, "", rows)
		return
	}
	view, err := h.View(c, rows)
	if err != nil {
		h.Log.Error("list view failed", zap.Error(err))
		utils.InternalServerError(c, "Failed to list "+h.Kind.Noun()+" records")
		return
	}
	utils.Success(c, "", view)
}

func (h *DetailsHandler[M, P]) create(c *gin.Context, rec *M) {
	if err := utils.Validate(rec); err != nil {
		utils.Rejected(c, utils.FormatValidationError(err))
		return
	}
	if err := h.Store.Create(c.Request.Context(), rec); err != nil {
		h.Log.Error("create failed", zap.Error(err))
		utils.InternalServerError(c, "Failed to create "+h.Kind.Noun())
		return
	}
	h.Log.Debug("created", zap.Int64("id", P(rec).GetID()))
	utils.Success(c, h.Kind.Noun()+" created successfully", rec)
}

func (h *DetailsHandler[M, P]) update(c *gin.Context, rec *M) {
	if P(rec).GetID() == 0 {
		utils.Rejected(c, h.Kind.IDField()+" is required")
		return
	}
	if err := utils.Validate(rec); err != nil {
		utils.Rejected(c, utils.FormatValidationError(err))
		return
	}
	if err := h.Store.Update(c.Request.Context(), rec); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Rejected(c, h.Kind.Noun()+" not found")
			return
		}
		h.Log.Error("update failed", zap.Error(err))
		utils.InternalServerError(c, "Failed to update "+h.Kind.Noun())
		return
	}
	utils.Success(c, h.Kind.Noun()+" updated successfully", rec)
}

func (h *DetailsHandler[M, P]) delete(c *gin.Context, id int64) {
	if id == 0 {
		utils.Rejected(c, h.Kind.IDField()+" is required")
		return
	}
	if err := h.Store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Rejected(c, h.Kind.Noun()+" not found")
			return
		}
		h.Log.Error("delete failed", zap.Error(err))
		utils.InternalServerError(c, "Failed to delete "+h.Kind.Noun())
		return
	}
	c.JSON(http.StatusOK, utils.ResponseData{Success: true, Message: h.Kind.Noun() + " deleted successfully"})
}
