package handler

import (
	"net/http"

	"argenbiz/internal/apierror"
	"argenbiz/internal/dto"
	"argenbiz/internal/middleware"
	"argenbiz/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SiteContentHandler struct{ svc service.SiteContentService }

func NewSiteContentHandler(svc service.SiteContentService) *SiteContentHandler {
	return &SiteContentHandler{svc: svc}
}

// GetPublic serves a content block without authentication. The optional
// tenant_id query parameter selects a tenant's override of the key;
// without it only global content is visible.
func (h *SiteContentHandler) GetPublic(c *gin.Context) {
	key := c.Param("key")
	var tenantID *uuid.UUID
	if raw := c.Query("tenant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("tenant_id invalido"))
			return
		}
		tenantID = &id
	}

	resp, err := h.svc.GetPublic(c.Request.Context(), tenantID, key)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SiteContentHandler) ListOwn(c *gin.Context) {
	resp, err := h.svc.ListOwn(c.Request.Context(), middleware.GetScope(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SiteContentHandler) Upsert(c *gin.Context) {
	key := c.Param("key")
	var req dto.UpsertSiteContentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Upsert(c.Request.Context(), middleware.GetScope(c), key, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SiteContentHandler) Delete(c *gin.Context) {
	key := c.Param("key")
	if err := h.svc.Delete(c.Request.Context(), middleware.GetScope(c), key); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
