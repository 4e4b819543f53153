package handler

import (
	"net/http"

	"argenbiz/internal/dto"
	"argenbiz/internal/middleware"
	"argenbiz/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	svc  service.SessionService
	seed service.SeedService
}

func NewSessionHandler(svc service.SessionService, seed service.SeedService) *SessionHandler {
	return &SessionHandler{svc: svc, seed: seed}
}

// Init godoc
// @Summary Inicializa la sesion del usuario, creando su negocio si no existe
// @Tags session
// @Accept json
// @Produce json
// @Param body body dto.InitSessionRequest false "Nombres propuestos para el bootstrap"
// @Success 200 {object} dto.SessionResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/session/init [post]
func (h *SessionHandler) Init(c *gin.Context) {
	var req dto.InitSessionRequest
	// Body is optional: an empty init resolves or bootstraps with defaults.
	_ = c.ShouldBindJSON(&req)

	resp, err := h.svc.Init(c.Request.Context(), middleware.GetScope(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTenant godoc
// @Summary Devuelve los datos del negocio del usuario
// @Tags session
// @Produce json
// @Success 200 {object} dto.TenantInfo
// @Failure 404 {object} apierror.APIError
// @Router /v1/tenant [get]
func (h *SessionHandler) GetTenant(c *gin.Context) {
	resp, err := h.svc.GetTenant(c.Request.Context(), middleware.GetScope(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateTenant godoc
// @Summary Actualiza los datos del negocio
// @Tags session
// @Accept json
// @Produce json
// @Param body body dto.UpdateTenantRequest true "Datos a actualizar"
// @Success 200 {object} dto.TenantInfo
// @Failure 400 {object} apierror.APIError
// @Router /v1/tenant [put]
func (h *SessionHandler) UpdateTenant(c *gin.Context) {
	var req dto.UpdateTenantRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.UpdateTenant(c.Request.Context(), middleware.GetScope(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SeedDemo godoc
// @Summary Carga datos de demostracion en el negocio
// @Tags session
// @Produce json
// @Success 202 {object} nil
// @Failure 409 {object} apierror.APIError
// @Router /v1/tenant/seed [post]
func (h *SessionHandler) SeedDemo(c *gin.Context) {
	if err := h.seed.SeedDemoData(c.Request.Context(), middleware.GetScope(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"detail": "datos demo cargados"})
}
