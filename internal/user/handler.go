// File: internal/user/handler.go
package user

import (
	"errors"
	"strconv"

	"nopea_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for account operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	userGroup := router.Group("/users")
	{
		userGroup.POST("/register", h.register)
		userGroup.GET("", h.list)
		userGroup.GET("/:id", h.getByID)
		userGroup.PATCH("/:id/password", h.changePassword)
		userGroup.PATCH("/:id/role", h.updateRole)
		userGroup.PUT("/:id/location", h.updateLocation)
		userGroup.POST("/:id/deactivate", h.deactivate)
		userGroup.POST("/:id/activate", h.activate)
		userGroup.DELETE("/:id", h.delete)
	}
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("User registration: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	usr, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "User registered successfully.", ToUserResponse(usr))
}

func (h *Handler) list(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	users, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Users retrieved successfully.", ToUserResponses(users))
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	usr, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User retrieved successfully.", ToUserResponse(usr))
}

func (h *Handler) changePassword(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	usr, err := h.service.ChangePassword(c.Request.Context(), id, req.NewPassword)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Password changed successfully.", ToUserResponse(usr))
}

func (h *Handler) updateRole(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	usr, err := h.service.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Role updated successfully.", ToUserResponse(usr))
}

func (h *Handler) updateLocation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	usr, err := h.service.UpdateLocation(c.Request.Context(), id, req.Latitude, req.Longitude)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Location updated successfully.", ToUserResponse(usr))
}

func (h *Handler) deactivate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	usr, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User deactivated.", ToUserResponse(usr))
}

func (h *Handler) activate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	usr, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User activated.", ToUserResponse(usr))
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) parseID(c *gin.Context) (uint64, bool) {
	paramID := c.Param("id")
	id, err := strconv.ParseUint(paramID, 10, 64)
	if err != nil || id == 0 {
		h.logger.Warn("Invalid user ID format in URL parameter", zap.String("paramID", paramID))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid user ID format."))
		return 0, false
	}
	return id, true
}
