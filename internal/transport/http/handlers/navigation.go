package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/transport/http/middleware"
	"github.com/manish9869/onehealth-api/internal/usecase"
)

// NavigationHandler exposes the permission map and the filtered menu.
type NavigationHandler struct {
	navigation *usecase.NavigationService
	logger     *zap.Logger
}

// NewNavigationHandler builds a new navigation handler instance.
func NewNavigationHandler(navigation *usecase.NavigationService, logger *zap.Logger) *NavigationHandler {
	return &NavigationHandler{navigation: navigation, logger: logger}
}

// featurePermissionData matches the payload shape the dashboard consumes.
type featurePermissionData struct {
	FeaturePermission map[int]bool `json:"featurePermission"`
}

// UserPermissions godoc
// @Summary Feature permissions for the current user
// @Description Returns the map of feature ids the user may access.
// @Tags Navigation
// @Produce json
// @Success 200 {object} Envelope
// @Failure 401 {object} ErrorResponse
// @Router /feature-permission/user/permission [get]
func (h *NavigationHandler) UserPermissions(c *gin.Context) {
	perms, err := h.navigation.PermissionsFor(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.logger.Error("permission lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "permission lookup failed"))
		return
	}

	c.JSON(http.StatusOK, OK(featurePermissionData{FeaturePermission: perms}))
}

// Menu godoc
// @Summary Admin menu for the current user
// @Description Returns the navigation tree filtered to granted features.
// @Tags Navigation
// @Produce json
// @Success 200 {object} Envelope{data=[]NavigationNodeView}
// @Failure 401 {object} ErrorResponse
// @Router /navigation [get]
func (h *NavigationHandler) Menu(c *gin.Context) {
	menu, err := h.navigation.MenuFor(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.logger.Error("menu resolution failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "menu resolution failed"))
		return
	}

	views := NewNavigationView(menu)
	if views == nil {
		views = []NavigationNodeView{}
	}
	c.JSON(http.StatusOK, OK(views))
}

// MenuEntries godoc
// @Summary Renderable menu entries for the current user
// @Description Returns the filtered menu as renderable entries. Links are
// @Description prefixed with the optional layout query parameter.
// @Tags Navigation
// @Produce json
// @Param layout query string false "Layout path prefix for links"
// @Success 200 {object} Envelope{data=[]MenuEntryView}
// @Failure 401 {object} ErrorResponse
// @Router /navigation/menu [get]
func (h *NavigationHandler) MenuEntries(c *gin.Context) {
	layout := c.Query("layout")

	entries, err := h.navigation.MenuEntriesFor(c.Request.Context(), middleware.GetUserID(c), layout)
	if err != nil {
		h.logger.Error("menu resolution failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "menu resolution failed"))
		return
	}

	views := NewMenuEntriesView(entries)
	if views == nil {
		views = []MenuEntryView{}
	}
	c.JSON(http.StatusOK, OK(views))
}
