package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/services"
)

type SettingsController struct {
	catalog SettingsCatalog
}

func NewSettingsController(catalog SettingsCatalog) *SettingsController {
	return &SettingsController{catalog: catalog}
}

// UpdateSettingRequest is the body of PUT /api/settings/:name.
type UpdateSettingRequest struct {
	Value *string `json:"value"`
}

// ListSettings handles GET /api/settings
func (sc *SettingsController) ListSettings(c *gin.Context) {
	settings, err := sc.catalog.ListSettings(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSetting handles PUT /api/settings/:name
func (sc *SettingsController) UpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		respondBadRequest(c, "value is required")
		return
	}

	name := c.Param("name")
	err := sc.catalog.UpsertSetting(c.Request.Context(), name, *req.Value)
	if errors.Is(err, services.ErrEmptySettingName) {
		respondBadRequest(c, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, "update setting")
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "value": *req.Value})
}
