package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// ListScriptsHandler lists every loaded script.
func (api *API) ListScriptsHandler(c *gin.Context) {
	scripts := api.engine.ListScripts()
	c.JSON(http.StatusOK, gin.H{
		"scripts": scripts,
		"total":   len(scripts),
	})
}

// PutScriptHandler creates a script or reconciles it with a full upload.
// Request Body: model.ScriptDefinition
func (api *API) PutScriptHandler(c *gin.Context) {
	scriptID := c.Param("scriptId")

	var def model.ScriptDefinition
	if !BindJSON(c, &def) {
		return
	}

	if result := ValidateScriptDefinition(scriptID, &def); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	result, err := api.engine.PutScript(def)
	if err != nil {
		SendEngineError(c, "store script", scriptID, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

// GetScriptHandler returns the summary of a script's current revision.
func (api *API) GetScriptHandler(c *gin.Context) {
	scriptID := c.Param("scriptId")

	info, err := api.engine.GetScript(scriptID)
	if err != nil {
		SendEngineError(c, "get script", scriptID, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// DeleteScriptHandler removes a script.
func (api *API) DeleteScriptHandler(c *gin.Context) {
	scriptID := c.Param("scriptId")

	if err := api.engine.DeleteScript(scriptID); err != nil {
		SendEngineError(c, "delete script", scriptID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Script '" + scriptID + "' deleted"})
}

// GetScriptStatisticsHandler returns the class statistics of a script.
func (api *API) GetScriptStatisticsHandler(c *gin.Context) {
	scriptID := c.Param("scriptId")

	stats, err := api.engine.Statistics(scriptID)
	if err != nil {
		SendEngineError(c, "compute statistics", scriptID, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
