package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// MatchPhrasesRequest is the body of a phrase matching request.
type MatchPhrasesRequest struct {
	Files    []model.MediaFile `json:"files"`
	Strategy string            `json:"strategy,omitempty"` // empty selects the configured default
}

// MatchActionsRequest is the body of an action matching request.
type MatchActionsRequest struct {
	Files []model.MediaFile `json:"files"`
}

// MatchPhrasesHandler finds the spoken phrase of every file.
// Request Body: MatchPhrasesRequest
func (api *API) MatchPhrasesHandler(c *gin.Context) {
	startTime := time.Now()
	scriptID := c.Param("scriptId")

	var req MatchPhrasesRequest
	if !BindJSON(c, &req) {
		return
	}

	result := ValidateMatchFiles(req.Files)
	result.Errors = append(result.Errors, ValidateStrategy(req.Strategy).Errors...)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	resp, err := api.engine.MatchPhrases(c.Request.Context(), scriptID, req.Files, req.Strategy)
	if err != nil {
		SendEngineError(c, "phrase matching", scriptID, err)
		return
	}

	event := model.MatchEvent{
		ScriptID:     scriptID,
		Kind:         model.MatchKindPhrases,
		Strategy:     resp.Strategy,
		FileCount:    len(resp.Results),
		ResponseTime: time.Since(startTime),
	}
	for _, r := range resp.Results {
		if r.Matched() {
			event.MatchedCount++
			event.ScoreSum += r.BestMatch.Accuracy
		}
	}
	api.analytics.TrackMatchEvent(event)

	c.JSON(http.StatusOK, resp)
}

// MatchActionsHandler finds the script action shown in every file.
// Request Body: MatchActionsRequest
func (api *API) MatchActionsHandler(c *gin.Context) {
	startTime := time.Now()
	scriptID := c.Param("scriptId")

	var req MatchActionsRequest
	if !BindJSON(c, &req) {
		return
	}

	if result := ValidateMatchFiles(req.Files); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	resp, err := api.engine.MatchActions(c.Request.Context(), scriptID, req.Files)
	if err != nil {
		SendEngineError(c, "action matching", scriptID, err)
		return
	}

	event := model.MatchEvent{
		ScriptID:     scriptID,
		Kind:         model.MatchKindActions,
		FileCount:    len(resp.Results),
		ResponseTime: time.Since(startTime),
	}
	for _, r := range resp.Results {
		if r.Matched() {
			event.MatchedCount++
			event.ScoreSum += r.BestMatch.Similarity
		}
	}
	api.analytics.TrackMatchEvent(event)

	c.JSON(http.StatusOK, resp)
}
