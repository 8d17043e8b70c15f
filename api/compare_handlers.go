package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CompareTextsRequest is the body of a text comparison request.
type CompareTextsRequest struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

// ValidateCompareTexts requires both texts to contain something besides whitespace
func ValidateCompareTexts(req CompareTextsRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if strings.TrimSpace(req.Text) == "" {
		result.AddError("text", "Text is required")
	}
	if strings.TrimSpace(req.Reference) == "" {
		result.AddError("reference", "Reference text is required")
	}
	return result
}

func (api *API) bindCompareRequest(c *gin.Context) (CompareTextsRequest, bool) {
	var req CompareTextsRequest
	if !BindJSON(c, &req) {
		return req, false
	}
	if result := ValidateCompareTexts(req); result.HasErrors() {
		SendValidationError(c, result)
		return req, false
	}
	return req, true
}

// LongestRunHandler returns the longest phonetic word run the text shares
// with the reference.
// Request Body: CompareTextsRequest
func (api *API) LongestRunHandler(c *gin.Context) {
	req, ok := api.bindCompareRequest(c)
	if !ok {
		return
	}

	cmp := api.engine.CompareTexts(req.Text, req.Reference)
	c.JSON(http.StatusOK, gin.H{
		"longest_run":     cmp.LongestRun,
		"words":           cmp.Words,
		"reference_words": cmp.ReferenceWords,
	})
}

// RunLengthsHandler returns every shared run longer than one word.
// Request Body: CompareTextsRequest
func (api *API) RunLengthsHandler(c *gin.Context) {
	req, ok := api.bindCompareRequest(c)
	if !ok {
		return
	}

	cmp := api.engine.CompareTexts(req.Text, req.Reference)
	c.JSON(http.StatusOK, gin.H{
		"run_lengths":     cmp.RunLengths,
		"words":           cmp.Words,
		"reference_words": cmp.ReferenceWords,
	})
}
