package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlight/backend/internal/httputil"
	"github.com/ledgerlight/backend/internal/models"
)

// RenameRuleEditable represents all user configurable parameters
type RenameRuleEditable struct {
	Pattern     string `json:"pattern" example:"^JOES GRILL.*"`        // Plain text or regular expression, depending on isRegex. Matching is case-insensitive either way
	Replacement string `json:"replacement" example:"Joe's Grill"`      // The text the matched part is replaced with
	IsRegex     bool   `json:"isRegex" example:"true" default:"false"` // Interpret the pattern as a regular expression?
	Enabled     bool   `json:"enabled" example:"true" default:"true"`  // Disabled rules are kept but not applied
}

// model returns the database resource for the API representation of the editable fields
func (editable RenameRuleEditable) model() models.RenameRule {
	return models.RenameRule{
		Pattern:     editable.Pattern,
		Replacement: editable.Replacement,
		IsRegex:     editable.IsRegex,
		Enabled:     editable.Enabled,
	}
}

type RenameRuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/rename-rules/95685c82-53c6-455d-b235-f49960b73b54"` // The rename rule itself
}

// RenameRule is the representation of a RenameRule in API v1.
type RenameRule struct {
	models.DefaultModel
	RenameRuleEditable
	Position uint            `json:"position" example:"0"` // Application order, lower positions are applied first
	Links    RenameRuleLinks `json:"links"`
}

// newRenameRule returns the API v1 representation of the resource
func newRenameRule(c *gin.Context, model models.RenameRule) RenameRule {
	url := httputil.RequestHost(c)

	return RenameRule{
		DefaultModel: model.DefaultModel,
		RenameRuleEditable: RenameRuleEditable{
			Pattern:     model.Pattern,
			Replacement: model.Replacement,
			IsRegex:     model.IsRegex,
			Enabled:     model.Enabled,
		},
		Position: model.Position,
		Links: RenameRuleLinks{
			Self: fmt.Sprintf("%s/v1/rename-rules/%s", url, model.ID),
		},
	}
}

type RenameRuleListResponse struct {
	Data  []RenameRule `json:"data"`  // List of rename rules in application order
	Error *string      `json:"error"` // The error, if any occurred
}

type RenameRuleCreateResponse struct {
	Error *string              `json:"error"` // The error, if any occurred
	Data  []RenameRuleResponse `json:"data"`  // List of created rename rules
}

func (r *RenameRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RenameRuleResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RenameRuleResponse struct {
	Error *string     `json:"error"` // The error, if any occurred for this rename rule
	Data  *RenameRule `json:"data"`  // The rename rule data, if creation was successful
}

// RulePreviewRequest applies the current rule list to a sample payee.
type RulePreviewRequest struct {
	Payee string `json:"payee" binding:"required" example:"JOES GRILL &/25-11-17"` // The raw payee to preview
}

// RulePreviewResponse is the outcome of applying all enabled rules.
type RulePreviewResponse struct {
	Error   *string  `json:"error"`                               // The error, if any occurred
	Payee   string   `json:"payee" example:"JOES GRILL &/25-11-17"` // The raw payee as sent
	Renamed string   `json:"renamed" example:"Joe's Grill"`       // The payee after all enabled rules were applied
	Pattern string   `json:"pattern" example:"JOES GRILL"`        // The extracted payee pattern
	Similar []string `json:"similar"`                             // Payees of existing transactions that are close to the sample
}
