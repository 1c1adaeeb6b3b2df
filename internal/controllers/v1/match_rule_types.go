package v1

import (
	"fmt"
	"slices"

	"github.com/fintrack/backend/internal/models"
	ez_uuid "github.com/fintrack/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRuleEditable represents all user configurable parameters
type MatchRuleEditable struct {
	Priority   uint      `json:"priority" example:"3"`                                      // The priority of the match rule. Rules with lower priority are applied first
	Match      string    `json:"match" example:"Bank*"`                                     // The matching applied to the description of new transactions. * matches any text
	CategoryID uuid.UUID `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // The category to set for matching transactions
}

func (editable MatchRuleEditable) model() models.MatchRule {
	return models.MatchRule{
		Priority:   editable.Priority,
		Match:      editable.Match,
		CategoryID: editable.CategoryID,
	}
}

// merge copies the fields that are set in the request to the match rule.
func (editable MatchRuleEditable) merge(rule models.MatchRule, fields []string) models.MatchRule {
	for _, field := range fields {
		switch field {
		case "Priority":
			rule.Priority = editable.Priority
		case "Match":
			rule.Match = editable.Match
		case "CategoryID":
			rule.CategoryID = editable.CategoryID
		}
	}

	return rule
}

type MatchRuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/match-rules/95685c82-53c6-455d-b235-f49960b73b21"` // The match rule itself
}

type MatchRule struct {
	models.DefaultModel
	MatchRuleEditable
	Links MatchRuleLinks `json:"links"`
}

func newMatchRule(c *gin.Context, model models.MatchRule) MatchRule {
	url := c.GetString(string(models.DBContextURL))

	return MatchRule{
		DefaultModel: model.DefaultModel,
		MatchRuleEditable: MatchRuleEditable{
			Priority:   model.Priority,
			Match:      model.Match,
			CategoryID: model.CategoryID,
		},
		Links: MatchRuleLinks{
			Self: fmt.Sprintf("%s/v1/match-rules/%s", url, model.ID),
		},
	}
}

type MatchRuleListResponse struct {
	Data       []MatchRule `json:"data"`                                                          // List of match rules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MatchRuleCreateResponse struct {
	Data  []MatchRuleResponse `json:"data"`                                                          // List of created match rules or their respective error
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MatchRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MatchRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MatchRuleResponse struct {
	Data  *MatchRule `json:"data"`                                                          // Data for the match rule
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MatchRuleQueryFilter struct {
	Priority   uint         `form:"priority"` // By priority
	Match      string       `form:"match"`    // By match
	CategoryID ez_uuid.UUID `form:"category"` // By ID of the category
	Offset     uint         `form:"offset"`   // The offset of the first match rule returned. Defaults to 0.
	Limit      int          `form:"limit"`    // Maximum number of match rules to return. Defaults to 50.
}

func (f MatchRuleQueryFilter) scope(owner uuid.UUID, setFields []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(models.OwnedBy(owner))

		if slices.Contains(setFields, "Priority") {
			db = db.Where("match_rules.priority = ?", f.Priority)
		}

		if slices.Contains(setFields, "Match") {
			db = db.Scopes(search(f.Match, `match_rules."match"`))
		}

		if f.CategoryID.IsSet() {
			db = db.Where("match_rules.category_id = ?", f.CategoryID.UUID)
		}

		return db
	}
}
