package v1

import (
	"net/http"

	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Accounts     string `json:"accounts" example:"https://example.com/api/v1/accounts"`            // URL of Account collection endpoint
	Categories   string `json:"categories" example:"https://example.com/api/v1/categories"`        // URL of Category collection endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"`    // URL of Transaction collection endpoint
	Export       string `json:"export" example:"https://example.com/api/v1/transactions/export"`   // URL of the transaction export
	Budgets      string `json:"budgets" example:"https://example.com/api/v1/budgets"`              // URL of Budget collection endpoint
	MatchRules   string `json:"matchRules" example:"https://example.com/api/v1/match-rules"`       // URL of Match Rule collection endpoint
	Dashboard    string `json:"dashboard" example:"https://example.com/api/v1/dashboard/overview"` // URL of the dashboard overview
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Accounts:     url + "/v1/accounts",
			Categories:   url + "/v1/categories",
			Transactions: url + "/v1/transactions",
			Export:       url + "/v1/transactions/export",
			Budgets:      url + "/v1/budgets",
			MatchRules:   url + "/v1/match-rules",
			Dashboard:    url + "/v1/dashboard/overview",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
