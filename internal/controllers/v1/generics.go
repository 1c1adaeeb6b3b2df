package v1

import (
	"fmt"
	"strings"

	"github.com/fintrack/backend/internal/auth"
	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// owned loads the resource with the ID from the request URI.
//
// Resources of other owners are reported as not found.
func owned[R models.Account | models.Budget | models.MatchRule](c *gin.Context, db *gorm.DB) (R, error) {
	var resource R

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return resource, err
	}

	err = db.WithContext(c.Request.Context()).
		Scopes(models.OwnedBy(auth.Owner(c))).
		First(&resource, "id = ?", uri.ID.UUID).Error
	return resource, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// search returns a scope matching the term case-insensitively
// against any of the columns.
func search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}

		pattern := fmt.Sprintf("%%%s%%", likeEscaper.Replace(strings.ToLower(term)))

		conditions := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, column := range columns {
			conditions = append(conditions, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column))
			args = append(args, pattern)
		}

		return db.Where(fmt.Sprintf("(%s)", strings.Join(conditions, " OR ")), args...)
	}
}

// without returns fields without the excluded ones.
func without(fields []string, excluded ...string) []string {
	result := make([]string, 0, len(fields))
	for _, field := range fields {
		keep := true
		for _, e := range excluded {
			if field == e {
				keep = false
				break
			}
		}

		if keep {
			result = append(result, field)
		}
	}

	return result
}
