package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// MatchRule assigns a category to new transactions without one
// when their description matches the glob pattern.
type MatchRule struct {
	DefaultModel
	OwnerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Priority   uint
	Match      string    `gorm:"not null"`
	CategoryID uuid.UUID `gorm:"type:uuid;index;not null"`
}

func (r *MatchRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	return nil
}

// Validate checks the user editable fields of the match rule.
func (r MatchRule) Validate() error {
	if strings.TrimSpace(r.Match) == "" {
		return ErrMatchRuleMatchEmpty
	}

	if r.CategoryID == uuid.Nil {
		return ErrMatchRuleCategoryNotSet
	}

	return nil
}

// Matches reports if the description matches the pattern of the rule.
// Matching is case insensitive.
func (r MatchRule) Matches(description string) bool {
	return glob.Glob(strings.ToLower(r.Match), strings.ToLower(description))
}

// MatchRules returns the match rules of an owner in the order they are applied.
func MatchRules(db *gorm.DB, owner uuid.UUID) ([]MatchRule, error) {
	var rules []MatchRule
	err := db.Scopes(OwnedBy(owner)).Order("priority ASC, created_at ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}

	return rules, nil
}

// MatchCategory returns the category of the first rule matching the description.
func MatchCategory(rules []MatchRule, description string) (uuid.UUID, bool) {
	for _, rule := range rules {
		if rule.Matches(description) {
			return rule.CategoryID, true
		}
	}
	return uuid.Nil, false
}
