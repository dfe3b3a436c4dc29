package models

import (
	"strings"

	"gorm.io/gorm"
)

// RenameRule is a single payee renaming rule. All enabled rules are
// applied to a payee in list order (ascending Position), each rule's
// output feeding the next.
//
// Matching is case-insensitive regardless of IsRegex.
type RenameRule struct {
	DefaultModel
	Position    uint `gorm:"index"` // List order. Lower positions are applied first
	Pattern     string
	Replacement string
	IsRegex     bool
	Enabled     bool
}

func (r *RenameRule) BeforeSave(_ *gorm.DB) error {
	r.Pattern = strings.TrimSpace(r.Pattern)

	if r.Pattern == "" {
		return ErrRulePatternEmpty
	}

	return nil
}
