package models

import "errors"

var (
	ErrGeneral               = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound      = errors.New("there is no")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique")
	ErrRulePatternEmpty      = errors.New("the rule pattern must not be empty")
)
