package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrConflict         = errors.New("the resource was modified by a concurrent request, please try again")
)

// ValidationError is returned when a request violates a rule of the domain.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrAmountNotPositive        ValidationError = "the amount must be greater than zero"
	ErrAmountPrecision          ValidationError = "the amount must not have more than two decimal places"
	ErrAmountTooLarge           ValidationError = "the amount must be less than 10000000000"
	ErrTransactionKindInvalid   ValidationError = "the transaction kind must be one of income, expense"
	ErrTransactionDateNotSet    ValidationError = "the transaction date must be set"
	ErrDescriptionLength        ValidationError = "the description must be between 1 and 255 characters long"
	ErrNameLength               ValidationError = "the name must be between 1 and 100 characters long"
	ErrAccountTypeInvalid       ValidationError = "the account type must be one of checking, savings, credit, cash"
	ErrCurrencyInvalid          ValidationError = "the currency must be a three letter ISO 4217 code"
	ErrInitialBalanceInvalid    ValidationError = "the initial balance must not be negative and not have more than two decimal places"
	ErrAccountInactive          ValidationError = "the account is inactive, its transactions can not be changed"
	ErrAccountIDNotSet          ValidationError = "the accountId must be set"
	ErrCategoryNameNotUnique    ValidationError = "the category name must be unique"
	ErrCategoryDefault          ValidationError = "default categories can not be modified or deleted"
	ErrColorInvalid             ValidationError = "the color must be a hex color code like #FF6B6B"
	ErrAllocationInvalid        ValidationError = "the allocated amount must not be negative and not have more than two decimal places"
	ErrAllocationCategoryNotSet ValidationError = "the categoryId of an allocation must be set"
	ErrAllocationNotUnique      ValidationError = "a budget can only have one allocation per category"
	ErrBudgetAllocationsEmpty   ValidationError = "a budget must have at least one allocation"
	ErrBudgetMonthNotSet        ValidationError = "the budget month must be set"
	ErrMatchRuleMatchEmpty      ValidationError = "the match pattern must not be empty"
	ErrMatchRuleCategoryNotSet  ValidationError = "the categoryId of a match rule must be set"
)
