// Package categorize coordinates the categorization flow: assigning a
// category to one transaction, finding similar transactions through payee
// pattern extraction, and bulk-applying the category with or without
// creating a renaming rule.
package categorize

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/ledgerlight/backend/internal/models"
	"github.com/ledgerlight/backend/internal/normalize"
)

// TransactionStore is the part of the persistence contract the
// categorization flow needs.
type TransactionStore interface {
	GetAll() ([]models.Transaction, error)
	GetOne(id uuid.UUID) (models.Transaction, error)
	UpdateOne(id uuid.UUID, fields map[string]any) error
	UpdateCategory(ids []uuid.UUID, category string) error
}

// RuleStore reads and writes the ordered renaming rule list as a whole.
type RuleStore interface {
	GetRules() ([]models.RenameRule, error)
	SaveRules([]models.RenameRule) error
}

// Choice is a follow-up action the user can take after categorizing a
// single transaction. Cancelling is expressed by not calling Resolve.
type Choice string

const (
	// ChoiceRule creates a renaming rule for the extracted pattern and
	// applies the category to all matching transactions.
	ChoiceRule Choice = "rule"
	// ChoiceBulk applies the category to all matching transactions
	// without creating a rule.
	ChoiceBulk Choice = "bulk"
)

// Decision describes the state after a single transaction was
// categorized: which similar transactions exist and which follow-up
// choices are available.
type Decision struct {
	Transaction models.Transaction   `json:"transaction"`
	Pattern     string               `json:"pattern"` // Extracted payee pattern, "" if none
	Similar     []models.Transaction `json:"similar"` // Other transactions matching the pattern with a different category
	HasRule     bool                 `json:"hasRule"` // An enabled rule already matches the payee
	Choices     []Choice             `json:"choices"` // Offered follow-ups, empty when there is nothing to bulk-apply
}

type Controller struct {
	transactions TransactionStore
	rules        RuleStore
}

func New(transactions TransactionStore, rules RuleStore) *Controller {
	return &Controller{
		transactions: transactions,
		rules:        rules,
	}
}

// Categorize sets the category on a single transaction and reports the
// available follow-up choices.
//
// The single-transaction update is persisted immediately, before any
// decision about similar transactions is made. When the payee yields no
// pattern, or no other transaction matches it, the flow ends here and no
// choices are offered.
func (c *Controller) Categorize(id uuid.UUID, category string) (Decision, error) {
	transaction, err := c.transactions.GetOne(id)
	if err != nil {
		return Decision{}, err
	}

	err = c.transactions.UpdateOne(id, map[string]any{"category": category})
	if err != nil {
		return Decision{}, err
	}
	transaction.Category = category

	decision := Decision{
		Transaction: transaction,
		Pattern:     normalize.ExtractPattern(transaction.Payee),
		Similar:     []models.Transaction{},
		Choices:     []Choice{},
	}

	if decision.Pattern == "" {
		return decision, nil
	}

	all, err := c.transactions.GetAll()
	if err != nil {
		return Decision{}, err
	}

	for _, other := range all {
		if other.ID == id || other.Category == category {
			continue
		}

		if normalize.ExtractPattern(other.Payee) == decision.Pattern {
			decision.Similar = append(decision.Similar, other)
		}
	}

	if len(decision.Similar) == 0 {
		return decision, nil
	}

	// Rules are read fresh for every decision so that a rule enabled or
	// disabled since the last lookup is honored
	rules, err := c.rules.GetRules()
	if err != nil {
		return Decision{}, err
	}

	decision.HasRule = normalize.HasMatchingRule(transaction.Payee, rules)

	if decision.HasRule {
		// Never offer to create a second rule with equivalent effect
		decision.Choices = []Choice{ChoiceBulk}
	} else {
		decision.Choices = []Choice{ChoiceRule, ChoiceBulk}
	}

	return decision, nil
}

// Resolve performs the chosen follow-up for a previous Categorize call.
//
// The match set is re-derived from the current store state instead of
// reusing the set reported by Categorize, so transactions imported or
// renamed in between are not missed. The bulk mutation is a single
// logical update: it either applies to the whole set or fails as one
// operation.
func (c *Controller) Resolve(id uuid.UUID, category string, choice Choice) error {
	transaction, err := c.transactions.GetOne(id)
	if err != nil {
		return err
	}

	pattern := normalize.ExtractPattern(transaction.Payee)
	if pattern == "" {
		return nil
	}

	if choice == ChoiceRule {
		// Rules are re-read here, not trusted from the earlier offer: a
		// rule enabled or created in between must not get an equivalent
		// sibling. In that case only the bulk update runs.
		rules, err := c.rules.GetRules()
		if err != nil {
			return err
		}

		if !normalize.HasMatchingRule(transaction.Payee, rules) {
			err = c.createPatternRule(pattern)
			if err != nil {
				return err
			}
		}
	} else if choice != ChoiceBulk {
		return fmt.Errorf("unknown categorization choice: %q", choice)
	}

	all, err := c.transactions.GetAll()
	if err != nil {
		return err
	}

	var ids []uuid.UUID
	for _, other := range all {
		if normalize.ExtractPattern(other.Payee) == pattern {
			ids = append(ids, other.ID)
		}
	}

	return c.transactions.UpdateCategory(ids, category)
}

// createPatternRule appends an enabled prefix rule for the pattern to the
// rule list.
func (c *Controller) createPatternRule(pattern string) error {
	rules, err := c.rules.GetRules()
	if err != nil {
		return err
	}

	rules = append(rules, models.RenameRule{
		Pattern:     "^" + regexp.QuoteMeta(pattern) + ".*",
		Replacement: pattern,
		IsRegex:     true,
		Enabled:     true,
	})

	return c.rules.SaveRules(rules)
}

// RenameInline renames a single transaction's payee and records the
// rename as an exact-match rule.
//
// The rule anchors on the entire original payee, not on the extracted
// pattern, so other transactions sharing the same pattern are not
// retroactively renamed unless their raw payee is identical.
func (c *Controller) RenameInline(id uuid.UUID, newPayee string) error {
	transaction, err := c.transactions.GetOne(id)
	if err != nil {
		return err
	}

	rules, err := c.rules.GetRules()
	if err != nil {
		return err
	}

	rules = append(rules, models.RenameRule{
		Pattern:     "^" + regexp.QuoteMeta(transaction.Payee) + "$",
		Replacement: newPayee,
		IsRegex:     true,
		Enabled:     true,
	})

	err = c.rules.SaveRules(rules)
	if err != nil {
		return err
	}

	return c.transactions.UpdateOne(id, map[string]any{"payee": newPayee})
}
