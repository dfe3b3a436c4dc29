// Package aggregate computes the read-side analytics: spending per
// category, rollups along the taxonomy, subscription totals, monthly
// series and top payees.
//
// Everything is re-derived on demand from the transaction and category
// lists, there are no materialized aggregates. All functions yield empty
// results for empty input.
package aggregate

import (
	"sort"

	"github.com/ledgerlight/backend/internal/hierarchy"
	"github.com/ledgerlight/backend/internal/models"
	"github.com/ledgerlight/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Uncategorized is the bucket for transactions without a category.
const Uncategorized = "Uncategorized"

// CategoryTotal is the spending attributed to one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Color    string          `json:"color"`
	Total    decimal.Decimal `json:"total"`
}

// CategoryTotals sums the spending per category. Only outflows count;
// amounts are reported as absolute values. Transactions without a
// category land in the Uncategorized bucket. Results are sorted by total,
// highest first.
func CategoryTotals(transactions []models.Transaction, categories []models.Category) []CategoryTotal {
	totals := map[string]decimal.Decimal{}

	for _, t := range transactions {
		if !t.Amount.IsNegative() {
			continue
		}

		name := t.Category
		if name == "" {
			name = Uncategorized
		}

		totals[name] = totals[name].Add(t.Amount.Abs())
	}

	result := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		result = append(result, CategoryTotal{
			Category: name,
			Color:    hierarchy.Color(categories, name),
			Total:    total,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Total.Equal(result[j].Total) {
			return result[i].Total.GreaterThan(result[j].Total)
		}
		return result[i].Category < result[j].Category
	})

	return result
}

// RootRollup sums the spending per root category, each root including its
// entire subtree. Roots appear in taxonomy order; categories that do not
// resolve in the current taxonomy count as their own root and are
// appended after the known roots, the Uncategorized bucket last.
func RootRollup(transactions []models.Transaction, categories []models.Category) []CategoryTotal {
	totals := map[string]decimal.Decimal{}
	var extras []string

	for _, t := range transactions {
		if !t.Amount.IsNegative() {
			continue
		}

		root := Uncategorized
		if t.Category != "" {
			root = hierarchy.Root(categories, t.Category)
		}

		if _, ok := totals[root]; !ok && !isRoot(categories, root) && root != Uncategorized {
			extras = append(extras, root)
		}

		totals[root] = totals[root].Add(t.Amount.Abs())
	}

	var result []CategoryTotal
	for _, c := range hierarchy.Roots(categories) {
		total, ok := totals[c.Name]
		if !ok {
			continue
		}

		result = append(result, CategoryTotal{Category: c.Name, Color: c.Color, Total: total})
	}

	for _, name := range extras {
		result = append(result, CategoryTotal{
			Category: name,
			Color:    hierarchy.Color(categories, name),
			Total:    totals[name],
		})
	}

	if total, ok := totals[Uncategorized]; ok {
		result = append(result, CategoryTotal{
			Category: Uncategorized,
			Color:    models.DefaultColor,
			Total:    total,
		})
	}

	return result
}

func isRoot(categories []models.Category, name string) bool {
	for _, c := range categories {
		if c.Name == name {
			return c.Parent == nil
		}
	}

	return false
}

// SubscriptionTotal sums the spending on subscription categories. The
// subscription flag is the resolved, inherited value: a child of a
// subscription category counts even if it never sets the flag itself.
func SubscriptionTotal(transactions []models.Transaction, categories []models.Category) decimal.Decimal {
	total := decimal.Zero

	for _, t := range transactions {
		if !t.Amount.IsNegative() || t.Category == "" {
			continue
		}

		if hierarchy.IsSubscription(categories, t.Category) {
			total = total.Add(t.Amount.Abs())
		}
	}

	return total
}

// MonthBucket is the income, spending and net sum of one calendar month.
type MonthBucket struct {
	Month    types.Month     `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Spending decimal.Decimal `json:"spending"`
	Net      decimal.Decimal `json:"net"`
}

// MonthlySeries groups transactions by calendar month, sorted
// chronologically. Months are taken from the transaction dates as
// imported, no timezone normalization is applied.
func MonthlySeries(transactions []models.Transaction) []MonthBucket {
	buckets := map[string]*MonthBucket{}

	for _, t := range transactions {
		month := types.MonthOf(t.Date)

		bucket, ok := buckets[month.String()]
		if !ok {
			bucket = &MonthBucket{Month: month}
			buckets[month.String()] = bucket
		}

		if t.Amount.IsNegative() {
			bucket.Spending = bucket.Spending.Add(t.Amount.Abs())
		} else {
			bucket.Income = bucket.Income.Add(t.Amount)
		}

		bucket.Net = bucket.Net.Add(t.Amount)
	}

	result := make([]MonthBucket, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Month.Before(result[j].Month)
	})

	return result
}

// PayeeTotal is the spending attributed to one payee.
type PayeeTotal struct {
	Payee string          `json:"payee"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// TopPayees sums the spending per payee, highest first, truncated to n.
//
// Grouping uses the raw payee as imported, not the renamed one, so a
// merchant with a renaming rule in effect shows up fragmented here while
// other views use the display name. This mirrors the historical behavior
// and is kept until the desired behavior is confirmed.
func TopPayees(transactions []models.Transaction, n int) []PayeeTotal {
	totals := map[string]*PayeeTotal{}

	for _, t := range transactions {
		if !t.Amount.IsNegative() {
			continue
		}

		entry, ok := totals[t.Payee]
		if !ok {
			entry = &PayeeTotal{Payee: t.Payee}
			totals[t.Payee] = entry
		}

		entry.Total = entry.Total.Add(t.Amount.Abs())
		entry.Count++
	}

	result := make([]PayeeTotal, 0, len(totals))
	for _, entry := range totals {
		result = append(result, *entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Total.Equal(result[j].Total) {
			return result[i].Total.GreaterThan(result[j].Total)
		}
		return result[i].Payee < result[j].Payee
	})

	if n > 0 && len(result) > n {
		result = result[:n]
	}

	return result
}

// SavingsProgress reports the sum of transactions marked as savings
// against the configured goal.
type SavingsProgress struct {
	Saved decimal.Decimal `json:"saved"`
	Goal  decimal.Decimal `json:"goal"`
}

// Savings sums all transactions flagged as savings. Outflows into a
// savings account are stored as negative amounts but count towards the
// goal, so the absolute value is used.
func Savings(transactions []models.Transaction, goal decimal.Decimal) SavingsProgress {
	progress := SavingsProgress{Goal: goal}

	for _, t := range transactions {
		if !t.IsSaving {
			continue
		}

		progress.Saved = progress.Saved.Add(t.Amount.Abs())
	}

	return progress
}
