package importer

import (
	"strings"
	"time"

	"github.com/ledgerlight/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order when parsing the date cell.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
}

// Convert coerces raw CSV rows into transactions using the column
// mapping. Rows that do not produce both a valid date and a valid amount
// are dropped, not fatal: one broken line must not sink the batch.
func Convert(rows [][]string, mapping ColumnMapping) Result {
	result := Result{
		Transactions: make([]models.Transaction, 0, len(rows)),
	}

	for i, row := range rows {
		date, ok := parseDate(mapping.column(row, FieldDate))
		if !ok {
			log.Debug().Int("row", i).Msg("dropping row without parseable date")
			result.Dropped++
			continue
		}

		amount, ok := parseAmount(mapping.column(row, FieldAmount))
		if !ok {
			log.Debug().Int("row", i).Msg("dropping row without parseable amount")
			result.Dropped++
			continue
		}

		// A type column overrides the sign: "debit" means outflow,
		// "credit" means inflow
		kind := strings.ToLower(mapping.column(row, FieldType))
		if strings.Contains(kind, "debit") {
			amount = amount.Abs().Neg()
		} else if strings.Contains(kind, "credit") {
			amount = amount.Abs()
		}

		note := mapping.column(row, FieldDescription)
		if reference := strings.TrimSpace(mapping.column(row, FieldReference)); reference != "" {
			if note != "" {
				note += " "
			}
			note += reference
		}

		result.Transactions = append(result.Transactions, models.Transaction{
			Date:    date,
			Payee:   strings.TrimSpace(mapping.column(row, FieldPayee)),
			Amount:  amount,
			BankID:  strings.TrimSpace(mapping.column(row, FieldTransactionID)),
			Account: strings.TrimSpace(mapping.column(row, FieldAccount)),
			Note:    strings.TrimSpace(note),
		})
	}

	return result
}

func parseDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, cell); err == nil {
			return date, true
		}
	}

	return time.Time{}, false
}

// parseAmount parses a numeric cell. Currency symbols, thousands
// separators and other noise are stripped; only digits, the sign and the
// decimal separator survive.
func parseAmount(cell string) (decimal.Decimal, bool) {
	cell = strings.TrimSpace(cell)

	// Find the decimal separator: when both dot and comma are present
	// the later one wins, a lone dot or comma is the decimal separator,
	// anything else is a thousands separator.
	sep := -1
	dot := strings.LastIndex(cell, ".")
	comma := strings.LastIndex(cell, ",")
	switch {
	case dot >= 0 && comma >= 0:
		sep = dot
		if comma > dot {
			sep = comma
		}
	case comma >= 0 && strings.Count(cell, ",") == 1:
		sep = comma
	case dot >= 0 && strings.Count(cell, ".") == 1:
		sep = dot
	}

	var b strings.Builder
	for i, r := range cell {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case i == sep:
			b.WriteRune('.')
		case r == '-' || r == '+':
			if b.Len() == 0 {
				b.WriteRune(r)
			}
		}
	}

	amount, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Decimal{}, false
	}

	return amount, true
}
