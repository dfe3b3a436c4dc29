// Package importer converts bank-exported CSV rows into transactions.
//
// The UI is responsible for letting the user map columns; the importer
// receives the finished mapping and only coerces raw cells into typed
// transaction fields.
package importer

import (
	"github.com/ledgerlight/backend/internal/models"
)

// Field is a logical transaction field that a CSV column can be mapped to.
type Field string

const (
	FieldDate          Field = "date"
	FieldPayee         Field = "payee"
	FieldAmount        Field = "amount"
	FieldTransactionID Field = "transactionId"
	FieldType          Field = "type"
	FieldDescription   Field = "description"
	FieldAccount       Field = "account"
	FieldBalance       Field = "balance"
	FieldReference     Field = "reference"
)

// ColumnMapping maps logical fields to zero-based column indexes of the
// source file. Fields that the file does not provide are simply absent.
type ColumnMapping map[Field]int

// column returns the cell for the field, or "" if the field is unmapped
// or the row is too short.
func (m ColumnMapping) column(row []string, field Field) string {
	index, ok := m[field]
	if !ok || index < 0 || index >= len(row) {
		return ""
	}

	return row[index]
}

// Result is the outcome of converting a batch of raw rows.
type Result struct {
	Transactions []models.Transaction `json:"transactions"`
	Dropped      int                  `json:"dropped"` // Rows without a valid date and amount
}
