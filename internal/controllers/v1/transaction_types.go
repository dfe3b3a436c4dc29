package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlight/backend/internal/httputil"
	"github.com/ledgerlight/backend/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Date time.Time `json:"date" example:"2024-03-20T00:00:00Z"` // Date of the transaction

	// Negative amounts are outflows, positive amounts are inflows
	Amount decimal.Decimal `json:"amount" example:"-14.03"`

	Payee    string         `json:"payee" example:"JOES GRILL &/25-11-17" default:""`   // The payee as imported from the bank
	Category string         `json:"category" example:"Restaurants" default:""`          // Name of a taxonomy category. Empty means uncategorized
	Tags     models.TagList `json:"tags" example:"vacation,reimbursable" default:""`    // Tags for the transaction
	IsSaving bool           `json:"isSaving" example:"false" default:"false"`           // Is this transaction a transfer into savings?
	BankID   string         `json:"bankId" example:"2024032012345" default:""`          // Transaction ID issued by the bank, if any
	Account  string         `json:"account" example:"Checking" default:""`              // Account name from the import
	Note     string         `json:"note" example:"Dinner with the hiking group" default:""` // A note
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:     editable.Date,
		Amount:   editable.Amount,
		Payee:    editable.Payee,
		Category: editable.Category,
		Tags:     editable.Tags,
		IsSaving: editable.IsSaving,
		BankID:   editable.BankID,
		Account:  editable.Account,
		Note:     editable.Note,
	}
}

// newTransactionEditable returns the editable fields of a transaction,
// used where resources have no ID yet, e.g. import previews.
func newTransactionEditable(model models.Transaction) TransactionEditable {
	return TransactionEditable{
		Date:     model.Date,
		Amount:   model.Amount,
		Payee:    model.Payee,
		Category: model.Category,
		Tags:     model.Tags,
		IsSaving: model.IsSaving,
		BankID:   model.BankID,
		Account:  model.Account,
		Note:     model.Note,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := httputil.RequestHost(c)

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:     model.Date,
			Amount:   model.Amount,
			Payee:    model.Payee,
			Category: model.Category,
			Tags:     model.Tags,
			IsSaving: model.IsSaving,
			BankID:   model.BankID,
			Account:  model.Account,
			Note:     model.Note,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data  []Transaction `json:"data"`                                                          // List of transactions
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if creation was successful
}

// TransactionQueryFilter contains the filters for the transaction list.
type TransactionQueryFilter struct {
	Payee         string    `form:"payee"`         // Glob pattern for the payee, e.g. "JOES*"
	Category      string    `form:"category"`      // Exact category name
	Tag           string    `form:"tag"`           // Transactions carrying this tag
	Uncategorized bool      `form:"uncategorized"` // Only transactions without a category
	FromDate      time.Time `form:"fromDate" time_format:"2006-01-02"`  // From this date
	UntilDate     time.Time `form:"untilDate" time_format:"2006-01-02"` // Until this date, inclusive

	AmountMoreOrEqual *decimal.Decimal `form:"amountMoreOrEqual"` // Amount more or equal to this amount
	AmountLessOrEqual *decimal.Decimal `form:"amountLessOrEqual"` // Amount less or equal to this amount
}
