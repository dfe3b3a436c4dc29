package v1

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlight/backend/internal/httputil"
	"github.com/ledgerlight/backend/internal/importer"
	"github.com/ledgerlight/backend/internal/importer/parser/bankcsv"
	"github.com/ledgerlight/backend/internal/normalize"
	"github.com/ledgerlight/backend/internal/reconcile"
)

type ImportQuery struct {
	DryRun bool   `form:"dryRun"` // Parse and reconcile, but do not persist anything
	Policy string `form:"policy"` // Override the configured duplicate policy, "strict" or "off"
}

// ImportResult reports the outcome of a CSV import.
type ImportResult struct {
	Error    *string               `json:"error"`                    // The error, if any occurred
	DryRun   bool                  `json:"dryRun" example:"false"`   // Whether this run persisted anything
	Parsed   int                   `json:"parsed" example:"31"`      // Rows successfully converted into transactions
	Dropped  int                   `json:"dropped" example:"2"`      // Rows without a valid date or amount
	Imported int                   `json:"imported" example:"28"`    // Transactions written to the database
	Skipped  int                   `json:"skipped" example:"3"`      // Transactions rejected as duplicates
	Data     []TransactionEditable `json:"data"`                     // The transactions that were (or would be) imported
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// parseMapping reads the column mapping from the "mapping" form field.
func parseMapping(c *gin.Context) (importer.ColumnMapping, error) {
	var mapping importer.ColumnMapping

	raw := c.PostForm("mapping")
	if raw == "" {
		return nil, errNoMapping
	}

	err := json.Unmarshal([]byte(raw), &mapping)
	if err != nil {
		return nil, fmt.Errorf("mapping: %w", err)
	}

	for _, field := range []importer.Field{importer.FieldDate, importer.FieldPayee, importer.FieldAmount} {
		if _, ok := mapping[field]; !ok {
			return nil, errNoMapping
		}
	}

	return mapping, nil
}

// RegisterImportRoutes registers the routes for imports.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", ImportCSV)
}

// @Summary		Import transactions
// @Description	Parses a bank CSV export with the given column mapping, applies the rename rules, filters duplicates and persists the rest. With dryRun set, nothing is persisted and the response previews what an import would do.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	ImportResult
// @Failure		400		{object}	ImportResult
// @Failure		500		{object}	ImportResult
// @Param			file	formData	file		true	"CSV file to import"
// @Param			mapping	formData	string		true	"Column mapping as JSON, e.g. {\"date\": 0, \"payee\": 1, \"amount\": 2}"
// @Param			dryRun	query		ImportQuery	false	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import [post]
func ImportCSV(c *gin.Context) {
	var query ImportQuery
	err := c.BindQuery(&query)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResult{Error: &s})
		return
	}

	policy, err := options.Config.Import.Policy()
	if query.Policy != "" {
		policy, err = reconcile.ParsePolicy(query.Policy)
	}
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResult{Error: &s})
		return
	}

	mapping, err := parseMapping(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResult{Error: &s})
		return
	}

	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResult{Error: &s})
		return
	}

	rows, err := bankcsv.Parse(f, true)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResult{Error: &s})
		return
	}

	result := importer.Convert(rows, mapping)

	s := newStore()

	rules, err := s.GetRules()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResult{Error: &e})
		return
	}

	// Rules run before duplicate detection so that a renamed payee
	// matches its earlier, also renamed imports.
	for i := range result.Transactions {
		result.Transactions[i].Payee = normalize.ApplyRules(result.Transactions[i].Payee, rules)
	}

	existing, err := s.GetAll()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResult{Error: &e})
		return
	}

	accepted, skipped := reconcile.Reconcile(result.Transactions, existing, policy)

	response := ImportResult{
		DryRun:  query.DryRun,
		Parsed:  len(result.Transactions),
		Dropped: result.Dropped,
		Skipped: skipped,
		Data:    make([]TransactionEditable, 0, len(accepted)),
	}

	for _, t := range accepted {
		response.Data = append(response.Data, newTransactionEditable(t))
	}

	if query.DryRun {
		c.JSON(http.StatusOK, response)
		return
	}

	err = s.SaveAll(accepted)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResult{Error: &e})
		return
	}

	response.Imported = len(accepted)
	c.JSON(http.StatusCreated, response)
}
