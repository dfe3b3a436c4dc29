package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlight/backend/internal/categorize"
	"github.com/ledgerlight/backend/internal/httputil"
)

// CategorizeRequest assigns a category to a single transaction.
type CategorizeRequest struct {
	Category string `json:"category" binding:"required" example:"Restaurants"` // Name of the category to assign
}

// CategorizeResponse reports the follow-up choices after categorizing.
type CategorizeResponse struct {
	Error *string              `json:"error" example:"there is no transaction matching your query"` // The error, if any occurred
	Data  *categorize.Decision `json:"data"`                                                        // The decision state, if categorization was successful
}

// ResolveRequest performs the chosen follow-up of a categorization.
type ResolveRequest struct {
	Category string            `json:"category" binding:"required" example:"Restaurants"` // The category that was assigned
	Choice   categorize.Choice `json:"choice" binding:"required" example:"rule"`          // "rule" creates a renaming rule and bulk-applies, "bulk" only bulk-applies
}

// RenameRequest renames the payee of a single transaction.
type RenameRequest struct {
	Payee string `json:"payee" binding:"required" example:"Joe's Grill"` // The new payee
}

func newController() *categorize.Controller {
	s := newStore()
	return categorize.New(s, s)
}

// @Summary		Categorize transaction
// @Description	Sets the category of the transaction and reports similar transactions. When other transactions share the payee pattern, the response lists the available follow-up choices for the resolve endpoint.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200		{object}	CategorizeResponse
// @Failure		400		{object}	CategorizeResponse
// @Failure		404		{object}	CategorizeResponse
// @Failure		500		{object}	CategorizeResponse
// @Param			id		path		URIID				true	"ID formatted as string"
// @Param			request	body		CategorizeRequest	true	"Categorization"
// @Router			/v1/transactions/{id}/categorize [post]
func CategorizeTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, CategorizeResponse{Error: &s})
		return
	}

	var request CategorizeRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CategorizeResponse{Error: &s})
		return
	}

	decision, err := newController().Categorize(uri.ID.UUID, request.Category)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorizeResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategorizeResponse{Data: &decision})
}

// @Summary		Resolve categorization
// @Description	Performs the chosen follow-up for a categorization: bulk-apply the category to all transactions matching the payee pattern, optionally creating a renaming rule first. The bulk update applies to the whole matching set or not at all.
// @Tags			Transactions
// @Accept			json
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID			true	"ID formatted as string"
// @Param			request	body		ResolveRequest	true	"Chosen follow-up"
// @Router			/v1/transactions/{id}/categorize/resolve [post]
func ResolveCategorization(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var request ResolveRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if request.Choice != categorize.ChoiceRule && request.Choice != categorize.ChoiceBulk {
		c.JSON(http.StatusBadRequest, httpError{Error: errUnknownChoice.Error()})
		return
	}

	err = newController().Resolve(uri.ID.UUID, request.Category, request.Choice)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Rename transaction payee
// @Description	Renames the payee of a single transaction and records the rename as an exact-match renaming rule. Other transactions are only affected if their raw payee is identical.
// @Tags			Transactions
// @Accept			json
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID			true	"ID formatted as string"
// @Param			request	body		RenameRequest	true	"New payee"
// @Router			/v1/transactions/{id}/rename [post]
func RenameTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var request RenameRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err = newController().RenameInline(uri.ID.UUID, request.Payee)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
