package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlight/backend/internal/httputil"
	"github.com/ledgerlight/backend/internal/models"
	"github.com/ledgerlight/backend/internal/normalize"
)

// RegisterRenameRuleRoutes registers the routes for rename rules with
// the RouterGroup that is passed.
func RegisterRenameRuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRenameRuleList)
		r.GET("", GetRenameRules)
		r.POST("", CreateRenameRules)
		r.PUT("", ReplaceRenameRules)
	}

	// RenameRule with ID
	{
		r.OPTIONS("/:id", OptionsRenameRuleDetail)
		r.GET("/:id", GetRenameRule)
		r.PATCH("/:id", UpdateRenameRule)
		r.DELETE("/:id", DeleteRenameRule)
	}

	// Preview
	{
		r.OPTIONS("/preview", httputil.OptionsPost)
		r.POST("/preview", PreviewRenameRules)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RenameRules
// @Success		204
// @Router			/v1/rename-rules [options]
func OptionsRenameRuleList(c *gin.Context) {
	c.Header("allow", "GET, POST, PUT")
	c.Status(http.StatusNoContent)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RenameRules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/rename-rules/{id} [options]
func OptionsRenameRuleDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.RenameRule{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create rename rules
// @Description	Creates rename rules from the list of submitted rule data, appended to the end of the rule list in the order they were sent. The response code is the highest response code number that a single rule creation would have caused.
// @Tags			RenameRules
// @Produce		json
// @Success		201		{object}	RenameRuleCreateResponse
// @Failure		400		{object}	RenameRuleCreateResponse
// @Failure		500		{object}	RenameRuleCreateResponse
// @Param			rules	body		[]RenameRuleEditable	true	"RenameRules"
// @Router			/v1/rename-rules [post]
func CreateRenameRules(c *gin.Context) {
	var editables []RenameRuleEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RenameRuleCreateResponse{
			Error: &e,
		})
		return
	}

	// New rules go to the end of the list
	var maxPosition struct{ Position uint }
	_ = models.DB.Model(&models.RenameRule{}).Select("COALESCE(MAX(position), 0) as position").Scan(&maxPosition).Error

	status := http.StatusCreated
	r := RenameRuleCreateResponse{}

	for i, editable := range editables {
		rule := editable.model()
		rule.Position = maxPosition.Position + uint(i) + 1

		err = models.DB.Create(&rule).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRenameRule(c, rule)
		r.Data = append(r.Data, RenameRuleResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get rename rules
// @Description	Returns the rename rules in application order
// @Tags			RenameRules
// @Produce		json
// @Success		200	{object}	RenameRuleListResponse
// @Failure		500	{object}	RenameRuleListResponse
// @Router			/v1/rename-rules [get]
func GetRenameRules(c *gin.Context) {
	rules, err := newStore().GetRules()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RenameRuleListResponse{Error: &s})
		return
	}

	data := make([]RenameRule, 0, len(rules))
	for _, rule := range rules {
		data = append(data, newRenameRule(c, rule))
	}

	c.JSON(http.StatusOK, RenameRuleListResponse{Data: data})
}

// @Summary		Replace rename rules
// @Description	Replaces the whole rule list with the submitted one. List order becomes application order, so this endpoint is also used for reordering.
// @Tags			RenameRules
// @Produce		json
// @Success		200		{object}	RenameRuleListResponse
// @Failure		400		{object}	RenameRuleListResponse
// @Failure		500		{object}	RenameRuleListResponse
// @Param			rules	body		[]RenameRuleEditable	true	"RenameRules"
// @Router			/v1/rename-rules [put]
func ReplaceRenameRules(c *gin.Context) {
	var editables []RenameRuleEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RenameRuleListResponse{
			Error: &e,
		})
		return
	}

	rules := make([]models.RenameRule, 0, len(editables))
	for _, editable := range editables {
		rules = append(rules, editable.model())
	}

	err = newStore().SaveRules(rules)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RenameRuleListResponse{Error: &s})
		return
	}

	data := make([]RenameRule, 0, len(rules))
	for _, rule := range rules {
		data = append(data, newRenameRule(c, rule))
	}

	c.JSON(http.StatusOK, RenameRuleListResponse{Data: data})
}

// @Summary		Get rename rule
// @Description	Returns a specific rename rule
// @Tags			RenameRules
// @Produce		json
// @Success		200	{object}	RenameRuleResponse
// @Failure		400	{object}	RenameRuleResponse
// @Failure		404	{object}	RenameRuleResponse
// @Failure		500	{object}	RenameRuleResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/rename-rules/{id} [get]
func GetRenameRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, RenameRuleResponse{Error: &s})
		return
	}

	var rule models.RenameRule
	err = models.DB.First(&rule, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RenameRuleResponse{Error: &s})
		return
	}

	data := newRenameRule(c, rule)
	c.JSON(http.StatusOK, RenameRuleResponse{Data: &data})
}

// @Summary		Update rename rule
// @Description	Updates an existing rename rule. Only values to be updated need to be specified.
// @Tags			RenameRules
// @Accept			json
// @Produce		json
// @Success		200		{object}	RenameRuleResponse
// @Failure		400		{object}	RenameRuleResponse
// @Failure		404		{object}	RenameRuleResponse
// @Failure		500		{object}	RenameRuleResponse
// @Param			id		path		URIID				true	"ID formatted as string"
// @Param			rule	body		RenameRuleEditable	true	"RenameRule"
// @Router			/v1/rename-rules/{id} [patch]
func UpdateRenameRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, RenameRuleResponse{Error: &s})
		return
	}

	var rule models.RenameRule
	err = models.DB.First(&rule, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RenameRuleResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RenameRuleEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RenameRuleResponse{Error: &s})
		return
	}

	var editable RenameRuleEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RenameRuleResponse{Error: &s})
		return
	}

	err = models.DB.Model(&rule).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RenameRuleResponse{Error: &s})
		return
	}

	data := newRenameRule(c, rule)
	c.JSON(http.StatusOK, RenameRuleResponse{Data: &data})
}

// @Summary		Delete rename rule
// @Description	Deletes a rename rule
// @Tags			RenameRules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/rename-rules/{id} [delete]
func DeleteRenameRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var rule models.RenameRule
	err = models.DB.First(&rule, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Unscoped().Delete(&rule).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Preview rule application
// @Description	Applies all enabled rules to a sample payee and reports the extracted pattern and similar existing payees
// @Tags			RenameRules
// @Accept			json
// @Produce		json
// @Success		200		{object}	RulePreviewResponse
// @Failure		400		{object}	RulePreviewResponse
// @Failure		500		{object}	RulePreviewResponse
// @Param			request	body		RulePreviewRequest	true	"Sample payee"
// @Router			/v1/rename-rules/preview [post]
func PreviewRenameRules(c *gin.Context) {
	var request RulePreviewRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RulePreviewResponse{Error: &s})
		return
	}

	s := newStore()

	rules, err := s.GetRules()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RulePreviewResponse{Error: &e})
		return
	}

	transactions, err := s.GetAll()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RulePreviewResponse{Error: &e})
		return
	}

	payees := make([]string, 0, len(transactions))
	for _, t := range transactions {
		payees = append(payees, t.Payee)
	}

	c.JSON(http.StatusOK, RulePreviewResponse{
		Payee:   request.Payee,
		Renamed: normalize.ApplyRules(request.Payee, rules),
		Pattern: normalize.ExtractPattern(request.Payee),
		Similar: normalize.SimilarPayees(request.Payee, payees, 5),
	})
}
