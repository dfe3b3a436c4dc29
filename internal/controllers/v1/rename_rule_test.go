package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/ledgerlight/backend/internal/controllers/v1"
	"github.com/ledgerlight/backend/internal/models"
	"github.com/ledgerlight/backend/test"
)

// createRenameRulesViaAPI creates rename rules through the API and returns the response.
func (suite *TestSuiteStandard) createRenameRulesViaAPI(editables []v1.RenameRuleEditable) v1.RenameRuleCreateResponse {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/rename-rules", editables)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.RenameRuleCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	return response
}

func (suite *TestSuiteStandard) TestOptionsRenameRuleList() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/rename-rules", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("GET, POST, PUT", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateRenameRules() {
	response := suite.createRenameRulesViaAPI([]v1.RenameRuleEditable{
		{Pattern: "PAYPAL *", Replacement: "", Enabled: true},
		{Pattern: "^SPOTIFY.*$", Replacement: "Spotify", IsRegex: true, Enabled: true},
	})

	suite.Require().Len(response.Data, 2)
	suite.Require().NotNil(response.Data[0].Data)
	suite.Require().NotNil(response.Data[1].Data)

	// New rules append at the end of the application order
	suite.Assert().Equal(uint(1), response.Data[0].Data.Position)
	suite.Assert().Equal(uint(2), response.Data[1].Data.Position)

	later := suite.createRenameRulesViaAPI([]v1.RenameRuleEditable{
		{Pattern: "AMZN", Replacement: "Amazon", Enabled: true},
	})
	suite.Require().NotNil(later.Data[0].Data)
	suite.Assert().Equal(uint(3), later.Data[0].Data.Position)
}

func (suite *TestSuiteStandard) TestCreateRenameRulesEmptyPattern() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/rename-rules", []v1.RenameRuleEditable{
		{Pattern: "  ", Replacement: "Nothing", Enabled: true},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.RenameRuleCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Error)
	suite.Assert().Equal(models.ErrRulePatternEmpty.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestGetRenameRules() {
	_ = suite.createRenameRulesViaAPI([]v1.RenameRuleEditable{
		{Pattern: "PAYPAL *", Replacement: "", Enabled: true},
		{Pattern: "AMZN", Replacement: "Amazon", Enabled: true},
	})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/rename-rules", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RenameRuleListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("PAYPAL *", response.Data[0].Pattern)
	suite.Assert().Equal("AMZN", response.Data[1].Pattern)
}

func (suite *TestSuiteStandard) TestReplaceRenameRules() {
	_ = suite.createRenameRulesViaAPI([]v1.RenameRuleEditable{
		{Pattern: "PAYPAL *", Replacement: "", Enabled: true},
		{Pattern: "AMZN", Replacement: "Amazon", Enabled: true},
	})

	// Reorder by replacing the whole list
	recorder := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/rename-rules", []v1.RenameRuleEditable{
		{Pattern: "AMZN", Replacement: "Amazon", Enabled: true},
		{Pattern: "PAYPAL *", Replacement: "", Enabled: true},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RenameRuleListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("AMZN", response.Data[0].Pattern)
	suite.Assert().Equal(uint(0), response.Data[0].Position)
	suite.Assert().Equal("PAYPAL *", response.Data[1].Pattern)
	suite.Assert().Equal(uint(1), response.Data[1].Position)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.RenameRule{}).Count(&count).Error)
	suite.Assert().Equal(int64(2), count)
}

func (suite *TestSuiteStandard) TestGetRenameRule() {
	response := suite.createRenameRulesViaAPI([]v1.RenameRuleEditable{
		{Pattern: "AMZN", Replacement: "Amazon", Enabled: true},
	})
	id := response.Data[0].Data.ID

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/rename-rules/%s", id), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var single v1.RenameRuleResponse
	test.DecodeResponse(suite.T(), &recorder, &single)

	suite.Require().NotNil(single.Data)
	suite.Assert().Equal("AMZN", single.Data.Pattern)
}

func (suite *TestSuiteStandard) TestGetRenameRuleNotFound() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/rename-rules/828cf2a9-2acb-4e32-854d-3b7c589d67a9", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateRenameRule() {
	response := suite.createRenameRulesViaAPI([]v1.RenameRuleEditable{
		{Pattern: "AMZN", Replacement: "Amazon", Enabled: true},
	})
	id := response.Data[0].Data.ID

	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/rename-rules/%s", id), map[string]any{
		"enabled": false,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var reread models.RenameRule
	suite.Require().NoError(models.DB.First(&reread, "id = ?", id).Error)

	suite.Assert().False(reread.Enabled)

	// Fields that were not in the request body stay untouched
	suite.Assert().Equal("AMZN", reread.Pattern)
	suite.Assert().Equal("Amazon", reread.Replacement)
}

func (suite *TestSuiteStandard) TestDeleteRenameRule() {
	response := suite.createRenameRulesViaAPI([]v1.RenameRuleEditable{
		{Pattern: "AMZN", Replacement: "Amazon", Enabled: true},
	})
	id := response.Data[0].Data.ID

	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/rename-rules/%s", id), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/rename-rules/%s", id), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestPreviewRenameRules() {
	_ = suite.createTestTransaction(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "JOES GRILL &/25-12-03", "", -31.50)

	_ = suite.createRenameRulesViaAPI([]v1.RenameRuleEditable{
		{Pattern: `^JOES GRILL.*`, Replacement: "Joe's Grill", IsRegex: true, Enabled: true},
	})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/rename-rules/preview", v1.RulePreviewRequest{
		Payee: "JOES GRILL &/25-11-17",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RulePreviewResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal("JOES GRILL &/25-11-17", response.Payee)
	suite.Assert().Equal("Joe's Grill", response.Renamed)
	suite.Assert().Equal("JOES GRILL", response.Pattern)
	suite.Assert().Equal([]string{"JOES GRILL &/25-12-03"}, response.Similar)
}

func (suite *TestSuiteStandard) TestPreviewRenameRulesMissingPayee() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/rename-rules/preview", `{}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
