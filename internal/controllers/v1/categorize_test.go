package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ledgerlight/backend/internal/categorize"
	v1 "github.com/ledgerlight/backend/internal/controllers/v1"
	"github.com/ledgerlight/backend/internal/models"
	"github.com/ledgerlight/backend/test"
)

func (suite *TestSuiteStandard) TestCategorizeTransaction() {
	transaction := suite.createTestTransaction(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "JOES GRILL &/25-11-17", "", -40)
	_ = suite.createTestTransaction(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), "JOES GRILL &/25-12-03", "", -31.50)

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/transactions/%s/categorize", transaction.ID), v1.CategorizeRequest{
		Category: "Restaurants",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategorizeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("Restaurants", response.Data.Transaction.Category)
	suite.Assert().Equal("JOES GRILL", response.Data.Pattern)
	suite.Assert().Len(response.Data.Similar, 1)
	suite.Assert().Equal([]categorize.Choice{categorize.ChoiceRule, categorize.ChoiceBulk}, response.Data.Choices)

	// The single transaction is categorized right away
	var reread models.Transaction
	suite.Require().NoError(models.DB.First(&reread, "id = ?", transaction.ID).Error)
	suite.Assert().Equal("Restaurants", reread.Category)
}

func (suite *TestSuiteStandard) TestCategorizeTransactionNoSimilar() {
	transaction := suite.createTestTransaction(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "STADTWERKE", "", -80)

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/transactions/%s/categorize", transaction.ID), v1.CategorizeRequest{
		Category: "Housing",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategorizeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Empty(response.Data.Similar)
	suite.Assert().Empty(response.Data.Choices)
}

func (suite *TestSuiteStandard) TestCategorizeTransactionNotFound() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions/828cf2a9-2acb-4e32-854d-3b7c589d67a9/categorize", v1.CategorizeRequest{
		Category: "Restaurants",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategorizeTransactionMissingCategory() {
	transaction := suite.createTestTransaction(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "STADTWERKE", "", -80)

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/transactions/%s/categorize", transaction.ID), `{}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestResolveCategorizationRule() {
	transaction := suite.createTestTransaction(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "JOES GRILL &/25-11-17", "Restaurants", -40)
	other := suite.createTestTransaction(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), "JOES GRILL &/25-12-03", "", -31.50)

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/transactions/%s/categorize/resolve", transaction.ID), v1.ResolveRequest{
		Category: "Restaurants",
		Choice:   categorize.ChoiceRule,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// The matching transaction is now categorized
	var reread models.Transaction
	suite.Require().NoError(models.DB.First(&reread, "id = ?", other.ID).Error)
	suite.Assert().Equal("Restaurants", reread.Category)

	// A renaming rule for the pattern was created
	var rules []models.RenameRule
	suite.Require().NoError(models.DB.Find(&rules).Error)
	suite.Require().Len(rules, 1)
	suite.Assert().Equal(`^JOES GRILL.*`, rules[0].Pattern)
	suite.Assert().Equal("JOES GRILL", rules[0].Replacement)
}

func (suite *TestSuiteStandard) TestResolveCategorizationBulk() {
	transaction := suite.createTestTransaction(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "JOES GRILL &/25-11-17", "Restaurants", -40)
	_ = suite.createTestTransaction(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), "JOES GRILL &/25-12-03", "", -31.50)

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/transactions/%s/categorize/resolve", transaction.ID), v1.ResolveRequest{
		Category: "Restaurants",
		Choice:   categorize.ChoiceBulk,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Bulk only applies the category, no rule is created
	var count int64
	suite.Require().NoError(models.DB.Model(&models.RenameRule{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestResolveCategorizationUnknownChoice() {
	transaction := suite.createTestTransaction(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "JOES GRILL &/25-11-17", "Restaurants", -40)

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/transactions/%s/categorize/resolve", transaction.ID), map[string]string{
		"category": "Restaurants",
		"choice":   "everything",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRenameTransaction() {
	transaction := suite.createTestTransaction(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "JOES GRILL &/25-11-17", "", -40)
	other := suite.createTestTransaction(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), "JOES GRILL &/25-12-03", "", -31.50)

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/transactions/%s/rename", transaction.ID), v1.RenameRequest{
		Payee: "Joe's Grill",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	var reread models.Transaction
	suite.Require().NoError(models.DB.First(&reread, "id = ?", transaction.ID).Error)
	suite.Assert().Equal("Joe's Grill", reread.Payee)

	// The other transaction has a different raw payee and stays untouched
	suite.Require().NoError(models.DB.First(&reread, "id = ?", other.ID).Error)
	suite.Assert().Equal("JOES GRILL &/25-12-03", reread.Payee)
}

func (suite *TestSuiteStandard) TestRenameTransactionNotFound() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions/828cf2a9-2acb-4e32-854d-3b7c589d67a9/rename", v1.RenameRequest{
		Payee: "Joe's Grill",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
