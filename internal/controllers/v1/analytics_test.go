package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/ledgerlight/backend/internal/controllers/v1"
	"github.com/ledgerlight/backend/internal/models"
	"github.com/ledgerlight/backend/test"
)

// seedAnalyticsData creates a small set of transactions across two months.
func (suite *TestSuiteStandard) seedAnalyticsData() {
	suite.seedTaxonomy()

	_ = suite.createTestTransaction(time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), "REWE", "Groceries", -65)
	_ = suite.createTestTransaction(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "ARBEITGEBER GMBH", "Income", 2500)
	_ = suite.createTestTransaction(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "SPOTIFY AB", "Music Streaming", -9.99)
	_ = suite.createTestTransaction(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "JOES GRILL", "", -40)
}

func (suite *TestSuiteStandard) TestGetAnalytics() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.AnalyticsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal("http://example.com/v1/analytics/categories", response.Links.Categories)
	suite.Assert().Equal("http://example.com/v1/analytics/savings", response.Links.Savings)
}

func (suite *TestSuiteStandard) TestGetCategoryTotals() {
	suite.seedAnalyticsData()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryTotalsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 3)

	// Largest spending first, income does not appear
	suite.Assert().Equal("Groceries", response.Data[0].Category)
	suite.Assert().Equal("65", response.Data[0].Total.String())
	suite.Assert().Equal("Uncategorized", response.Data[1].Category)
	suite.Assert().Equal("Music Streaming", response.Data[2].Category)
}

func (suite *TestSuiteStandard) TestGetRootRollup() {
	suite.seedAnalyticsData()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/roots", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryTotalsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotEmpty(response.Data)

	// Roots appear in taxonomy order, uncategorized spending comes last
	totals := make(map[string]string, len(response.Data))
	for _, total := range response.Data {
		totals[total.Category] = total.Total.String()
	}
	suite.Assert().Equal("65", totals["Food & Dining"])
	suite.Assert().Equal("9.99", totals["Streaming Services"])
	suite.Assert().Equal("Uncategorized", response.Data[len(response.Data)-1].Category)
	suite.Assert().Equal("40", response.Data[len(response.Data)-1].Total.String())
}

func (suite *TestSuiteStandard) TestGetSubscriptions() {
	suite.seedAnalyticsData()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/subscriptions", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SubscriptionsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)

	// Music Streaming inherits the subscription mark from Streaming Services
	suite.Assert().Equal("9.99", response.Data.Total.String())
	suite.Assert().Equal("EUR", response.Data.Currency)
}

func (suite *TestSuiteStandard) TestGetMonths() {
	suite.seedAnalyticsData()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/months", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 2)

	suite.Assert().Equal("2024-01", response.Data[0].Month.String())
	suite.Assert().Equal("2500", response.Data[0].Income.String())
	suite.Assert().Equal("65", response.Data[0].Spending.String())
	suite.Assert().Equal("2435", response.Data[0].Net.String())

	suite.Assert().Equal("2024-02", response.Data[1].Month.String())
	suite.Assert().Equal("49.99", response.Data[1].Spending.String())
}

func (suite *TestSuiteStandard) TestGetPayees() {
	suite.seedAnalyticsData()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/payees?n=2", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PayeesResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("REWE", response.Data[0].Payee)
	suite.Assert().Equal("65", response.Data[0].Total.String())
	suite.Assert().Equal("JOES GRILL", response.Data[1].Payee)
}

func (suite *TestSuiteStandard) TestGetPayeesInvalidN() {
	for _, n := range []string{"0", "-3", "NaN"} {
		recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/payees?n="+n, "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestGetSavings() {
	saving := suite.createTestTransaction(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), "DEPOT TRANSFER", "Savings", -500)
	saving.IsSaving = true
	suite.Require().NoError(models.DB.Save(&saving).Error)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/savings", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SavingsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("500", response.Data.Saved.String())
	suite.Assert().Equal("EUR", response.Data.Currency)
}

func (suite *TestSuiteStandard) TestAnalyticsDatabaseError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
