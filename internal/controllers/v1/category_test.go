package v1_test

import (
	"net/http"

	v1 "github.com/ledgerlight/backend/internal/controllers/v1"
	"github.com/ledgerlight/backend/internal/models"
	"github.com/ledgerlight/backend/internal/store"
	"github.com/ledgerlight/backend/internal/taxonomy"
	"github.com/ledgerlight/backend/test"
)

// seedTaxonomy stores the built-in default taxonomy.
func (suite *TestSuiteStandard) seedTaxonomy() {
	err := store.New(models.DB).SaveCategories(taxonomy.Default())
	suite.Require().NoError(err)
}

func (suite *TestSuiteStandard) TestOptionsCategoryList() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("GET", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGetCategories() {
	suite.seedTaxonomy()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotEmpty(response.Data)

	// Pre-order: a parent directly precedes its subtree
	byName := make(map[string]v1.Category, len(response.Data))
	seen := make(map[string]int, len(response.Data))
	for i, category := range response.Data {
		byName[category.Name] = category
		seen[category.Name] = i
	}

	groceries, ok := byName["Groceries"]
	suite.Require().True(ok)
	suite.Require().NotNil(groceries.Parent)
	suite.Assert().Equal("Food & Dining", *groceries.Parent)
	suite.Assert().Equal(1, groceries.Level)
	suite.Assert().Less(seen["Food & Dining"], seen["Groceries"])

	// Roots have no parent
	food := byName["Food & Dining"]
	suite.Assert().Nil(food.Parent)
	suite.Assert().Equal(0, food.Level)
	suite.Assert().NotEmpty(food.Color)
}

func (suite *TestSuiteStandard) TestGetCategoriesEmpty() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().Contains(recorder.Body.String(), `"data":[]`)
}

func (suite *TestSuiteStandard) TestReloadCategories() {
	// An unreachable taxonomy source falls back to the default taxonomy
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories/reload", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, len(taxonomy.Default()))

	// Reloading replaces, it does not append
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories/reload", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Category{}).Count(&count).Error)
	suite.Assert().Equal(int64(len(taxonomy.Default())), count)
}

func (suite *TestSuiteStandard) TestGetCategoryAncestors() {
	suite.seedTaxonomy()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories/Fine%20Dining/ancestors", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryChainResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal([]string{"Food & Dining", "Restaurants", "Fine Dining"}, response.Data)
}

func (suite *TestSuiteStandard) TestGetCategoryAncestorsUnknown() {
	suite.seedTaxonomy()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories/Removed%20Category/ancestors", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryChainResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// Unknown categories are their own singleton chain
	suite.Assert().Equal([]string{"Removed Category"}, response.Data)
}

func (suite *TestSuiteStandard) TestGetCategoryDescendants() {
	suite.seedTaxonomy()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories/Food%20&%20Dining/descendants", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	names := make([]string, 0, len(response.Data))
	for _, category := range response.Data {
		names = append(names, category.Name)
	}
	suite.Assert().Equal([]string{"Groceries", "Restaurants", "Fine Dining"}, names)
}

func (suite *TestSuiteStandard) TestGetCategoryDescendantsUnknown() {
	suite.seedTaxonomy()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories/Removed%20Category/descendants", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().Contains(recorder.Body.String(), `"data":[]`)
}
