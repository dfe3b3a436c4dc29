package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlight/backend/internal/aggregate"
	"github.com/ledgerlight/backend/internal/httputil"
	"github.com/ledgerlight/backend/internal/models"
	"github.com/shopspring/decimal"
)

type AnalyticsResponse struct {
	Links AnalyticsLinks `json:"links"` // Links to the available reports
}

type AnalyticsLinks struct {
	Categories    string `json:"categories" example:"https://example.com/api/v1/analytics/categories"`       // Spending by category
	Roots         string `json:"roots" example:"https://example.com/api/v1/analytics/roots"`                 // Spending rolled up to root categories
	Subscriptions string `json:"subscriptions" example:"https://example.com/api/v1/analytics/subscriptions"` // Total recurring subscription spending
	Months        string `json:"months" example:"https://example.com/api/v1/analytics/months"`               // Monthly income and spending series
	Payees        string `json:"payees" example:"https://example.com/api/v1/analytics/payees"`               // Top payees by spending
	Savings       string `json:"savings" example:"https://example.com/api/v1/analytics/savings"`             // Savings progress toward the configured goal
}

type CategoryTotalsResponse struct {
	Data  []aggregate.CategoryTotal `json:"data"`  // Per-category spending, largest first
	Error *string                   `json:"error"` // The error, if any occurred
}

type SubscriptionsResponse struct {
	Data  *SubscriptionsData `json:"data"`  // Subscription spending
	Error *string            `json:"error"` // The error, if any occurred
}

type SubscriptionsData struct {
	Total    decimal.Decimal `json:"total" example:"42.97"` // Total spending in subscription categories
	Currency string          `json:"currency" example:"EUR"`
}

type MonthsResponse struct {
	Data  []aggregate.MonthBucket `json:"data"`  // Chronological monthly buckets
	Error *string                 `json:"error"` // The error, if any occurred
}

type PayeesResponse struct {
	Data  []aggregate.PayeeTotal `json:"data"`  // Top payees by spending, largest first
	Error *string                `json:"error"` // The error, if any occurred
}

type SavingsResponse struct {
	Data  *SavingsData `json:"data"`  // Savings progress
	Error *string      `json:"error"` // The error, if any occurred
}

type SavingsData struct {
	aggregate.SavingsProgress
	Currency string `json:"currency" example:"EUR"`
}

// RegisterAnalyticsRoutes registers the routes for analytics reports.
func RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetAnalytics)

	r.OPTIONS("/categories", httputil.OptionsGet)
	r.GET("/categories", GetCategoryTotals)

	r.OPTIONS("/roots", httputil.OptionsGet)
	r.GET("/roots", GetRootRollup)

	r.OPTIONS("/subscriptions", httputil.OptionsGet)
	r.GET("/subscriptions", GetSubscriptions)

	r.OPTIONS("/months", httputil.OptionsGet)
	r.GET("/months", GetMonths)

	r.OPTIONS("/payees", httputil.OptionsGet)
	r.GET("/payees", GetPayees)

	r.OPTIONS("/savings", httputil.OptionsGet)
	r.GET("/savings", GetSavings)
}

// analyticsData loads the inputs every report needs.
func analyticsData() ([]models.Transaction, []models.Category, error) {
	s := newStore()

	transactions, err := s.GetAll()
	if err != nil {
		return nil, nil, err
	}

	categories, err := s.GetCategories()
	if err != nil {
		return nil, nil, err
	}

	return transactions, categories, nil
}

// @Summary		Analytics overview
// @Description	Returns the available analytics reports
// @Tags			Analytics
// @Success		200	{object}	AnalyticsResponse
// @Router			/v1/analytics [get]
func GetAnalytics(c *gin.Context) {
	url := httputil.RequestHost(c)

	c.JSON(http.StatusOK, AnalyticsResponse{
		Links: AnalyticsLinks{
			Categories:    url + "/v1/analytics/categories",
			Roots:         url + "/v1/analytics/roots",
			Subscriptions: url + "/v1/analytics/subscriptions",
			Months:        url + "/v1/analytics/months",
			Payees:        url + "/v1/analytics/payees",
			Savings:       url + "/v1/analytics/savings",
		},
	})
}

// @Summary		Spending by category
// @Description	Returns spending per category, largest first. Amounts are absolute values of outflows.
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	CategoryTotalsResponse
// @Failure		500	{object}	CategoryTotalsResponse
// @Router			/v1/analytics/categories [get]
func GetCategoryTotals(c *gin.Context) {
	transactions, categories, err := analyticsData()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryTotalsResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryTotalsResponse{
		Data: aggregate.CategoryTotals(transactions, categories),
	})
}

// @Summary		Spending by root category
// @Description	Returns spending rolled up to root categories in taxonomy order, with uncategorized spending last
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	CategoryTotalsResponse
// @Failure		500	{object}	CategoryTotalsResponse
// @Router			/v1/analytics/roots [get]
func GetRootRollup(c *gin.Context) {
	transactions, categories, err := analyticsData()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryTotalsResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryTotalsResponse{
		Data: aggregate.RootRollup(transactions, categories),
	})
}

// @Summary		Subscription spending
// @Description	Returns the total spending in categories marked as subscriptions, including inherited marks
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	SubscriptionsResponse
// @Failure		500	{object}	SubscriptionsResponse
// @Router			/v1/analytics/subscriptions [get]
func GetSubscriptions(c *gin.Context) {
	transactions, categories, err := analyticsData()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionsResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, SubscriptionsResponse{
		Data: &SubscriptionsData{
			Total:    aggregate.SubscriptionTotal(transactions, categories),
			Currency: options.Config.User.Currency,
		},
	})
}

// @Summary		Monthly series
// @Description	Returns income, spending and net per calendar month in chronological order
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	MonthsResponse
// @Failure		500	{object}	MonthsResponse
// @Router			/v1/analytics/months [get]
func GetMonths(c *gin.Context) {
	transactions, _, err := analyticsData()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthsResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, MonthsResponse{
		Data: aggregate.MonthlySeries(transactions),
	})
}

// @Summary		Top payees
// @Description	Returns the payees with the highest spending. The number of payees is controlled with the n parameter, default 10.
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	PayeesResponse
// @Failure		400	{object}	PayeesResponse
// @Failure		500	{object}	PayeesResponse
// @Param			n	query		int	false	"Number of payees to return"	default(10)
// @Router			/v1/analytics/payees [get]
func GetPayees(c *gin.Context) {
	n := 10
	if raw, ok := c.GetQuery("n"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s := "the n parameter must be a positive integer"
			c.JSON(http.StatusBadRequest, PayeesResponse{Error: &s})
			return
		}
		n = parsed
	}

	transactions, _, err := analyticsData()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayeesResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, PayeesResponse{
		Data: aggregate.TopPayees(transactions, n),
	})
}

// @Summary		Savings progress
// @Description	Returns the sum of all savings transactions and the configured savings goal
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	SavingsResponse
// @Failure		500	{object}	SavingsResponse
// @Router			/v1/analytics/savings [get]
func GetSavings(c *gin.Context) {
	transactions, _, err := analyticsData()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, SavingsResponse{
		Data: &SavingsData{
			SavingsProgress: aggregate.Savings(transactions, options.Config.User.Goal()),
			Currency:        options.Config.User.Currency,
		},
	})
}
