package models_test

import (
	"github.com/ledgerlight/backend/internal/models"
)

func (suite *TestSuiteStandard) TestRenameRuleCreate() {
	rule := models.RenameRule{
		Pattern:     " ^JOES GRILL.* ",
		Replacement: "Joe's Grill",
		IsRegex:     true,
		Enabled:     true,
	}

	suite.Require().NoError(models.DB.Create(&rule).Error)
	suite.Assert().Equal("^JOES GRILL.*", rule.Pattern)
}

func (suite *TestSuiteStandard) TestRenameRuleEmptyPattern() {
	err := models.DB.Create(&models.RenameRule{Pattern: "   ", Replacement: "x"}).Error
	suite.Assert().ErrorIs(err, models.ErrRulePatternEmpty)
}

func (suite *TestSuiteStandard) TestRenameRuleDatabaseClosed() {
	suite.CloseDB()

	err := models.DB.Create(&models.RenameRule{Pattern: "REWE"}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
