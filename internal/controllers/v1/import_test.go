package v1_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"time"

	v1 "github.com/ledgerlight/backend/internal/controllers/v1"
	"github.com/ledgerlight/backend/internal/models"
	"github.com/ledgerlight/backend/test"
)

const testCSV = `Buchungstag,Auftraggeber,Betrag,Verwendungszweck
04.01.2024,REWE SAGT DANKE,"-12,34",Einkauf
05.01.2024,SPOTIFY AB,"-9,99",Abo
,Kaputte Zeile,,
06.01.2024,ARBEITGEBER GMBH,"2.500,00",Gehalt
`

const testMapping = `{"date": 0, "payee": 1, "amount": 2, "note": 3}`

// multipartBody builds a multipart request body with a file and a column mapping.
func (suite *TestSuiteStandard) multipartBody(filename, content, mapping string) (*bytes.Buffer, map[string]string) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		suite.Require().NoError(err)
		_, err = part.Write([]byte(content))
		suite.Require().NoError(err)
	}

	if mapping != "" {
		suite.Require().NoError(mw.WriteField("mapping", mapping))
	}

	suite.Require().NoError(mw.Close())

	return &body, map[string]string{"Content-Type": mw.FormDataContentType()}
}

func (suite *TestSuiteStandard) TestImportCSV() {
	body, headers := suite.multipartBody("export.csv", testCSV, testMapping)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var result v1.ImportResult
	test.DecodeResponse(suite.T(), &recorder, &result)

	suite.Assert().False(result.DryRun)
	suite.Assert().Equal(3, result.Parsed)
	suite.Assert().Equal(1, result.Dropped)
	suite.Assert().Equal(3, result.Imported)
	suite.Assert().Equal(0, result.Skipped)
	suite.Require().Len(result.Data, 3)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Equal(int64(3), count)
}

func (suite *TestSuiteStandard) TestImportCSVDryRun() {
	body, headers := suite.multipartBody("export.csv", testCSV, testMapping)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import?dryRun=true", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var result v1.ImportResult
	test.DecodeResponse(suite.T(), &recorder, &result)

	suite.Assert().True(result.DryRun)
	suite.Assert().Equal(3, result.Parsed)
	suite.Assert().Equal(0, result.Imported)

	// Nothing is persisted on a dry run
	var count int64
	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestImportCSVSkipsDuplicates() {
	_ = suite.createTestTransaction(time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), "REWE SAGT DANKE", "Groceries", -12.34)

	body, headers := suite.multipartBody("export.csv", testCSV, testMapping)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var result v1.ImportResult
	test.DecodeResponse(suite.T(), &recorder, &result)

	suite.Assert().Equal(1, result.Skipped)
	suite.Assert().Equal(2, result.Imported)
}

func (suite *TestSuiteStandard) TestImportCSVPolicyOff() {
	_ = suite.createTestTransaction(time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), "REWE SAGT DANKE", "Groceries", -12.34)

	body, headers := suite.multipartBody("export.csv", testCSV, testMapping)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import?policy=off", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var result v1.ImportResult
	test.DecodeResponse(suite.T(), &recorder, &result)

	suite.Assert().Equal(0, result.Skipped)
	suite.Assert().Equal(3, result.Imported)
}

func (suite *TestSuiteStandard) TestImportCSVInvalidPolicy() {
	body, headers := suite.multipartBody("export.csv", testCSV, testMapping)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import?policy=lenient", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportCSVAppliesRules() {
	rule := models.RenameRule{Pattern: `^SPOTIFY.*`, Replacement: "Spotify", IsRegex: true, Enabled: true}
	suite.Require().NoError(models.DB.Create(&rule).Error)

	body, headers := suite.multipartBody("export.csv", testCSV, testMapping)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Where("payee = ?", "Spotify").Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestImportCSVNoFile() {
	body, headers := suite.multipartBody("", "", testMapping)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportCSVWrongSuffix() {
	body, headers := suite.multipartBody("export.xlsx", testCSV, testMapping)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportCSVNoMapping() {
	body, headers := suite.multipartBody("export.csv", testCSV, "")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportCSVIncompleteMapping() {
	body, headers := suite.multipartBody("export.csv", testCSV, `{"date": 0, "payee": 1}`)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportCSVUnparseable() {
	body, headers := suite.multipartBody("export.csv", "\"open quote\nnever closed", testMapping)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
