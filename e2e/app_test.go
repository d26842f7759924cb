//go:build e2e

package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite drives the site through a real browser.
type E2ETestSuite struct {
	suite.Suite
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	expect  playwright.PlaywrightAssertions
}

func (suite *E2ETestSuite) SetupSuite() {
	pw, err := playwright.Run()
	require.NoError(suite.T(), err, "could not launch playwright")
	suite.pw = pw

	browser, err := pw.Chromium.Launch()
	require.NoError(suite.T(), err, "could not launch chromium")
	suite.browser = browser

	suite.expect = playwright.NewPlaywrightAssertions()
}

func (suite *E2ETestSuite) TearDownSuite() {
	if suite.browser != nil {
		suite.browser.Close()
	}
	if suite.pw != nil {
		suite.pw.Stop()
	}
}

func (suite *E2ETestSuite) SetupTest() {
	page, err := suite.browser.NewPage()
	require.NoError(suite.T(), err, "could not create page")
	suite.page = page

	_, err = suite.page.Goto(appURL)
	require.NoError(suite.T(), err, "could not navigate to app")
}

func (suite *E2ETestSuite) TearDownTest() {
	if suite.page != nil {
		suite.page.Close()
	}
}

func (suite *E2ETestSuite) TestPriceFilter() {
	suite.NoError(suite.expect.Locator(suite.page.Locator(".place-card")).ToHaveCount(3))

	_, err := suite.page.Locator("#price-filter").SelectOption(playwright.SelectOptionValues{
		Values: playwright.StringSlice("50"),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.page.Locator("#filter button").Click())

	suite.NoError(suite.expect.Locator(suite.page.Locator(".place-card")).ToHaveCount(2))
}

func (suite *E2ETestSuite) TestLoginFlipsAffordances() {
	suite.NoError(suite.expect.Locator(suite.page.Locator("#login-link")).ToHaveText("Login"))

	suite.Require().NoError(suite.page.Locator("#login-link").Click())
	suite.Require().NoError(suite.page.Locator("#email").Fill("guest@example.com"))
	suite.Require().NoError(suite.page.Locator("#password").Fill("secret"))
	suite.Require().NoError(suite.page.Locator("#login-form button").Click())

	suite.NoError(suite.expect.Locator(suite.page.Locator("#login-link")).ToHaveText("Logout"))

	_, err := suite.page.Goto(appURL + "/places/p2")
	suite.Require().NoError(err)
	suite.NoError(suite.expect.Locator(suite.page.Locator("#add-review-btn")).ToHaveText("Add Review"))
}

func TestE2E(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
