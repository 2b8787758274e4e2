// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// suite is the process wide server shared by every scenario.
type suite struct {
	server   *httptest.Server
	injector *dependency.Injector
	db       *mock.Db
	redis    *mock.Redis
	clock    *mock.Time
	sender   *email.MockEmailSender
}

var (
	suiteOnce sync.Once
	shared    *suite
)

func startSuite() *suite {
	suiteOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")

		cfg := config.Load()
		cfg.JWT.Secret = testJWTSecret
		cfg.JWT.BcryptCost = 4
		cfg.Email.WorkerEnabled = true
		cfg.Server.AppBaseURL = "http://localhost:5173"

		s := &suite{
			db: mock.NewDb(map[string]any{
				"users":                 &model.UserModel{},
				"refresh_tokens":        &model.RefreshTokenModel{},
				"password_reset_tokens": &model.PasswordResetTokenModel{},
				"expenses":              &model.ExpenseModel{},
				"user_settings":         &model.UserSettingsModel{},
				"quick_notes":           &model.QuickNoteModel{},
				"water_reminders":       &model.WaterReminderModel{},
				"email_queue":           &model.EmailQueueModel{},
			}),
			redis:  mock.NewRedis(),
			clock:  mock.NewTime(),
			sender: email.NewMockEmailSender(),
		}

		injector, err := dependency.NewInjector(cfg, db.Wrap(s.db.DbConn), dependency.Options{
			Redis:       s.redis.Client,
			EmailSender: s.sender,
			Now:         s.clock.Now,
		})
		if err != nil {
			panic(fmt.Sprintf("failed to wire application: %v", err))
		}
		s.injector = injector
		s.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
		shared = s
	})
	return shared
}

// testContext holds the state of one scenario.
type testContext struct {
	suite   *suite
	client  *http.Client
	headers map[string]string

	response *response

	accessToken   string
	refreshToken  string
	currentUserID uuid.UUID
	currentEmail  string

	// saved holds values captured from responses, addressed as {{name}}
	saved map[string]string
}

type response struct {
	status int
	body   any
	raw    []byte
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		startSuite()
	})

	ctx.AfterSuite(func() {
		if shared != nil && shared.server != nil {
			shared.server.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before(ctx)
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Data setup steps
	ctx.Given(`^I have the following expenses:$`, test.iHaveTheFollowingExpenses)
	ctx.Given(`^my monthly income is "([^"]*)"$`, test.myMonthlyIncomeIs)
	ctx.Given(`^I have a fixed expense "([^"]*)" of "([^"]*)" in "([^"]*)"$`, test.iHaveAFixedExpense)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I save the response field "([^"]*)" as "([^"]*)"$`, test.iSaveTheResponseFieldAs)
	ctx.When(`^the email worker processes the queue$`, test.theEmailWorkerProcessesTheQueue)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Side effect assertion steps
	ctx.Then(`^(\d+) emails? should have been sent$`, test.emailsShouldHaveBeenSent)
	ctx.Then(`^the last email should be sent to "([^"]*)" with subject containing "([^"]*)"$`, test.theLastEmailShouldBeSentTo)
	ctx.Then(`^the last email should contain "([^"]*)"$`, test.theLastEmailShouldContain)
	ctx.Then(`^the expense snapshot of "([^"]*)" should be cached$`, test.theExpenseSnapshotShouldBeCached)
	ctx.Then(`^the expense snapshot of "([^"]*)" should not be cached$`, test.theExpenseSnapshotShouldNotBeCached)
}

func (t *testContext) before(ctx context.Context) error {
	t.suite = startSuite()
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.currentEmail = ""
	t.saved = make(map[string]string)

	t.suite.clock.Reset()
	t.suite.sender.Reset()
	t.suite.injector.RateLimiter.Reset()
	if err := t.suite.redis.Clear(ctx); err != nil {
		return err
	}
	return t.suite.db.ClearDB()
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.suite.server.URL + "/health")
	if err != nil {
		return fmt.Errorf("server is not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	current, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.suite.clock.SetCurrentTime(current)
	return nil
}
