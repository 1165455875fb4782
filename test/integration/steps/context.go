// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/application/usecase/advisor"
	"github.com/playbookTV/Kora/internal/application/usecase/alert"
	"github.com/playbookTV/Kora/internal/application/usecase/auth"
	"github.com/playbookTV/Kora/internal/application/usecase/insight"
	"github.com/playbookTV/Kora/internal/application/usecase/pattern"
	"github.com/playbookTV/Kora/internal/application/usecase/profile"
	"github.com/playbookTV/Kora/internal/application/usecase/transaction"
	enginealert "github.com/playbookTV/Kora/internal/domain/engine/alert"
	"github.com/playbookTV/Kora/internal/infra/server/router"
	"github.com/playbookTV/Kora/internal/integration/adapters"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/controller"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/middleware"
	"github.com/playbookTV/Kora/internal/integration/notification"
	"github.com/playbookTV/Kora/internal/integration/persistence"
	"github.com/playbookTV/Kora/internal/integration/persistence/model"
	"github.com/playbookTV/Kora/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// testContext holds the per-scenario state: the HTTP client, seeded IDs
// and the last response.
type testContext struct {
	uri               string
	headers           map[string]string
	client            *http.Client
	response          *response
	db                *mock.Db
	serverPort        int
	accessToken       string
	refreshToken      string
	currentUserID     uuid.UUID
	currentExpenseID  uuid.UUID
	lastTransactionID uuid.UUID
}

type response struct {
	status int
	body   any
	err    error
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb("kora", map[string]any{
			"users":              &model.UserModel{},
			"refresh_tokens":     &model.RefreshTokenModel{},
			"financial_profiles": &model.ProfileModel{},
			"fixed_expenses":     &model.FixedExpenseModel{},
			"transactions":       &model.TransactionModel{},
			"spending_patterns":  &model.PatternModel{},
			"alert_queue":        &model.AlertQueueModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)

	// Profile setup steps
	ctx.Given(`^the user has income "([^"]*)" with payday on day (\d+)$`, test.theUserHasIncomeWithPayday)
	ctx.Given(`^the user gets paid in (\d+) days$`, test.theUserGetsPaidInDays)
	ctx.Given(`^the user has a balance of "([^"]*)"$`, test.theUserHasABalanceOf)
	ctx.Given(`^the user has a fixed expense "([^"]*)" of "([^"]*)"$`, test.theUserHasAFixedExpenseOf)

	// Transaction setup steps
	ctx.Given(`^the user spent "([^"]*)" on "([^"]*)" today$`, test.theUserSpentOnToday)
	ctx.Given(`^the user spent "([^"]*)" on "([^"]*)" yesterday$`, test.theUserSpentOnYesterday)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.currentExpenseID = uuid.Nil
	t.lastTransactionID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

// stubAdvisor replaces the Gemini adapter so advisor scenarios run without
// network access.
type stubAdvisor struct{}

func (stubAdvisor) Ask(ctx context.Context, request *adapter.AdvisorRequest) (*adapter.AdvisorResult, error) {
	answer := fmt.Sprintf("You have %s available today.", request.SafeSpendToday)
	return &adapter.AdvisorResult{Answer: answer}, nil
}

func (stubAdvisor) IsAvailable() bool {
	return true
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			userRepo := persistence.NewUserRepository(testDB.DbConn)
			tokenRepo := persistence.NewTokenRepository(testDB.DbConn)
			profileRepo := persistence.NewProfileRepository(testDB.DbConn)
			transactionRepo := persistence.NewTransactionRepository(testDB.DbConn)
			patternRepo := persistence.NewPatternRepository(testDB.DbConn)
			queueRepo := persistence.NewAlertQueueRepository(testDB.DbConn)

			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, tokenRepo)
			debouncer := notification.NewRedisDebouncer(mock.NewRedis())
			alertConfig := enginealert.DefaultConfig()

			registerUseCase := auth.NewRegisterUserUseCase(userRepo, profileRepo, passwordService, tokenService)
			loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
			refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
			logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

			getProfileUseCase := profile.NewGetProfileUseCase(profileRepo)
			updateProfileUseCase := profile.NewUpdateProfileUseCase(profileRepo)
			addExpenseUseCase := profile.NewAddFixedExpenseUseCase(profileRepo)
			updateExpenseUseCase := profile.NewUpdateFixedExpenseUseCase(profileRepo)
			deleteExpenseUseCase := profile.NewDeleteFixedExpenseUseCase(profileRepo)

			logSpendUseCase := transaction.NewLogSpendUseCase(transactionRepo, profileRepo)
			listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
			deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, profileRepo)

			stateUseCase := insight.NewGetFinancialStateUseCase(profileRepo, transactionRepo, patternRepo)
			getPatternUseCase := pattern.NewGetPatternUseCase(patternRepo)
			refreshPatternsUseCase := pattern.NewRefreshPatternsUseCase(profileRepo, transactionRepo, patternRepo)
			closeDayUseCase := pattern.NewCloseDayUseCase(profileRepo, transactionRepo, patternRepo)
			evaluateAlertsUseCase := alert.NewEvaluateAlertsUseCase(profileRepo, transactionRepo, patternRepo, queueRepo, debouncer, alertConfig)
			followUpUseCase := alert.NewFollowUpLimitUseCase(transactionRepo, queueRepo)
			askAdvisorUseCase := advisor.NewAskAdvisorUseCase(profileRepo, transactionRepo, patternRepo, stubAdvisor{})

			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
			})

			authController := controller.NewAuthController(
				registerUseCase,
				loginUseCase,
				refreshTokenUseCase,
				logoutUseCase,
			)

			profileController := controller.NewProfileController(
				getProfileUseCase,
				updateProfileUseCase,
				addExpenseUseCase,
				updateExpenseUseCase,
				deleteExpenseUseCase,
			)

			transactionController := controller.NewTransactionController(
				logSpendUseCase,
				listTransactionsUseCase,
				deleteTransactionUseCase,
			)

			insightController := controller.NewInsightController(stateUseCase)
			patternController := controller.NewPatternController(getPatternUseCase, refreshPatternsUseCase, closeDayUseCase)
			alertController := controller.NewAlertController(evaluateAlertsUseCase, followUpUseCase, queueRepo)
			advisorController := controller.NewAdvisorController(askAdvisorUseCase)

			loginRateLimiter := middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(
				healthController,
				authController,
				profileController,
				transactionController,
				insightController,
				patternController,
				alertController,
				advisorController,
				loginRateLimiter,
				authMiddleware,
			)
			engine := r.Setup("test")

			addr := fmt.Sprintf(":%d", testServerPort)
			server := &http.Server{
				Addr:    addr,
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}
