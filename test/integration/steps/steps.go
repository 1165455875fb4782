package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/playbookTV/Kora/internal/integration/persistence/model"
)

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, "DefaultPass123!", "Test User")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test User")
}

// createUser seeds a user together with the empty financial profile that
// registration would have created.
func (t *testContext) createUser(email, password, name string) error {
	userID := uuid.New()
	t.currentUserID = userID

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:              userID,
		Email:           email,
		Name:            name,
		PasswordHash:    hashPassword(password),
		AlertsEnabled:   true,
		TermsAcceptedAt: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := t.db.DbConn.Create(user).Error; err != nil {
		return err
	}

	profileModel := &model.ProfileModel{
		ID:             uuid.New(),
		UserID:         userID,
		CurrentBalance: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return t.db.DbConn.Create(profileModel).Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

// iAmLoggedInAs ensures the user exists and issues a valid token pair for
// them, storing the refresh token so logout and refresh flows work.
func (t *testContext) iAmLoggedInAs(email string) error {
	var userModel model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&userModel).Error; err != nil {
		if createErr := t.createUser(email, "SecurePass123!", "Test User "+email); createErr != nil {
			return createErr
		}
		if err := t.db.DbConn.Where("email = ?", email).First(&userModel).Error; err != nil {
			return fmt.Errorf("user not found after create: %w", err)
		}
	}

	t.currentUserID = userModel.ID
	now := time.Now().UTC()

	accessToken, err := signToken(userModel.ID, email, "access", now, 15*time.Minute)
	if err != nil {
		return err
	}
	t.accessToken = accessToken

	refreshToken, err := signToken(userModel.ID, email, "refresh", now, 7*24*time.Hour)
	if err != nil {
		return err
	}
	t.refreshToken = refreshToken

	refreshTokenModel := &model.RefreshTokenModel{
		ID:          uuid.New(),
		Token:       t.refreshToken,
		UserID:      t.currentUserID,
		Invalidated: false,
		ExpiresAt:   now.Add(7 * 24 * time.Hour),
		CreatedAt:   now,
	}

	return t.db.DbConn.Create(refreshTokenModel).Error
}

func signToken(userID uuid.UUID, email, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID.String(),
		"email":      email,
		"token_type": tokenType,
		"exp":        jwt.NewNumericDate(now.Add(ttl)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "kora",
		"sub":        userID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (t *testContext) theUserHasIncomeWithPayday(income string, payday int) error {
	amount, err := decimal.NewFromString(income)
	if err != nil {
		return fmt.Errorf("invalid income amount '%s': %w", income, err)
	}

	return t.db.DbConn.Model(&model.ProfileModel{}).
		Where("user_id = ?", t.currentUserID).
		Updates(map[string]any{"income": amount, "payday": payday}).Error
}

// theUserGetsPaidInDays sets the payday to land the given number of days
// from today, which keeps alert scenarios deterministic regardless of the
// calendar date the suite runs on.
func (t *testContext) theUserGetsPaidInDays(days int) error {
	payday := time.Now().UTC().AddDate(0, 0, days).Day()
	return t.db.DbConn.Model(&model.ProfileModel{}).
		Where("user_id = ?", t.currentUserID).
		Update("payday", payday).Error
}

func (t *testContext) theUserHasABalanceOf(balance string) error {
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("invalid balance amount '%s': %w", balance, err)
	}

	return t.db.DbConn.Model(&model.ProfileModel{}).
		Where("user_id = ?", t.currentUserID).
		Update("current_balance", amount).Error
}

func (t *testContext) theUserHasAFixedExpenseOf(name, amount string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid expense amount '%s': %w", amount, err)
	}

	var profileModel model.ProfileModel
	if err := t.db.DbConn.Where("user_id = ?", t.currentUserID).First(&profileModel).Error; err != nil {
		return fmt.Errorf("profile not found: %w", err)
	}

	expenseID := uuid.New()
	t.currentExpenseID = expenseID

	now := time.Now().UTC()
	expense := &model.FixedExpenseModel{
		ID:        expenseID,
		ProfileID: profileModel.ID,
		Name:      name,
		Amount:    value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return t.db.DbConn.Create(expense).Error
}

func (t *testContext) theUserSpentOnToday(amount, category string) error {
	return t.createTransaction(amount, category, time.Now().UTC())
}

func (t *testContext) theUserSpentOnYesterday(amount, category string) error {
	return t.createTransaction(amount, category, time.Now().UTC().AddDate(0, 0, -1))
}

func (t *testContext) createTransaction(amount, category string, date time.Time) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid transaction amount '%s': %w", amount, err)
	}

	transactionID := uuid.New()
	t.lastTransactionID = transactionID

	transactionModel := &model.TransactionModel{
		ID:        transactionID,
		UserID:    t.currentUserID,
		Amount:    value,
		Category:  category,
		Date:      date,
		Source:    "manual",
		CreatedAt: time.Now().UTC(),
	}

	return t.db.DbConn.Create(transactionModel).Error
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	now := time.Now().UTC()

	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())
	content = strings.ReplaceAll(content, "{{expense_id}}", t.currentExpenseID.String())
	content = strings.ReplaceAll(content, "{{today}}", now.Format("2006-01-02"))
	content = strings.ReplaceAll(content, "{{yesterday}}", now.AddDate(0, 0, -1).Format("2006-01-02"))

	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody

		// Capture IDs so later steps can reference created resources.
		if idStr, ok := responseBody["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.currentExpenseID = id
			}
		}
		if tx, ok := responseBody["transaction"].(map[string]any); ok {
			if idStr, ok := tx["id"].(string); ok {
				if id, err := uuid.Parse(idStr); err == nil {
					t.lastTransactionID = id
				}
			}
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}

	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
