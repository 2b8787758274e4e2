package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z0-9_]+)\}\}`)

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": password,
	})
	if err != nil {
		return err
	}

	previousToken := t.accessToken
	t.accessToken = ""
	defer func() { t.accessToken = previousToken }()

	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to register %s: status %d (body: %v)", email, t.response.status, t.response.body)
	}
	t.currentEmail = email
	return nil
}

// iAmLoggedInAs registers the user when needed and logs in through the API.
func (t *testContext) iAmLoggedInAs(email string) error {
	const password = "SecurePass123!"

	var existing model.UserModel
	err := t.suite.db.DbConn.Where("email = ?", email).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := t.aUserExistsWithEmailAndPassword(email, password); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	t.accessToken = ""
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("failed to log in %s: status %d (body: %v)", email, t.response.status, t.response.body)
	}

	access, _ := getFieldValue(t.response.body, "accessToken").(string)
	refresh, _ := getFieldValue(t.response.body, "refreshToken").(string)
	userID, _ := getFieldValue(t.response.body, "user.id").(string)
	if access == "" || refresh == "" {
		return fmt.Errorf("login response has no tokens: %v", t.response.body)
	}

	t.accessToken = access
	t.refreshToken = refresh
	t.currentEmail = email
	t.currentUserID, _ = uuid.Parse(userID)
	t.saved["access_token"] = access
	t.saved["refresh_token"] = refresh
	t.saved["user_id"] = userID
	return nil
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

// iHaveTheFollowingExpenses creates each row of the table through the API.
// The header row names the request fields.
func (t *testContext) iHaveTheFollowingExpenses(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("expense table needs a header and at least one row")
	}
	header := table.Rows[0].Cells

	for _, row := range table.Rows[1:] {
		body := make(map[string]any, len(header))
		for i, cell := range row.Cells {
			name := header[i].Value
			if name == "amount" {
				amount, err := strconv.ParseFloat(cell.Value, 64)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", cell.Value, err)
				}
				body[name] = amount
				continue
			}
			body[name] = cell.Value
		}

		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		if err := t.executeRequest(http.MethodPost, "/api/v1/expenses", payload); err != nil {
			return err
		}
		if t.response.status != http.StatusCreated {
			return fmt.Errorf("failed to create expense %v: status %d (body: %v)", body, t.response.status, t.response.body)
		}
	}
	return nil
}

func (t *testContext) myMonthlyIncomeIs(amount string) error {
	income, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return fmt.Errorf("invalid income %q: %w", amount, err)
	}
	payload, _ := json.Marshal(map[string]float64{"monthlyIncome": income})
	if err := t.executeRequest(http.MethodPatch, "/api/v1/settings", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("failed to set income: status %d (body: %v)", t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) iHaveAFixedExpense(name, amount, category string) error {
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	payload, _ := json.Marshal(map[string]any{"name": name, "amount": value, "category": category})
	if err := t.executeRequest(http.MethodPost, "/api/v1/settings/fixed-expenses", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to add fixed expense: status %d (body: %v)", t.response.status, t.response.body)
	}
	if id, ok := getFieldValue(t.response.body, "item.id").(string); ok {
		t.saved["fixed_expense_id"] = id
	}
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iSaveTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.saved[name] = fmt.Sprintf("%v", value)
	return nil
}

// replacePlaceholders substitutes {{name}} with a saved value. The reset
// token of the current user is read from the database on demand.
func (t *testContext) replacePlaceholders(content string) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if name == "reset_token" {
			return t.latestResetToken()
		}
		if value, ok := t.saved[name]; ok {
			return value
		}
		return match
	})
}

func (t *testContext) latestResetToken() string {
	var token model.PasswordResetTokenModel
	err := t.suite.db.DbConn.
		Where("email = ? AND used = ?", t.currentEmail, false).
		Order("created_at DESC").
		First(&token).Error
	if err != nil {
		return ""
	}
	return token.Token
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.suite.server.URL+path, body)
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

	t.response = &response{status: resp.StatusCode, raw: bodyBytes}

	var decoded any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = decoded

	if object, ok := decoded.(map[string]any); ok {
		if id, ok := object["id"].(string); ok {
			t.saved["last_id"] = id
		}
		if id, ok := getFieldValue(object, "expense.id").(string); ok {
			t.saved["last_id"] = id
		}
	}
	return nil
}

func (t *testContext) theEmailWorkerProcessesTheQueue(ctx context.Context) error {
	worker := t.suite.injector.EmailWorker
	if worker == nil {
		return errors.New("email worker is not configured")
	}
	worker.ProcessNow(ctx)
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
	switch t.response.body.(type) {
	case map[string]any, []any:
		return nil
	default:
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
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

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	items, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, t.response.body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.suite.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.suite.db.DbConn.Unscoped()
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

func (t *testContext) emailsShouldHaveBeenSent(count int) error {
	sent := t.suite.sender.Sent()
	if len(sent) != count {
		return fmt.Errorf("expected %d emails, got %d", count, len(sent))
	}
	return nil
}

func (t *testContext) theLastEmailShouldBeSentTo(recipient, subject string) error {
	sent := t.suite.sender.Sent()
	if len(sent) == 0 {
		return errors.New("no email was sent")
	}
	last := sent[len(sent)-1]
	if last.To != recipient {
		return fmt.Errorf("expected email to %s, got %s", recipient, last.To)
	}
	if !strings.Contains(last.Subject, subject) {
		return fmt.Errorf("expected subject containing %q, got %q", subject, last.Subject)
	}
	return nil
}

func (t *testContext) theLastEmailShouldContain(text string) error {
	sent := t.suite.sender.Sent()
	if len(sent) == 0 {
		return errors.New("no email was sent")
	}
	last := sent[len(sent)-1]
	if !strings.Contains(last.Text, text) && !strings.Contains(last.HTML, text) {
		return fmt.Errorf("last email does not contain %q:\n%s", text, last.Text)
	}
	return nil
}

func (t *testContext) theExpenseSnapshotShouldBeCached(ctx context.Context, email string) error {
	cached, err := t.snapshotCached(ctx, email)
	if err != nil {
		return err
	}
	if !cached {
		return fmt.Errorf("expected a cached expense snapshot for %s", email)
	}
	return nil
}

func (t *testContext) theExpenseSnapshotShouldNotBeCached(ctx context.Context, email string) error {
	cached, err := t.snapshotCached(ctx, email)
	if err != nil {
		return err
	}
	if cached {
		return fmt.Errorf("expected no cached expense snapshot for %s", email)
	}
	return nil
}

func (t *testContext) snapshotCached(ctx context.Context, email string) (bool, error) {
	var user model.UserModel
	if err := t.suite.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return false, fmt.Errorf("user %s not found: %w", email, err)
	}
	return t.suite.redis.Server.Exists(cache.SnapshotKey(user.ID)), nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	field := object

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
