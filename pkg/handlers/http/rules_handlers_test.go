package http

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	appRule "github.com/cyoai/chatguard/pkg/app/rule"
	"github.com/cyoai/chatguard/pkg/domain/rule"
	"github.com/cyoai/chatguard/pkg/infra/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rulesResponse struct {
	Count   int      `json:"count"`
	Rules   []string `json:"rules"`
	Removed string   `json:"removed"`
}

func newRulesApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := logrus.New()
	repo := repository.NewFileRuleRepository(filepath.Join(t.TempDir(), "rules.json"), logger)
	service := appRule.NewService(repo, logger)

	app := fiber.New()
	app.Get("/rules", NewListRulesHandler(logger, service).Handle)
	app.Post("/rules", NewCreateRuleHandler(logger, service).Handle)
	app.Delete("/rules/:index", NewDeleteRuleHandler(logger, service).Handle)
	app.Post("/rules/reload", NewReloadRulesHandler(logger, service).Handle)
	app.Post("/rules/reset", NewResetRulesHandler(logger, service).Handle)
	return app
}

func TestListRules_ReturnsDefaultsOnFreshStore(t *testing.T) {
	app := newRulesApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/rules", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body rulesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string(rule.Defaults()), body.Rules)
	assert.Equal(t, len(rule.Defaults()), body.Count)
}

func TestCreateRule_AppendsPattern(t *testing.T) {
	app := newRulesApp(t)

	req := httptest.NewRequest("POST", "/rules", strings.NewReader(`{"pattern":"keylogger"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body rulesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, len(rule.Defaults())+1, body.Count)
	assert.Equal(t, "keylogger", body.Rules[len(body.Rules)-1])
}

func TestCreateRule_EmptyPattern(t *testing.T) {
	app := newRulesApp(t)

	for _, payload := range []string{`{"pattern":""}`, `{"pattern":"   "}`, `{}`} {
		req := httptest.NewRequest("POST", "/rules", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestCreateRule_InvalidRegex(t *testing.T) {
	app := newRulesApp(t)

	req := httptest.NewRequest("POST", "/rules", strings.NewReader(`{"pattern":"re:[unclosed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "invalid pattern")
}

func TestDeleteRule_RemovesByIndex(t *testing.T) {
	app := newRulesApp(t)
	defaults := rule.Defaults()

	resp, err := app.Test(httptest.NewRequest("DELETE", "/rules/0", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body rulesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, defaults[0], body.Removed)
	assert.Equal(t, len(defaults)-1, body.Count)
	assert.NotContains(t, body.Rules, defaults[0])
}

func TestDeleteRule_IndexOutOfRange(t *testing.T) {
	app := newRulesApp(t)

	for _, path := range []string{"/rules/99", "/rules/-1"} {
		resp, err := app.Test(httptest.NewRequest("DELETE", path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}

	// the failed deletes must not have touched the store
	resp, err := app.Test(httptest.NewRequest("GET", "/rules", nil), -1)
	require.NoError(t, err)
	var body rulesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, len(rule.Defaults()), body.Count)
}

func TestDeleteRule_NonNumericIndex(t *testing.T) {
	app := newRulesApp(t)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/rules/abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestResetRules_RestoresDefaults(t *testing.T) {
	app := newRulesApp(t)

	req := httptest.NewRequest("POST", "/rules", strings.NewReader(`{"pattern":"keylogger"}`))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req, -1)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("POST", "/rules/reset", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body rulesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string(rule.Defaults()), body.Rules)
}

func TestReloadRules_ReflectsStore(t *testing.T) {
	app := newRulesApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/rules/reload", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body rulesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, len(rule.Defaults()), body.Count)
}
