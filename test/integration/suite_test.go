//go:build integration

package integration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
)

// browser is the per-scenario state of the feature steps: one client and
// the last page it fetched.
type browser struct {
	baseURL string
	client  *http.Client

	status int
	header http.Header
	body   string
}

func (b *browser) forget() {
	b.status, b.header, b.body = 0, nil, ""
}

func (b *browser) serviceIsRunning(ctx context.Context) error {
	if err := b.get(ctx, "/-/live"); err != nil {
		return fmt.Errorf("dashboard not reachable at %s: %w", b.baseURL, err)
	}

	if b.status != http.StatusOK {
		return fmt.Errorf("liveness probe answered %d", b.status)
	}

	b.forget()

	return nil
}

func (b *browser) get(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	b.status, b.header, b.body = resp.StatusCode, resp.Header, string(raw)

	return nil
}

func (b *browser) statusIs(want int) error {
	if b.status != want {
		return fmt.Errorf("status %d, want %d; body: %s", b.status, want, b.body)
	}

	return nil
}

func (b *browser) bodyContains(text string) error {
	if !strings.Contains(b.body, text) {
		return fmt.Errorf("body lacks %q", text)
	}

	return nil
}

func (b *browser) bodyLacks(text string) error {
	if strings.Contains(b.body, text) {
		return fmt.Errorf("body unexpectedly has %q", text)
	}

	return nil
}

func (b *browser) contentTypeIs(want string) error {
	if b.header == nil {
		return errors.New("nothing fetched yet")
	}

	if got := b.header.Get("Content-Type"); !strings.HasPrefix(got, want) {
		return fmt.Errorf("content type %q, want %q", got, want)
	}

	return nil
}

func (b *browser) headerIsSet(name string) error {
	if b.header == nil || b.header.Get(name) == "" {
		return fmt.Errorf("response has no %s header", name)
	}

	return nil
}

// scenarioInitializer binds the steps to a fresh browser aimed at baseURL.
func scenarioInitializer(baseURL string) func(*godog.ScenarioContext) {
	return func(sc *godog.ScenarioContext) {
		b := &browser{baseURL: baseURL, client: &http.Client{Timeout: 10 * time.Second}}

		sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
			b.forget()
			return ctx, nil
		})

		sc.Step(`^the service is running$`, b.serviceIsRunning)
		sc.Step(`^I request GET "([^"]*)"$`, b.get)
		sc.Step(`^the response status should be (\d+)$`, b.statusIs)
		sc.Step(`^the response should contain "([^"]*)"$`, b.bodyContains)
		sc.Step(`^the response should not contain "([^"]*)"$`, b.bodyLacks)
		sc.Step(`^the content type should be "([^"]*)"$`, b.contentTypeIs)
		sc.Step(`^the response should have the "([^"]*)" header$`, b.headerIsSet)
	}
}

// TestFeatures runs the dashboard features against BASE_URL, or against an
// in-process dashboard over the fixture dataset when BASE_URL is unset.
func TestFeatures(t *testing.T) {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = startDashboard(t).server.URL
	}

	suite := godog.TestSuite{
		ScenarioInitializer: scenarioInitializer(strings.TrimSuffix(baseURL, "/")),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("dashboard features failed")
	}
}
