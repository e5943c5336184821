// Package browser_test contains end-to-end tests driven through Playwright.
//
// Each test spins up a real HTTP server backed by a throwaway SQLite
// database, then drives a headless Chromium against it. Run with:
//
//	go test ./tests/browser/
//
// The first run downloads browser binaries via playwright-go.
package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	_ "modernc.org/sqlite"

	emailPkg "studio/internal/adapters/email"
	web "studio/internal/adapters/http"
	"studio/internal/adapters/http/middleware"
	"studio/internal/adapters/http/perf"
	"studio/internal/adapters/storage"
	accountStore "studio/internal/adapters/storage/account"
	appointmentStore "studio/internal/adapters/storage/appointment"
	onboardingStore "studio/internal/adapters/storage/onboarding"
	"studio/internal/application/orchestrators"
)

const (
	adminEmail    = "admin@goldenhour.test"
	adminPassword = "browser-test-password"
)

// testApp bundles everything a browser test needs: a running server,
// the backing stores for seeding data, and a Playwright browser.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
	Stores  *web.Stores
	AdminID string
}

// newTestApp starts a fresh server on a random port with an empty
// database and an admin account, plus a headless Chromium.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "studio_test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.MigrateDB(db, dbPath); err != nil {
		t.Fatalf("migrate database: %v", err)
	}

	stores := &web.Stores{
		AccountStore:     accountStore.NewSQLiteStore(db),
		AppointmentStore: appointmentStore.NewSQLiteStore(db),
		OnboardingStore:  onboardingStore.NewSQLiteStore(db),
	}

	adminID, err := orchestrators.ExecuteCreateAccount(context.Background(), orchestrators.CreateAccountInput{
		Email:    adminEmail,
		Password: adminPassword,
		Name:     "Test Admin",
		Role:     "admin",
	}, orchestrators.CreateAccountDeps{AccountStore: stores.AccountStore})
	if err != nil {
		t.Fatalf("create admin account: %v", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	baseURL := fmt.Sprintf("http://%s", listener.Addr().String())

	// Templates and static assets are referenced relative to the project
	// root, so run the server from there.
	root, err := findProjectRoot()
	if err != nil {
		t.Fatalf("find project root: %v", err)
	}
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// The CSRF middleware only trusts known origins; add this server's
	// ephemeral port before the mux (and its CSRF handler) is built.
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins, listener.Addr().String())

	web.SetEmailSender(emailPkg.NewNoopSender(), "Golden Hour Studio <noreply@goldenhour.test>", "hello@goldenhour.test")

	mux := web.NewMux("static", stores, perf.NewCollector(perf.DefaultRingSize))
	server := &http.Server{Handler: mux}
	go server.Serve(listener)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	})

	// Wait for the server to accept requests.
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not become ready: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("start playwright: %v", err)
	}
	t.Cleanup(func() { pw.Stop() })

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("launch chromium: %v", err)
	}
	t.Cleanup(func() { browser.Close() })

	return &testApp{
		BaseURL: baseURL,
		DB:      db,
		Server:  server,
		PW:      pw,
		Browser: browser,
		Stores:  stores,
		AdminID: adminID,
	}
}

// newPage opens a fresh browser context and page.
func (app *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	ctx, err := app.Browser.NewContext()
	if err != nil {
		t.Fatalf("new browser context: %v", err)
	}
	t.Cleanup(func() { ctx.Close() })
	page, err := ctx.NewPage()
	if err != nil {
		t.Fatalf("new page: %v", err)
	}
	return page
}

// login signs the admin in and waits for the schedule to load.
func (app *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(app.BaseURL + "/login"); err != nil {
		t.Fatalf("goto login: %v", err)
	}
	if err := page.Locator(`input[name="email"]`).Fill(adminEmail); err != nil {
		t.Fatalf("fill email: %v", err)
	}
	if err := page.Locator(`input[name="password"]`).Fill(adminPassword); err != nil {
		t.Fatalf("fill password: %v", err)
	}
	if err := page.Locator(`button[type="submit"]`).Click(); err != nil {
		t.Fatalf("submit login: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL + "/schedule**"); err != nil {
		t.Fatalf("wait for schedule after login: %v", err)
	}
}

// findProjectRoot walks up from the working directory to the module root.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above %s", dir)
		}
		dir = parent
	}
}
