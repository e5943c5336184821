package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "studio/internal/adapters/email"
	web "studio/internal/adapters/http"
	"studio/internal/adapters/http/perf"
	"studio/internal/adapters/storage"
	accountStore "studio/internal/adapters/storage/account"
	appointmentStore "studio/internal/adapters/storage/appointment"
	onboardingStore "studio/internal/adapters/storage/onboarding"
	"studio/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Optional .env for local development; real environments set vars directly.
	_ = godotenv.Load()

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("STUDIO_DB_PATH", "studio.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Run database migrations
	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	// Create store instances (using timed DB for query instrumentation)
	acctStore := accountStore.NewSQLiteStore(timedDB)
	apptStore := appointmentStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:     acctStore,
		AppointmentStore: apptStore,
		OnboardingStore:  onboardingStore.NewSQLiteStore(timedDB),
	}

	// Seed the owner account if no accounts exist
	ownerEmail := envOrDefault("STUDIO_OWNER_EMAIL", orchestrators.DefaultOwnerEmail)
	ownerPassword := envOrDefault("STUDIO_OWNER_PASSWORD", orchestrators.DefaultOwnerPassword)
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedOwner(context.Background(), seedDeps, ownerEmail, ownerPassword); err != nil {
		log.Fatalf("failed to seed owner: %v", err)
	}

	// Seed demo appointments for development only
	if os.Getenv("STUDIO_ENV") != "production" {
		seedApptDeps := orchestrators.SeedAppointmentsDeps{AppointmentStore: apptStore}
		if err := orchestrators.ExecuteSeedAppointments(context.Background(), seedApptDeps); err != nil {
			log.Fatalf("failed to seed appointments: %v", err)
		}
		log.Println("Demo appointments loaded (dev mode)")
	}

	// Configure email sender
	resendKey := os.Getenv("STUDIO_RESEND_KEY")
	emailFrom := envOrDefault("STUDIO_RESEND_FROM", "Golden Hour Studio <noreply@goldenhour.studio>")
	emailReply := envOrDefault("STUDIO_REPLY_TO", "hello@goldenhour.studio")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, emailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, emailReply)
		if os.Getenv("STUDIO_ENV") == "production" {
			log.Println("WARNING: STUDIO_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set STUDIO_RESEND_KEY for real delivery)")
		}
	}

	// Create HTTP handler with middleware (pass collector for timing + dashboard)
	mux := web.NewMux("static", stores, collector)

	// Start server
	addr := envOrDefault("STUDIO_ADDR", ":8080")
	log.Printf("Golden Hour Studio %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("STUDIO_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
