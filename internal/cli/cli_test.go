package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/terraincognita07/habitflow/internal/app"
	"github.com/terraincognita07/habitflow/internal/db"
	"github.com/terraincognita07/habitflow/internal/services"
	"github.com/terraincognita07/habitflow/internal/session"
	gokeyring "github.com/zalando/go-keyring"
)

type cliHarness struct {
	t      *testing.T
	dbPath string
	logDir string
}

func newCLIHarness(t *testing.T) cliHarness {
	t.Helper()
	gokeyring.MockInit()
	dir := t.TempDir()
	return cliHarness{t: t, dbPath: filepath.Join(dir, "habitflow.db"), logDir: filepath.Join(dir, "logs")}
}

func (harness cliHarness) run(args ...string) (string, error) {
	harness.t.Helper()

	var root CLI
	parser, err := kong.New(&root,
		kong.Name("habitflow"),
		kong.Exit(func(int) {}),
		kong.Vars{"version": "test"},
	)
	if err != nil {
		harness.t.Fatalf("build parser: %v", err)
	}

	base := []string{"--db", harness.dbPath, "--log-dir", harness.logDir, "--tz", "UTC"}
	kongCtx, err := parser.Parse(append(base, args...))
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = kongCtx.Run(NewContext(&root.Globals, session.NewKeyringStore(), &out))
	return out.String(), err
}

func (harness cliHarness) createHabit(userID uint, title string) uint {
	harness.t.Helper()

	database, err := db.OpenSQLite(harness.dbPath)
	if err != nil {
		harness.t.Fatalf("open database: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		harness.t.Fatalf("sql handle: %v", err)
	}
	defer sqlDB.Close()

	bundle := app.NewServices(database, time.UTC)
	habit, _, err := bundle.Habits.Create(context.Background(), userID, services.CreateHabitInput{Title: title, Frequency: "daily"})
	if err != nil {
		harness.t.Fatalf("create habit: %v", err)
	}
	return habit.ID
}

func TestUseAndWhoami(t *testing.T) {
	harness := newCLIHarness(t)

	if _, err := harness.run("whoami"); err == nil {
		t.Fatal("expected whoami without a user to fail")
	}

	out, err := harness.run("use", "7")
	if err != nil {
		t.Fatalf("use failed: %v", err)
	}
	if !strings.Contains(out, "user 7") {
		t.Fatalf("unexpected use output %q", out)
	}

	out, err = harness.run("whoami")
	if err != nil {
		t.Fatalf("whoami failed: %v", err)
	}
	if !strings.Contains(out, "user 7 (no habits created yet)") {
		t.Fatalf("unexpected whoami output %q", out)
	}

	out, err = harness.run("--user", "3", "whoami")
	if err != nil {
		t.Fatalf("whoami --user failed: %v", err)
	}
	if !strings.Contains(out, "user 3") {
		t.Fatalf("expected --user to override active user, got %q", out)
	}

	if _, err := harness.run("use", "--clear"); err != nil {
		t.Fatalf("use --clear failed: %v", err)
	}
	if _, err := harness.run("whoami"); err == nil {
		t.Fatal("expected whoami after clear to fail")
	}
}

func TestCheckinCommandAndDuplicate(t *testing.T) {
	harness := newCLIHarness(t)
	habitID := harness.createHabit(1, "Read")
	id := strconv.FormatUint(uint64(habitID), 10)

	out, err := harness.run("--user", "1", "checkin", id)
	if err != nil {
		t.Fatalf("checkin failed: %v", err)
	}
	if !strings.Contains(out, "Logged") || !strings.Contains(out, "streak 1") {
		t.Fatalf("unexpected checkin output %q", out)
	}
	if !strings.Contains(out, "First Step") {
		t.Fatalf("expected first completion achievement in output %q", out)
	}

	_, err = harness.run("--user", "1", "checkin", id)
	if err == nil || !strings.Contains(err.Error(), "already completed") {
		t.Fatalf("expected duplicate checkin error, got %v", err)
	}

	out, err = harness.run("--user", "1", "habits")
	if err != nil {
		t.Fatalf("habits failed: %v", err)
	}
	if !strings.Contains(out, "Read") || !strings.Contains(out, "1 / 1") {
		t.Fatalf("unexpected habits output %q", out)
	}
}

func TestCheckinRejectsUnknownStatus(t *testing.T) {
	harness := newCLIHarness(t)

	if _, err := harness.run("--user", "1", "checkin", "1", "--status", "skipped"); err == nil {
		t.Fatal("expected unknown status to fail parsing")
	}
}

func TestMoodAndStatsCommands(t *testing.T) {
	harness := newCLIHarness(t)
	harness.createHabit(2, "Walk")

	out, err := harness.run("--user", "2", "mood", "7", "calm", "--energy", "6")
	if err != nil {
		t.Fatalf("mood failed: %v", err)
	}
	if !strings.Contains(out, "calm") || !strings.Contains(out, "Self Aware") {
		t.Fatalf("unexpected mood output %q", out)
	}

	if _, err := harness.run("--user", "2", "mood", "12", "calm"); err == nil {
		t.Fatal("expected mood level 12 to fail")
	}

	out, err = harness.run("--user", "2", "stats", "--days", "7")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	for _, want := range []string{"Today", "0 of 1 due habits done", "Walk", "1 entries"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in stats output %q", want, out)
		}
	}

	if _, err := harness.run("--user", "2", "stats", "--days", "0"); err == nil {
		t.Fatal("expected --days 0 to fail")
	}
}

func TestResetDataRequiresConfirmation(t *testing.T) {
	harness := newCLIHarness(t)
	harness.createHabit(4, "Stretch")

	if _, err := harness.run("--user", "4", "reset-data"); err == nil {
		t.Fatal("expected reset-data without --yes to fail")
	}

	out, err := harness.run("--user", "4", "reset-data", "--yes")
	if err != nil {
		t.Fatalf("reset-data failed: %v", err)
	}
	if !strings.Contains(out, "user 4 deleted") {
		t.Fatalf("unexpected reset output %q", out)
	}

	out, err = harness.run("--user", "4", "habits", "--all")
	if err != nil {
		t.Fatalf("habits failed: %v", err)
	}
	if !strings.Contains(out, "No habits yet.") {
		t.Fatalf("expected no habits after reset, got %q", out)
	}
}

func TestSecretAndTokenCommands(t *testing.T) {
	harness := newCLIHarness(t)

	out, err := harness.run("secret", "--length", "40")
	if err != nil {
		t.Fatalf("secret failed: %v", err)
	}
	secret := strings.TrimSpace(out)
	if len(secret) != 40 {
		t.Fatalf("expected 40 character secret, got %q", secret)
	}

	if _, err := harness.run("secret", "--length", "8"); err == nil {
		t.Fatal("expected short secret length to fail")
	}

	t.Setenv("SECRET_KEY", "change_me_in_production")
	if _, err := harness.run("--user", "1", "token"); err == nil {
		t.Fatal("expected placeholder secret to be rejected")
	}

	t.Setenv("SECRET_KEY", secret)
	out, err = harness.run("--user", "1", "token", "--ttl", "1h")
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}
	if parts := strings.Split(strings.TrimSpace(out), "."); len(parts) != 3 {
		t.Fatalf("expected a JWT, got %q", out)
	}
}

func TestMigrateCommandReportsApplied(t *testing.T) {
	harness := newCLIHarness(t)

	out, err := harness.run("migrate")
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out, "001") || !strings.Contains(out, "applied") {
		t.Fatalf("unexpected migrate output %q", out)
	}
	if strings.Contains(out, "pending") {
		t.Fatalf("expected no pending migrations, got %q", out)
	}
}

func TestResolvePort(t *testing.T) {
	port, err := resolvePort("")
	if err != nil || port != "8080" {
		t.Fatalf("expected default port 8080, got %q (%v)", port, err)
	}

	port, err = resolvePort("9090")
	if err != nil || port != "9090" {
		t.Fatalf("expected port 9090, got %q (%v)", port, err)
	}

	for _, raw := range []string{"0", "70000", "not-a-number"} {
		if _, err := resolvePort(raw); err == nil {
			t.Fatalf("expected port %q to fail", raw)
		}
	}
}

func TestMustLoadLocationFallsBackToUTC(t *testing.T) {
	if location := mustLoadLocation("Not/AZone"); location != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", location)
	}
	if location := mustLoadLocation("Europe/Berlin"); location.String() != "Europe/Berlin" {
		t.Fatalf("expected Europe/Berlin, got %v", location)
	}
}
