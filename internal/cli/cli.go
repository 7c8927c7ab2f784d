package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/terraincognita07/habitflow/internal/app"
	"github.com/terraincognita07/habitflow/internal/db"
	"github.com/terraincognita07/habitflow/internal/logger"
	"github.com/terraincognita07/habitflow/internal/session"
	"gorm.io/gorm"
)

// Globals are the flags shared by every command.
type Globals struct {
	DB     string `name:"db" help:"Path to the sqlite database." env:"HABITFLOW_DB" default:"data/habitflow.db"`
	TZ     string `name:"tz" help:"IANA time zone that defines calendar days." env:"TZ" default:"UTC"`
	Debug  bool   `help:"Log at debug level and tee logs to stderr." env:"HABITFLOW_DEBUG"`
	LogDir string `name:"log-dir" help:"Directory for rotated log files." env:"HABITFLOW_LOG_DIR" default:"logs"`
	User   uint   `short:"u" help:"Act as this user id instead of the active user."`

	BusyTimeout time.Duration `name:"busy-timeout" help:"How long a write waits on a locked database." env:"HABITFLOW_DB_BUSY_TIMEOUT" default:"5s"`
}

// CLI is the root command tree.
type CLI struct {
	Globals

	Version   kong.VersionFlag `help:"Print version and exit."`
	Serve     ServeCmd         `cmd:"" help:"Run the HTTP API and reminder scheduler."`
	Migrate   MigrateCmd       `cmd:"" help:"Apply pending migrations and show their status."`
	Use       UseCmd           `cmd:"" help:"Select the active user for later commands."`
	Whoami    WhoamiCmd        `cmd:"" help:"Show the active user."`
	Token     TokenCmd         `cmd:"" help:"Mint an API bearer token for the active user."`
	Secret    SecretCmd        `cmd:"" help:"Generate a random SECRET_KEY."`
	Habits    HabitsCmd        `cmd:"" help:"List habits of the active user."`
	Checkin   CheckinCmd       `cmd:"" help:"Record a habit check-in."`
	Mood      MoodCmd          `cmd:"" help:"Log a mood entry."`
	Stats     StatsCmd         `cmd:"" help:"Show completion and streak statistics."`
	ResetData ResetDataCmd     `cmd:"" name:"reset-data" help:"Delete every habit, log, mood and achievement of the active user."`
}

// ActiveUserStore persists the user the CLI acts for.
type ActiveUserStore interface {
	ActiveUser() (uint, error)
	SetActiveUser(userID uint) error
	Clear() error
}

// Context is bound into every command's Run method.
type Context struct {
	Globals  *Globals
	Sessions ActiveUserStore
	Out      io.Writer
}

func NewContext(globals *Globals, sessions ActiveUserStore, out io.Writer) *Context {
	if out == nil {
		out = os.Stdout
	}
	return &Context{Globals: globals, Sessions: sessions, Out: out}
}

func (ctx *Context) Location() *time.Location {
	return mustLoadLocation(ctx.Globals.TZ)
}

func (ctx *Context) openDatabase() (*gorm.DB, error) {
	database, err := db.Open(ctx.Globals.DB, db.Options{
		BusyTimeout: ctx.Globals.BusyTimeout,
		LogQueries:  ctx.Globals.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, nil
}

// OpenServices opens the database and builds the services. The returned
// close func releases the connection.
func (ctx *Context) OpenServices() (*app.Services, func(), error) {
	database, err := ctx.openDatabase()
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return app.NewServices(database, ctx.Location()), closeDB, nil
}

// ResolveUser returns --user when given, otherwise the active user.
func (ctx *Context) ResolveUser() (uint, error) {
	if ctx.Globals.User != 0 {
		return ctx.Globals.User, nil
	}
	if ctx.Sessions == nil {
		return 0, errors.New("no user selected: pass --user or run `habitflow use <id>`")
	}
	userID, err := ctx.Sessions.ActiveUser()
	if errors.Is(err, session.ErrNoActiveUser) {
		return 0, errors.New("no user selected: pass --user or run `habitflow use <id>`")
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}

func (ctx *Context) printf(format string, args ...any) {
	fmt.Fprintf(ctx.Out, format, args...)
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("invalid TZ, falling back to UTC", "tz", name)
		return time.UTC
	}
	return location
}
