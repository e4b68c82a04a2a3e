package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"atlas-wizards/retry"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

var ErrNoDriver = errors.New("no database driver configured")

type Migrator func(db *gorm.DB) error

type Configuration struct {
	ctx        context.Context
	driver     string
	dsn        string
	migrations []Migrator
}

type Configurator func(c *Configuration)

func SetDriver(driver string) Configurator {
	return func(c *Configuration) {
		c.driver = driver
	}
}

func SetDSN(dsn string) Configurator {
	return func(c *Configuration) {
		c.dsn = dsn
	}
}

// SetContext bounds the connection retries. Cancelling ctx abandons the
// remaining attempts.
func SetContext(ctx context.Context) Configurator {
	return func(c *Configuration) {
		c.ctx = ctx
	}
}

func SetMigrations(migrations ...Migrator) Configurator {
	return func(c *Configuration) {
		c.migrations = append(c.migrations, migrations...)
	}
}

// FromEnv configures the driver and DSN from DB_DRIVER and its companions.
// An empty DB_DRIVER leaves the configuration without a driver.
func FromEnv() Configurator {
	return func(c *Configuration) {
		c.driver = os.Getenv("DB_DRIVER")
		switch c.driver {
		case DriverPostgres:
			port, _ := strconv.Atoi(os.Getenv("DB_PORT"))
			c.dsn = NewDSNBuilder().
				SetHost(os.Getenv("DB_HOST")).
				SetPort(port).
				SetUser(os.Getenv("DB_USER")).
				SetPassword(os.Getenv("DB_PASSWORD")).
				SetDatabaseName(os.Getenv("DB_NAME")).
				Build()
		case DriverSqlite:
			c.dsn = os.Getenv("DB_PATH")
			if c.dsn == "" {
				c.dsn = "file::memory:?cache=shared"
			}
		}
	}
}

// Connect opens the configured database and runs migrations. Opening is
// retried for transient failures.
func Connect(l logrus.FieldLogger, configurators ...Configurator) (*gorm.DB, error) {
	c := &Configuration{ctx: context.Background(), migrations: make([]Migrator, 0)}
	for _, configurator := range configurators {
		configurator(c)
	}

	var dialector gorm.Dialector
	switch c.driver {
	case DriverPostgres:
		dialector = postgres.Open(c.dsn)
	case DriverSqlite:
		dialector = sqlite.Open(c.dsn)
	case "":
		return nil, ErrNoDriver
	default:
		return nil, fmt.Errorf("unsupported database driver [%s]", c.driver)
	}

	var db *gorm.DB
	rc := retry.DefaultConfig().
		WithContext(c.ctx).
		WithLogger(l.WithField("operation", "database-connect")).
		WithMaxRetries(5).
		WithInitialDelay(500 * time.Millisecond)
	err := retry.ExecuteWithRetry(rc, func() error {
		var err error
		db, err = gorm.Open(dialector, &gorm.Config{Logger: newLogger(l)})
		return err
	})
	if err != nil {
		return nil, err
	}

	if c.driver == DriverSqlite {
		// sqlite allows a single writer, and each :memory: connection is its own database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	for _, m := range c.migrations {
		if err = m(db); err != nil {
			return nil, err
		}
	}
	l.WithField("driver", c.driver).Debug("Connected to database.")
	return db, nil
}

// Teardown closes the underlying connection pool.
func Teardown(l logrus.FieldLogger) func(db *gorm.DB) func() {
	return func(db *gorm.DB) func() {
		return func() {
			sqlDB, err := db.DB()
			if err != nil {
				l.WithError(err).Errorf("Unable to obtain database handle.")
				return
			}
			if err = sqlDB.Close(); err != nil {
				l.WithError(err).Errorf("Unable to close database.")
			}
		}
	}
}
