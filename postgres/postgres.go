package postgres

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/xy-planning-network/responsable"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// PG Docs: https://www.postgresql.org/docs/current/libpq-connect.html#LIBPQ-PARAMKEYWORDS
const cxnStr = "host=%s port=%s dbname=%s user=%s password=%s sslmode=%s"

// CxnConfig holds connection information used to connect to a PostgreSQL database.
type CxnConfig struct {
	Env      responsable.Environment
	IsTestDB bool
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// NewCxnConfig constructs a *CxnConfig for env from the environment variables
// DATABASE_URL, or DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD and DB_SSLMODE.
//
// Testing environments read DB_NAME from DB_TEST_NAME and drop the public schema when connecting.
func NewCxnConfig(env responsable.Environment) *CxnConfig {
	cfg := &CxnConfig{
		Env:      env,
		IsTestDB: env.IsTesting(),
		URL:      responsable.EnvVarOrString(responsable.DatabaseURLEnvVar, ""),
		Host:     responsable.EnvVarOrString("DB_HOST", "localhost"),
		Port:     responsable.EnvVarOrString("DB_PORT", "5432"),
		Name:     responsable.EnvVarOrString("DB_NAME", "responsable"),
		User:     responsable.EnvVarOrString("DB_USER", "postgres"),
		Password: responsable.EnvVarOrString("DB_PASSWORD", ""),
		SSLMode:  responsable.EnvVarOrString("DB_SSLMODE", ""),
	}

	if cfg.IsTestDB {
		cfg.URL = ""
		cfg.Name = responsable.EnvVarOrString("DB_TEST_NAME", "responsable_test")
	}

	return cfg
}

// Connect creates a database connection through GORM according to the connection config and runs all migrations.
func Connect(config *CxnConfig, migrations ...Migration) (*gorm.DB, error) {
	db, err := Open(postgres.Open(buildCxnStr(config)), config.Env)
	if err != nil {
		return nil, err
	}

	if config.IsTestDB {
		if err := db.Exec("DROP SCHEMA IF EXISTS public CASCADE; CREATE SCHEMA public;").Error; err != nil {
			return nil, err
		}
	}

	if err := MigrateUp(db, migrations); err != nil {
		return nil, err
	}

	return db, nil
}

// Open creates a database connection through GORM using the dialector,
// configured the same regardless of the database behind it.
func Open(dialector gorm.Dialector, env responsable.Environment) (*gorm.DB, error) {
	// https://gorm.io/docs/logger.html
	c := logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  env.IsDevelopment(),
	}

	if env.IsTesting() {
		c.LogLevel = logger.Silent
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), c),
		NamingStrategy: schema.NamingStrategy{
			NameReplacer: strings.NewReplacer("Table", ""),
		},
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConnect, err)
	}

	return db, nil
}

func buildCxnStr(config *CxnConfig) string {
	if config.URL != "" {
		return config.URL
	}

	sslMode := config.SSLMode
	if sslMode == "" {
		// PG Docs: https://www.postgresql.org/docs/current/libpq-ssl.html#LIBPQ-SSL-SSLMODE-STATEMENTS
		sslMode = "prefer"
	}

	return fmt.Sprintf(
		cxnStr,
		config.Host,
		config.Port,
		config.Name,
		config.User,
		config.Password,
		sslMode,
	)
}
