package gormstore

import (
	"database/sql"
	"fmt"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hotel_portal/internal/domain"
)

// Open connects to the configured database. driver is mysql, postgres or sqlite.
func Open(driver, dsn string, l zerolog.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: newLogger(l), NowFunc: func() time.Time { return time.Now().UTC() }}

	switch driver {
	case "mysql", "":
		mc, err := mysqldrv.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse dsn: %w", err)
		}
		// conditional updates count matched rows, not changed rows
		mc.ClientFoundRows = true
		mc.ParseTime = true
		sqlDB, err := sql.Open("mysql", mc.FormatDSN())
		if err != nil {
			return nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := sqlDB.Ping(); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("db.Ping: %w", err)
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		return gorm.Open(gormmysql.New(gormmysql.Config{Conn: sqlDB}), cfg)
	case "postgres":
		return gorm.Open(postgres.Open(dsn), cfg)
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// Migrate creates or alters every table the admin and public pages read.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Property{},
		&domain.Restaurant{},
		&domain.Event{},
		&domain.HeroSlide{},
		&domain.SpecialOffer{},
		&domain.Guest{},
		&domain.Reservation{},
		&domain.ReservationRoom{},
		&domain.Payment{},
		&domain.GeocodeMiss{},
	)
}

// zlWriter routes gorm's logger output through zerolog.
type zlWriter struct{ l zerolog.Logger }

func (w zlWriter) Printf(format string, args ...any) {
	w.l.Warn().Str("component", "gorm").Msgf(format, args...)
}

func newLogger(l zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(zlWriter{l: l}, gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
