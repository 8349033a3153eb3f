package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema. On Postgres it additionally installs the
// exclusion constraint that makes overlapping non-cancelled bookings for the
// same professional impossible at the database level; this constraint is the
// serialization point for concurrent reservations.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Tenant{},
		&domain.Service{},
		&domain.Professional{},
		&domain.AvailabilityRule{},
		&domain.Booking{},
		&domain.Payment{},
		&domain.Message{},
		&domain.StaffUser{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		stmts := []string{
			`CREATE EXTENSION IF NOT EXISTS btree_gist`,
			`ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
EXCLUDE USING gist (
  professional_id WITH =,
  tstzrange(scheduled_at, scheduled_at + make_interval(mins => duration_minutes), '[)') WITH &&
) WHERE (status <> 'cancelled')`,
		}
		for _, stmt := range stmts {
			if err := db.Exec(stmt).Error; err != nil {
				if strings.Contains(err.Error(), "already exists") {
					continue
				}
				return err
			}
		}
	}

	return nil
}
