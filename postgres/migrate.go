package postgres

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Migration is used to hold the database key and function for creating the migration.
type Migration struct {
	Executor func(*gorm.DB) error
	Key      string
}

// migrationRecord is a row in the migrations table, marking the Migration with Key as ran.
type migrationRecord struct {
	ID    uint   `gorm:"primaryKey"`
	Key   string `gorm:"uniqueIndex;not null"`
	RanAt int64
}

func (migrationRecord) TableName() string { return "migrations" }

// MigrateUp runs, in order, each of migrations not yet recorded as ran in the migrations table.
//
// Each Migration runs in its own transaction alongside recording it as ran.
// MigrateUp stops at the first Migration failing, returning ErrMigrate.
func MigrateUp(db *gorm.DB, migrations []Migration) error {
	if err := db.AutoMigrate(new(migrationRecord)); err != nil {
		return fmt.Errorf("%w: cannot create migrations table: %s", ErrMigrate, err)
	}

	var ran []string
	if err := db.Model(new(migrationRecord)).Pluck("key", &ran).Error; err != nil {
		return fmt.Errorf("%w: cannot fetch ran migrations: %s", ErrMigrate, err)
	}

	for _, m := range determineMigrationsToRun(ran, migrations) {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Executor(tx); err != nil {
				return err
			}

			return tx.Create(&migrationRecord{Key: m.Key, RanAt: time.Now().Unix()}).Error
		})
		if err != nil {
			return fmt.Errorf("%w: %s: %s", ErrMigrate, m.Key, err)
		}
	}

	return nil
}

// determineMigrationsToRun filters all down to the Migrations with keys not in ran.
func determineMigrationsToRun(ran []string, all []Migration) []Migration {
	seen := make(map[string]bool, len(ran))
	for _, key := range ran {
		seen[key] = true
	}

	toRun := make([]Migration, 0, len(all))
	for _, m := range all {
		if !seen[m.Key] {
			toRun = append(toRun, m)
		}
	}

	return toRun
}
