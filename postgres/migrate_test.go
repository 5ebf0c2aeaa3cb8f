package postgres_test

import (
	"errors"

	"github.com/xy-planning-network/responsable/postgres"
	"gorm.io/gorm"
)

func (suite *DBTestSuite) TestMigrateUp() {
	// Arrange
	var calls int
	migrations := append(widgetMigrations, postgres.Migration{
		Key: "seed_widgets",
		Executor: func(tx *gorm.DB) error {
			calls++
			return tx.Create(&Widget{Name: "seeded"}).Error
		},
	})

	// Act
	err := postgres.MigrateUp(suite.db, migrations)
	suite.Require().Nil(err)
	err = postgres.MigrateUp(suite.db, migrations)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal(1, calls)

	var count int64
	suite.Require().Nil(suite.db.Model(new(Widget)).Count(&count).Error)
	suite.Require().EqualValues(1, count)

	var keys []string
	suite.Require().Nil(suite.db.Table("migrations").Order("id").Pluck("key", &keys).Error)
	suite.Require().Equal([]string{"create_widgets", "seed_widgets"}, keys)
}

func (suite *DBTestSuite) TestMigrateUpRollsBack() {
	// Arrange
	migrations := append(widgetMigrations, postgres.Migration{
		Key: "broken",
		Executor: func(tx *gorm.DB) error {
			if err := tx.Create(&Widget{Name: "half-done"}).Error; err != nil {
				return err
			}

			return errors.New("just testing")
		},
	})

	// Act
	err := postgres.MigrateUp(suite.db, migrations)

	// Assert
	suite.Require().ErrorIs(err, postgres.ErrMigrate)

	var count int64
	suite.Require().Nil(suite.db.Model(new(Widget)).Count(&count).Error)
	suite.Require().Zero(count)

	suite.Require().Nil(suite.db.Table("migrations").Where("key = ?", "broken").Count(&count).Error)
	suite.Require().Zero(count)
}
