package database

import (
	"fmt"
	"os"

	"table-reservation/logger"
	"table-reservation/models/account"
	"table-reservation/models/log"
	"table-reservation/models/reservation"
	"table-reservation/models/settings"
	"table-reservation/models/store"
	"table-reservation/models/timeslot"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection, runs migrations and creates
// the supporting indexes and constraints.
func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := AutoMigrate(DB); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// AutoMigrate runs migration in dependency stages so foreign keys always
// find their target tables.
func AutoMigrate(db *gorm.DB) error {
	// Stage 1: foundation models
	stage1Models := []interface{}{
		&store.Store{},
		&account.Account{},
	}

	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: models depending on stores/accounts
	stage2Models := []interface{}{
		&reservation.Reservation{},
		&timeslot.TimeSlot{},
		&settings.StoreReservationSettings{},
	}

	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: remaining models
	remainingModels := []interface{}{
		&reservation.ReservationChangeLog{},
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	indexes := []struct {
		name string
		sql  string
	}{
		{"idx_accounts_uuid", "CREATE INDEX IF NOT EXISTS idx_accounts_uuid ON accounts(uuid)"},
		{"idx_accounts_username", "CREATE INDEX IF NOT EXISTS idx_accounts_username ON accounts(username)"},
		{"idx_reservations_number", "CREATE INDEX IF NOT EXISTS idx_reservations_number ON reservations(reservation_number)"},
		{"idx_reservations_phone_hash", "CREATE INDEX IF NOT EXISTS idx_reservations_phone_hash ON reservations(phone_hash)"},
		{"idx_reservations_store_status", "CREATE INDEX IF NOT EXISTS idx_reservations_store_status ON reservations(store_id, status)"},
		{"idx_reservations_date", "CREATE INDEX IF NOT EXISTS idx_reservations_date ON reservations(reservation_date)"},
		{"idx_change_logs_number", "CREATE INDEX IF NOT EXISTS idx_change_logs_number ON reservation_change_logs(reservation_number)"},
		{"idx_change_logs_created_at", "CREATE INDEX IF NOT EXISTS idx_change_logs_created_at ON reservation_change_logs(created_at)"},
		{"idx_time_slots_store_active", "CREATE INDEX IF NOT EXISTS idx_time_slots_store_active ON time_slots(store_id, is_active)"},
		{"idx_logs_status_code", "CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)"},
		{"idx_logs_created_at", "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)"},
	}

	for _, idx := range indexes {
		if err := DB.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_reservations_store",
			sql: `ALTER TABLE reservations ADD CONSTRAINT fk_reservations_store
				  FOREIGN KEY (store_id) REFERENCES stores(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_change_logs_reservation",
			sql: `ALTER TABLE reservation_change_logs ADD CONSTRAINT fk_change_logs_reservation
				  FOREIGN KEY (reservation_id) REFERENCES reservations(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			name: "fk_time_slots_store",
			sql: `ALTER TABLE time_slots ADD CONSTRAINT fk_time_slots_store
				  FOREIGN KEY (store_id) REFERENCES stores(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
