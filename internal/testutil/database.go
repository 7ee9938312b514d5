package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Expects a MySQL
// instance on localhost:3306 with a 'buildmart_test' schema; tests are
// skipped when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/buildmart_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties every test table and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"Notifications", "OrderItems", "Orders", "Bookings", "Materials", "Professionals", "Users"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS Users (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(150) NOT NULL UNIQUE,
		passwordHash VARCHAR(100) NOT NULL,
		role VARCHAR(32) NOT NULL,
		phone VARCHAR(20),
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createProfessionalsTable := `
	CREATE TABLE IF NOT EXISTS Professionals (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		userId INT UNSIGNED NOT NULL,
		profession VARCHAR(32) NOT NULL,
		company VARCHAR(255),
		city VARCHAR(100) NOT NULL,
		bio TEXT,
		rating DECIMAL(3,2) NOT NULL DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_profession_city (profession, city)
	)`

	createMaterialsTable := `
	CREATE TABLE IF NOT EXISTS Materials (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		dealerId INT UNSIGNED NOT NULL,
		name VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL,
		unit VARCHAR(32) NOT NULL,
		priceCents BIGINT NOT NULL,
		stock INT NOT NULL DEFAULT 0,
		isActive TINYINT(1) NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_dealer (dealerId),
		INDEX idx_category (category)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderNumber VARCHAR(36) NOT NULL UNIQUE,
		customerId INT UNSIGNED NOT NULL,
		dealerId INT UNSIGNED NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'pending',
		paymentStatus VARCHAR(32) NOT NULL DEFAULT 'unpaid',
		dealerConfirmed TINYINT(1) NOT NULL DEFAULT 0,
		customerConfirmed TINYINT(1) NOT NULL DEFAULT 0,
		totalCents BIGINT NOT NULL DEFAULT 0,
		advancePaidCents BIGINT NOT NULL DEFAULT 0,
		dueAmountCents BIGINT NOT NULL DEFAULT 0,
		isAdvancePaid TINYINT(1) NOT NULL DEFAULT 0,
		isDuePaid TINYINT(1) NOT NULL DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_customer (customerId),
		INDEX idx_dealer (dealerId),
		INDEX idx_status (status)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		materialId INT UNSIGNED NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		priceCents BIGINT NOT NULL,
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId),
		INDEX idx_material (materialId)
	)`

	createBookingsTable := `
	CREATE TABLE IF NOT EXISTS Bookings (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		bookingNumber VARCHAR(36) NOT NULL UNIQUE,
		customerId INT UNSIGNED NOT NULL,
		merchantId INT UNSIGNED NOT NULL,
		equipmentName VARCHAR(255) NOT NULL,
		dailyRateCents BIGINT NOT NULL,
		days INT NOT NULL,
		totalCostCents BIGINT NOT NULL,
		securityDepositCents BIGINT NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'pending',
		startDate DATETIME NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_customer (customerId),
		INDEX idx_merchant (merchantId)
	)`

	createNotificationsTable := `
	CREATE TABLE IF NOT EXISTS Notifications (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		userId INT UNSIGNED NOT NULL,
		kind VARCHAR(64) NOT NULL,
		message VARCHAR(512) NOT NULL,
		isRead TINYINT(1) NOT NULL DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_user (userId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Users", createUsersTable},
		{"Professionals", createProfessionalsTable},
		{"Materials", createMaterialsTable},
		{"Orders", createOrdersTable},
		{"OrderItems", createOrderItemsTable},
		{"Bookings", createBookingsTable},
		{"Notifications", createNotificationsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
