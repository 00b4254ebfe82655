package migrations

import (
	"database/sql"
	"time"
)

// AutoMigrateClientRecords creates the client_records table if it does not exist.
func AutoMigrateClientRecords(retries int, dbs ...*sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS client_records (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(50) NOT NULL,
			payment_status VARCHAR(20) NOT NULL,
			commission_status VARCHAR(20) NOT NULL,
			deadline DATE NOT NULL
		);
	`
	for _, db := range dbs {
		_, err := db.Exec(query)
		if err != nil {
			// Retry creating the table
			for i := 0; i < retries; i++ {
				time.Sleep(1 * time.Second)
				_, err = db.Exec(query)
				if err == nil {
					break
				}
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
