package entity

type ClientRecord struct {
	ID               int    `json:"id"`
	Username         string `json:"username"`
	PaymentStatus    string `json:"payment_status"`    // e.g., "paid", "pending", "overdue"
	CommissionStatus string `json:"commission_status"` // e.g., "open", "settled"
	Deadline         string `json:"deadline"`          // formatted as YYYY-MM-DD
}

/*
Mysql Table

CREATE TABLE client_records (
	id INT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(50) NOT NULL,
	payment_status VARCHAR(20) NOT NULL,
	commission_status VARCHAR(20) NOT NULL,
	deadline DATE NOT NULL
);

*/
