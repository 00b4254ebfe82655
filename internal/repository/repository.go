package repository

import (
	"client-records-service/internal/entity"
	"context"
	"database/sql"
)

type RecordRepository struct {
	db *sql.DB
}

func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db}
}

func (r *RecordRepository) ListRecords(ctx context.Context) ([]*entity.ClientRecord, error) {
	query := `SELECT id, username, payment_status, commission_status, deadline FROM client_records`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*entity.ClientRecord
	for rows.Next() {
		var record entity.ClientRecord
		err := rows.Scan(&record.ID, &record.Username, &record.PaymentStatus, &record.CommissionStatus, &record.Deadline)
		if err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}

func (r *RecordRepository) GetRecordByID(ctx context.Context, id int) (*entity.ClientRecord, error) {
	query := `SELECT id, username, payment_status, commission_status, deadline FROM client_records WHERE id = ?`
	var record entity.ClientRecord
	err := r.db.QueryRowContext(ctx, query, id).Scan(&record.ID, &record.Username, &record.PaymentStatus, &record.CommissionStatus, &record.Deadline)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *RecordRepository) CreateRecord(ctx context.Context, record *entity.ClientRecord) (*entity.ClientRecord, error) {
	query := `INSERT INTO client_records (username, payment_status, commission_status, deadline) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, record.Username, record.PaymentStatus, record.CommissionStatus, record.Deadline)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	record.ID = int(id)
	return record, nil
}

// UpdateRecord overwrites every column of the row; there are no partial updates.
func (r *RecordRepository) UpdateRecord(ctx context.Context, record *entity.ClientRecord) (*entity.ClientRecord, error) {
	query := `UPDATE client_records SET username = ?, payment_status = ?, commission_status = ?, deadline = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, record.Username, record.PaymentStatus, record.CommissionStatus, record.Deadline, record.ID)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (r *RecordRepository) DeleteRecord(ctx context.Context, id int) error {
	query := `DELETE FROM client_records WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
