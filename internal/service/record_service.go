package service

import (
	"client-records-service/internal/entity"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"os"
	"time"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// RecordStore is the persistence surface RecordService runs on.
type RecordStore interface {
	ListRecords(ctx context.Context) ([]*entity.ClientRecord, error)
	GetRecordByID(ctx context.Context, id int) (*entity.ClientRecord, error)
	CreateRecord(ctx context.Context, record *entity.ClientRecord) (*entity.ClientRecord, error)
	UpdateRecord(ctx context.Context, record *entity.ClientRecord) (*entity.ClientRecord, error)
	DeleteRecord(ctx context.Context, id int) error
}

// RecordService is a service that provides client-record operations
type RecordService struct {
	recordRepo  RecordStore
	kafkaWriter *kafka.Writer
	rdb         *redis.Client
}

// NewRecordService creates a new instance of RecordService
func NewRecordService(recordRepo RecordStore, kafkaWriter *kafka.Writer, rdb *redis.Client) *RecordService {
	return &RecordService{
		recordRepo:  recordRepo,
		kafkaWriter: kafkaWriter,
		rdb:         rdb,
	}
}

// ListRecords returns every client record.
func (s *RecordService) ListRecords(ctx context.Context) ([]*entity.ClientRecord, error) {
	records, err := s.recordRepo.ListRecords(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing client records")
		return nil, err
	}

	return records, nil
}

// GetRecordByID retrieves a client record by ID, reading through the cache.
func (s *RecordService) GetRecordByID(ctx context.Context, id int) (*entity.ClientRecord, error) {
	key := recordCacheKey(id)

	// if env is set to test, skip the cache
	if os.Getenv("ENV") != "test" {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error getting record %d from cache", id)
			return nil, err
		}

		if cached != "" {
			record := &entity.ClientRecord{}
			if err := json.Unmarshal([]byte(cached), record); err != nil {
				logger.Error().Err(err).Msgf("Error unmarshalling cached record %d", id)
				return nil, err
			}
			return record, nil
		}
	}

	record, err := s.recordRepo.GetRecordByID(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting record by ID %d", id)
		return nil, err
	}

	// Write to cache
	if os.Getenv("ENV") != "test" {
		recordJSON, err := json.Marshal(record)
		if err != nil {
			return nil, err
		}
		if err := s.rdb.Set(ctx, key, recordJSON, 0).Err(); err != nil {
			logger.Error().Err(err).Msgf("Error setting record %d in cache", id)
		}
	}

	return record, nil
}

// CreateRecord creates a new client record
func (s *RecordService) CreateRecord(ctx context.Context, record *entity.ClientRecord, idempotentKey string) (*entity.ClientRecord, error) {
	if idempotentKey != "" {
		validate, err := s.validateIdempotentKey(ctx, idempotentKey)
		if err != nil {
			return nil, err
		}

		if !validate {
			return nil, errors.New("idempotent key already exists")
		}
	}

	createdRecord, err := s.recordRepo.CreateRecord(ctx, record)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating client record")
		return nil, err
	}

	err = s.publishRecordEvent(ctx, createdRecord, "created")
	if err != nil {
		return nil, err
	}

	return createdRecord, nil
}

// UpdateRecord overwrites an existing client record
func (s *RecordService) UpdateRecord(ctx context.Context, record *entity.ClientRecord) (*entity.ClientRecord, error) {
	updatedRecord, err := s.recordRepo.UpdateRecord(ctx, record)
	if err != nil {
		logger.Error().Err(err).Msg("Error updating client record")
		return nil, err
	}

	s.invalidateRecordCache(ctx, updatedRecord.ID)

	err = s.publishRecordEvent(ctx, updatedRecord, "updated")
	if err != nil {
		return nil, err
	}

	return updatedRecord, nil
}

// DeleteRecord removes an existing client record
func (s *RecordService) DeleteRecord(ctx context.Context, id int) error {
	err := s.recordRepo.DeleteRecord(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting client record %d", id)
		return err
	}

	s.invalidateRecordCache(ctx, id)

	err = s.publishRecordEvent(ctx, &entity.ClientRecord{ID: id}, "deleted")
	if err != nil {
		return err
	}

	return nil
}

func (s *RecordService) publishRecordEvent(ctx context.Context, record *entity.ClientRecord, key string) error {
	// if env is set to test, return
	if os.Getenv("ENV") == "test" {
		return nil
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return err
	}

	// client-record-created-1 or client-record-updated-1
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("client-record-%s-%d", key, record.ID)),
		Value: recordJSON,
	}

	err = s.kafkaWriter.WriteMessages(ctx, msg)
	if err != nil {
		return err
	}

	return nil
}

func (s *RecordService) validateIdempotentKey(ctx context.Context, key string) (bool, error) {
	// if env is set to test, return true
	if os.Getenv("ENV") == "test" {
		return true, nil
	}

	// check if the key exists in the redis cache
	// if it exists, return false
	redisKey := fmt.Sprintf("idempotent-key:%s", key)
	val, err := s.rdb.Get(ctx, redisKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}

	if val != "" {
		return false, errors.New("idempotent key already exists")
	}

	// if it doesn't exist, add the key to the cache with a TTL of 24 hours
	// and return true
	err = s.rdb.Set(ctx, redisKey, "exists", 24*time.Hour).Err()
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *RecordService) invalidateRecordCache(ctx context.Context, id int) {
	if os.Getenv("ENV") == "test" {
		return
	}

	if err := s.rdb.Del(ctx, recordCacheKey(id)).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error deleting record %d from cache", id)
	}
}

func recordCacheKey(id int) string {
	return fmt.Sprintf("client-record:%d", id)
}
