// Package trackingrepo provides data transfer objects and mapping functions
// for workflow tracking record persistence. The seven stage states are stored
// as a single JSONB document per record; stage payloads are schemaless by
// design and a document column avoids a seven-way join on every read.
package trackingrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// TrackingRecordDTO represents the database structure for persisting tracking
// records. OrderID carries a unique index: at most one record per order.
type TrackingRecordDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CurrentStatus   string    `gorm:"type:varchar(32);not null;index"`
	CustomerName    string    `gorm:"type:varchar(255)"`
	CustomerPhone   string    `gorm:"type:varchar(32)"`
	DeliveryAddress string    `gorm:"type:text"`
	Stages          []byte    `gorm:"type:jsonb"`
}

// TableName specifies the database table name for tracking records.
func (TrackingRecordDTO) TableName() string {
	return "tracking_records"
}

type stageDTO struct {
	Completed   bool                  `json:"completed"`
	CompletedAt *time.Time            `json:"completedAt,omitempty"`
	Actor       string                `json:"actor,omitempty"`
	Payload     tracking.StagePayload `json:"payload"`
}

// fromDomain converts a tracking record to its database representation.
func fromDomain(record *tracking.TrackingRecord) (TrackingRecordDTO, error) {
	stages := make(map[string]stageDTO, len(tracking.StageSequence()))
	for _, stage := range tracking.StageSequence() {
		state, err := record.Stage(stage)
		if err != nil {
			return TrackingRecordDTO{}, err
		}
		stages[string(stage)] = stageDTO{
			Completed:   state.Completed(),
			CompletedAt: state.CompletedAt(),
			Actor:       state.Actor(),
			Payload:     state.Payload(),
		}
	}

	raw, err := json.Marshal(stages)
	if err != nil {
		return TrackingRecordDTO{}, err
	}

	return TrackingRecordDTO{
		ID:              record.ID().Bytes(),
		OrderID:         record.OrderID().Bytes(),
		CurrentStatus:   string(record.CurrentStatus()),
		CustomerName:    record.CustomerName(),
		CustomerPhone:   record.CustomerPhone(),
		DeliveryAddress: record.DeliveryAddress(),
		Stages:          raw,
	}, nil
}

// toDomain converts a database DTO to a tracking record using
// RestoreTrackingRecord.
func toDomain(dto TrackingRecordDTO) (*tracking.TrackingRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	stages := make(map[tracking.Stage]tracking.StageRecord)
	if len(dto.Stages) > 0 {
		var rows map[string]stageDTO
		if err = json.Unmarshal(dto.Stages, &rows); err != nil {
			return nil, err
		}
		for name, row := range rows {
			stages[tracking.Stage(name)] = tracking.RestoreStageRecord(
				row.Completed, row.CompletedAt, row.Actor, row.Payload,
			)
		}
	}

	return tracking.RestoreTrackingRecord(id, orderID, tracking.Seed{
		CurrentStatus:   order.Status(dto.CurrentStatus),
		CustomerName:    dto.CustomerName,
		CustomerPhone:   dto.CustomerPhone,
		DeliveryAddress: dto.DeliveryAddress,
	}, stages)
}
