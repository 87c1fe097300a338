package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler reads the tracking view straight from the
// database, bypassing the aggregate. Read models do not need the domain's
// invariant machinery.
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTrackingQueryHandler creates a handler for tracking view queries.
func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

// storedStage mirrors the JSONB shape the tracking repository writes.
type storedStage struct {
	Completed   bool                  `json:"completed"`
	CompletedAt *time.Time            `json:"completedAt,omitempty"`
	Actor       string                `json:"actor,omitempty"`
	Payload     tracking.StagePayload `json:"payload"`
}

// Handle executes the query. Returns an ObjectNotFoundError when the order
// has no tracking record yet.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	var row struct {
		OrderID         uuid.UUID
		CurrentStatus   string
		CustomerName    string
		CustomerPhone   string
		DeliveryAddress string
		Stages          []byte
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			current_status,
			customer_name,
			customer_phone,
			delivery_address,
			stages
		FROM tracking_records
		WHERE order_id = ?
	`, query.OrderID().Bytes()).Row().Scan(
		&row.OrderID,
		&row.CurrentStatus,
		&row.CustomerName,
		&row.CustomerPhone,
		&row.DeliveryAddress,
		&row.Stages,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderTrackingQueryResponse{},
				errs.NewObjectNotFoundError("trackingRecord", query.OrderID().String())
		}
		return GetOrderTrackingQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(row.OrderID[:])
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	stored := make(map[string]storedStage)
	if len(row.Stages) > 0 {
		if err = json.Unmarshal(row.Stages, &stored); err != nil {
			return GetOrderTrackingQueryResponse{}, err
		}
	}

	stages := make([]StageView, 0, len(tracking.StageSequence()))
	for _, stage := range tracking.StageSequence() {
		state := stored[string(stage)]
		stages = append(stages, StageView{
			Stage:       string(stage),
			Completed:   state.Completed,
			CompletedAt: state.CompletedAt,
			Actor:       state.Actor,
			Payload:     state.Payload,
		})
	}

	return GetOrderTrackingQueryResponse{
		OrderID:         orderID,
		CurrentStatus:   row.CurrentStatus,
		CustomerName:    row.CustomerName,
		CustomerPhone:   row.CustomerPhone,
		DeliveryAddress: row.DeliveryAddress,
		Stages:          stages,
	}, nil
}
