// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database rows.
package orderrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Assignment details live in nullable columns on the order row itself; a NULL
// vehicle_id means the order is unassigned.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status          string    `gorm:"type:varchar(32);not null;index"`
	CustomerName    string    `gorm:"type:varchar(255);not null"`
	CustomerPhone   string    `gorm:"type:varchar(32)"`
	DeliveryAddress string    `gorm:"type:text;not null"`
	TotalAmount     float64

	VehicleID       *uuid.UUID `gorm:"type:uuid;index"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index"`
	DriverName      string     `gorm:"type:varchar(255)"`
	AssignedBy      *uuid.UUID `gorm:"type:uuid"`
	AssignedByName  string     `gorm:"type:varchar(255)"`
	AssignedAt      *time.Time
	AssignmentNotes string `gorm:"type:text"`

	Items []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Rows are identified by order and
// position, which keeps updates idempotent across full-association saves.
type ItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Idx       int       `gorm:"primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"type:int;not null"`
	Weight    string    `gorm:"type:varchar(64)"`

	Packed   bool
	PackedBy string `gorm:"type:varchar(255)"`
	PackedAt *time.Time

	StorageVerified   bool
	StorageVerifiedBy string `gorm:"type:varchar(255)"`
	StorageVerifiedAt *time.Time

	LoadingVerified   bool
	LoadingVerifiedBy string `gorm:"type:varchar(255)"`
	LoadingVerifiedAt *time.Time

	Complaints []byte `gorm:"type:jsonb"`
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

type complaintDTO struct {
	Description string    `json:"description"`
	FiledBy     string    `json:"filedBy"`
	FiledAt     time.Time `json:"filedAt"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	orderID := aggregate.ID().Bytes()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for idx, item := range aggregate.Items() {
		dto, err := itemFromDomain(orderID, idx, item)
		if err != nil {
			return OrderDTO{}, err
		}
		items = append(items, dto)
	}

	dto := OrderDTO{
		ID:              orderID,
		Status:          string(aggregate.Status()),
		CustomerName:    aggregate.CustomerName(),
		CustomerPhone:   aggregate.CustomerPhone(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		TotalAmount:     aggregate.TotalAmount(),
		Items:           items,
	}

	if assignment := aggregate.Assignment(); assignment != nil {
		vehicleID := assignment.VehicleID.Bytes()
		driverID := assignment.DriverID.Bytes()
		assignedBy := assignment.AssignedBy.Bytes()
		assignedAt := assignment.AssignedAt

		dto.VehicleID = &vehicleID
		dto.DriverID = &driverID
		dto.DriverName = assignment.DriverName
		dto.AssignedBy = &assignedBy
		dto.AssignedByName = assignment.AssignedByName
		dto.AssignedAt = &assignedAt
		dto.AssignmentNotes = assignment.Notes
	}

	return dto, nil
}

func itemFromDomain(orderID uuid.UUID, idx int, item *order.Item) (ItemDTO, error) {
	dto := ItemDTO{
		OrderID:   orderID,
		Idx:       idx,
		ProductID: item.ProductID().Bytes(),
		Quantity:  item.Quantity(),
		Weight:    item.Weight().Raw(),
	}

	dto.Packed = item.Packed().Completed()
	if dto.Packed {
		at := item.Packed().At()
		dto.PackedBy = item.Packed().Actor()
		dto.PackedAt = &at
	}

	dto.StorageVerified = item.StorageVerified().Completed()
	if dto.StorageVerified {
		at := item.StorageVerified().At()
		dto.StorageVerifiedBy = item.StorageVerified().Actor()
		dto.StorageVerifiedAt = &at
	}

	dto.LoadingVerified = item.LoadingVerified().Completed()
	if dto.LoadingVerified {
		at := item.LoadingVerified().At()
		dto.LoadingVerifiedBy = item.LoadingVerified().Actor()
		dto.LoadingVerifiedAt = &at
	}

	if complaints := item.Complaints(); len(complaints) > 0 {
		rows := make([]complaintDTO, 0, len(complaints))
		for _, c := range complaints {
			rows = append(rows, complaintDTO{
				Description: c.Description,
				FiledBy:     c.FiledBy,
				FiledAt:     c.FiledAt,
			})
		}
		raw, err := json.Marshal(rows)
		if err != nil {
			return ItemDTO{}, err
		}
		dto.Complaints = raw
	}

	return dto, nil
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	assignment, err := assignmentToDomain(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, order.Status(dto.Status),
		dto.CustomerName, dto.CustomerPhone, dto.DeliveryAddress,
		dto.TotalAmount, items, assignment,
	)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	var complaints []order.Complaint
	if len(dto.Complaints) > 0 {
		var rows []complaintDTO
		if err = json.Unmarshal(dto.Complaints, &rows); err != nil {
			return nil, err
		}
		complaints = make([]order.Complaint, 0, len(rows))
		for _, row := range rows {
			complaints = append(complaints, order.Complaint{
				Description: row.Description,
				FiledBy:     row.FiledBy,
				FiledAt:     row.FiledAt,
			})
		}
	}

	return order.RestoreItem(
		productID, dto.Quantity, kernel.NewWeight(dto.Weight),
		verificationToDomain(dto.Packed, dto.PackedBy, dto.PackedAt),
		verificationToDomain(dto.StorageVerified, dto.StorageVerifiedBy, dto.StorageVerifiedAt),
		verificationToDomain(dto.LoadingVerified, dto.LoadingVerifiedBy, dto.LoadingVerifiedAt),
		complaints,
	)
}

func verificationToDomain(done bool, actor string, at *time.Time) order.Verification {
	if !done {
		return order.Verification{}
	}
	when := time.Time{}
	if at != nil {
		when = *at
	}
	return order.RestoreVerification(true, actor, when)
}

func assignmentToDomain(dto OrderDTO) (*order.AssignmentDetails, error) {
	if dto.VehicleID == nil || dto.DriverID == nil || dto.AssignedBy == nil {
		return nil, nil //nolint:nilnil //unassigned order
	}

	vehicleID, err := kernel.UUIDFromBytes((*dto.VehicleID)[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes((*dto.DriverID)[:])
	if err != nil {
		return nil, err
	}
	assignedBy, err := kernel.UUIDFromBytes((*dto.AssignedBy)[:])
	if err != nil {
		return nil, err
	}

	assignedAt := time.Time{}
	if dto.AssignedAt != nil {
		assignedAt = *dto.AssignedAt
	}

	details, err := order.NewAssignmentDetails(
		vehicleID, driverID, dto.DriverName,
		assignedBy, dto.AssignedByName, assignedAt, dto.AssignmentNotes,
	)
	if err != nil {
		return nil, err
	}
	return &details, nil
}
