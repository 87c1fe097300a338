package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for the fulfillment API. It binds request
// bodies into commands and queries and maps domain rejections onto HTTP
// status codes.
type Server struct {
	// Command handlers
	packItemHandler         commands.PackItemCommandHandler
	verifyStorageHandler    commands.VerifyStorageItemCommandHandler
	verifyLoadingHandler    commands.VerifyLoadingItemCommandHandler
	fileComplaintHandler    commands.FileComplaintCommandHandler
	assignVehicleHandler    commands.AssignVehicleCommandHandler
	bulkAssignHandler       commands.BulkAssignVehiclesCommandHandler
	startRouteHandler       commands.StartRouteCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler
	syncTrackingHandler     commands.SyncTrackingCommandHandler

	// Query handlers
	getOrderTrackingHandler     queries.GetOrderTrackingQueryHandler
	getUnassignedOrdersHandler  queries.GetUnassignedOrdersQueryHandler
	getVehicleSuggestionHandler queries.GetVehicleSuggestionQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	packItemHandler commands.PackItemCommandHandler,
	verifyStorageHandler commands.VerifyStorageItemCommandHandler,
	verifyLoadingHandler commands.VerifyLoadingItemCommandHandler,
	fileComplaintHandler commands.FileComplaintCommandHandler,
	assignVehicleHandler commands.AssignVehicleCommandHandler,
	bulkAssignHandler commands.BulkAssignVehiclesCommandHandler,
	startRouteHandler commands.StartRouteCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	syncTrackingHandler commands.SyncTrackingCommandHandler,
	getOrderTrackingHandler queries.GetOrderTrackingQueryHandler,
	getUnassignedOrdersHandler queries.GetUnassignedOrdersQueryHandler,
	getVehicleSuggestionHandler queries.GetVehicleSuggestionQueryHandler,
) *Server {
	return &Server{
		packItemHandler:             packItemHandler,
		verifyStorageHandler:        verifyStorageHandler,
		verifyLoadingHandler:        verifyLoadingHandler,
		fileComplaintHandler:        fileComplaintHandler,
		assignVehicleHandler:        assignVehicleHandler,
		bulkAssignHandler:           bulkAssignHandler,
		startRouteHandler:           startRouteHandler,
		completeDeliveryHandler:     completeDeliveryHandler,
		syncTrackingHandler:         syncTrackingHandler,
		getOrderTrackingHandler:     getOrderTrackingHandler,
		getUnassignedOrdersHandler:  getUnassignedOrdersHandler,
		getVehicleSuggestionHandler: getVehicleSuggestionHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.GET("/orders/unassigned", s.GetUnassignedOrders)
	api.GET("/orders/:orderId/tracking", s.GetOrderTracking)
	api.GET("/orders/:orderId/vehicle-suggestion", s.GetVehicleSuggestion)

	api.POST("/orders/:orderId/items/:itemIndex/pack", s.PackItem)
	api.POST("/orders/:orderId/items/:itemIndex/verify-storage", s.VerifyStorageItem)
	api.POST("/orders/:orderId/items/:itemIndex/verify-loading", s.VerifyLoadingItem)
	api.POST("/orders/:orderId/items/:itemIndex/complaints", s.FileComplaint)

	api.POST("/orders/:orderId/assignment", s.AssignVehicle)
	api.POST("/assignments/bulk", s.BulkAssignVehicles)
	api.POST("/orders/:orderId/route", s.StartRoute)
	api.POST("/orders/:orderId/delivery", s.CompleteDelivery)

	api.POST("/tracking/sync", s.SyncTracking)
}

// ErrorResponse is the JSON body returned for every non-2xx outcome.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ActorRequest carries the acting staff member for warehouse operations.
type ActorRequest struct {
	Actor string `json:"actor"`
}

// PackItem handles POST /api/v1/orders/:orderId/items/:itemIndex/pack.
func (s *Server) PackItem(ctx echo.Context) error {
	orderID, itemIndex, err := bindItemPath(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req ActorRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewPackItemCommand(orderID, itemIndex, req.Actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.packItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// VerifyStorageItem handles POST /api/v1/orders/:orderId/items/:itemIndex/verify-storage.
func (s *Server) VerifyStorageItem(ctx echo.Context) error {
	orderID, itemIndex, err := bindItemPath(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req ActorRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewVerifyStorageItemCommand(orderID, itemIndex, req.Actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.verifyStorageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// VerifyLoadingItem handles POST /api/v1/orders/:orderId/items/:itemIndex/verify-loading.
func (s *Server) VerifyLoadingItem(ctx echo.Context) error {
	orderID, itemIndex, err := bindItemPath(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req ActorRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewVerifyLoadingItemCommand(orderID, itemIndex, req.Actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.verifyLoadingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ComplaintRequest describes a quality complaint against one order line.
type ComplaintRequest struct {
	Description string `json:"description"`
	FiledBy     string `json:"filedBy"`
}

// FileComplaint handles POST /api/v1/orders/:orderId/items/:itemIndex/complaints.
func (s *Server) FileComplaint(ctx echo.Context) error {
	orderID, itemIndex, err := bindItemPath(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req ComplaintRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewFileComplaintCommand(orderID, itemIndex, req.Description, req.FiledBy)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.fileComplaintHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// AssignVehicleRequest names the vehicle and driver for a single assignment.
type AssignVehicleRequest struct {
	VehicleID      string `json:"vehicleId"`
	DriverID       string `json:"driverId"`
	AssignedBy     string `json:"assignedBy"`
	AssignedByName string `json:"assignedByName"`
	Notes          string `json:"notes"`
}

// AssignmentResponse reports a completed vehicle assignment.
type AssignmentResponse struct {
	OrderID        string `json:"orderId"`
	VehicleID      string `json:"vehicleId"`
	DriverID       string `json:"driverId"`
	DriverName     string `json:"driverName"`
	AssignedBy     string `json:"assignedBy"`
	AssignedByName string `json:"assignedByName"`
	AssignedAt     string `json:"assignedAt"`
	Notes          string `json:"notes,omitempty"`
}

// AssignVehicle handles POST /api/v1/orders/:orderId/assignment.
func (s *Server) AssignVehicle(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req AssignVehicleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	vehicleID, driverID, assignedBy, err := parseAssignmentIDs(req.VehicleID, req.DriverID, req.AssignedBy)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignVehicleCommand(
		orderID, vehicleID, driverID, assignedBy,
		req.AssignedByName, req.Notes,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	details, err := s.assignVehicleHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, assignmentResponse(orderID, details))
}

// BulkAssignRequest carries an entire bulk assignment run.
type BulkAssignRequest struct {
	Entries        []BulkAssignEntryRequest `json:"entries"`
	AssignedBy     string                   `json:"assignedBy"`
	AssignedByName string                   `json:"assignedByName"`
	Notes          string                   `json:"notes"`
}

// BulkAssignEntryRequest is one order/vehicle/driver triple of a bulk run.
type BulkAssignEntryRequest struct {
	OrderID   string `json:"orderId"`
	VehicleID string `json:"vehicleId"`
	DriverID  string `json:"driverId"`
}

// BulkAssignResultResponse reports the outcome for one order of a bulk run.
type BulkAssignResultResponse struct {
	OrderID    string              `json:"orderId"`
	Assigned   bool                `json:"assigned"`
	Error      string              `json:"error,omitempty"`
	Assignment *AssignmentResponse `json:"assignment,omitempty"`
}

// BulkAssignVehicles handles POST /api/v1/assignments/bulk. The response
// always carries one result per entry; rejected entries do not fail the call.
func (s *Server) BulkAssignVehicles(ctx echo.Context) error {
	var req BulkAssignRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	assignedBy, err := kernel.UUIDFromString(req.AssignedBy)
	if err != nil {
		return badRequest(ctx, err)
	}

	entries := make([]commands.BulkAssignmentEntry, 0, len(req.Entries))
	for _, entry := range req.Entries {
		orderID, vehicleID, driverID, parseErr := parseEntryIDs(entry)
		if parseErr != nil {
			return badRequest(ctx, parseErr)
		}
		entries = append(entries, commands.BulkAssignmentEntry{
			OrderID:   orderID,
			VehicleID: vehicleID,
			DriverID:  driverID,
		})
	}

	cmd, err := commands.NewBulkAssignVehiclesCommand(entries, assignedBy, req.AssignedByName, req.Notes)
	if err != nil {
		return badRequest(ctx, err)
	}

	results, err := s.bulkAssignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]BulkAssignResultResponse, len(results))
	for i, result := range results {
		response[i] = BulkAssignResultResponse{
			OrderID:  result.OrderID.String(),
			Assigned: result.Err == nil,
		}
		if result.Err != nil {
			response[i].Error = result.Err.Error()
			continue
		}
		assignment := assignmentResponse(result.OrderID, result.Details)
		response[i].Assignment = &assignment
	}

	return ctx.JSON(http.StatusOK, response)
}

// StartRoute handles POST /api/v1/orders/:orderId/route.
func (s *Server) StartRoute(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req ActorRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewStartRouteCommand(orderID, req.Actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.startRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDeliveryRequest carries the delivery confirmation details.
type CompleteDeliveryRequest struct {
	Actor             string `json:"actor"`
	Signature         string `json:"signature"`
	Notes             string `json:"notes"`
	SatisfactionScore int    `json:"satisfactionScore"`
}

// CompleteDelivery handles POST /api/v1/orders/:orderId/delivery.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CompleteDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewCompleteDeliveryCommand(
		orderID, req.Actor, req.Signature, req.Notes, req.SatisfactionScore,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SyncTrackingResponse reports one reconciliation pass.
type SyncTrackingResponse struct {
	Phase  string `json:"phase"`
	Synced int    `json:"synced"`
}

// SyncTracking handles POST /api/v1/tracking/sync?phase=packing|loading|delivery.
func (s *Server) SyncTracking(ctx echo.Context) error {
	phase := tracking.SyncPhase(ctx.QueryParam("phase"))

	cmd, err := commands.NewSyncTrackingCommand(phase)
	if err != nil {
		return badRequest(ctx, err)
	}

	synced, err := s.syncTrackingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SyncTrackingResponse{
		Phase:  string(phase),
		Synced: synced,
	})
}

// GetOrderTracking handles GET /api/v1/orders/:orderId/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	view, err := s.getOrderTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// GetVehicleSuggestion handles GET /api/v1/orders/:orderId/vehicle-suggestion.
func (s *Server) GetVehicleSuggestion(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetVehicleSuggestionQuery(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	suggestion, err := s.getVehicleSuggestionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, suggestion)
}

// GetUnassignedOrders handles GET /api/v1/orders/unassigned.
func (s *Server) GetUnassignedOrders(ctx echo.Context) error {
	query := queries.NewGetUnassignedOrdersQuery()

	orders, err := s.getUnassignedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

func bindOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("orderId"))
}

func bindItemPath(ctx echo.Context) (kernel.UUID, int, error) {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return kernel.UUID{}, 0, err
	}

	itemIndex, err := strconv.Atoi(ctx.Param("itemIndex"))
	if err != nil {
		return kernel.UUID{}, 0, errors.New("itemIndex must be an integer")
	}

	return orderID, itemIndex, nil
}

func parseAssignmentIDs(vehicleID, driverID, assignedBy string) (kernel.UUID, kernel.UUID, kernel.UUID, error) {
	vehicle, err := kernel.UUIDFromString(vehicleID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, err
	}

	driver, err := kernel.UUIDFromString(driverID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, err
	}

	staff, err := kernel.UUIDFromString(assignedBy)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, err
	}

	return vehicle, driver, staff, nil
}

func parseEntryIDs(entry BulkAssignEntryRequest) (kernel.UUID, kernel.UUID, kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(entry.OrderID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, err
	}

	vehicleID, err := kernel.UUIDFromString(entry.VehicleID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, err
	}

	driverID, err := kernel.UUIDFromString(entry.DriverID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, err
	}

	return orderID, vehicleID, driverID, nil
}

func assignmentResponse(orderID kernel.UUID, details order.AssignmentDetails) AssignmentResponse {
	return AssignmentResponse{
		OrderID:        orderID.String(),
		VehicleID:      details.VehicleID.String(),
		DriverID:       details.DriverID.String(),
		DriverName:     details.DriverName,
		AssignedBy:     details.AssignedBy.String(),
		AssignedByName: details.AssignedByName,
		AssignedAt:     details.AssignedAt.Format(time.RFC3339),
		Notes:          details.Notes,
	}
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// domainError maps use case rejections onto HTTP status codes. Missing
// objects become 404, workflow conflicts 409, everything else 500.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrNoFeasibleVehicle),
		errors.Is(err, employee.ErrDriverAtCapacity),
		errors.Is(err, order.ErrOrderAlreadyAssigned),
		errors.Is(err, order.ErrOrderNotAssigned),
		errors.Is(err, order.ErrItemStageAlreadyCompleted),
		errors.Is(err, order.ErrItemStagePrerequisiteMissing):
		code = http.StatusConflict
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
