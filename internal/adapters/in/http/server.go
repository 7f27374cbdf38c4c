// Package http exposes the order fulfillment API over REST. Handlers bind
// request bodies, build guarded commands and queries, and translate domain
// errors into HTTP statuses.
package http

import (
	"net/http"
	"time"

	"parcelgo/internal/core/application/usecases/commands"
	"parcelgo/internal/core/application/usecases/queries"
	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler   commands.CreateOrderCommandHandler
	quoteOrderHandler    commands.QuoteOrderCommandHandler
	confirmOrderHandler  commands.ConfirmOrderCommandHandler
	assignOrderHandler   commands.AssignOrderCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler
	startTransitHandler  commands.StartTransitCommandHandler
	completeOrderHandler commands.CompleteOrderCommandHandler
	createSlotHandler    commands.CreateSlotCommandHandler
	createCourierHandler commands.CreateCourierCommandHandler

	// Query handlers
	getOrderHandler             queries.GetOrderQueryHandler
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
	getAvailableSlotsHandler    queries.GetAvailableSlotsQueryHandler
	getAllCouriersHandler       queries.GetAllCouriersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	quoteOrderHandler commands.QuoteOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	startTransitHandler commands.StartTransitCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	createSlotHandler commands.CreateSlotCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
	getAvailableSlotsHandler queries.GetAvailableSlotsQueryHandler,
	getAllCouriersHandler queries.GetAllCouriersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		quoteOrderHandler:           quoteOrderHandler,
		confirmOrderHandler:         confirmOrderHandler,
		assignOrderHandler:          assignOrderHandler,
		cancelOrderHandler:          cancelOrderHandler,
		startTransitHandler:         startTransitHandler,
		completeOrderHandler:        completeOrderHandler,
		createSlotHandler:           createSlotHandler,
		createCourierHandler:        createCourierHandler,
		getOrderHandler:             getOrderHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
		getAvailableSlotsHandler:    getAvailableSlotsHandler,
		getAllCouriersHandler:       getAllCouriersHandler,
	}
}

// RegisterRoutes attaches every API route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/quote", s.QuoteOrder)
	api.POST("/orders/:id/confirm", s.ConfirmOrder)
	api.POST("/orders/:id/assign", s.AssignOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/pickup", s.StartTransit)
	api.POST("/orders/:id/deliver", s.CompleteOrder)

	api.POST("/slots", s.CreateSlot)
	api.GET("/slots", s.GetAvailableSlots)

	api.POST("/couriers", s.CreateCourier)
	api.GET("/couriers", s.GetCouriers)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - creates a new order in CREATED state.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	mode, err := order.ModeFromString(req.Mode)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	pickup, err := addressFromPayload(req.Pickup)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	dropoff, err := addressFromPayload(req.Dropoff)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	pkg, err := packageFromPayload(req.Package)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		userID,
		mode,
		req.ScheduledAt,
		pickup,
		dropoff,
		pkg,
		order.PaymentMethod(req.PaymentMethod),
		req.PromoCode,
	)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id - retrieves the full order read model.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID)
}

// QuoteOrder handles POST /api/v1/orders/:id/quote - prices the order.
func (s *Server) QuoteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	cmd, err := commands.NewQuoteOrderCommand(orderID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if handleErr := s.quoteOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return s.respondWithOrder(ctx, orderID)
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm - accepts the quote and
// registers a payment intent.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if handleErr := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return s.respondWithOrder(ctx, orderID)
}

// AssignOrder handles POST /api/v1/orders/:id/assign - assigns a courier, and
// for scheduled orders reserves the requested slot.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var req AssignOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	var slotID *kernel.UUID
	if req.SlotID != nil {
		id, idErr := kernel.UUIDFromString(*req.SlotID)
		if idErr != nil {
			return writeDomainError(ctx, idErr)
		}
		slotID = &id
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, slotID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if handleErr := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return s.respondWithOrder(ctx, orderID)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - cancels the order and
// releases its courier and slot.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var req CancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return s.respondWithOrder(ctx, orderID)
}

// StartTransit handles POST /api/v1/orders/:id/pickup - marks the parcel as
// picked up.
func (s *Server) StartTransit(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	cmd, err := commands.NewStartTransitCommand(orderID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if handleErr := s.startTransitHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return s.respondWithOrder(ctx, orderID)
}

// CompleteOrder handles POST /api/v1/orders/:id/deliver - marks the parcel as
// delivered and settles the final amount.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var req CompleteOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	var finalAmount *kernel.Money
	if req.FinalAmount != nil {
		money, moneyErr := kernel.NewMoney(req.FinalAmount.Amount, req.FinalAmount.Currency)
		if moneyErr != nil {
			return writeDomainError(ctx, moneyErr)
		}
		finalAmount = &money
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, finalAmount)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if handleErr := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return s.respondWithOrder(ctx, orderID)
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves orders that
// are neither delivered nor cancelled.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(orders))
	for i, o := range orders {
		summary := OrderSummaryResponse{
			ID:         o.ID.String(),
			Status:     o.Status,
			Mode:       o.Mode,
			City:       o.City,
			EtaMinutes: o.EtaMinutes,
		}
		if o.CourierID != nil {
			courierID := o.CourierID.String()
			summary.CourierID = &courierID
		}
		response[i] = summary
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateSlot handles POST /api/v1/slots - registers a delivery window.
func (s *Server) CreateSlot(ctx echo.Context) error {
	var req CreateSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	slotID := kernel.NewUUID()
	cmd, err := commands.NewCreateSlotCommand(slotID, req.StartAt, req.EndAt, req.Capacity)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if handleErr := s.createSlotHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: slotID.String()})
}

// GetAvailableSlots handles GET /api/v1/slots - retrieves windows with spare
// capacity starting from now.
func (s *Server) GetAvailableSlots(ctx echo.Context) error {
	query, err := queries.NewGetAvailableSlotsQuery(time.Now())
	if err != nil {
		return writeDomainError(ctx, err)
	}

	slots, err := s.getAvailableSlotsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]SlotResponse, len(slots))
	for i, slot := range slots {
		response[i] = SlotResponse{
			ID:        slot.ID.String(),
			StartAt:   slot.StartAt,
			EndAt:     slot.EndAt,
			Capacity:  slot.Capacity,
			Used:      slot.Used,
			Remaining: slot.Remaining,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers - registers a new courier.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req CreateCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	var location *kernel.GeoPoint
	if req.Lat != nil && req.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*req.Lat, *req.Lng)
		if pointErr != nil {
			return writeDomainError(ctx, pointErr)
		}
		location = &point
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, req.Name, req.VehiclePlate, location)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if handleErr := s.createCourierHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: courierID.String()})
}

// GetCouriers handles GET /api/v1/couriers - retrieves all couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	query := queries.NewGetAllCouriersQuery()

	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]CourierResponse, len(couriers))
	for i, courier := range couriers {
		view := CourierResponse{
			ID:           courier.ID.String(),
			Name:         courier.Name,
			VehiclePlate: courier.VehiclePlate,
			Available:    courier.Available,
		}
		if courier.Location != nil {
			lat := courier.Location.Lat()
			lng := courier.Location.Lng()
			view.Lat = &lat
			view.Lng = &lng
		}
		response[i] = view
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) respondWithOrder(ctx echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(*result))
}
