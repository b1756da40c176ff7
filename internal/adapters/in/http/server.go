// Package http exposes the REST surface. Handlers translate JSON payloads
// into commands and queries, and map the core's error taxonomy onto HTTP
// status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"dispatch/internal/adapters/out/postgres/paymentrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/payment"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and the application use cases.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	updateOrderStatusHandler  commands.UpdateOrderStatusCommandHandler
	deleteOrderHandler        commands.DeleteOrderCommandHandler
	createPaymentHandler      commands.CreatePaymentCommandHandler
	processPaymentHandler     commands.ProcessPaymentCommandHandler
	checkPaymentStatusHandler commands.CheckPaymentStatusCommandHandler
	updatePaymentHandler      commands.UpdatePaymentCommandHandler
	createCourierHandler      commands.CreateCourierCommandHandler

	getOrderTrackingHandler queries.GetOrderTrackingQueryHandler
	getActiveOrdersHandler  queries.GetActiveOrdersQueryHandler
}

// NewServer creates the REST server with its command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	createPaymentHandler commands.CreatePaymentCommandHandler,
	processPaymentHandler commands.ProcessPaymentCommandHandler,
	checkPaymentStatusHandler commands.CheckPaymentStatusCommandHandler,
	updatePaymentHandler commands.UpdatePaymentCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	getOrderTrackingHandler queries.GetOrderTrackingQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		updateOrderStatusHandler:  updateOrderStatusHandler,
		deleteOrderHandler:        deleteOrderHandler,
		createPaymentHandler:      createPaymentHandler,
		processPaymentHandler:     processPaymentHandler,
		checkPaymentStatusHandler: checkPaymentStatusHandler,
		updatePaymentHandler:      updatePaymentHandler,
		createCourierHandler:      createCourierHandler,
		getOrderTrackingHandler:   getOrderTrackingHandler,
		getActiveOrdersHandler:    getActiveOrdersHandler,
	}
}

// RegisterRoutes wires every REST endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetActiveOrders)
	api.GET("/orders/:id/tracking", s.GetOrderTracking)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.DELETE("/orders/:id", s.DeleteOrder)

	api.POST("/payments", s.CreatePayment)
	api.POST("/payments/:id/process", s.ProcessPayment)
	api.POST("/payments/:id/check-status", s.CheckPaymentStatus)
	api.PATCH("/payments/:id", s.UpdatePayment)

	api.POST("/couriers", s.CreateCourier)
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createOrderRequest struct {
	Description string  `json:"description"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Amount      string  `json:"amount"`
	CourierID   *string `json:"courier_id,omitempty"`
	RouteID     *string `json:"route_id,omitempty"`
}

type orderCreatedResponse struct {
	ID string `json:"id"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	amount, err := kernel.MoneyFromString(req.Amount)
	if err != nil {
		return writeError(ctx, err)
	}

	courierID, err := optionalUUID(req.CourierID)
	if err != nil {
		return writeError(ctx, err)
	}

	routeID, err := optionalUUID(req.RouteID)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, req.Description, req.Origin, req.Destination, amount, courierID, routeID,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderCreatedResponse{ID: orderID.String()})
}

type activeOrderResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetActiveOrders handles GET /api/v1/orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	rows, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]activeOrderResponse, len(rows))
	for i, row := range rows {
		response[i] = activeOrderResponse{
			ID:          row.OrderID.String(),
			Description: row.Description,
			Destination: row.Destination,
			Status:      row.Status,
			Latitude:    row.Latitude,
			Longitude:   row.Longitude,
			CreatedAt:   row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type courierSummaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type orderTrackingResponse struct {
	OrderID    string                  `json:"order_id"`
	Status     string                  `json:"status"`
	Latitude   *float64                `json:"latitude,omitempty"`
	Longitude  *float64                `json:"longitude,omitempty"`
	ReportedAt *time.Time              `json:"reported_at,omitempty"`
	Courier    *courierSummaryResponse `json:"courier,omitempty"`
}

// GetOrderTracking handles GET /api/v1/orders/:id/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	snapshot, err := s.getOrderTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := orderTrackingResponse{
		OrderID:    snapshot.OrderID.String(),
		Status:     snapshot.Status,
		Latitude:   snapshot.Latitude,
		Longitude:  snapshot.Longitude,
		ReportedAt: snapshot.ReportedAt,
	}
	if snapshot.Courier != nil {
		response.Courier = &courierSummaryResponse{
			ID:    snapshot.Courier.ID.String(),
			Name:  snapshot.Courier.Name,
			Phone: snapshot.Courier.Phone,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
	Force  bool   `json:"force"`
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req updateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status, req.Force)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type createPaymentRequest struct {
	OrderID string `json:"order_id"`
	Amount  string `json:"amount"`
	Method  string `json:"method"`
}

type paymentResponse struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"order_id"`
	Amount        string     `json:"amount"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	QRPayload     *string    `json:"qr_code,omitempty"`
	QRImageBase64 *string    `json:"qr_code_base64,omitempty"`
	TicketURL     *string    `json:"ticket_url,omitempty"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

func toPaymentResponse(p *payment.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID().String(),
		OrderID:       p.OrderID().String(),
		Amount:        p.Amount().String(),
		Method:        p.Method().String(),
		Status:        p.Status().String(),
		TransactionID: p.TransactionID(),
		QRPayload:     p.QRPayload(),
		QRImageBase64: p.QRImageBase64(),
		TicketURL:     p.TicketURL(),
		ProcessedAt:   p.ProcessedAt(),
	}
}

// CreatePayment handles POST /api/v1/payments.
func (s *Server) CreatePayment(ctx echo.Context) error {
	var req createPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}

	amount, err := kernel.MoneyFromString(req.Amount)
	if err != nil {
		return writeError(ctx, err)
	}

	method, err := payment.MethodFromString(req.Method)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreatePaymentCommand(kernel.NewUUID(), orderID, amount, method)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toPaymentResponse(created))
}

type processPaymentRequest struct {
	PayerEmail string `json:"payer_email"`
}

// ProcessPayment handles POST /api/v1/payments/:id/process.
func (s *Server) ProcessPayment(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req processPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewProcessPaymentCommand(paymentID, req.PayerEmail)
	if err != nil {
		return writeError(ctx, err)
	}

	processed, err := s.processPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPaymentResponse(processed))
}

// CheckPaymentStatus handles POST /api/v1/payments/:id/check-status.
func (s *Server) CheckPaymentStatus(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCheckPaymentStatusCommand(paymentID)
	if err != nil {
		return writeError(ctx, err)
	}

	checked, err := s.checkPaymentStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPaymentResponse(checked))
}

type updatePaymentRequest struct {
	Amount        *string `json:"amount,omitempty"`
	Method        *string `json:"method,omitempty"`
	Status        *string `json:"status,omitempty"`
	TransactionID *string `json:"transaction_id,omitempty"`
}

// UpdatePayment handles PATCH /api/v1/payments/:id.
func (s *Server) UpdatePayment(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req updatePaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var amount *kernel.Money
	if req.Amount != nil {
		parsed, amountErr := kernel.MoneyFromString(*req.Amount)
		if amountErr != nil {
			return writeError(ctx, amountErr)
		}
		amount = &parsed
	}

	var method *payment.Method
	if req.Method != nil {
		parsed, methodErr := payment.MethodFromString(*req.Method)
		if methodErr != nil {
			return writeError(ctx, methodErr)
		}
		method = &parsed
	}

	var status *payment.Status
	if req.Status != nil {
		parsed, statusErr := payment.StatusFromString(*req.Status)
		if statusErr != nil {
			return writeError(ctx, statusErr)
		}
		status = &parsed
	}

	cmd, err := commands.NewUpdatePaymentCommand(paymentID, amount, method, status, req.TransactionID)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updatePaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPaymentResponse(updated))
}

type createCourierRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type courierCreatedResponse struct {
	ID string `json:"id"`
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req createCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCreateCourierCommand(kernel.NewUUID(), req.Name, req.Phone)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, courierCreatedResponse{ID: created.ID().String()})
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps the core's error taxonomy to HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		code = http.StatusConflict
	case errors.Is(err, paymentrepo.ErrPaymentModifiedConcurrently):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrGatewayFailure):
		code = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
