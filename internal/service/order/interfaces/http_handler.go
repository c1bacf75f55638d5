// internal/service/order/interfaces/http_handler.go
package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"orderflow/internal/pkg/logger"
	"orderflow/internal/service/order/application"
	"orderflow/internal/service/order/domain"
)

const serviceName = "order-service"

// OrderHandler 封装了订单服务的 HTTP 处理器。
type OrderHandler struct {
	service *application.OrderApplicationService
}

// NewOrderHandler 创建一个新的 HTTP 处理器实例。
func NewOrderHandler(service *application.OrderApplicationService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由。
func (h *OrderHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("POST /orders", h.createOrder)
	mux.HandleFunc("GET /orders/{id}", h.getOrder)
}

type createOrderBody struct {
	// 同时接受 item_id 与 item 两种字段名，item_id 优先。
	ItemID   string `json:"item_id"`
	Item     string `json:"item"`
	Quantity *int   `json:"quantity"`
}

func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	propagator := otel.GetTextMapPropagator()
	ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	tracer := otel.Tracer(serviceName)
	ctx, span := tracer.Start(ctx, "order-service.CreateOrder")
	defer span.End()

	requestID := uuid.NewString()

	var body createOrderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	item := body.ItemID
	if item == "" {
		item = body.Item
	}
	if item == "" || body.Quantity == nil {
		writeError(w, http.StatusBadRequest, "item and quantity required")
		return
	}

	span.SetAttributes(
		attribute.String("order.item", item),
		attribute.Int("order.quantity", *body.Quantity),
		attribute.String("request.id", requestID),
	)

	resp, err := h.service.CreateOrder(ctx, &application.CreateOrderRequest{
		Item:     item,
		Quantity: *body.Quantity,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "order creation failed")
		logger.Ctx(ctx).Error().
			Str("request_id", requestID).
			Str("item", item).
			Err(err).
			Msg("order creation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Ctx(ctx).Info().
		Str("request_id", requestID).
		Int64("order_id", resp.ID).
		Str("item", item).
		Int("quantity", *body.Quantity).
		Msg("order created")
	writeJSON(w, http.StatusCreated, resp)
}

func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       order.ID,
		"item":     order.Item,
		"quantity": order.Quantity,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
