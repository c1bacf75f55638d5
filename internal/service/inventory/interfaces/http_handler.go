// internal/service/inventory/interfaces/http_handler.go
package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"orderflow/internal/pkg/logger"
	"orderflow/internal/service/inventory/application"
	"orderflow/internal/service/inventory/domain"
)

const serviceName = "inventory-service"

// InventoryHandler 封装了库存服务的 HTTP 处理器。
type InventoryHandler struct {
	service *application.InventoryApplicationService
}

// NewInventoryHandler 创建一个新的 HTTP 处理器实例。
func NewInventoryHandler(service *application.InventoryApplicationService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由。
func (h *InventoryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /inventory/{item}", h.getInventory)
	mux.HandleFunc("POST /reserve", h.reserve)
}

func (h *InventoryHandler) getInventory(w http.ResponseWriter, r *http.Request) {
	item := r.PathValue("item")

	stock, err := h.service.GetStock(r.Context(), item)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"item":  item,
		"stock": stock,
	})
}

type reserveBody struct {
	Item     string `json:"item"`
	Quantity *int64 `json:"quantity"`
}

func (h *InventoryHandler) reserve(w http.ResponseWriter, r *http.Request) {
	propagator := otel.GetTextMapPropagator()
	ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	tracer := otel.Tracer(serviceName)
	ctx, span := tracer.Start(ctx, "inventory-service.Reserve")
	defer span.End()

	var body reserveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Item == "" || body.Quantity == nil {
		writeError(w, http.StatusBadRequest, "item and quantity required")
		return
	}

	span.SetAttributes(
		attribute.String("item", body.Item),
		attribute.Int64("quantity", *body.Quantity),
	)

	reservation, err := h.service.Reserve(ctx, body.Item, *body.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "reservation failed")
		logger.Ctx(ctx).Error().Str("item", body.Item).Err(err).Msg("reservation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Ctx(ctx).Info().
		Str("item", body.Item).
		Int64("quantity", *body.Quantity).
		Bool("success", reservation.Success).
		Int64("remaining", reservation.Remaining).
		Msg("reservation attempted")
	writeJSON(w, http.StatusOK, reservation)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
