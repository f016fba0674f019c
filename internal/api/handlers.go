package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	v1 "github.com/tradewire/bookfeed/internal/domain/ingest/v1"
	"github.com/tradewire/bookfeed/internal/infrastructure/postgres/order"
	"github.com/tradewire/bookfeed/pkg/errors"
	"github.com/tradewire/bookfeed/pkg/logger"
)

// SubmitOrderRequest is the ingestion payload for one new order.
type SubmitOrderRequest struct {
	Secnum   uint64          `json:"secnum"`
	Symbol   string          `json:"symbol"`
	Side     order.Side      `json:"side"`
	Price    decimal.Decimal `json:"price"`
	Quantity uint64          `json:"quantity"`
}

// SubmitExecutionsRequest is the ingestion payload for one execution batch.
// The batch may span multiple symbols; the sequencer splits it.
type SubmitExecutionsRequest struct {
	Symbol     string               `json:"symbol"`
	Executions []v1.RawExecutionRef `json:"executions"`
}

type acceptedResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(errors.MalformedEvent), err.Error())
		return
	}

	event := v1.NewOrderEvent(&order.Order{
		Secnum:       req.Secnum,
		Symbol:       req.Symbol,
		Side:         req.Side,
		Price:        req.Price,
		Quantity:     req.Quantity,
		QuantityLeft: req.Quantity,
	})
	s.submit(w, r, event)
}

func (s *Server) handleSubmitExecutions(w http.ResponseWriter, r *http.Request) {
	var req SubmitExecutionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(errors.MalformedEvent), err.Error())
		return
	}

	refs := make([]v1.ExecutionRef, len(req.Executions))
	for i, raw := range req.Executions {
		symbol := raw.Symbol
		if symbol == "" {
			symbol = req.Symbol
		}
		refs[i] = v1.ExecutionRef{
			Secnum: raw.Secnum,
			Symbol: symbol,
			Side:   raw.Side,
			Price:  raw.Price,
		}
	}
	s.submit(w, r, v1.ExecutionsEvent(req.Symbol, refs))
}

// submit enqueues one event and maps the sequencer's error taxonomy onto
// HTTP statuses. An unknown symbol is acknowledged without content rather
// than treated as a caller fault.
func (s *Server) submit(w http.ResponseWriter, r *http.Request, event v1.Event) {
	err := s.sequencer.Submit(r.Context(), event)
	switch {
	case err == nil:
		respondJSON(w, http.StatusAccepted, acceptedResponse{Status: "accepted"})
	case errors.IsCode(err, errors.MalformedEvent):
		respondError(w, http.StatusBadRequest, string(errors.MalformedEvent), err.Error())
	case errors.IsCode(err, errors.UnknownSymbol):
		w.WriteHeader(http.StatusNoContent)
	default:
		s.logger.ErrorContext(r.Context(), err)
		respondError(w, http.StatusInternalServerError, string(errors.GeneralInternalServerError), "failed to enqueue event")
	}
}

func (s *Server) handleGetOrderBook(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	book, err := s.bookUsecase.BuildSnapshot(r.Context(), symbol)
	if err != nil {
		s.logger.ErrorContext(r.Context(), err, logger.Field{Key: "symbol", Value: symbol})
		respondError(w, http.StatusInternalServerError, string(errors.GeneralRepositoryError), "failed to build snapshot")
		return
	}
	respondJSON(w, http.StatusOK, book)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.health.CheckHealth(r.Context())
	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, health)
}
