package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"cryptotracker.io/internal/application/usecase"
	"cryptotracker.io/internal/domain/entity"
	"cryptotracker.io/internal/infrastructure/logger"
)

// Handler holds HTTP handlers and their dependencies
type Handler struct {
	getBalanceUseCase       *usecase.GetBalanceUseCase
	listTransactionsUseCase *usecase.ListTransactionsUseCase
	defaultPageLimit        int
	logger                  logger.Logger
}

// TransactionsResponse is the body of the transactions endpoint
type TransactionsResponse struct {
	Transactions []entity.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
}

// NewHandler creates a new HTTP handler
func NewHandler(
	getBalanceUseCase *usecase.GetBalanceUseCase,
	listTransactionsUseCase *usecase.ListTransactionsUseCase,
	defaultPageLimit int,
	logger logger.Logger,
) *Handler {
	return &Handler{
		getBalanceUseCase:       getBalanceUseCase,
		listTransactionsUseCase: listTransactionsUseCase,
		defaultPageLimit:        defaultPageLimit,
		logger:                  logger,
	}
}

// HandleBalance handles GET /v1/{crypto}/addresses/{address}
func (h *Handler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestLogger := loggerFrom(ctx, h.logger)
	vars := mux.Vars(r)

	summary, err := h.getBalanceUseCase.Execute(ctx, vars["crypto"], vars["address"])
	if err != nil {
		requestLogger.LogWarning(ctx, "Failed to get balance",
			"crypto_type", vars["crypto"],
			"address", vars["address"],
			"error", err.Error())
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, r, http.StatusOK, summary, requestLogger)
	requestLogger.LogInfo(ctx, "Balance retrieved",
		"crypto_type", summary.CryptoType,
		"address", summary.AddressID)
}

// HandleTransactions handles GET /v1/{crypto}/addresses/{address}/transactions
func (h *Handler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestLogger := loggerFrom(ctx, h.logger)
	vars := mux.Vars(r)

	limit, err := intParam(r, "limit", h.defaultPageLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	query := entity.TransactionQuery{
		CryptoType: vars["crypto"],
		Address:    vars["address"],
		PageLimit:  limit,
		Offset:     offset,
	}
	transactions, err := h.listTransactionsUseCase.Execute(ctx, query)
	if err != nil {
		requestLogger.LogWarning(ctx, "Failed to list transactions",
			"crypto_type", query.CryptoType,
			"address", query.Address,
			"error", err.Error())
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, r, http.StatusOK, TransactionsResponse{
		Transactions: transactions,
		Count:        len(transactions),
	}, requestLogger)
	requestLogger.LogInfo(ctx, "Transactions retrieved",
		"crypto_type", query.CryptoType,
		"address", query.Address,
		"count", len(transactions))
}

// HandleHealth handles GET /health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// SetupRoutes sets up all HTTP routes
func (h *Handler) SetupRoutes() *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware(h.logger), LoggingMiddleware(h.logger))

	router.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)

	// registered on the root router so a method mismatch answers 405, not 404
	router.HandleFunc("/v1/{crypto}/addresses/{address}", h.HandleBalance).Methods(http.MethodGet)
	router.HandleFunc("/v1/{crypto}/addresses/{address}/transactions", h.HandleTransactions).Methods(http.MethodGet)

	return router
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrBalanceUnavailable):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidAddress),
		errors.Is(err, entity.ErrMissingAddress),
		errors.Is(err, entity.ErrMissingCryptoType),
		errors.Is(err, entity.ErrInvalidPageLimit),
		errors.Is(err, entity.ErrInvalidOffset):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("query parameter " + name + " must be an integer")
	}
	return n, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.LogError(r.Context(), "Failed to encode response", err)
	}
}
