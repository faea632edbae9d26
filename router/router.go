package router

import (
	"net/http"
	"time"

	"go-bank-ledger/common"
	_ "go-bank-ledger/docs"
	"go-bank-ledger/handler"
	"go-bank-ledger/logger"
	"go-bank-ledger/metrics"
	"go-bank-ledger/service"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Handlers bundles what the router serves. Metrics may be nil.
type Handlers struct {
	Accounts       *handler.AccountHandler
	Ledger         *handler.LedgerHandler
	Auth           *service.AuthService
	Metrics        *metrics.Collector
	AllowedOrigins []string
}

func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics.Handler())
	}
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	auth := handler.AuthMiddleware(h.Auth)
	protected := func(fn func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return auth(handler.ErrorHandlingMiddleware(fn))
	}
	admin := func(fn func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return auth(handler.AdminMiddleware(handler.ErrorHandlingMiddleware(fn)))
	}

	// Accounts
	mux.Handle("POST /api/accounts", protected(h.Accounts.CreateAccount))
	mux.Handle("GET /api/accounts", protected(h.Accounts.ListAccounts))
	mux.Handle("GET /api/accounts/{accountId}", protected(h.Accounts.GetAccount))
	mux.Handle("GET /api/admin/accounts", admin(h.Accounts.ListAllAccounts))

	// Ledger
	mux.Handle("POST /api/accounts/{accountId}/deposit", protected(h.Ledger.Deposit))
	mux.Handle("POST /api/accounts/{accountId}/withdraw", protected(h.Ledger.Withdraw))
	mux.Handle("POST /api/accounts/{accountId}/close", protected(h.Ledger.CloseAccount))
	mux.Handle("GET /api/accounts/{accountId}/transactions", protected(h.Ledger.ListTransactionsForAccount))
	mux.Handle("POST /api/transfers", protected(h.Ledger.CreateTransfer))

	origins := h.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Retry-After", "X-Request-Id"},
		MaxAge:         300,
	})

	var root http.Handler = mux
	root = middleware.Recoverer(root)
	root = requestLogger(root)
	root = corsHandler(root)
	root = middleware.RealIP(root)
	root = middleware.RequestID(root)
	return root
}

// requestLogger writes one access log line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logger.Log.WithFields(logrus.Fields{
			"request_id":  middleware.GetReqID(r.Context()),
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"bytes":       ww.BytesWritten(),
			"remote_addr": r.RemoteAddr,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("HTTP request handled")
	})
}
