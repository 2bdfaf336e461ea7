// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-woori/bank-ledger/internal/accountdelivery"
	"github.com/go-woori/bank-ledger/internal/accountrepo"
	"github.com/go-woori/bank-ledger/internal/accountservice"
	"github.com/go-woori/bank-ledger/internal/middleware"
	"github.com/go-woori/bank-ledger/internal/transactiondelivery"
	"github.com/go-woori/bank-ledger/internal/transactionrepo"
	"github.com/go-woori/bank-ledger/internal/transactionservice"
	"github.com/go-woori/bank-ledger/internal/userrepo"
	"github.com/go-woori/bank-ledger/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)

	accountService := accountservice.New(accountRepo, userRepo)
	transactionService := transactionservice.New(userRepo, accountRepo, transactionRepo)

	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Create)
	engine.DELETE("/accounts", accountHandler.Unregister)
	engine.GET("/accounts", accountHandler.List)

	engine.POST("/transaction/use", transactionHandler.Use)
	engine.POST("/transaction/cancel", transactionHandler.Cancel)
	engine.GET("/transaction/:transaction_id", transactionHandler.Get)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
