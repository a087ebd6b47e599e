package main

import (
	"fmt"
	"net/http"

	"github.com/nippo-dev/nippo-backend-go/internal/config"
	appHTTP "github.com/nippo-dev/nippo-backend-go/internal/handler/http"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/database"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/jwt"
	"github.com/nippo-dev/nippo-backend-go/internal/repository/postgresql"
	authService "github.com/nippo-dev/nippo-backend-go/internal/service/auth"
	customerService "github.com/nippo-dev/nippo-backend-go/internal/service/customer"
	reportService "github.com/nippo-dev/nippo-backend-go/internal/service/report"
	userService "github.com/nippo-dev/nippo-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	commentRepo := postgresql.NewCommentRepository(db)
	customerRepo := postgresql.NewCustomerRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.IsProduction())

	authSvc := authService.NewAuthService(userRepo, jwtService)
	reportSvc := reportService.NewReportService(db, reportRepo, commentRepo)
	customerSvc := customerService.NewCustomerService(customerRepo)
	userSvc := userService.NewUserService(userRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	customerHandler := appHTTP.NewCustomerHandler(customerSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		jwtService,
		userRepo,
		authHandler,
		reportHandler,
		customerHandler,
		userHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
