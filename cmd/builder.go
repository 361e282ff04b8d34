package cmd

import (
	"fmt"
	"net/http"
	"os"

	"orderflow/api"
	"orderflow/api/health"
	apiorder "orderflow/api/order"
	apireport "orderflow/api/report"
	orderapp "orderflow/application/order"
	reportapp "orderflow/application/report"
	"orderflow/config"
	"orderflow/domain/inventory"
	"orderflow/infrastructure/persistence/memory"
	"orderflow/infrastructure/persistence/mysql"
	"orderflow/infrastructure/persistence/retry"
	"orderflow/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder wires configuration, persistence, services and the HTTP layer.
type AppBuilder struct {
	cfg *config.Config
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// Build creates the App instance
func (b *AppBuilder) Build() *App {
	if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	var db *gorm.DB
	var orderService *orderapp.ApplicationService
	var reportService *reportapp.Service

	switch b.cfg.Database.Type {
	case "mysql":
		db, orderService, reportService = b.buildMySQLServices()
	default:
		logger.Info("Using in-memory persistence layer")
		orderService, reportService = b.buildMemoryServices()
	}

	healthController := b.buildHealthController(db)
	orderController := apiorder.NewController(orderService)
	reportController := apireport.NewController(reportService)

	router := api.NewRouter(b.cfg, healthController, orderController, reportController)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     db,
	}
}

func (b *AppBuilder) buildMySQLServices() (*gorm.DB, *orderapp.ApplicationService, *reportapp.Service) {
	logger.Info("Using MySQL/GORM persistence layer")

	mysqlConfig := &mysql.Config{
		Host:            b.cfg.Database.Host,
		Port:            b.cfg.Database.Port,
		Username:        b.cfg.Database.Username,
		Password:        b.cfg.Database.Password,
		Database:        b.cfg.Database.Database,
		MaxOpenConns:    b.cfg.Database.MaxOpenConns,
		MaxIdleConns:    b.cfg.Database.MaxIdleConns,
		ConnMaxLifetime: b.cfg.Database.ConnMaxLifetime,
		LogLevel:        b.cfg.Log.Level,
	}

	db, err := mysqlConfig.Connect()
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Failed to ping MySQL", zap.Error(err))
	}

	logger.Info("Connected to MySQL successfully")

	if b.cfg.Database.AutoMigrate && b.cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to auto migrate", zap.Error(err))
		}
	}

	orderService := orderapp.NewApplicationService(orderapp.Dependencies{
		OrderRepo:         mysql.NewOrderRepository(db),
		UserRepo:          mysql.NewUserRepository(db),
		AddressRepo:       mysql.NewAddressRepository(db),
		PaymentRepo:       mysql.NewPaymentMethodRepository(db),
		CartRepo:          mysql.NewCartRepository(db),
		VoucherRepo:       mysql.NewVoucherRepository(db),
		ReasonRepo:        mysql.NewCancelReasonRepository(db),
		Ledger:            inventory.NewLedger(mysql.NewInventoryRepository(db)),
		UnitOfWorkFactory: mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(b.cfg)),
	})

	reportService := reportapp.NewService(mysql.NewReportQuery(db))

	return db, orderService, reportService
}

func (b *AppBuilder) buildMemoryServices() (*orderapp.ApplicationService, *reportapp.Service) {
	store := memory.NewStore()

	orderService := orderapp.NewApplicationService(orderapp.Dependencies{
		OrderRepo:         memory.NewOrderRepository(store),
		UserRepo:          memory.NewUserRepository(store),
		AddressRepo:       memory.NewAddressRepository(store),
		PaymentRepo:       memory.NewPaymentMethodRepository(store),
		CartRepo:          memory.NewCartRepository(store),
		VoucherRepo:       memory.NewVoucherRepository(store),
		ReasonRepo:        memory.NewCancelReasonRepository(store),
		Ledger:            inventory.NewLedger(memory.NewInventoryRepository(store)),
		UnitOfWorkFactory: memory.NewUnitOfWorkFactory(store),
	})

	reportService := reportapp.NewService(memory.NewReportQuery(store))

	return orderService, reportService
}

func (b *AppBuilder) buildHealthController(db *gorm.DB) *health.Controller {
	var healthDB interface{}
	if db != nil {
		sqlDB, _ := db.DB()
		healthDB = sqlDB
	}
	return health.NewController(b.cfg, healthDB)
}
