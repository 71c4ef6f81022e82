package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/config"
	"marketplace/cron"
	"marketplace/database"
	"marketplace/database/repository"
	"marketplace/handlers"
	"marketplace/routes"
	"marketplace/services/admin"
	"marketplace/services/catalog"
	"marketplace/services/listing"
	"marketplace/services/navigation"
	"marketplace/services/onboarding"
	"marketplace/services/professional"
	"marketplace/services/taxonomy"
	"marketplace/services/user"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// catalogBase prefixes the canonical browse URLs handed to clients.
const catalogBase = "/api/services"

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitRedis()

	store, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}
	encKey := config.AppConfig.DocumentEncryptionKey

	// repositories.
	repos := repository.NewRepositories(database.Database())

	// taxonomy: mongo, then redis, then the in-process store.
	taxonomyCache := taxonomy.NewCachingLoader(repos.Taxonomy, utils.NewRedisKV(utils.GetCacheClient()),
		config.AppConfig.TaxonomyCacheTTL, logger)
	taxonomyStore := taxonomy.NewStore(taxonomyCache, logger)
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := taxonomyStore.Refresh(warmCtx); err != nil {
		logger.Warn("main: taxonomy warm-up failed, levels will load on demand", zap.Error(err))
	}
	warmCancel()

	// services.
	userService := user.NewUserService(repos.Users, utils.NewRedisKV(utils.GetAuthCacheClient()), config.AppConfig.JWTTTL)
	catalogService := catalog.NewService(taxonomyStore, repos.Listings, catalog.Defaults{
		PageSize:    config.AppConfig.CatalogDefaultPageSize,
		MaxPageSize: config.AppConfig.CatalogMaxPageSize,
	}, catalogBase, logger)
	navService := navigation.NewService(taxonomyStore, catalogBase)
	listingService := listing.NewListingService(repos.Listings, repos.Professionals, taxonomyStore, store)
	professionalService := professional.NewProfessionalService(repos.Professionals, repos.Listings, repos.Documents, store, encKey)
	onboardingService := onboarding.NewOnboardingService(
		utils.NewRedisKV(utils.GetSessionClient()),
		repos.Users,
		repos.Professionals,
		repos.Documents,
		userService,
		taxonomyStore,
		store,
		encKey,
	)

	queue := asynq.NewClient(cron.RedisOpt())
	defer queue.Close()

	adminService := admin.NewAdminService(admin.Deps{
		Users:         repos.Users,
		Professionals: repos.Professionals,
		Listings:      repos.Listings,
		Documents:     repos.Documents,
		Taxonomy:      repos.Taxonomy,
		Tokens:        userService,
		Verifier:      professionalService,
		Storage:       store,
		Queue:         queue,
		Tree:          taxonomyStore,
		Cache:         taxonomyCache,
		EncryptionKey: encKey,
	})

	// background jobs.
	worker := cron.StartWorker(professionalService, logger)
	scheduler, err := cron.StartScheduler(config.AppConfig.TaxonomyRefreshSpec, taxonomyStore, taxonomyCache, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid taxonomy refresh schedule: %v", err)
	}

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, utils.RedisClients(), database.MongoClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Authenticator: userService,
		Auth:          handlers.NewAuthHandler(userService),
		Catalog:       handlers.NewCatalogHandler(catalogService, navService, taxonomyStore, listingService),
		Onboarding:    handlers.NewOnboardingHandler(onboardingService),
		Professional:  handlers.NewProfessionalHandler(professionalService, listingService),
		Admin:         handlers.NewAdminHandler(adminService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router, handlerBundle, logger)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	<-scheduler.Stop().Done()
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
