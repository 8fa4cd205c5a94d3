package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"whiteboardLabeler/configs"
	"whiteboardLabeler/internal/enums"
	"whiteboardLabeler/internal/handlers"
	"whiteboardLabeler/internal/interfaces"
	"whiteboardLabeler/internal/repositories"
	"whiteboardLabeler/internal/repositories/jsonfile"
	"whiteboardLabeler/internal/servers/database"
	"whiteboardLabeler/internal/servers/http"
	"whiteboardLabeler/internal/services"
)

// App owns the process-lifetime resources: the store, the optional redis
// client and the logger. Close releases them.
type App struct {
	ctx     context.Context
	configs *configs.Config
	log     *zap.Logger
	store   interfaces.LabelingRepository
	redis   *redis.Client
}

func NewApp(ctx context.Context, config *configs.Config) (*App, error) {
	app := &App{ctx: ctx, configs: config}

	if err := app.initializeLogger(); err != nil {
		return nil, err
	}
	if err := app.initializeStore(); err != nil {
		_ = app.log.Sync()
		return nil, err
	}
	return app, nil
}

// LetsGo wires the services and serves HTTP until shutdown.
func (app *App) LetsGo() error {
	publisher := app.initializeEventPublisher()

	authService := services.NewAuthenticationService(app.store, app.configs, app.log)
	whiteboardService := services.NewWhiteboardService(app.store, publisher, app.log)
	exportService := services.NewExportService(app.store, app.initializeFileManager(), app.log)
	importService := services.NewImportService(app.store, app.log)

	restHandler := handlers.NewRestHandler(
		authService,
		whiteboardService,
		exportService,
		importService,
		app.log,
	)

	return http.NewHttpServer(app.ctx, app.configs, app.log, restHandler).Run()
}

func (app *App) Logger() *zap.Logger {
	return app.log
}

func (app *App) Store() interfaces.LabelingRepository {
	return app.store
}

func (app *App) Close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.log.Warn("closing redis", zap.Error(err))
		}
	}
	if app.store != nil {
		if err := app.store.Close(); err != nil {
			app.log.Warn("closing store", zap.Error(err))
		}
	}
	_ = app.log.Sync()
}

func (app *App) initializeLogger() error {
	var (
		log *zap.Logger
		err error
	)
	if app.configs.Viper.GetString("app.env") == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	app.log = log
	return nil
}

func (app *App) initializeStore() error {
	switch driver := app.configs.Viper.GetString("storage.driver"); driver {
	case enums.STORAGE_DRIVER_JSON:
		store, err := jsonfile.Open(app.configs.Viper.GetString("storage.json_path"), app.log)
		if err != nil {
			return err
		}
		app.store = store
	case enums.STORAGE_DRIVER_POSTGRES, enums.STORAGE_DRIVER_SQLITE:
		db, err := database.Open(app.configs, app.log)
		if err != nil {
			return err
		}
		app.store = repositories.NewWhiteboardRepository(db)
	default:
		return fmt.Errorf("unknown storage.driver %q", driver)
	}
	app.log.Info("store opened", zap.String("driver", app.configs.Viper.GetString("storage.driver")))
	return nil
}

func (app *App) initializeEventPublisher() interfaces.EventPublisher {
	if !app.configs.Viper.GetBool("redis.enabled") {
		return services.NopEventPublisher{}
	}
	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.configs.Viper.GetString("redis.addr"),
		Password: app.configs.Viper.GetString("redis.password"),
		DB:       app.configs.Viper.GetInt("redis.db"),
	})
	if err := app.redis.Ping(app.ctx).Err(); err != nil {
		app.log.Warn("redis unreachable; annotation events will be dropped", zap.Error(err))
	}
	return services.NewRedisEventPublisher(app.redis, app.configs.Viper.GetString("redis.channel"))
}

// initializeFileManager returns nil when object storage is disabled or
// unreachable, which turns export archiving off.
func (app *App) initializeFileManager() *services.FileManagerService {
	if !app.configs.Viper.GetBool("minio.enabled") {
		return nil
	}
	minioService, err := services.NewMinioService(app.ctx, app.configs, app.log)
	if err != nil {
		app.log.Warn("object storage unavailable; export archiving disabled", zap.Error(err))
		return nil
	}
	return services.NewFileManagerService(minioService, app.configs.Viper.GetString("minio.bucket"))
}
