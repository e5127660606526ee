package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/cache"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const rendersCollection = "renders"

// Global variables for dependencies
var (
	redisClient    *redis.Client
	mongoClient    *mongo.Client
	pngCache       i.PNGCache
	renderRepo     i.RenderRepo
	jwtTokenizer   i.Tokenizer
	mazeService    i.MazeRenderer
	mazeController api_i.Controller
	router         *api.Router
	appLogger      *logger.Logger
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve maze images and render history over HTTP",
		Run: func(cmd *cobra.Command, args []string) {
			serve()
		},
	}
}

func newLogger(prefix, color string) *logger.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	if err := l.SetLevel(config.Envs.LogLevel); err != nil {
		l.Warn(err.Error())
	}
	return l
}

func initRedis(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Warn("REDIS_ADDR not set, image cache disabled")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initPNGCache() {
	if redisClient == nil {
		return
	}

	var err error
	pngCache, err = cache.NewRedisPNGCache(redisClient, config.Envs.CacheTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating image cache: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Image cache initialized")
}

func initMongo(ctx context.Context) {
	if config.Envs.DBURI == "" {
		appLogger.Warn("DB_URI not set, render history disabled")
		return
	}

	clientOptions := options.Client().ApplyURI(config.Envs.DBURI)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRenderRepo(ctx context.Context) {
	if mongoClient == nil {
		return
	}

	r := repo.NewRenderRepo(mongoClient, config.Envs.DBName, rendersCollection)
	if err := r.EnsureIndexes(ctx); err != nil {
		appLogger.Warn(fmt.Sprintf("Render history index: %v", err))
	}
	renderRepo = r
	appLogger.Info("Render repository initialized")
}

func initJWTTokenizer() {
	if err := config.CheckSecret(config.Envs.JWTSecret); err != nil {
		appLogger.Error(fmt.Sprintf("JWT_SECRET rejected: %v", err))
		os.Exit(1)
	}
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initMazeService() {
	var err error
	mazeService, err = service.NewMazeService(pngCache, renderRepo, newLogger("MAZE", config.ColorCyan), &service.Options{
		MaxDimension: config.Envs.MazeMaxDimension,
		MaxPixels:    config.Envs.MazeMaxPixels,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeService, mazeapi.Defaults{
		Width:    config.Envs.MazeWidth,
		Height:   config.Envs.MazeHeight,
		CellSize: config.Envs.MazeCellSize,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
		Logger:                  newLogger("HTTP", config.ColorMagenta),
	})
	appLogger.Info("Router initialized")
}

// serve wires every dependency and blocks in the HTTP server. Startup connections
// share one deadline.
func serve() {
	appLogger = newLogger("APP", config.ColorGreen)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	initRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}
	initPNGCache()

	initMongo(ctx)
	if mongoClient != nil {
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
	}
	initRenderRepo(ctx)

	initJWTTokenizer()
	initMazeService()
	initMazeController()
	initRouter(jwtTokenizer)

	appLogger.Info(fmt.Sprintf("Listening on %s:%d", config.Envs.HostIP, config.Envs.RESTPort))
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
