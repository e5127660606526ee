package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP   string // Host IP for the server
	RESTPort int    // Port for the REST API
	GinMode  string // Mode for the Gin framework (e.g., release, debug, test)
	LogLevel string // Minimum log level (debug, info, warn, error)

	MazeWidth        int    // Default maze width in cells
	MazeHeight       int    // Default maze height in cells
	MazeCellSize     int    // Default cell size in pixels
	MazeMaxDimension int    // Largest width or height accepted over HTTP
	MazeMaxPixels    int    // Largest image area accepted over HTTP
	MazeOutput       string // Default output path of the generate command

	RedisAddr       string // Address of the Redis server caching rendered images
	RedisPassword   string // Password for Redis
	RedisDB         int    // Redis logical database
	CacheTTLSeconds int    // Lifetime of a cached image

	DBURI  string // MongoDB connection string
	DBName string // Name of the database

	JWTSecret string // Secret key for JWT signing
	JWTIssuer string // Issuer claim for JWTs
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[APP] [INFO] .env file could not be loaded: %v", err)
	}

	return Config{
		HostIP:   getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort: getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:  getEnvWithDefault("GIN_MODE", "release"),
		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		MazeWidth:        getEnvAsIntWithDefault("MAZE_WIDTH", 100),
		MazeHeight:       getEnvAsIntWithDefault("MAZE_HEIGHT", 100),
		MazeCellSize:     getEnvAsIntWithDefault("MAZE_CELL_SIZE", 25),
		MazeMaxDimension: getEnvAsIntWithDefault("MAZE_MAX_DIMENSION", 200),
		MazeMaxPixels:    getEnvAsIntWithDefault("MAZE_MAX_PIXELS", 1<<24),
		MazeOutput:       getEnvWithDefault("MAZE_OUTPUT", "image.png"),

		RedisAddr:       getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsIntWithDefault("REDIS_DB", 0),
		CacheTTLSeconds: getEnvAsIntWithDefault("CACHE_TTL_SECONDS", 3600),

		DBURI:  getEnvWithDefault("DB_URI", ""),
		DBName: getEnvWithDefault("DB_NAME", "vinom_maze"),

		JWTSecret: getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer: getEnvWithDefault("JWT_ISSUER", "vinom-maze"),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an environment variable as an integer, falling back to
// defaultValue when unset. A value that is set but not an integer is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
