package config

import "os"

// Config carries everything the client needs from the environment. The
// backend location and the local state path come from .env in development
// and from real environment variables in deployment.
type Config struct {
	APIBaseURL  string
	WSURL       string
	ListenAddr  string
	StateDBPath string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() Config {
	return Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8000"),
		WSURL:       getEnv("WS_URL", "ws://localhost:8000/ws"),
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		StateDBPath: getEnv("STATE_DB_PATH", "tableservice.db"),
	}
}
