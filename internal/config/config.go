package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenAddr      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ProjectsFile string        // YAML project list (empty = built-in list)
	PageFile     string        // on-disk dashboard page (empty = embedded page)
	Systemctl    string        // service manager binary
	DiskPath     string        // filesystem reported in the "disk" figures
	CPUInterval  time.Duration // CPU sampling window
	JournalSize  int           // number of control actions kept

	// Redis (optional, journal only)
	RedisAddr           string        // ex: "localhost:6379" (empty = in-memory journal)
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict health/readiness to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	ControlBurst        int // rate limit burst for service actions, per client IP
	ControlRefillPerMin int // rate limit refill per minute, per client IP
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenAddr:      getenv("DASH_LISTEN_ADDR", ":8080"),
		ShutdownTimeout: mustDuration("DASH_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("DASH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("DASH_PRETTY_LOG", true),

		// Dashboard
		ProjectsFile: getenv("DASH_PROJECTS_FILE", ""),
		PageFile:     getenv("DASH_PAGE_FILE", ""),
		Systemctl:    getenv("DASH_SYSTEMCTL", "systemctl"),
		DiskPath:     getenv("DASH_DISK_PATH", "/"),
		CPUInterval:  mustDuration("DASH_CPU_INTERVAL", 500*time.Millisecond),
		JournalSize:  getenvInt("DASH_JOURNAL_SIZE", 100),

		// Redis settings
		RedisAddr:           getenv("DASH_REDIS_ADDR", ""),
		RedisUser:           getenv("DASH_REDIS_USERNAME", ""),
		RedisPassword:       getenv("DASH_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("DASH_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("DASH_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("DASH_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("DASH_TRUST_PROXY", false),

		ControlBurst:        getenvInt("DASH_CONTROL_BURST", 10),
		ControlRefillPerMin: getenvInt("DASH_CONTROL_REFILL_PER_MIN", 30),
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// RedisEnabled reports whether the action journal is backed by Redis.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) validate() error {
	if c.JournalSize < 1 {
		return fmt.Errorf("DASH_JOURNAL_SIZE must be >= 1, got %d", c.JournalSize)
	}
	if c.CPUInterval <= 0 {
		return fmt.Errorf("DASH_CPU_INTERVAL must be > 0, got %v", c.CPUInterval)
	}
	if strings.TrimSpace(c.Systemctl) == "" {
		return fmt.Errorf("DASH_SYSTEMCTL must not be empty")
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
