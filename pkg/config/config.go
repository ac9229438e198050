package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env vars
// and optionally a config file; env vars win).
type Config struct {
	App    AppConfig
	DB     DBConfig
	HTTP   HTTPConfig
	JWT    JWTConfig
	Mail   MailConfig
	Tax    TaxConfig
	Waste  WasteConfig
	Report ReportConfig
}

// ExportPath returns the directory generated report files are written to.
func (c *Config) ExportPath() string {
	return filepath.Join(c.App.UploadDir, c.Waste.ExportDir)
}

// AppConfig general application settings.
type AppConfig struct {
	Env       string // development, staging, production
	Name      string
	UploadDir string // root for disposal photos and export files
	PublicURL string // base URL used to build download links for exports
}

// DBConfig PostgreSQL settings. If DatabaseURL is set it is used verbatim.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString returns the DSN: DATABASE_URL if set, else the built one.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN builds the PostgreSQL connection string with URL-encoded credentials.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig listen settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig token settings.
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// MailConfig SMTP transport and report dispatch settings.
type MailConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	ReportTo    string // recipient of scheduled reports and alerts
	MaxAttempts int    // delivery attempts before an email is marked failed
	Enabled     bool
}

// TaxConfig tax estimation settings for disposal write-offs.
type TaxConfig struct {
	Rate float64 // fraction, e.g. 0.19
}

// WasteConfig disposal workflow settings.
type WasteConfig struct {
	AlertThreshold float64 // disposal cost at which an alert email fires
	ExportDir      string  // subdirectory of UploadDir for generated reports
}

// ReportConfig scheduler settings.
type ReportConfig struct {
	DailyHour     int // local hour at which the daily report is sent
	ExpiryDays    int // lookahead window for expiring products
	RetryInterval int // minutes between email retry sweeps
}

// Load reads the configuration from env vars (and optionally .env/config
// files). Expected names: APP_ENV, DB_HOST, SMTP_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // optional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:       getString(v, "APP_ENV", "development"),
			Name:      getString(v, "APP_NAME", "automaten-pro"),
			UploadDir: getString(v, "APP_UPLOAD_DIR", "./uploads"),
			PublicURL: getString(v, "APP_PUBLIC_URL", "http://localhost:8080"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "automaten_pro"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "automaten-pro"),
		},
		Mail: MailConfig{
			Host:        getString(v, "SMTP_HOST", "localhost"),
			Port:        getInt(v, "SMTP_PORT", 587),
			User:        getString(v, "SMTP_USER", ""),
			Password:    getString(v, "SMTP_PASSWORD", ""),
			From:        getString(v, "MAIL_FROM", "noreply@automaten-pro.local"),
			ReportTo:    getString(v, "MAIL_REPORT_TO", ""),
			MaxAttempts: getInt(v, "MAIL_MAX_ATTEMPTS", 3),
			Enabled:     getBool(v, "MAIL_ENABLED", false),
		},
		Tax: TaxConfig{
			Rate: getFloat(v, "TAX_RATE", 0.19),
		},
		Waste: WasteConfig{
			AlertThreshold: getFloat(v, "WASTE_ALERT_THRESHOLD", 50),
			ExportDir:      getString(v, "WASTE_EXPORT_DIR", "exports"),
		},
		Report: ReportConfig{
			DailyHour:     getInt(v, "REPORT_DAILY_HOUR", 6),
			ExpiryDays:    getInt(v, "REPORT_EXPIRY_DAYS", 7),
			RetryInterval: getInt(v, "MAIL_RETRY_INTERVAL_MINUTES", 15),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			f, _ := strconv.ParseFloat(v.GetString(key), 64)
			return f
		default:
			return v.GetFloat64(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
