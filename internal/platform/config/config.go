package config

import (
	"os"
	"strconv"
	"time"
)

// ShiftClass selects which schedule window table applies to an employee.
type ShiftClass string

const (
	ShiftGeneral ShiftClass = "general"
	ShiftCocina  ShiftClass = "cocina"
)

// Window is an opening/closing pair in local time-of-day.
type Window struct {
	Opening ClockTime
	Closing ClockTime
}

// ClockTime is a time-of-day independent of calendar date.
type ClockTime struct {
	Hour   int
	Minute int
}

// Minutes returns the time-of-day as minutes since midnight.
func (t ClockTime) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t ClockTime) String() string {
	return pad(t.Hour) + ":" + pad(t.Minute)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// Schedule holds weekday/weekend windows per shift class. Built once at
// startup and passed by reference; nothing mutates it afterwards.
type Schedule struct {
	Windows      map[ShiftClass]DayWindows
	ExitGrace    time.Duration
	DefaultClass ShiftClass
}

// DayWindows splits the week into the only two cases the site uses.
type DayWindows struct {
	Weekday Window
	Weekend Window
}

// Config is the full runtime configuration, resolved from the environment
// once in main so the rest of the code never touches os.Getenv.
type Config struct {
	Addr        string
	SecretKey   string
	QRLifetime  time.Duration
	GPSRadiusM  float64
	SiteLat     float64
	SiteLon     float64
	Schedule    Schedule
	DatabaseURL string
	RedisAddr   string
	// QRSingleUse turns on verify-and-consume for clock requests. Off by
	// default: the deployed system allows token reuse until expiry.
	QRSingleUse bool
	// KafkaBrokers enables the failed-attempt alert publisher when set.
	KafkaBrokers string
}

// FromEnv builds the configuration from environment variables so main
// stays lean. Defaults mirror the production deployment.
func FromEnv() Config {
	return Config{
		Addr:       envStr("ASISTENCIA_ADDR", ":8080"),
		SecretKey:  envStr("SECRET_KEY", "prueba123"),
		QRLifetime: time.Duration(envInt("QR_EXPIRATION_MINUTES", 5)) * time.Minute,
		GPSRadiusM: envFloat("GPS_RADIUS_METERS", 50),
		SiteLat:    envFloat("RESTAURANT_LAT", 5.618553712703385),
		SiteLon:    envFloat("RESTAURANT_LON", -73.81627418830061),
		Schedule: Schedule{
			Windows: map[ShiftClass]DayWindows{
				ShiftGeneral: {
					Weekday: Window{Opening: ClockTime{11, 30}, Closing: ClockTime{21, 0}},
					Weekend: Window{Opening: ClockTime{11, 30}, Closing: ClockTime{21, 30}},
				},
				ShiftCocina: {
					Weekday: Window{Opening: ClockTime{11, 0}, Closing: ClockTime{21, 0}},
					Weekend: Window{Opening: ClockTime{11, 0}, Closing: ClockTime{21, 30}},
				},
			},
			ExitGrace:    time.Duration(envInt("TOLERANCIA_SALIDA_MINUTOS", 40)) * time.Minute,
			DefaultClass: ShiftGeneral,
		},
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		QRSingleUse:  os.Getenv("QR_SINGLE_USE") == "true",
		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
