package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.SugaredLogger

// Init builds the global sugared logger. APP_ENV=development switches to the
// human-readable console encoder.
func Init() {
	config := zap.NewProductionConfig()
	if os.Getenv("APP_ENV") == "development" {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := config.Build()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	Log = l.Sugar()
}

func init() {
	// Tests and tools get a usable logger without calling Init.
	l, _ := zap.NewProduction()
	Log = l.Sugar()
}
