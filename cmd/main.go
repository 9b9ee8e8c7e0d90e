package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/himanshu0072451/homelink/adapters/audio"
	"github.com/himanshu0072451/homelink/adapters/notify"
	"github.com/himanshu0072451/homelink/adapters/stt"
	"github.com/himanshu0072451/homelink/domain/repositories"
	"github.com/himanshu0072451/homelink/internal/api"
	"github.com/himanshu0072451/homelink/internal/connection"
	"github.com/himanshu0072451/homelink/usecase"
)

func main() {
	godotenv.Load()

	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	endpoint := os.Getenv("HOMELINK_ENDPOINT")
	if endpoint == "" {
		endpoint = "ws://localhost:8765"
	}

	sampleRate := 16000
	if v, err := strconv.Atoi(os.Getenv("HOMELINK_SAMPLE_RATE")); err == nil && v > 0 {
		sampleRate = v
	}
	language := os.Getenv("HOMELINK_LANGUAGE")
	if language == "" {
		language = "en-US"
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Notification stack: everything user-visible flows through the dedup
	// gate into the console log and the toast feed.
	feed := notify.NewFeed(50)
	gate := usecase.NewDedupGate(notify.Fanout{
		notify.NewConsoleNotifier(logger),
		feed,
	})

	// Connection lifecycle and state sync
	manager := connection.NewManager(endpoint, gate, logger)
	reducer := usecase.NewStateReducer(gate, logger)
	manager.OnEnvelope(reducer.Apply)

	dispatcher := usecase.NewCommandDispatcher(manager, gate, logger)

	// Voice pipeline: microphone capture into speech recognition. A failed
	// microphone start disables voice for the whole process.
	recognizer := buildRecognizer(sampleRate, logger)
	voice := usecase.NewVoiceService(recognizer, dispatcher, gate, repositories.AudioConfig{
		SampleRate: sampleRate,
		Encoding:   "LINEAR16",
		Language:   language,
	}, logger)

	api.InitRoutes(e, api.NewController(manager, reducer, dispatcher, voice, feed, logger))

	manager.Start()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Control surface started",
		zap.String("port", port),
		zap.String("endpoint", endpoint))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	manager.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Control surface exited")
}

// buildRecognizer picks the speech backend. HOMELINK_MOCK_SPEECH=true runs
// without credentials; otherwise Google Cloud Speech over the microphone.
func buildRecognizer(sampleRate int, logger *zap.Logger) repositories.SpeechRecognizer {
	if os.Getenv("HOMELINK_MOCK_SPEECH") == "true" {
		return stt.NewMockRecognizer(logger)
	}

	source := audio.NewMicrophoneSource(sampleRate, logger)
	if err := source.Start(context.Background()); err != nil {
		logger.Warn("Voice control disabled", zap.Error(err))
		return stt.NewGoogleRecognizer(nil, logger)
	}
	return stt.NewGoogleRecognizer(source, logger)
}
