package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"thumbdrive/internal/config"
	"thumbdrive/internal/handler"
	"thumbdrive/internal/repository"
	"thumbdrive/internal/service"
	"thumbdrive/internal/service/s3"
)

func main() {
	// Загружаем конфигурации
	appConfig, err := config.NewConfig(".app.env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация S3 клиента
	s3Config, err := s3.NewConfig(".s3.env")
	if err != nil {
		log.Fatalf("Failed to load S3 config: %v", err)
	}

	s3Client, err := s3.NewClient(s3Config)
	if err != nil {
		log.Fatalf("Failed to create S3 client: %v", err)
	}

	// Инициализация хранилища записей
	dynamoClient := repository.NewDynamoClient(
		appConfig.Store.Region,
		s3Config.AccessKeyID,
		s3Config.SecretAccessKey,
	)
	recordRepo := repository.NewThumbnailRepository(dynamoClient, appConfig.Store.Table)

	// Инициализация сервисов
	thumbnailService := service.NewThumbnailService(
		s3Client,
		recordRepo,
		appConfig.Thumbnail.Size,
		appConfig.Thumbnail.PublicRead,
	)

	// Инициализация хендлеров
	thumbnailHandler := handler.NewThumbnailHandler(recordRepo)
	eventHandler := handler.NewEventHandler(thumbnailService)

	// Настройка HTTP роутера
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	// HTTP маршруты
	r.Route("/v1", func(r chi.Router) {
		r.Post("/events/s3", eventHandler.HandleS3Event)

		// CORS только на Metadata API: у ответа конвейера нет браузерного клиента
		r.Route("/thumbnails", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET", "DELETE", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))

			r.Get("/", thumbnailHandler.ListThumbnails)
			r.Get("/{id}", thumbnailHandler.GetThumbnail)
			r.Delete("/{id}", thumbnailHandler.DeleteThumbnail)
		})
	})

	// Создаем HTTP сервер
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", appConfig.Server.Port),
		Handler: r,
	}

	// Канал для сигналов завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Запускаем HTTP сервер
	go func() {
		log.Printf("Starting HTTP server on port %s", appConfig.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
