package main

import (
	"context"
	"log"
	"os"
	"time"

	"learnloop-backend/config"
	httpDelivery "learnloop-backend/internal/delivery/http"
	"learnloop-backend/internal/repository"
	"learnloop-backend/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to databases
	db := config.ConnectDB()
	postgres := db.PG
	mongo := db.Mongo

	// Auto migrate
	if err := config.AutoMigrate(postgres); err != nil {
		log.Fatal("Migration failed:", err)
	}

	// Unique (student, course) progress index
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := config.EnsureIndexes(ctx, mongo); err != nil {
		log.Fatal("Index creation failed:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(postgres)
	courseRepo := repository.NewCourseRepository(postgres)
	lectureRepo := repository.NewLectureRepository(mongo)
	progressRepo := repository.NewProgressRepository(mongo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(userRepo, courseRepo)
	courseUsecase := usecase.NewCourseUsecase(courseRepo, lectureRepo)
	lectureUsecase := usecase.NewLectureUsecase(courseRepo, lectureRepo, progressRepo)
	progressUsecase := usecase.NewProgressUsecase(courseRepo, lectureRepo, progressRepo)

	// Initialize handlers and router
	handler := httpDelivery.NewHandler(authUsecase, courseUsecase, lectureUsecase, progressUsecase)
	router := httpDelivery.InitRouter(handler)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server running on port %s", port)
	log.Printf("API: http://localhost:%s/api", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
