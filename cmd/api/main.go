package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/punchdeck/attendance-backend-go/internal/config"
	"github.com/punchdeck/attendance-backend-go/internal/domain/punch"
	domainSummary "github.com/punchdeck/attendance-backend-go/internal/domain/summary"
	appHTTP "github.com/punchdeck/attendance-backend-go/internal/handler/http"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/database"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/terminal"
	"github.com/punchdeck/attendance-backend-go/internal/repository/jsonfile"
	"github.com/punchdeck/attendance-backend-go/internal/repository/postgresql"
	"github.com/punchdeck/attendance-backend-go/internal/service/normalizer"
	summaryService "github.com/punchdeck/attendance-backend-go/internal/service/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	checkIn, err := domainSummary.ParseClock(cfg.Attendance.CheckInThreshold)
	if err != nil {
		log.Fatal("Invalid CHECKIN_THRESHOLD: ", err)
	}
	checkOut, err := domainSummary.ParseClock(cfg.Attendance.CheckOutThreshold)
	if err != nil {
		log.Fatal("Invalid CHECKOUT_THRESHOLD: ", err)
	}

	ctx := context.Background()

	// The directory is loaded once and injected; nothing mutates it later.
	loader := jsonfile.NewDirectoryLoader(cfg.Directory.Path)
	if cfg.Directory.Source == "postgres" {
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			fmt.Println("Error connecting to database:", err)
			return
		}
		defer db.Close()
		loader = postgresql.NewDirectoryLoader(db)
	}

	dir, err := loader.Load(ctx)
	if err != nil {
		log.Fatal("Failed to load employee directory: ", err)
	}

	var source punch.Source
	if cfg.Terminal.BaseURL != "" {
		source = terminal.NewClient(cfg.Terminal.BaseURL, cfg.Terminal.Timeout)
	}

	punchNormalizer := normalizer.NewNormalizer()
	svc := summaryService.NewSummaryService(punchNormalizer, source, dir)

	attendanceHandler := appHTTP.NewAttendanceHandler(svc, checkIn, checkOut, cfg.Attendance.IgnoreWeekends)
	directoryHandler := appHTTP.NewDirectoryHandler(dir)

	router := appHTTP.NewRouter(cfg.App.Env, attendanceHandler, directoryHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
