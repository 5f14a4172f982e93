package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gestione-turni/backend/internal/config"
	"github.com/gestione-turni/backend/internal/repository"
	"github.com/gestione-turni/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var mondayFlag string

	flag.IntVar(&op, "op", 0, "operation to run (1: seed shifts, 2: seed people, 3: fill a week, 4: seed absences, 5: full demo dataset)")
	flag.IntVar(&n, "n", 3, "number of records to insert")
	flag.StringVar(&mondayFlag, "monday", "", "week to seed, YYYY-MM-DD (defaults to the current week's Monday)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only creates the pool object, it does not dial, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	monday := currentMonday()
	if mondayFlag != "" {
		parsed, err := time.Parse("2006-01-02", mondayFlag)
		if err != nil || parsed.Weekday() != time.Monday {
			slog.Error("invalid -monday, expected a Monday in YYYY-MM-DD form")
			return
		}
		monday = parsed
	}

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		seed.SeedShifts(repo)
	case 2:
		seed.SeedPeople(repo, monday)
	case 3:
		seed.SeedWeek(repo, monday)
	case 4:
		if n <= 0 {
			slog.Error("please give a positive number of absences")
			return
		}
		seed.SeedAbsences(repo, monday, n)
	case 5:
		seed.SeedDemoData(repo, monday)
	default:
		slog.Error("unknown operation")
	}
}

func currentMonday() time.Time {
	now := time.Now()
	offset := int(now.Weekday() - time.Monday)
	if now.Weekday() == time.Sunday {
		offset = 6
	}
	monday := now.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}
