package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/RoyceColton/Maintenance-Inventory-System/internal/audit"
	"github.com/RoyceColton/Maintenance-Inventory-System/internal/parts"
	"github.com/RoyceColton/Maintenance-Inventory-System/internal/users"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/config"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/logger"
)

// Operator tooling for direct inventory maintenance. Runs against the
// database without the HTTP surface, so actions are attributed to the
// account named by -actor.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "cli"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "list", "command: list|add|adjust|delete|audit")
	actor := flag.String("actor", "", "email of the acting account")
	search := flag.String("search", "", "substring filter for list")
	room := flag.String("room", "", "room filter for list / room for add")

	name := flag.String("name", "", "part name (for add)")
	model := flag.String("model", "", "model number (for add)")
	count := flag.Int("count", 0, "starting count (for add)")
	cost := flag.String("cost", "0", "unit cost (for add)")
	appliance := flag.String("appliance", "", "appliance type (for add)")

	partID := flag.String("part", "", "part id (for adjust/delete)")
	delta := flag.Int("delta", 1, "count delta, +1 or -1 (for adjust)")
	limit := flag.Int("limit", 20, "entries to show (for audit)")

	flag.Parse()

	cfg, err := config.Load()
	exitOn(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "cli",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	exitOn(ctx, logg, "database", err)
	defer dbClient.Close()

	conn := dbClient.DB()
	partsRepo := parts.NewRepository(conn)
	auditRepo := audit.NewRepository(conn)
	usersRepo := users.NewRepository(conn)

	partsService, err := parts.NewService(partsRepo, dbClient, auditRepo)
	exitOn(ctx, logg, "parts service", err)

	switch *cmd {
	case "list":
		listing, err := partsService.ListParts(ctx, parts.ListFilter{
			Search: strings.TrimSpace(*search),
			Room:   strings.TrimSpace(*room),
		})
		exitOn(ctx, logg, "list parts", err)
		printJSON(listing)

	case "add":
		actorID := resolveActor(ctx, logg, usersRepo, *actor)
		unitCost, err := decimal.NewFromString(strings.TrimSpace(*cost))
		exitOn(ctx, logg, "parse cost", err)

		part, err := partsService.CreatePart(ctx, actorID, parts.CreatePartInput{
			Name:          strings.TrimSpace(*name),
			ModelNumber:   strings.TrimSpace(*model),
			Count:         *count,
			Cost:          unitCost,
			Room:          strings.TrimSpace(*room),
			ApplianceType: strings.TrimSpace(*appliance),
		})
		exitOn(ctx, logg, "add part", err)
		printJSON(part)

	case "adjust":
		actorID := resolveActor(ctx, logg, usersRepo, *actor)
		id, err := uuid.Parse(strings.TrimSpace(*partID))
		exitOn(ctx, logg, "parse part id", err)

		part, err := partsService.AdjustCount(ctx, actorID, id, *delta)
		exitOn(ctx, logg, "adjust count", err)
		printJSON(part)

	case "delete":
		actorID := resolveActor(ctx, logg, usersRepo, *actor)
		id, err := uuid.Parse(strings.TrimSpace(*partID))
		exitOn(ctx, logg, "parse part id", err)

		err = partsService.DeletePart(ctx, actorID, id)
		exitOn(ctx, logg, "delete part", err)
		fmt.Println("deleted", id)

	case "audit":
		entries, err := auditRepo.List(ctx, audit.ListFilter{Limit: *limit})
		exitOn(ctx, logg, "list audit entries", err)
		printJSON(audit.FromModels(entries))

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

func resolveActor(ctx context.Context, logg *logger.Logger, repo *users.Repository, email string) uuid.UUID {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		fmt.Fprintln(os.Stderr, "missing -actor email")
		os.Exit(1)
	}
	user, err := repo.FindByEmail(ctx, email)
	exitOn(ctx, logg, "resolve actor", err)
	return user.ID
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func exitOn(ctx context.Context, logg *logger.Logger, step string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "cli "+step+" failed", err)
	os.Exit(1)
}
