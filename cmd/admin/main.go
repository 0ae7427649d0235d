package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cotillion/backend/internal/config"
	"cotillion/backend/internal/models"
	"cotillion/backend/internal/storage"
)

// Admin CLI: out-of-band inspection and resolution of asks and
// pairings, in case the event is run with manual matchmaking.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: members | asks | resolve <ask_id> accept|decline|cancel | unpair <user_id>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "members":
		listMembers(storageSvc)
	case "asks":
		listPendingAsks(storageSvc)
	case "resolve":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin resolve <ask_id> accept|decline|cancel")
			os.Exit(1)
		}
		if err := resolveAsk(storageSvc, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Error resolving ask: %v", err)
		}
		fmt.Printf("Ask %s resolved: %s.\n", os.Args[2], os.Args[3])
	case "unpair":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin unpair <user_id>")
			os.Exit(1)
		}
		if err := storageSvc.Unpair(os.Args[2]); err != nil {
			log.Fatalf("Error unpairing user: %v", err)
		}
		fmt.Printf("User %s has been unpaired.\n", os.Args[2])
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func listMembers(s storage.Storage) {
	members, err := s.ListMembers()
	if err != nil {
		log.Fatalf("Error listing members: %v", err)
	}
	for _, m := range members {
		partner := "-"
		if m.PartnerName != nil {
			partner = *m.PartnerName
		}
		fmt.Printf("%s\t%-6s\t%-40s\tpartner: %s\n", m.ID, m.Gender, m.Name, partner)
	}
}

func listPendingAsks(s storage.Storage) {
	asks, err := s.ListAsksByStatus(models.AskPending)
	if err != nil {
		log.Fatalf("Error listing asks: %v", err)
	}
	for _, a := range asks {
		fmt.Printf("%s\t%s -> %s\t%q\n", a.ID, a.FromUserID, a.ToUserID, a.Message)
	}
}

// resolveAsk performs the transition on behalf of the authorized
// endpoint: accept/decline act as the recipient, cancel as the sender.
func resolveAsk(s storage.Storage, askID, action string) error {
	ask, err := s.GetAskByID(askID)
	if err != nil {
		return err
	}
	switch action {
	case "accept":
		return s.AcceptAsk(askID, ask.ToUserID)
	case "decline":
		return s.DeclineAsk(askID, ask.ToUserID)
	case "cancel":
		return s.CancelAsk(askID, ask.FromUserID)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}
