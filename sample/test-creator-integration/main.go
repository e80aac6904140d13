package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// Smoke test against a real Creator app: lists the newest leads and the
// lookup lists with the credentials from .env.
func main() {
	cfg := config.Load()
	if !cfg.CreatorConfigured() {
		log.Fatal("❌ CREATOR_* settings must be present in .env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	tokens := creator.NewTokenSource(ctx, cfg.CreatorAccountsURL, cfg.CreatorClientID, cfg.CreatorClientSecret, cfg.CreatorRefreshToken)
	client := creator.NewClient(creator.Config{
		BaseURL:   cfg.CreatorBaseURL,
		Owner:     cfg.CreatorOwner,
		App:       cfg.CreatorApp,
		PublicKey: cfg.CreatorPublicKey,
		Timeout:   cfg.CreatorTimeout,
	}, tokens, nil)

	fmt.Println("🔄 Fetching the newest leads...")
	leads, err := usecase.NewListLeadsUseCase(client, cfg.Location()).Execute(ctx, usecase.ListLeadsInput{Limit: 5})
	if err != nil {
		log.Fatalf("failed to list leads: %v", err)
	}
	for _, l := range leads {
		fmt.Printf("   %s  %-30s %-20s %s\n", l.ID, l.FullName(), l.Company, l.Status)
	}

	lookups := usecase.NewLookupsUseCase(client, nil, nil)
	for _, kind := range usecase.LookupKinds() {
		items, err := lookups.Execute(ctx, kind)
		if err != nil {
			fmt.Printf("⚠️  %s: %v\n", kind, err)
			continue
		}
		fmt.Printf("📋 %s: %d options\n", kind, len(items))
	}
}
