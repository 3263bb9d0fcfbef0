package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/cache"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/external/search"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/knowledgebase"
	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// provision manages the knowledge base lifecycle out of band of the API
// server: the search collection, its policies, the kNN index, and the
// parameter records the serving path reads.
//
// Usage:
//
//	provision -action create -principals arn:role/api,arn:role/ingest
//	provision -action update
//	provision -action delete
func main() {
	action := flag.String("action", "", "create, update or delete the knowledge base")
	principals := flag.String("principals", "", "comma-separated principal identifiers granted data access on create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	control := search.NewServerlessClient(&cfg.Search)
	index := search.NewIndexClient(&cfg.Search)
	provisioner := knowledgebase.NewProvisioner(control, index, redisClient, &cfg.KnowledgeBase, logger)

	ctx := context.Background()

	switch *action {
	case "create":
		var principalARNs []string
		for _, p := range strings.Split(*principals, ",") {
			if p = strings.TrimSpace(p); p != "" {
				principalARNs = append(principalARNs, p)
			}
		}
		if err := provisioner.Create(ctx, principalARNs); err != nil {
			log.Fatalf("Failed to create knowledge base: %v", err)
		}
		fmt.Printf("Knowledge base %s created\n", provisioner.Name())

	case "update":
		if err := provisioner.Update(ctx); err != nil {
			log.Fatalf("Failed to update knowledge base: %v", err)
		}
		fmt.Printf("Knowledge base %s updated\n", provisioner.Name())

	case "delete":
		if err := provisioner.Delete(ctx); err != nil {
			log.Fatalf("Failed to delete knowledge base: %v", err)
		}
		fmt.Printf("Knowledge base %s deleted\n", provisioner.Name())

	default:
		flag.Usage()
		os.Exit(2)
	}
}
