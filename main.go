package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/storefront/storefront-backend/cmd"
)

// Set at build time with -ldflags "-X main.apiVersion=..."
var apiVersion = "dev"

func main() {
	shouldRunServer := flag.Bool("server", false, "Run the API server")
	shouldRunWorker := flag.Bool("worker", false, "Run the knowledge base indexing worker")
	shouldRunMigrations := flag.Bool("migrations", false, "Run the database migrations")
	shouldSeedAdmin := flag.Bool("seed-admin", false, "Create the admin user from SEED_ADMIN_* if missing")
	shouldSeedSampleProducts := flag.Bool("seed-sample-products", false, "Load the sample catalog")
	clear := flag.Bool("clear", false, "With -seed-sample-products, delete every product first")
	shouldSeedWithAI := flag.Bool("seed-with-ai", false, "Generate products with the generative model")
	count := flag.Int("count", 5, "With -seed-with-ai, number of products per root category")
	shouldRebuildKnowledgeBase := flag.Bool("rebuild-knowledge-base", false, "Re-index every product in the vector store")
	shouldCheckKnowledgeBase := flag.Bool("check-knowledge-base", false, "Diagnose the vector store")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	config := cmd.CompiledConfig{Version: apiVersion}

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(); err != nil {
			log.Fatal(err)
		}
	}

	if *shouldSeedAdmin || *shouldSeedSampleProducts || *shouldSeedWithAI {
		if err := cmd.RunSeed(config, cmd.SeedOptions{
			Admin:          *shouldSeedAdmin,
			SampleProducts: *shouldSeedSampleProducts,
			Clear:          *clear,
			WithAI:         *shouldSeedWithAI,
			Count:          *count,
		}); err != nil {
			log.Fatal(err)
		}
	}

	if *shouldRebuildKnowledgeBase {
		if err := cmd.RunRebuildKnowledgeBase(config); err != nil {
			log.Fatal(err)
		}
	}

	if *shouldCheckKnowledgeBase {
		if err := cmd.RunCheckKnowledgeBase(config); err != nil {
			log.Fatal(err)
		}
	}

	if *shouldRunServer {
		if err := cmd.RunServer(config); err != nil {
			log.Fatal(err)
		}
	}

	if *shouldRunWorker {
		if err := cmd.RunWorker(config); err != nil {
			log.Fatal(err)
		}
	}
}
