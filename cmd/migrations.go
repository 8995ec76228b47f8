package cmd

import (
	"context"

	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/utils"
)

func RunMigrations() error {
	pgConfig := pgConfigFromEnv()
	kbConfig := knowledgeBaseConfigFromEnv()

	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	migrater := repositories.NewMigrater(pgConfig, kbConfig.Enabled, logger)
	if err := migrater.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "error running migrations", "error", err.Error())
		return err
	}

	logger.InfoContext(ctx, "migrations done", "knowledge_base", kbConfig.Enabled)
	return nil
}
