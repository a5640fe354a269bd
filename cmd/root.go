package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	coreconfig "github.com/AzielCF/az-rules/core/config"
	coreDB "github.com/AzielCF/az-rules/core/database"
	"github.com/AzielCF/az-rules/infrastructure/idempotency"
	"github.com/AzielCF/az-rules/infrastructure/valkey"
	"github.com/AzielCF/az-rules/rulesengine"
	"github.com/AzielCF/az-rules/rulesengine/application"
	"github.com/AzielCF/az-rules/rulesengine/domain"
	"github.com/AzielCF/az-rules/rulesengine/repository"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const cleanupInterval = 5 * time.Minute

var (
	// Rules engine
	rulesEngine  *rulesengine.Engine
	configWriter domain.ConfigWriter
	claimStore   idempotency.Store

	// Infrastructure
	db           *gorm.DB
	valkeyClient *valkey.Client
	stopCleanup  context.CancelFunc = func() {}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "az-rules",
	Short: "Rules engine for inbound WhatsApp messages",
	Long: `Decides, before any AI is involved, whether an inbound message is answered
by a keyword trigger or FAQ template, handed to a human, routed to the manager bot,
or passed through to the AI layer.`,
}

func init() {
	if _, err := coreconfig.LoadConfig("."); err != nil {
		logrus.Fatalf("[CONFIG] Failed to load configuration: %v", err)
	}

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initApp)
}

func initFlags() {
	cfg := coreconfig.Global

	rootCmd.PersistentFlags().StringVarP(
		&cfg.App.Port,
		"port", "p",
		cfg.App.Port,
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&cfg.App.Debug,
		"debug", "d",
		cfg.App.Debug,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().StringVarP(
		&cfg.Database.Driver,
		"db-driver", "",
		cfg.Database.Driver,
		`database driver --db-driver <sqlite|postgres> | example: --db-driver="postgres"`,
	)
	rootCmd.PersistentFlags().StringVarP(
		&cfg.Database.Name,
		"db-name", "",
		cfg.Database.Name,
		`database file (sqlite) or name (postgres) | example: --db-name="storages/rules.db"`,
	)
	rootCmd.PersistentFlags().BoolVarP(
		&cfg.Rules.StaticConfig,
		"static-config", "",
		cfg.Rules.StaticConfig,
		"serve the built-in rule set to every workspace | example: --static-config=true",
	)
}

func initApp() {
	cfg := coreconfig.Global

	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.Debugf("[CONFIG] %v", coreconfig.GetAllSettings())

	cleanupCtx, cancel := context.WithCancel(context.Background())
	stopCleanup = cancel

	// 1. Valkey (optional)
	if cfg.Valkey.Enabled {
		client, err := valkey.NewClient(valkey.Config{
			Address:   cfg.Valkey.Address,
			Password:  cfg.Valkey.Password,
			DB:        cfg.Valkey.DB,
			KeyPrefix: cfg.Valkey.KeyPrefix,
		})
		if err != nil {
			logrus.Warnf("[VALKEY] %v, falling back to in-memory cache and idempotency", err)
		} else {
			valkeyClient = client
			logrus.Infof("[VALKEY] Connected to %s", cfg.Valkey.Address)
		}
	}

	// 2. Config cache and idempotency store
	var cache domain.ConfigCache
	if valkeyClient != nil {
		cache = repository.NewValkeyConfigCache(valkeyClient)
		claimStore = idempotency.NewValkeyStore(valkeyClient)
	} else {
		memCache := repository.NewMemoryConfigCache()
		memCache.StartCleanup(cleanupCtx, cleanupInterval)
		cache = memCache

		memClaims := idempotency.NewMemoryStore()
		memClaims.StartCleanup(cleanupCtx, cleanupInterval)
		claimStore = memClaims
	}

	// 3. Stores
	stores, err := openStores(cfg)
	if err != nil {
		logrus.Fatalf("[DB] %v", err)
	}
	configWriter = stores.writer

	// 4. Engine
	configs := application.NewConfigProvider(stores.configs, cache, cfg.Rules.ConfigCacheTTL, cfg.Rules.LookupTimeout)
	leads := application.NewLeadClassifier(stores.conversations, cfg.Rules.LookupTimeout)
	rulesEngine = rulesengine.NewEngine(configs, leads)
}

type ruleStores struct {
	configs       domain.ConfigStore
	writer        domain.ConfigWriter // nil in static mode
	conversations domain.ConversationStore
}

// openStores always opens the database: lead detection reads conversations
// even when configs come from the built-in rule set.
func openStores(cfg *coreconfig.Config) (ruleStores, error) {
	var err error
	db, err = coreDB.NewDatabase(cfg)
	if err != nil {
		return ruleStores{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conversationRepo := repository.NewConversationGormRepository(db)
	if err := conversationRepo.InitSchema(ctx); err != nil {
		return ruleStores{}, fmt.Errorf("failed to migrate conversations: %w", err)
	}
	stores := ruleStores{conversations: conversationRepo}

	if cfg.Rules.StaticConfig {
		logrus.Info("[RULES] Serving the built-in rule set to every workspace")
		stores.configs = repository.NewStaticConfigStore()
	} else {
		configRepo := repository.NewConfigGormRepository(db)
		if err := configRepo.InitSchema(ctx); err != nil {
			return ruleStores{}, fmt.Errorf("failed to migrate workflow configs: %w", err)
		}
		stores.configs = configRepo
		stores.writer = configRepo
	}

	logrus.Infof("[DB] Using %s database %s", cfg.Database.Driver, cfg.Database.Name)
	return stores, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp closes database and cache connections.
func StopApp() {
	logrus.Info("[APP] Stopping application...")

	stopCleanup()

	if valkeyClient != nil {
		valkeyClient.Close()
	}

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	logrus.Info("[APP] Application stopped cleanly.")
}
