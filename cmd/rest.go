package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	coreconfig "github.com/AzielCF/az-rules/core/config"
	"github.com/AzielCF/az-rules/ui/rest"
	"github.com/AzielCF/az-rules/ui/rest/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Serve the rules engine over http",
	Run:   restServer,
}

func init() {
	restCmd.Flags().String("basic-auth", "", "Basic auth for the rules API (format: user:pass,user2:pass2)")
	rootCmd.AddCommand(restCmd)
}

func restServer(cmd *cobra.Command, _ []string) {
	cfg := coreconfig.Global

	// Override basic auth if flag is provided
	if baFlag, _ := cmd.Flags().GetString("basic-auth"); baFlag != "" {
		cfg.App.BasicAuth = strings.Split(baFlag, ",")
	}

	auth, err := middleware.BasicAuth(cfg.App.BasicAuth)
	if err != nil {
		logrus.Fatalf("[REST] %v. The rules API must not be public; set APP_BASIC_AUTH=<user>:<secret>[,<user2>:<secret2>] and restart.", err)
	}

	app := fiber.New(fiber.Config{
		Network:      "tcp",
		AppName:      "Az-Rules Engine",
		ServerHeader: "Hidden",
		BodyLimit:    1 * 1024 * 1024,
	})

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID, " + rest.HeaderIdempotencyKey,
	}))
	app.Use(middleware.Recovery())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        1000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	if cfg.App.Debug {
		app.Use(logger.New())
	}

	base := app.Group(cfg.App.BasePath)
	rest.InitRestMonitoring(base)
	base.Use("/rules", auth)
	rest.InitRestRules(base, rest.Rules{
		Engine:      rulesEngine,
		Configs:     rulesEngine.Configs(),
		Writer:      configWriter,
		Idempotency: claimStore,
		ClaimTTL:    cfg.Rules.IdempotencyTTL,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[REST] Reception of termination signal, shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("[REST] Error during Fiber shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.App.Port); err != nil {
		logrus.Errorf("[REST] Failed to start: %v", err)
	}
	StopApp()
}
