package rest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AzielCF/az-rules/infrastructure/idempotency"
	pkgError "github.com/AzielCF/az-rules/pkg/error"
	"github.com/AzielCF/az-rules/pkg/metrics"
	"github.com/AzielCF/az-rules/pkg/utils"
	"github.com/AzielCF/az-rules/rulesengine/domain"
	"github.com/AzielCF/az-rules/validations"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const HeaderIdempotencyKey = "X-Idempotency-Key"

type RulesProcessor interface {
	Process(ctx context.Context, input domain.ProcessInput) domain.RulesResult
}

type ConfigSource interface {
	Get(ctx context.Context, workspaceID string) domain.WorkflowConfig
	Invalidate(ctx context.Context, workspaceID string)
}

type Rules struct {
	Engine      RulesProcessor
	Configs     ConfigSource
	Writer      domain.ConfigWriter // nil when configs are read-only
	Idempotency idempotency.Store   // nil disables deduplication
	ClaimTTL    time.Duration
}

func InitRestRules(app fiber.Router, handler Rules) Rules {
	if handler.ClaimTTL <= 0 {
		handler.ClaimTTL = idempotency.DefaultTTL
	}

	group := app.Group("/rules/:workspace_id")
	group.Post("/process", handler.Process)
	group.Get("/config", handler.GetConfig)
	group.Put("/config", handler.PutConfig)

	return handler
}

type processRequest struct {
	ContactID    string `json:"contact_id"`
	ContactPhone string `json:"contact_phone"`
	Message      string `json:"message"`
}

func (h *Rules) Process(c *fiber.Ctx) error {
	var req processRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ResponseData{
			Status:  fiber.StatusBadRequest,
			Code:    "BAD_REQUEST",
			Message: err.Error(),
		})
	}

	input := domain.ProcessInput{
		WorkspaceID:  c.Params("workspace_id"),
		ContactID:    strings.TrimSpace(req.ContactID),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		Message:      req.Message,
	}
	utils.PanicIfNeeded(validations.ValidateProcessInput(c.UserContext(), input))

	claimKey := ""
	if key := strings.TrimSpace(c.Get(HeaderIdempotencyKey)); key != "" && h.Idempotency != nil {
		claimKey = fmt.Sprintf("%s:%s", input.WorkspaceID, key)
		claimed, err := h.Idempotency.Claim(c.UserContext(), claimKey, h.ClaimTTL)
		switch {
		case err != nil:
			// Store down: process anyway, a duplicate reply is better than a lost message.
			logrus.Warnf("[REST] Idempotency claim failed for %s: %v", claimKey, err)
			claimKey = ""
		case !claimed:
			metrics.DuplicateDeliveries.Inc()
			dup := pkgError.DuplicateEventError(fmt.Sprintf("event %s already processed", key))
			return c.Status(dup.StatusCode()).JSON(utils.ResponseData{
				Status:  dup.StatusCode(),
				Code:    dup.ErrCode(),
				Message: dup.Error(),
			})
		}
	}

	result := h.Engine.Process(c.UserContext(), input)

	err := c.JSON(utils.ResponseData{
		Status:  fiber.StatusOK,
		Code:    "SUCCESS",
		Message: "Message evaluated",
		Results: result,
	})
	if err != nil && claimKey != "" {
		// Let the provider's retry through.
		if rerr := h.Idempotency.Release(context.Background(), claimKey); rerr != nil {
			logrus.Warnf("[REST] Failed to release idempotency key %s: %v", claimKey, rerr)
		}
	}
	return err
}

func (h *Rules) GetConfig(c *fiber.Ctx) error {
	cfg := h.Configs.Get(c.UserContext(), c.Params("workspace_id"))
	return c.JSON(utils.ResponseData{
		Status:  fiber.StatusOK,
		Code:    "SUCCESS",
		Message: "Workflow config retrieved",
		Results: cfg,
	})
}

func (h *Rules) PutConfig(c *fiber.Ctx) error {
	if h.Writer == nil {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(utils.ResponseData{
			Status:  fiber.StatusMethodNotAllowed,
			Code:    "READ_ONLY",
			Message: "workflow configs are served from the built-in rule set",
		})
	}

	var cfg domain.WorkflowConfig
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ResponseData{
			Status:  fiber.StatusBadRequest,
			Code:    "BAD_REQUEST",
			Message: err.Error(),
		})
	}

	cfg.WorkspaceID = c.Params("workspace_id")
	assignMissingIDs(&cfg)
	if cfg.LeadRouting.DetectionWindowHours == 0 {
		cfg.LeadRouting.DetectionWindowHours = domain.DefaultDetectionWindowHours
	}
	utils.PanicIfNeeded(validations.ValidateWorkflowConfig(c.UserContext(), cfg))

	if err := h.Writer.Save(c.UserContext(), cfg); err != nil {
		utils.PanicIfNeeded(pkgError.InternalServerError(err.Error()))
	}
	h.Configs.Invalidate(c.UserContext(), cfg.WorkspaceID)

	logrus.Infof("[REST] Workflow config saved for workspace %s (%d triggers, %d faqs)",
		cfg.WorkspaceID, len(cfg.KeywordTriggers), len(cfg.FAQTemplates))

	return c.JSON(utils.ResponseData{
		Status:  fiber.StatusOK,
		Code:    "SUCCESS",
		Message: "Workflow config saved",
		Results: cfg,
	})
}

func assignMissingIDs(cfg *domain.WorkflowConfig) {
	for i := range cfg.KeywordTriggers {
		if strings.TrimSpace(cfg.KeywordTriggers[i].ID) == "" {
			cfg.KeywordTriggers[i].ID = uuid.NewString()
		}
	}
	for i := range cfg.FAQTemplates {
		if strings.TrimSpace(cfg.FAQTemplates[i].ID) == "" {
			cfg.FAQTemplates[i].ID = uuid.NewString()
		}
	}
}
