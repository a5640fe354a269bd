package validations

import (
	"context"
	"errors"

	pkgError "github.com/AzielCF/az-rules/pkg/error"
	"github.com/AzielCF/az-rules/rulesengine/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxMessageLength = 4096

func ValidateProcessInput(ctx context.Context, request domain.ProcessInput) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.WorkspaceID, validation.Required),
		validation.Field(&request.ContactID, validation.Required),
		validation.Field(&request.Message, validation.Length(0, maxMessageLength)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

// ValidateWorkflowConfig runs on config writes. Stored configs that slip past it
// are still tolerated at read time, entry by entry.
func ValidateWorkflowConfig(ctx context.Context, cfg domain.WorkflowConfig) error {
	err := validation.ValidateStructWithContext(ctx, &cfg,
		validation.Field(&cfg.WorkspaceID, validation.Required),
		validation.Field(&cfg.KeywordTriggers, validation.Each(validation.By(validateTrigger))),
		validation.Field(&cfg.FAQTemplates, validation.Each(validation.By(validateFAQ))),
		validation.Field(&cfg.LeadRouting, validation.By(validateLeadRouting)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func actionValues() []interface{} {
	values := make([]interface{}, 0, len(domain.TriggerActions))
	for _, a := range domain.TriggerActions {
		values = append(values, a)
	}
	return values
}

func matchModeValues() []interface{} {
	values := make([]interface{}, 0, len(domain.MatchModes))
	for _, m := range domain.MatchModes {
		values = append(values, m)
	}
	return values
}

func validateTrigger(value interface{}) error {
	t, ok := value.(domain.KeywordTrigger)
	if !ok {
		return errors.New("must be a keyword trigger")
	}
	return validation.ValidateStruct(&t,
		validation.Field(&t.Keywords, validation.Required, validation.Each(validation.Required)),
		validation.Field(&t.Action, validation.Required, validation.In(actionValues()...)),
		validation.Field(&t.MatchMode, validation.Required, validation.In(matchModeValues()...)),
	)
}

func validateFAQ(value interface{}) error {
	f, ok := value.(domain.FAQTemplate)
	if !ok {
		return errors.New("must be a faq template")
	}
	return validation.ValidateStruct(&f,
		validation.Field(&f.TriggerKeywords, validation.Required, validation.Each(validation.Required)),
		validation.Field(&f.Response, validation.Required),
	)
}

func validateLeadRouting(value interface{}) error {
	lr, ok := value.(domain.LeadRouting)
	if !ok {
		return errors.New("must be lead routing")
	}
	return validation.ValidateStruct(&lr,
		validation.Field(&lr.DetectionWindowHours, validation.Min(0), validation.Max(domain.MaxDetectionWindowHours)),
	)
}
