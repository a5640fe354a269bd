package middleware

import (
	"errors"
	"fmt"

	pkgError "github.com/AzielCF/az-rules/pkg/error"
	"github.com/AzielCF/az-rules/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Recovery turns panics raised through utils.PanicIfNeeded into the JSON envelope.
func Recovery() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			res := utils.ResponseData{
				Status:  fiber.StatusInternalServerError,
				Code:    "INTERNAL_SERVER_ERROR",
				Message: fmt.Sprintf("%v", r),
			}

			var generic pkgError.GenericError
			if err, ok := r.(error); ok && errors.As(err, &generic) {
				res.Status = generic.StatusCode()
				res.Code = generic.ErrCode()
				res.Message = generic.Error()
			}

			if res.Status >= fiber.StatusInternalServerError {
				logrus.Errorf("[REST] Panic recovered on %s %s: %v", ctx.Method(), ctx.Path(), r)
			} else {
				logrus.Debugf("[REST] %s %s -> %s: %s", ctx.Method(), ctx.Path(), res.Code, res.Message)
			}

			_ = ctx.Status(res.Status).JSON(res)
		}()

		return ctx.Next()
	}
}
