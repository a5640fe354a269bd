package error

import "net/http"

// NotFoundError is returned by stores when a workspace has no persisted record.
type NotFoundError string

func (err NotFoundError) Error() string   { return string(err) }
func (err NotFoundError) ErrCode() string { return "NOT_FOUND_ERROR" }
func (err NotFoundError) StatusCode() int { return http.StatusNotFound }

type ValidationError string

func (err ValidationError) Error() string   { return string(err) }
func (err ValidationError) ErrCode() string { return "VALIDATION_ERROR" }
func (err ValidationError) StatusCode() int { return http.StatusBadRequest }

type InternalServerError string

func (err InternalServerError) Error() string   { return string(err) }
func (err InternalServerError) ErrCode() string { return "INTERNAL_SERVER_ERROR" }
func (err InternalServerError) StatusCode() int { return http.StatusInternalServerError }

// DuplicateEventError signals a webhook delivery whose idempotency key was already claimed.
// It renders as 200 so the provider stops retrying.
type DuplicateEventError string

func (err DuplicateEventError) Error() string   { return string(err) }
func (err DuplicateEventError) ErrCode() string { return "ALREADY_PROCESSED" }
func (err DuplicateEventError) StatusCode() int { return http.StatusOK }
