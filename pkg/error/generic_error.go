package error

// GenericError is implemented by every error that the REST layer can render as a JSON envelope.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
