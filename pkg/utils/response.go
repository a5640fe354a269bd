package utils

// ResponseData is the JSON envelope of every REST response. Status only drives the HTTP code.
type ResponseData struct {
	Status  int    `json:"-"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Results any    `json:"results,omitempty"`
}

// PanicIfNeeded hands err to the recovery middleware.
func PanicIfNeeded(err any) {
	if err != nil {
		panic(err)
	}
}
