package api

import "github.com/gadgetfs/gadget-client/configfs"

// General errors
var (
	ErrNil        = NewBusinessError(0, "Success")
	ErrValidation = NewBusinessError(1, "Invalid parameter")
	ErrInternal   = NewBusinessError(2, "Internal server error")
)

// Gadget operation failures are reported with the taxonomy kind offset
// into a dedicated code range.
const gadgetErrorCodeBase = 100

type BusinessError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{code, message, nil}
}

func NewBusinessErrorWithData(code int, message string, data interface{}) *BusinessError {
	return &BusinessError{code, message, data}
}

func (err *BusinessError) Error() string {
	return err.Message
}

func (be *BusinessError) WithData(data interface{}) *BusinessError {
	return NewBusinessErrorWithData(be.Code, be.Message, data)
}

// FromGadgetError maps a gadget operation failure to a business error
// carrying the taxonomy kind as its code and the wrapped message chain as
// data.
func FromGadgetError(err error) *BusinessError {
	kind := configfs.ErrorOf(err)
	return NewBusinessErrorWithData(gadgetErrorCodeBase+int(kind), kind.Error(), err.Error())
}
