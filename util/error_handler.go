package util

import (
	"fmt"

	"github.com/reconquest/pkg/log"
)

// FatalErrorHandler aborts the program on the first reported error unless
// continue-on-error is set, in which case errors are logged and processing
// moves on to the next file.
type FatalErrorHandler struct {
	ContinueOnError bool
}

func NewErrorHandler(continueOnError bool) *FatalErrorHandler {
	return &FatalErrorHandler{
		ContinueOnError: continueOnError,
	}
}

func (handler *FatalErrorHandler) Handle(err error, format string, args ...any) {
	if err == nil {
		if handler.ContinueOnError {
			log.Error(fmt.Sprintf(format, args...))
			return
		}
		log.Fatal(fmt.Sprintf(format, args...))
		return
	}

	if handler.ContinueOnError {
		log.Errorf(err, format, args...)
		return
	}
	log.Fatalf(err, format, args...)
}
