package httpx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mbolis/reqlicit/log"
	"github.com/mbolis/reqlicit/store"
)

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, code string, err error) {
	log.WithError(err).Error(code)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Will log a debug message, and send an HTTP response with status 404 and default text
func LogNotFound(w http.ResponseWriter, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

// Will log an error code at the given level, and send
// an HTTP response with status and default text
func LogStatus(w http.ResponseWriter, status int, level log.Level, code string) {
	log.Log(level, code)
	http.Error(w, http.StatusText(status), status)
}

// Will log an error code and message at the given level,
// and send an HTTP response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	http.Error(w, errMsg, status)
}

// Will map a store error to its HTTP status: 400 for rejected input,
// 404 for missing records, 409 for duplicates and 500 otherwise
func LogStoreError(w http.ResponseWriter, code string, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, code+".validate", "%s", verr.Error())
	case errors.Is(err, store.ErrNotFound):
		LogNotFound(w, code, err)
	case errors.Is(err, store.ErrUserExists):
		LogStatusMsg(w, http.StatusConflict, log.DebugLevel, code+".conflict", "%s", err.Error())
	default:
		LogInternalError(w, code, err)
	}
}
