package httpapi

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter wires the single POST "/" endpoint behind gorilla/handlers'
// combined-log-format middleware, writing access lines through log at
// info level.
func NewRouter(log *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Handle("/", NewHandler(log)).Methods(http.MethodPost)
	return handlers.CombinedLoggingHandler(zap.NewStdLog(log).Writer(), r)
}
