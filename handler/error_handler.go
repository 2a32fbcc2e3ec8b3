package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/vertextrade/storefront/pkg/logger"
	"github.com/vertextrade/storefront/pkg/requestid"
)

// ErrorPageParams is the data for a full error page.
type ErrorPageParams struct {
	Message    string
	StatusCode int
	RequestID  string
}

// ErrorToastParams is the data for an inline error notice on DataStar
// requests.
type ErrorToastParams struct {
	Message   string
	RequestID string
}

// ErrorHandlerConfig supplies the components used to report errors.
type ErrorHandlerConfig struct {
	ErrorPage   func(ErrorPageParams) templ.Component
	ErrorToast  func(ErrorToastParams) templ.Component
	ToastTarget string
	ToastMode   datastar.ElementPatchMode
}

type errorInfo struct {
	status  int
	message string
	level   slog.Level
}

func classifyError(err error) errorInfo {
	info := errorInfo{
		status:  ErrInternal.Code,
		message: ErrInternal.Message,
		level:   slog.LevelError,
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.status = httpErr.Code
		info.message = httpErr.Message
	}
	if info.status >= 400 && info.status < 500 {
		info.level = slog.LevelWarn
	}
	return info
}

// NewErrorHandler logs the error and answers with an error page, or with a
// toast patch for DataStar requests. Unknown errors become a 500 and never
// leak their text to the client.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchInner
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.level, "request error",
			logger.RequestID(reqID),
			logger.Error(err),
			slog.Int("status_code", info.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
		)

		var resp Response
		switch {
		case IsDataStar(r) && cfg.ErrorToast != nil:
			resp = Templ(cfg.ErrorToast(ErrorToastParams{Message: info.message, RequestID: reqID}),
				WithTarget(cfg.ToastTarget),
				WithPatchMode(cfg.ToastMode),
			)
		case !IsDataStar(r) && cfg.ErrorPage != nil:
			resp = TemplStatus(info.status, cfg.ErrorPage(ErrorPageParams{
				Message:    info.message,
				StatusCode: info.status,
				RequestID:  reqID,
			}))
		default:
			http.Error(ctx.ResponseWriter(), info.message, info.status)
			return
		}

		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.RequestID(reqID),
				logger.Error(renderErr),
			)
		}
	}
}
