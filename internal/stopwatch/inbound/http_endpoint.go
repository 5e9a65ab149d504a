package inbound

import (
	"strconv"
	"strings"

	"github.com/shandysiswandi/gostopwatch/internal/pkg/goerror"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/router"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/usecase"
)

const (
	RouteNow   = "/now"
	RouteStart = "/start"
	RouteStop  = "/stop"

	// ReplyOK is the body of a successful start.
	ReplyOK = "0"
	// ReplyFailed is the body for a missing name or an unknown timer.
	ReplyFailed = "-1"
	// ReplyUnknown is the body for an unrecognised route.
	ReplyUnknown = "unknown"

	nameKey = "name="
)

// HTTPEndpoint serves the plain-text stopwatch protocol.
type HTTPEndpoint struct {
	uc uc
}

// Dispatch answers one stopwatch request. Outcomes are always plain-text 200
// responses; the body alone tells the caller what happened.
func (h *HTTPEndpoint) Dispatch(r *router.Request) (any, error) {
	target := r.RawTarget()
	ctx := r.Context()

	switch {
	case strings.HasPrefix(target, RouteNow):
		return router.Text(strconv.FormatInt(h.uc.Now(ctx), 10)), nil

	case strings.HasPrefix(target, RouteStart):
		name, ok := ExtractName(target)
		if !ok {
			return router.Text(ReplyFailed), nil
		}
		if err := h.uc.StartTimer(ctx, usecase.StartTimerInput{Name: name}); err != nil {
			return nil, err
		}
		return router.Text(ReplyOK), nil

	case strings.HasPrefix(target, RouteStop):
		name, ok := ExtractName(target)
		if !ok {
			return router.Text(ReplyFailed), nil
		}
		elapsed, err := h.uc.StopTimer(ctx, usecase.StopTimerInput{Name: name})
		if goerror.HasCode(err, goerror.CodeNotFound) {
			return router.Text(ReplyFailed), nil
		}
		if err != nil {
			return nil, err
		}
		return router.Text(strconv.FormatInt(elapsed, 10)), nil

	default:
		return router.Text(ReplyUnknown), nil
	}
}

// ExtractName returns the text following the first "name=" in target, up to
// a second "name=" if one exists. Nothing is decoded and "&" does not end the
// name, so "/start?name=a&b=c" names the timer "a&b=c". ok is false when
// target has no "name=" at all; an empty name is valid.
func ExtractName(target string) (name string, ok bool) {
	parts := strings.SplitN(target, nameKey, 3)
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}
