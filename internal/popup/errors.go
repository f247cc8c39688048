package popup

import (
	"context"
	"errors"
	"fmt"

	"github.com/chxlky/trello-bookmark/integrations"
	"github.com/chxlky/trello-bookmark/internal/settings"
	"github.com/chxlky/trello-bookmark/internal/tab"
)

// Kind names the failure class of an action error.
type Kind string

const (
	KindValidation Kind = "validation"
	KindTab        Kind = "tab"
	KindNetwork    Kind = "network"
	KindAPI        Kind = "api"
	KindParse      Kind = "parse"
	KindCanceled   Kind = "canceled"
	KindInternal   Kind = "internal"
)

func KindOf(err error) Kind {
	var (
		netErr   *integrations.NetworkError
		apiErr   *integrations.APIError
		parseErr *integrations.ParseError
	)
	switch {
	case errors.Is(err, settings.ErrIncomplete):
		return KindValidation
	case errors.Is(err, tab.ErrNoActiveTab):
		return KindTab
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &netErr):
		return KindNetwork
	default:
		return KindInternal
	}
}

func describe(err error) string {
	var apiErr *integrations.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("[%s] status=%d body=%q", KindAPI, apiErr.StatusCode, apiErr.Body)
	}
	return fmt.Sprintf("[%s] %v", KindOf(err), err)
}

// abandoned reports whether the caller went away before the action
// finished. Such outcomes are dropped without touching the status line.
func abandoned(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}
