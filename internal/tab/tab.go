// Package tab finds the browser tab a bookmark should be made from.
package tab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chxlky/trello-bookmark/internal/models"
	"github.com/mafredri/cdp/devtool"
)

const DefaultTimeout = 5 * time.Second

var ErrNoActiveTab = errors.New("no active tab found")

type Resolver interface {
	ActiveTab(ctx context.Context) (models.TabSnapshot, error)
}

type ResolverFunc func(ctx context.Context) (models.TabSnapshot, error)

func (f ResolverFunc) ActiveTab(ctx context.Context) (models.TabSnapshot, error) {
	return f(ctx)
}

// DevToolsResolver asks a Chromium-based browser started with
// --remote-debugging-port for its open pages. The browser lists the most
// recently activated page first, which is the focused tab of the focused
// window.
type DevToolsResolver struct {
	DevTools *devtool.DevTools
}

func NewDevToolsResolver(baseURL string, timeout time.Duration) *DevToolsResolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}
	return &DevToolsResolver{
		DevTools: devtool.New(strings.TrimRight(baseURL, "/"), devtool.WithClient(client)),
	}
}

func (r *DevToolsResolver) ActiveTab(ctx context.Context) (models.TabSnapshot, error) {
	targets, err := r.DevTools.List(ctx)
	if err != nil {
		return models.TabSnapshot{}, fmt.Errorf("%w: %v", ErrNoActiveTab, err)
	}

	for _, target := range targets {
		if target != nil && target.Type == devtool.Page {
			return models.TabSnapshot{Title: target.Title, URL: target.URL}, nil
		}
	}
	return models.TabSnapshot{}, ErrNoActiveTab
}
