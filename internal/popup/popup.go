// Package popup is the controller behind the popup's form and buttons. It
// owns the UI state, validates the form, and runs the save-settings,
// save-bookmark and test-connection flows.
package popup

import (
	"context"
	"fmt"
	"sync"

	"github.com/adlio/trello"
	"github.com/chxlky/trello-bookmark/internal/models"
	"github.com/chxlky/trello-bookmark/internal/settings"
	"github.com/chxlky/trello-bookmark/internal/status"
	"github.com/chxlky/trello-bookmark/internal/tab"
)

type Phase string

const (
	PhaseUninitialized     Phase = "uninitialized"
	PhaseIdle              Phase = "idle"
	PhaseSaving            Phase = "saving"
	PhaseTestingConnection Phase = "testing_connection"
)

type Field string

const (
	FieldAPIKey   Field = "apiKey"
	FieldAPIToken Field = "apiToken"
	FieldBoardID  Field = "boardId"
)

// Trello is the part of the Trello API the popup uses.
type Trello interface {
	CreateCard(ctx context.Context, creds models.Credentials, listID, name, desc string) (*trello.Card, error)
	GetBoard(ctx context.Context, creds models.Credentials, boardID string) (*trello.Board, error)
}

// History records created cards. It is optional.
type History interface {
	Record(ctx context.Context, bookmark models.Bookmark) error
}

// UiState is a snapshot of everything the popup renders.
type UiState struct {
	Form                models.Credentials    `json:"form"`
	SaveBookmarkEnabled bool                  `json:"saveBookmarkEnabled"`
	Phase               Phase                 `json:"phase"`
	Status              *models.StatusMessage `json:"status,omitempty"`
	Debug               []string              `json:"debug"`
	DebugLog            string                `json:"debugLog"`
}

// Controller runs one action at a time. State stays readable while an
// action waits on the network.
type Controller struct {
	settings settings.Store
	tabs     tab.Resolver
	trello   Trello
	history  History
	report   *status.Reporter

	action sync.Mutex

	mu      sync.Mutex
	form    models.Credentials
	enabled bool
	phase   Phase
}

func NewController(store settings.Store, tabs tab.Resolver, client Trello, history History, report *status.Reporter) *Controller {
	return &Controller{
		settings: store,
		tabs:     tabs,
		trello:   client,
		history:  history,
		report:   report,
		phase:    PhaseUninitialized,
	}
}

// Init loads the stored settings into the form.
func (c *Controller) Init(ctx context.Context) {
	c.action.Lock()
	defer c.action.Unlock()

	creds := c.settings.Load(ctx)

	c.mu.Lock()
	c.form = creds
	c.refresh()
	c.phase = PhaseIdle
	c.mu.Unlock()

	c.report.Append("Settings loaded from storage")
}

func (c *Controller) State() UiState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return UiState{
		Form:                c.form,
		SaveBookmarkEnabled: c.enabled,
		Phase:               c.phase,
		Status:              c.report.Current(),
		Debug:               c.report.Lines(),
		DebugLog:            c.report.Log(),
	}
}

// SetField handles a keystroke in one of the three inputs.
func (c *Controller) SetField(field Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case FieldAPIKey:
		c.form.APIKey = value
	case FieldAPIToken:
		c.form.APIToken = value
	case FieldBoardID:
		c.form.BoardID = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	c.refresh()
	return nil
}

func (c *Controller) SaveSettings(ctx context.Context) error {
	c.action.Lock()
	defer c.action.Unlock()

	form := c.snapshot()
	if !settings.Valid(form) {
		c.report.Show("Please fill in all fields", true)
		c.report.Append("Settings not saved: a required field is empty")
		return settings.ErrIncomplete
	}

	creds := form.Trimmed()
	if err := c.settings.Save(ctx, creds); err != nil {
		if abandoned(ctx, err) {
			return err
		}
		c.report.Show(fmt.Sprintf("Error saving settings: %v", err), true)
		c.report.Append(fmt.Sprintf("Settings save failed: %v", err))
		return err
	}

	c.mu.Lock()
	c.form = creds
	c.refresh()
	c.mu.Unlock()

	c.report.Show("Settings saved!", false)
	c.report.Append("Settings saved to storage")
	return nil
}

// SaveBookmark creates a card from the active tab on the stored list.
func (c *Controller) SaveBookmark(ctx context.Context) error {
	c.action.Lock()
	defer c.action.Unlock()

	if !settings.Valid(c.snapshot()) {
		c.report.Show("Please set Trello API credentials and Board ID first", true)
		c.report.Append("Bookmark not saved: a required field is empty")
		return settings.ErrIncomplete
	}

	c.setPhase(PhaseSaving)
	defer c.setPhase(PhaseIdle)

	snap, err := c.tabs.ActiveTab(ctx)
	if err != nil {
		if abandoned(ctx, err) {
			return err
		}
		c.report.Show(fmt.Sprintf("Error saving bookmark: %v", err), true)
		c.report.Append(fmt.Sprintf("Tab lookup failed: %v", err))
		return err
	}
	c.report.Append(fmt.Sprintf("Attempting to save: %s - %s", snap.Title, snap.URL))

	creds := c.settings.Load(ctx)
	if !settings.Valid(creds) {
		c.report.Show("Please set Trello API credentials and Board ID first", true)
		c.report.Append("Stored settings are incomplete; save settings before bookmarking")
		return settings.ErrIncomplete
	}

	c.report.Append(fmt.Sprintf("Creating card on list %s", creds.BoardID))
	card, err := c.trello.CreateCard(ctx, creds, creds.BoardID, snap.Title, snap.URL)
	if err != nil {
		if abandoned(ctx, err) {
			return err
		}
		c.report.Show(fmt.Sprintf("Error saving bookmark: %v", err), true)
		c.report.Append(fmt.Sprintf("Error details: %s", describe(err)))
		return err
	}

	c.report.Show("Bookmark saved to Trello!", false)
	c.report.Append(fmt.Sprintf("Success! Card created with ID: %s", card.ID))

	if c.history != nil {
		err := c.history.Record(ctx, models.Bookmark{
			CardID:   card.ID,
			Name:     snap.Title,
			URL:      snap.URL,
			ListID:   creds.BoardID,
			ShortURL: card.ShortURL,
		})
		if err != nil {
			c.report.Append(fmt.Sprintf("Could not record bookmark history: %v", err))
		}
	}
	return nil
}

// TestConnection looks up the board currently typed into the form.
func (c *Controller) TestConnection(ctx context.Context) error {
	c.action.Lock()
	defer c.action.Unlock()

	creds := c.snapshot().Trimmed()
	if !settings.Valid(creds) {
		c.report.Show("Please fill in all fields before testing", true)
		c.report.Append("Connection test skipped: a required field is empty")
		return settings.ErrIncomplete
	}

	c.setPhase(PhaseTestingConnection)
	defer c.setPhase(PhaseIdle)

	c.report.Append(fmt.Sprintf("Testing connection to board %s", creds.BoardID))
	board, err := c.trello.GetBoard(ctx, creds, creds.BoardID)
	if err != nil {
		if abandoned(ctx, err) {
			return err
		}
		c.report.Show(fmt.Sprintf("Connection failed: %v", err), true)
		c.report.Append(fmt.Sprintf("Connection test error: %s", describe(err)))
		return err
	}

	c.report.Show(fmt.Sprintf("Connection successful! Board name: %s", board.Name), false)
	c.report.Append(fmt.Sprintf("Board details: id=%s name=%s url=%s", board.ID, board.Name, board.ShortURL))
	return nil
}

// ClearDebugLog only touches the diagnostic log.
func (c *Controller) ClearDebugLog() {
	c.report.ClearLog()
}

func (c *Controller) snapshot() models.Credentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

func (c *Controller) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

// refresh recomputes button enablement. Callers hold mu.
func (c *Controller) refresh() {
	c.enabled = settings.Valid(c.form)
}
