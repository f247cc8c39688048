package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adlio/trello"
	"github.com/chxlky/trello-bookmark/internal/models"
	"go.uber.org/zap"
)

const DefaultTrelloBaseURL = "https://api.trello.com"

var errMissingCardID = errors.New("response has no card id")

// TrelloClient talks to the Trello REST API with key/token query
// authentication. Credentials are passed per call since the user can
// change them while the popup is open.
type TrelloClient struct {
	Client  *http.Client
	BaseURL string
}

func NewTrelloClient(baseURL string, timeout time.Duration) *TrelloClient {
	if baseURL == "" {
		baseURL = DefaultTrelloBaseURL
	}
	return &TrelloClient{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// NetworkError means no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to Trello failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a response with a non-2xx status. Body holds the raw response
// text, which Trello uses for its error explanation.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("trello API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("trello API returned status %d, body: %s", e.StatusCode, e.Body)
}

// ParseError is a 2xx response whose body is not the expected JSON.
type ParseError struct {
	StatusCode int
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to decode Trello response (status %d): %v", e.StatusCode, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CreateCard adds a card named name with description desc to the list
// listID.
func (tc *TrelloClient) CreateCard(ctx context.Context, creds models.Credentials, listID, name, desc string) (*trello.Card, error) {
	apiURL := tc.requestURL("cards", creds, trello.Arguments{
		"idList": listID,
		"name":   name,
		"desc":   desc,
	})

	var card trello.Card
	statusCode, err := tc.do(ctx, http.MethodPost, apiURL, &card)
	if err != nil {
		return nil, err
	}
	if card.ID == "" {
		return nil, &ParseError{StatusCode: statusCode, Err: errMissingCardID}
	}

	zap.L().Info("Created Trello card", zap.String("cardID", card.ID), zap.String("listID", listID))
	return &card, nil
}

// GetBoard looks up a board by id. It is used to check that the stored
// credentials work.
func (tc *TrelloClient) GetBoard(ctx context.Context, creds models.Credentials, boardID string) (*trello.Board, error) {
	apiURL := tc.requestURL("boards/"+url.PathEscape(boardID), creds, nil)

	var board trello.Board
	if _, err := tc.do(ctx, http.MethodGet, apiURL, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (tc *TrelloClient) requestURL(path string, creds models.Credentials, args trello.Arguments) string {
	query := trello.Defaults()
	for k, v := range args {
		query[k] = v
	}
	query["key"] = creds.APIKey
	query["token"] = creds.APIToken

	return fmt.Sprintf("%s/1/%s?%s", tc.BaseURL, path, query.ToURLValues().Encode())
}

func (tc *TrelloClient) do(ctx context.Context, method, apiURL string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, apiURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s request: %w", strings.ToLower(method), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	zap.L().Debug("Sending Trello request", zap.String("method", method), zap.String("url", redact(apiURL)))

	resp, err := tc.Client.Do(req)
	if err != nil {
		return 0, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	zap.L().Debug("Trello response", zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &ParseError{StatusCode: resp.StatusCode, Err: err}
	}
	return resp.StatusCode, nil
}

// redact hides the token so request URLs can be logged.
func redact(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "<unparseable url>"
	}
	q := u.Query()
	if q.Has("token") {
		q.Set("token", "REDACTED")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
