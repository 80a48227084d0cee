// Package hostlink connects the extension process to the launcher host over
// a WebSocket and serves query events one at a time.
//
// Every frame is one JSON object. The host sends [Event] values and the
// extension answers each query with a [Results] value carrying the same ID.
package hostlink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/germanamz/grok-launcher/pkg/launcher"
	"go.uber.org/zap"
)

// EnvURL names the environment variable the host uses to pass its WebSocket URL.
const EnvURL = "LAUNCHER_WS_API"

// Event types sent by the host.
const (
	EventPreferences       = "preferences"
	EventPreferencesUpdate = "preferences_update"
	EventQuery             = "query"
)

// TypeResults is the type of the extension's answer to a query.
const TypeResults = "results"

const readLimit = 1 << 20

// Event is a message from the host. For a query, ID identifies the request;
// for a preferences update, ID is the preference key and NewValue its value.
type Event struct {
	Type        string               `json:"type"`
	ID          string               `json:"id,omitempty"`
	Argument    string               `json:"argument,omitempty"`
	Preferences launcher.Preferences `json:"preferences,omitempty"`
	NewValue    string               `json:"new_value,omitempty"`
}

// Results answers a query event.
type Results struct {
	Type  string          `json:"type"`
	ID    string          `json:"id,omitempty"`
	Items []launcher.Item `json:"items"`
}

// QueryHandler produces the items for one query.
type QueryHandler interface {
	Handle(ctx context.Context, prefs launcher.Preferences, argument string) []launcher.Item
}

// Link is a connection to the host. It is not safe for concurrent use.
type Link struct {
	conn    *websocket.Conn
	handler QueryHandler
	log     *zap.Logger
	prefs   launcher.Preferences
	done    bool
}

// Dial connects to the host at url.
func Dial(ctx context.Context, url string, handler QueryHandler, logger *zap.Logger) (*Link, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("hostlink: dial %s: %w", url, err)
	}

	return New(conn, handler, logger), nil
}

// New wraps an established connection.
func New(conn *websocket.Conn, handler QueryHandler, logger *zap.Logger) *Link {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn.SetReadLimit(readLimit)

	return &Link{
		conn:    conn,
		handler: handler,
		log:     logger,
		prefs:   launcher.Preferences{},
	}
}

// SetPreferences replaces the base preferences until the host sends its own.
func (l *Link) SetPreferences(prefs launcher.Preferences) {
	l.prefs = launcher.Preferences{}.Merge(prefs)
}

// Run reads and handles events until the host closes the connection or ctx
// is cancelled; both end the loop without error.
func (l *Link) Run(ctx context.Context) error {
	l.log.Info("host link running")

	for {
		typ, data, err := l.conn.Read(ctx)
		if err != nil {
			return l.readDone(ctx, err)
		}

		if typ != websocket.MessageText {
			l.log.Warn("ignoring binary frame", zap.Int("bytes", len(data)))
			continue
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			l.log.Warn("ignoring undecodable frame", zap.Error(err))
			continue
		}

		if err := l.dispatch(ctx, ev); err != nil {
			return err
		}
	}
}

// Close performs a normal closure of the connection, or only releases it
// when Run already saw the connection end.
func (l *Link) Close() error {
	if l.done {
		_ = l.conn.CloseNow()
		return nil
	}

	err := l.conn.Close(websocket.StatusNormalClosure, "extension stopped")
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("hostlink: close: %w", err)
	}
	return nil
}

func (l *Link) dispatch(ctx context.Context, ev Event) error {
	switch ev.Type {
	case EventPreferences:
		l.prefs = launcher.Preferences{}.Merge(ev.Preferences)
		l.log.Debug("preferences replaced", zap.Int("keys", len(l.prefs)))
	case EventPreferencesUpdate:
		if ev.ID == "" {
			l.log.Warn("preferences update without key")
			return nil
		}
		l.prefs = l.prefs.Merge(launcher.Preferences{ev.ID: ev.NewValue})
		l.log.Debug("preference updated", zap.String("key", ev.ID))
	case EventQuery:
		items := l.handler.Handle(ctx, l.prefs.Merge(ev.Preferences), ev.Argument)

		res := Results{Type: TypeResults, ID: ev.ID, Items: items}
		if err := wsjson.Write(ctx, l.conn, res); err != nil {
			return l.writeDone(ctx, err)
		}
		l.log.Debug("results sent", zap.String("id", ev.ID), zap.Int("items", len(items)))
	default:
		l.log.Warn("ignoring unknown event", zap.String("type", ev.Type))
	}

	return nil
}

func (l *Link) readDone(ctx context.Context, err error) error {
	l.done = true

	if ctx.Err() != nil {
		l.log.Info("host link stopped")
		return nil
	}

	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		l.log.Info("host closed the connection")
		return nil
	}

	return fmt.Errorf("hostlink: read: %w", err)
}

func (l *Link) writeDone(ctx context.Context, err error) error {
	l.done = true

	if ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("hostlink: write results: %w", err)
}
