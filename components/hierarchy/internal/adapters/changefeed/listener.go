// Package changefeed subscribes to the fixed set of Postgres NOTIFY
// channels the hierarchy and identity tables publish on, and dispatches
// typed {op,new,old} payloads to per-channel handlers. Grounded on
// github.com/lib/pq's pq.Listener (already a direct teacher dependency) and
// on original_source/crates/customer/src/cache/infra.rs's listen() loop,
// whose "disconnect is fatal" policy this package implements literally.
package changefeed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"github.com/lattice-sh/control-plane/common/mlog"
	"github.com/lattice-sh/control-plane/pkg/errs"
)

// Op is the row-level operation a channel payload describes.
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Channels is the fixed set of notification channels the core subscribes
// to (spec.md §4.4).
var Channels = []string{
	"customers_update",
	"organizations_update",
	"organization_units_update",
	"institutions_update",
	"realm_update",
	"user_entity_update",
	"keycloak_role_update",
	"keycloak_group_update",
	"user_role_mapping_update",
	"user_group_membership_update",
	"group_attribute_update",
	"group_role_mapping_update",
}

// Notification is a decoded channel payload.
type Notification struct {
	Channel string
	Op      Op
	New     json.RawMessage
	Old     json.RawMessage
}

// Handler processes one channel's notifications. A returned error is
// logged and dropped — the full-reload path is the recovery mechanism, per
// spec.md §7.
type Handler func(ctx context.Context, n Notification) error

// Listener owns one pq.Listener connection and the per-channel handler
// table. It is not safe to share across goroutines beyond Run/Close.
type Listener struct {
	logger   mlog.Logger
	listener *pq.Listener
	handlers map[string]Handler
}

// NewListener dials connStr and prepares (but does not yet subscribe) the
// listener. minReconnect/maxReconnect bound pq's own internal backoff
// between dial attempts.
func NewListener(connStr string, logger mlog.Logger, minReconnect, maxReconnect time.Duration) *Listener {
	l := &Listener{logger: logger, handlers: make(map[string]Handler)}

	l.listener = pq.NewListener(connStr, minReconnect, maxReconnect, func(_ pq.ListenerEventType, err error) {
		if err != nil {
			logger.Errorf("change-feed listener event: %v", err)
		}
	})

	return l
}

// On registers the handler for a channel. Registering an unrecognized
// channel name is a programming error and panics, per spec.md §9's "a
// tagged variant, not a registry" guidance — the channel set is fixed.
func (l *Listener) On(channel string, h Handler) {
	known := false

	for _, c := range Channels {
		if c == channel {
			known = true
			break
		}
	}

	if !known {
		panic("changefeed: unknown channel " + channel)
	}

	l.handlers[channel] = h
}

// Run subscribes to every known channel and processes notifications until
// ctx is canceled or the underlying connection is lost. A lost connection
// is fatal to the process: the cache can no longer be trusted, and the
// supervisor is expected to restart (spec.md §4.4).
func (l *Listener) Run(ctx context.Context) error {
	for _, ch := range Channels {
		if err := l.listener.Listen(ch); err != nil {
			return errs.StoreFailureError{Store: "postgres-listen", Message: "subscribing to " + ch, Err: err}
		}
	}

	ticker := time.NewTicker(90 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return l.listener.Close()
		case n, ok := <-l.listener.Notify:
			if !ok {
				l.logger.Fatal("change-feed listener channel closed; cache can no longer be trusted")
				return errs.StoreFailureError{Store: "postgres-listen", Message: "notification channel closed"}
			}

			if n == nil {
				// Reconnection keepalive ping; no payload to dispatch.
				continue
			}

			l.dispatch(ctx, n)
		case <-ticker.C:
			go func() { _ = l.listener.Ping() }()
		}
	}
}

// Close releases the underlying connection.
func (l *Listener) Close() error { return l.listener.Close() }

func (l *Listener) dispatch(ctx context.Context, n *pq.Notification) {
	h, ok := l.handlers[n.Channel]
	if !ok {
		l.logger.Warnf("change-feed: no handler registered for channel %s", n.Channel)
		return
	}

	var payload struct {
		Op  Op              `json:"op"`
		New json.RawMessage `json:"new"`
		Old json.RawMessage `json:"old"`
	}

	if err := json.Unmarshal([]byte(n.Extra), &payload); err != nil {
		l.logger.Errorf("change-feed: malformed payload on %s: %v", n.Channel, err)
		return
	}

	if err := h(ctx, Notification{Channel: n.Channel, Op: payload.Op, New: payload.New, Old: payload.Old}); err != nil {
		l.logger.Errorf("change-feed: handler error on %s: %v", n.Channel, err)
	}
}
