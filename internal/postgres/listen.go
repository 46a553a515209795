package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/lib/pq"
)

// transactionsChannel is the NOTIFY channel raised by the trigger installed
// on the transactions table (see migrations).
const transactionsChannel = "transactions_changed"

// ChangeOp is the kind of row change carried on the feed.
type ChangeOp string

const (
	ChangeInsert ChangeOp = "INSERT"
	ChangeUpdate ChangeOp = "UPDATE"
	ChangeDelete ChangeOp = "DELETE"
)

// TransactionChange is one event from the transactions change feed. For
// deletes only Row.ID is meaningful.
type TransactionChange struct {
	Op      ChangeOp           `json:"op"`
	OwnerID string             `json:"owner_id"`
	Row     domain.Transaction `json:"row"`
}

// ListenTransactions blocks delivering transaction changes for ownerID to
// handler until ctx is cancelled. Events for other owners are dropped;
// malformed payloads are logged and skipped. The underlying listener
// reconnects on its own after connection loss.
func (c *Client) ListenTransactions(ctx context.Context, ownerID string, handler func(TransactionChange)) error {
	listener := pq.NewListener(c.conn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			c.log.Warn().Err(err).Int("event", int(ev)).Msg("Transactions listener event")
		}
	})
	defer listener.Close()

	if err := listener.Listen(transactionsChannel); err != nil {
		return fmt.Errorf("ListenTransactions: listen %s: %w", transactionsChannel, err)
	}
	c.log.Info().Str("channel", transactionsChannel).Msg("Subscribed to transaction changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			if n == nil {
				// Reconnect marker; the next notification resumes the feed.
				continue
			}
			var change TransactionChange
			if err := json.Unmarshal([]byte(n.Extra), &change); err != nil {
				c.log.Warn().Err(err).Str("payload", n.Extra).Msg("Dropping malformed change payload")
				continue
			}
			if change.OwnerID != ownerID {
				continue
			}
			handler(change)
		case <-time.After(90 * time.Second):
			go func() {
				if err := listener.Ping(); err != nil {
					c.log.Warn().Err(err).Msg("Transactions listener ping failed")
				}
			}()
		}
	}
}
