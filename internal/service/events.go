package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/movie-catalog/internal/metrics"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/queue"
)

// Publisher delivers catalog change events.  *queue.Publisher satisfies it.
type Publisher interface {
	Publish(ctx context.Context, ev queue.CatalogEvent) error
}

// publishTimeout bounds the broker round trip made after a commit.
const publishTimeout = 3 * time.Second

// notifier runs the post-commit side effects of a write: log line, metric
// and change event.  A nil Publisher disables events.
type notifier struct {
	pub Publisher
	log zerolog.Logger
}

func (n notifier) changed(ctx context.Context, p model.Principal, resource, action string, id uint64) {
	metrics.CatalogWritesTotal.WithLabelValues(resource, action).Inc()
	n.log.Info().
		Str("resource", resource).
		Str("action", action).
		Uint64("id", id).
		Uint64("user_id", p.UserID).
		Str("username", p.Username).
		Msg("catalog changed")

	if n.pub == nil {
		return
	}
	ev := queue.NewCatalogEvent(resource, action, id, p.UserID, p.Username)
	// the request may already be finishing; the event must not be cut short by it
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := n.pub.Publish(pctx, ev); err != nil {
		metrics.EventsPublishFailedTotal.WithLabelValues(resource).Inc()
		n.log.Warn().Err(err).Str("event_id", ev.ID).Msg("catalog event not published")
	}
}
