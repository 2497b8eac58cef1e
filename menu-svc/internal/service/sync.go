package service

import (
	"context"
	"encoding/json"

	"cafe-menu/menu-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// SyncConsumer keeps this instance in step with edits made on other
// instances by reloading the menu when they announce a change.
type SyncConsumer struct {
	Reader   *kafka.Reader
	Loader   MenuLoaderInterface
	Reloader Reloader
	Origin   string
	Log      logrus.FieldLogger
}

func NewSyncConsumer(reader *kafka.Reader, loader MenuLoaderInterface, reloader Reloader, origin string, log logrus.FieldLogger) *SyncConsumer {
	return &SyncConsumer{
		Reader:   reader,
		Loader:   loader,
		Reloader: reloader,
		Origin:   origin,
		Log:      log.WithField("component", "sync"),
	}
}

func (c *SyncConsumer) Start(ctx context.Context) {
	c.Log.Info("starting menu sync consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.Log.Info("menu sync consumer stopped")
				return
			}
			c.Log.WithError(err).Warn("error reading message")
			continue
		}

		var event domain.MenuEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Log.WithError(err).Warn("error unmarshaling message")
			continue
		}
		c.HandleEvent(ctx, event)
	}
}

// HandleEvent reports whether the event caused a reload. Only edits that
// reached the shared copy are pulled from the remote; anything saved locally
// only is read back from the persisted snapshot so the remote cannot clobber it.
func (c *SyncConsumer) HandleEvent(ctx context.Context, event domain.MenuEvent) bool {
	if event.Type != domain.EventMenuUpdated {
		return false
	}
	if event.Origin != "" && event.Origin == c.Origin {
		return false
	}
	log := c.Log.WithFields(logrus.Fields{
		"origin": event.Origin,
		"action": event.Action,
		"remote": event.Remote,
	})

	load := c.Loader.Stored
	if event.Remote == string(RemoteSynced) {
		load = func(ctx context.Context) (domain.Menu, error) {
			return c.Loader.Refresh(ctx), nil
		}
	}
	if err := c.Reloader.Reload(ctx, load); err != nil {
		log.WithError(err).Warn("reloading menu after remote change failed")
		return false
	}
	log.Info("menu changed elsewhere, reloaded")
	return true
}
