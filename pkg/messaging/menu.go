package messaging

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matst80/slask-menu/pkg/common"
	"github.com/matst80/slask-menu/pkg/common/jsoncompat"
	"github.com/matst80/slask-menu/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MenuListener applies menu changes published for a vendor to local handlers.
type MenuListener struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	vendor  string
	handler types.ItemHandler
	deleter types.ItemDeleteHandler
}

func NewMenuListener(conn *amqp.Connection, vendor string, handler types.ItemHandler, deleter types.ItemDeleteHandler) *MenuListener {
	return &MenuListener{
		conn:    conn,
		vendor:  vendor,
		handler: handler,
		deleter: deleter,
	}
}

func (l *MenuListener) HandleUpserted(body []byte) error {
	items := make([]types.MenuItem, 0)
	if err := jsoncompat.Unmarshal(body, &items); err != nil {
		return fmt.Errorf("decode upserted items: %w", err)
	}
	log.Debug("received menu items", "vendor", l.vendor, "count", len(items))
	l.handler.HandleItems(slices.Values(items))
	return nil
}

func (l *MenuListener) HandleDeleted(body []byte) error {
	ids := make([]string, 0)
	if err := jsoncompat.Unmarshal(body, &ids); err != nil {
		return fmt.Errorf("decode deleted ids: %w", err)
	}
	log.Debug("received menu deletes", "vendor", l.vendor, "count", len(ids))
	l.deleter.HandleDelete(ids...)
	return nil
}

func (l *MenuListener) Start() error {
	if err := DefineTopics(l.conn, l.vendor, MenuItemUpserted, MenuItemDeleted); err != nil {
		return err
	}
	ch, err := l.conn.Channel()
	if err != nil {
		return err
	}
	l.ch = ch
	if err = ListenToTopic(ch, l.vendor, MenuItemUpserted, func(d amqp.Delivery) error {
		return l.HandleUpserted(d.Body)
	}); err != nil {
		return err
	}
	return ListenToTopic(ch, l.vendor, MenuItemDeleted, func(d amqp.Delivery) error {
		return l.HandleDeleted(d.Body)
	})
}

func (l *MenuListener) Close() error {
	if l.ch == nil {
		return nil
	}
	return l.ch.Close()
}

const publishChunkSize = 500

// MenuPublisher sends catalog changes to other instances. Upserts are batched.
type MenuPublisher struct {
	send  Sender
	queue *common.QueueHandler[types.MenuItem]
}

func NewMenuPublisher(send Sender, interval time.Duration) *MenuPublisher {
	p := &MenuPublisher{send: send}
	p.queue = common.NewQueueHandler(func(items []types.MenuItem) {
		if err := p.send(MenuItemUpserted, items); err != nil {
			log.Error("failed to publish menu items", "count", len(items), "err", err)
		}
	}, publishChunkSize, interval)
	return p
}

func (p *MenuPublisher) ItemsUpserted(items []types.MenuItem) {
	p.queue.AddIter(publishable(items))
}

// publishable skips items without an id, receivers would drop them anyway.
func publishable(items []types.MenuItem) iter.Seq[types.MenuItem] {
	return func(yield func(types.MenuItem) bool) {
		for _, item := range items {
			if item.Id == "" {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

func (p *MenuPublisher) ItemsDeleted(ids []string) {
	if err := p.send(MenuItemDeleted, ids); err != nil {
		log.Error("failed to publish menu deletes", "count", len(ids), "err", err)
	}
}

// PublishItems sends items right away in chunks.
func (p *MenuPublisher) PublishItems(items []types.MenuItem) error {
	for chunk := range slices.Chunk(items, publishChunkSize) {
		if err := p.send(MenuItemUpserted, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (p *MenuPublisher) Close() {
	p.queue.Close()
}
