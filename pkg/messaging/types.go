package messaging

type ChangeTopic string

const (
	MenuItemUpserted ChangeTopic = "menu_item_upserted"
	MenuItemDeleted  ChangeTopic = "menu_item_deleted"
)

// Sender publishes data on a topic, SendChange bound to a connection and prefix
// is the normal implementation.
type Sender func(topic ChangeTopic, data any) error
