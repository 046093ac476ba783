package catalog

// Single topic for all item lifecycle events; consumers switch on the
// envelope event type.
const TopicItemEvents = "catalog.item.events"

// Partition key = item_id, so events for one item keep their order.
func PartitionKey(itemID string) []byte { return []byte(itemID) }
