package market

const (
	TopicOrderPlaced        = "marketplace.order.placed"
	TopicOrderStatusChanged = "marketplace.order.status_changed"
)

// Partition key = order_id, supaya event satu order tetap berurutan.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
