package events

// Topic constants for domain events emitted by the shop.
const (
	TopicCartItemAdded   = "cart.item_added"
	TopicCartItemRemoved = "cart.item_removed"
	TopicCartCheckedOut  = "cart.checked_out"
	TopicCouponApplied   = "cart.coupon_applied"
	TopicProductCreated  = "product.created"
	TopicProductUpdated  = "product.updated"
	TopicProductDeleted  = "product.deleted"
	TopicCouponCreated   = "coupon.created"
	TopicCouponDeleted   = "coupon.deleted"
)

// DefaultTopics returns the canonical list of notification topics.
func DefaultTopics() []string {
	return []string{
		TopicCartItemAdded,
		TopicCartItemRemoved,
		TopicCartCheckedOut,
		TopicCouponApplied,
		TopicProductCreated,
		TopicProductUpdated,
		TopicProductDeleted,
		TopicCouponCreated,
		TopicCouponDeleted,
	}
}
