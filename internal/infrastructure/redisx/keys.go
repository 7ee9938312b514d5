package redisx

// Tracking projection cache: order_tracking:{order_id} -> projection JSON
const KeyOrderTracking = "order_tracking:%d"
