package domain

import "time"

type ClientEventType string

const (
	SearchEvent     ClientEventType = "search"
	CartUpdateEvent ClientEventType = "cart_update"
	OrderEvent      ClientEventType = "order"
)

// A ClientEvent describes a storefront action for analytics.
// Fields that do not apply to Type are left zero.
type ClientEvent struct {
	Type       ClientEventType
	SessionID  string
	Username   string
	Query      string
	Results    int
	ProductID  string
	Qty        int
	AddressID  string
	Total      int
	OccurredAt time.Time
}
