package schema

import "time"

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "qkart.storefront",
	"name": "client_event",
	"fields": [
		{"name": "type", "type": "string"},
		{"name": "session_id", "type": "string"},
		{"name": "username", "type": "string", "default": ""},
		{"name": "query", "type": "string", "default": ""},
		{"name": "results", "type": "int", "default": 0},
		{"name": "product_id", "type": "string", "default": ""},
		{"name": "qty", "type": "int", "default": 0},
		{"name": "address_id", "type": "string", "default": ""},
		{"name": "total", "type": "int", "default": 0},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

// A ClientEventV1 is a storefront activity record.
type ClientEventV1 struct {
	Type       string    `avro:"type"`
	SessionID  string    `avro:"session_id"`
	Username   string    `avro:"username"`
	Query      string    `avro:"query"`
	Results    int       `avro:"results"`
	ProductID  string    `avro:"product_id"`
	Qty        int       `avro:"qty"`
	AddressID  string    `avro:"address_id"`
	Total      int       `avro:"total"`
	OccurredAt time.Time `avro:"occurred_at"`
}
