package kafka

import (
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/pkg/schema"
)

// A clientEventCodec is the goka codec of [schema.ClientEventV1].
type clientEventCodec struct {
	serde Serde
}

func newClientEventCodec(s Serde) clientEventCodec {
	return clientEventCodec{serde: s}
}

func (c clientEventCodec) Encode(v any) ([]byte, error) {
	const op = "clientEventCodec.Encode"
	if _, ok := v.(schema.ClientEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c clientEventCodec) Decode(data []byte) (any, error) {
	const op = "clientEventCodec.Decode"
	var s schema.ClientEventV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

func clientEventToSchemaV1(e domain.ClientEvent) schema.ClientEventV1 {
	return schema.ClientEventV1{
		Type:       string(e.Type),
		SessionID:  e.SessionID,
		Username:   e.Username,
		Query:      e.Query,
		Results:    e.Results,
		ProductID:  e.ProductID,
		Qty:        e.Qty,
		AddressID:  e.AddressID,
		Total:      e.Total,
		OccurredAt: e.OccurredAt.UTC(),
	}
}
