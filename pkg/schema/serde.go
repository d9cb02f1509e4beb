package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

var ErrTooFewOpts = errors.New("too few options")

// A Serde encodes values in the schema registry wire format.
type Serde interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// avroSerde pairs a parsed avro schema with the registry framing.
type avroSerde struct {
	schema avro.Schema
	sr     *sr.Serde
}

func (s *avroSerde) Encode(v any) ([]byte, error) { return s.sr.Encode(v) }

func (s *avroSerde) Decode(data []byte, v any) error { return s.sr.Decode(data, v) }

type Opt func(*serdeOpts) error

type serdeOpts struct {
	subject string
	si      SchemaIdentifier
}

func SubjectOpt(subject string) Opt {
	return func(so *serdeOpts) error {
		if subject == "" {
			return errors.New("subject is empty string")
		}
		so.subject = subject
		return nil
	}
}

// TopicSubjectOpt names the subject after the topic the values are
// produced to.
func TopicSubjectOpt(topic string) Opt {
	if topic == "" {
		return SubjectOpt("")
	}
	return SubjectOpt(topic + "-value")
}

func SchemaIdentifierOpt(si SchemaIdentifier) Opt {
	return func(so *serdeOpts) error {
		if si == nil {
			return errors.New("schema identifier is nil")
		}
		so.si = si
		return nil
	}
}

// NewSerdeClientEventV1 registers [ClientEventSchemaTextV1] and returns
// the serde of [ClientEventV1]. A subject option and SchemaIdentifierOpt
// are required.
func NewSerdeClientEventV1(ctx context.Context, opts ...Opt) (Serde, error) {
	const op = "NewSerdeClientEventV1"
	s, err := newAvroSerde(ctx, ClientEventSchemaTextV1, ClientEventV1{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func newAvroSerde(
	ctx context.Context, schemaText string, example any, opts []Opt,
) (*avroSerde, error) {
	var so serdeOpts
	for _, o := range opts {
		if err := o(&so); err != nil {
			return nil, err
		}
	}
	if so.subject == "" || so.si == nil {
		return nil, ErrTooFewOpts
	}

	parsed, err := avro.Parse(schemaText)
	if err != nil {
		return nil, err
	}

	id, err := so.si.DetermineID(ctx, so.subject, schemaText)
	if err != nil {
		return nil, err
	}

	s := &avroSerde{schema: parsed, sr: new(sr.Serde)}
	s.sr.Register(
		id,
		example,
		sr.EncodeFn(func(v any) ([]byte, error) {
			return avro.Marshal(s.schema, v)
		}),
		sr.DecodeFn(func(data []byte, v any) error {
			return avro.Unmarshal(s.schema, data, v)
		}),
	)
	return s, nil
}
