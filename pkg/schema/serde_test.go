package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/qkart/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeClientEventV1(t *testing.T) {
	subject := "qkart-client-events-value"

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(t.Context())
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.Error(t, err)
	})

	t.Run("TopicSubject", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On(
			"DetermineID", t.Context(), subject, schema.ClientEventSchemaTextV1,
		).Return(1, nil)

		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.TopicSubjectOpt("qkart-client-events"),
			schema.SchemaIdentifierOpt(si),
		)
		require.NoError(t, err)
		si.AssertExpectations(t)

		_, err = schema.NewSerdeClientEventV1(
			t.Context(),
			schema.TopicSubjectOpt(""),
			schema.SchemaIdentifierOpt(si),
		)
		assert.Error(t, err)
	})

	t.Run("RegistryFailure", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On(
			"DetermineID", t.Context(), subject, schema.ClientEventSchemaTextV1,
		).Return(0, errors.New("registry is down"))

		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		assert.ErrorContains(t, err, "registry is down")
		si.AssertExpectations(t)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On(
			"DetermineID", t.Context(), subject, schema.ClientEventSchemaTextV1,
		).Return(7, nil)

		serde, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		require.NoError(t, err)

		in := schema.ClientEventV1{
			Type:       "order",
			SessionID:  "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			Username:   "crio.do",
			AddressID:  "addr1",
			Total:      27,
			OccurredAt: time.UnixMilli(1760400000000).UTC(),
		}

		data, err := serde.Encode(in)
		require.NoError(t, err)

		// magic byte and big endian schema id
		require.Greater(t, len(data), 5)
		assert.Equal(t, []byte{0, 0, 0, 0, 7}, data[:5])

		var out schema.ClientEventV1
		require.NoError(t, serde.Decode(data, &out))
		assert.Equal(t, in.Type, out.Type)
		assert.Equal(t, in.SessionID, out.SessionID)
		assert.Equal(t, in.Total, out.Total)
		assert.True(t, in.OccurredAt.Equal(out.OccurredAt))
	})
}
