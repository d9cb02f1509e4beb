package schema

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/qkart/pkg/retry"
	"github.com/twmb/franz-go/pkg/sr"
)

// A SchemaIdentifier returns the registry id of the schema text under
// the subject.
type SchemaIdentifier interface {
	DetermineID(ctx context.Context, subject, avroSchemaText string) (int, error)
}

type registryClient interface {
	CreateSchema(ctx context.Context, subject string, s sr.Schema) (sr.SubjectSchema, error)
}

// SchemaCreater registers avro schemas. Registering an existing schema
// returns its id.
type SchemaCreater struct {
	cl     registryClient
	policy retry.Policy
}

func NewSchemaCreater(cl registryClient) SchemaCreater {
	return SchemaCreater{
		cl:     cl,
		policy: retry.Policy{MaxAttempts: 3, MaxDelay: 2 * time.Second},
	}
}

func (c SchemaCreater) DetermineID(
	ctx context.Context, subject, avroSchemaText string,
) (int, error) {
	const op = "SchemaCreater.DetermineID"
	log := slog.With("op", op, "subject", subject)

	ss, err := retry.DoWithResult(ctx, c.policy, func() (sr.SubjectSchema, error) {
		return c.cl.CreateSchema(ctx, subject, sr.Schema{
			Schema: avroSchemaText,
			Type:   sr.TypeAvro,
		})
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("schema registered", "id", ss.ID, "version", ss.Version)
	return ss.ID, nil
}
