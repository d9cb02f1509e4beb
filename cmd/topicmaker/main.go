package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/niksmo/qkart/config"
	"github.com/niksmo/qkart/internal/adapter"
	"github.com/niksmo/qkart/pkg/sigctx"
	"github.com/spf13/pflag"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const cleanupPolicy = "delete"

type topicSettings struct {
	partitions        int32
	replicationFactor int16
	minInsyncReplicas int
	retention         time.Duration
}

func main() {
	ts := parseFlags()
	if err := run(ts); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create topics:\n%s\n", err)
		os.Exit(1)
	}
}

func run(ts topicSettings) error {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()
	if !cfg.EventsEnabled() {
		fmt.Println("broker.seed_brokers is empty, nothing to create")
		return nil
	}

	cl, err := createClient(cfg)
	if err != nil {
		return err
	}
	defer cl.Close()

	topic := cfg.Broker.Topics.ClientEvents
	start := time.Now()
	fmt.Printf("initializing topic %q...\n", topic)

	if err := makeTopics(sigCtx, cl, ts, topic); err != nil {
		return err
	}
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
	return nil
}

func parseFlags() topicSettings {
	var s topicSettings
	fs := pflag.CommandLine
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Int32VarP(&s.partitions, "partitions", "p", 3, "topic partitions")
	fs.Int16VarP(&s.replicationFactor, "replication-factor", "r", 3, "topic replication factor")
	fs.IntVar(&s.minInsyncReplicas, "min-insync-replicas", 1, "min.insync.replicas of the topic")
	fs.DurationVar(&s.retention, "retention", 7*24*time.Hour, "retention.ms of the topic")
	pflag.Parse()
	return s
}

func createClient(cfg config.Config) (*kadm.Client, error) {
	b := cfg.Broker
	opts := []kgo.Opt{kgo.SeedBrokers(b.SeedBrokers...), kgo.ClientID(b.ClientID)}

	tlsConfig, err := adapter.MakeTLSConfig(b.TLS.CA, b.TLS.Cert, b.TLS.Key)
	if err != nil {
		return nil, err
	}
	if tlsConfig != nil {
		opts = append(opts, kgo.DialTLSConfig(tlsConfig))
	}

	return kadm.NewOptClient(opts...)
}

func makeTopics(ctx context.Context, cl *kadm.Client, ts topicSettings, topics ...string) error {
	var (
		policy      = cleanupPolicy
		minISR      = strconv.Itoa(ts.minInsyncReplicas)
		retentionMs = strconv.FormatInt(ts.retention.Milliseconds(), 10)
	)

	topicConfig := map[string]*string{
		"cleanup.policy":      &policy,
		"min.insync.replicas": &minISR,
		"retention.ms":        &retentionMs,
	}

	responses, err := cl.CreateTopics(
		ctx, ts.partitions, ts.replicationFactor, topicConfig, topics...,
	)
	if err != nil {
		return err
	}

	var errs []error
	for _, res := range responses.Sorted() {
		switch {
		case errors.Is(res.Err, kerr.TopicAlreadyExists):
			fmt.Printf("topic %q already exists\n", res.Topic)
		case res.Err != nil:
			errs = append(errs, fmt.Errorf("topic %q: %w", res.Topic, res.Err))
		default:
			fmt.Printf("topic %q created, partitions=%d replicas=%d\n",
				res.Topic, res.NumPartitions, res.ReplicationFactor)
		}
	}
	return errors.Join(errs...)
}
