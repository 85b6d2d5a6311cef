// Package sealog is an embeddable, high-throughput logging engine with
// per-record integrity tagging.
//
// Application goroutines emit records through the level methods without ever
// blocking on I/O: each call builds an immutable record, stamps a
// process-unique sequence number and attempts a non-blocking insert into a
// bounded queue. When the queue is full the record is dropped and the drop
// is counted; logging never throws overload back at the application.
//
// A background dispatcher drains the queue. For every record it evaluates
// the global filter chain, optionally redacts the message, attaches an
// HMAC-SHA256 integrity tag computed with the secret key supplied at
// construction, and fans the formatted result out to the configured
// handlers. Each handler has its own level threshold and field predicates,
// so a record can reach a subset of the sinks. Handler failures are
// isolated: they are counted, reported to the error handler, and never
// disturb the other handlers or subsequent records.
//
// Basic usage:
//
//	cfg := sealog.DefaultConfig()
//	cfg.Handlers = []sealog.HandlerSpec{
//		{Type: "console"},
//		{Type: "file", Level: "warn", Config: map[string]interface{}{"path": "app.log"}},
//	}
//	logger, err := sealog.New(cfg, secretKey) // key must be >= 32 bytes
//	if err != nil {
//		return err
//	}
//	defer logger.Close()
//
//	logger.Info("server started", map[string]interface{}{"port": 8080})
//
// Three counters observe the pipeline: logs_processed, errors and
// queue_size. Read them with Metrics, or serve them in the Prometheus text
// format with ServeMetrics / MetricsHandler.
//
// Ordering: records from one goroutine reach any given handler in emit
// order for any worker count; extra workers parallelize filtering, tagging
// and formatting while writes stay sequenced. No order is defined across
// goroutines. Shutdown drains the queue within the caller's context
// deadline; whatever cannot be drained in time is discarded and counted.
package sealog
