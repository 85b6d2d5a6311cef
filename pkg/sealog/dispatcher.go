package sealog

import (
	"github.com/sealog/sealog/pkg/features"
	"github.com/sealog/sealog/pkg/types"
)

// route binds one handler to its formatter and its handler-scoped filter
// chain. Routes are built once during construction and never mutated, so
// workers read them without locking.
type route struct {
	name      string
	handler   types.Handler
	formatter types.Formatter
	chain     *features.Chain
}

// deliveryJob carries one record from the prepare stage to the in-order
// commit stage. outs holds the formatted bytes per admitted route; ready is
// closed once prepare finishes.
type deliveryJob struct {
	rec   *types.Record
	outs  []routeOutput
	ready chan struct{}
}

type routeOutput struct {
	rt   *route
	data []byte
}

// startDispatch launches the dispatch side of the engine. With one worker a
// single goroutine drains, prepares and delivers. With more, a sequencer
// fans records out to a prepare pool and a committer performs the handler
// writes in enqueue order, so per-producer delivery order holds for any
// worker count: workers parallelize filtering, tagging and formatting, never
// the writes.
func (l *Logger) startDispatch(workers int) {
	if workers <= 1 {
		l.workerWg.Add(1)
		go l.worker()
		return
	}

	jobs := make(chan *deliveryJob)
	ordered := make(chan *deliveryJob, workers)

	l.workerWg.Add(workers + 2)
	go l.sequence(jobs, ordered)
	for i := 0; i < workers; i++ {
		go l.prepareWorker(jobs)
	}
	go l.commit(ordered)
}

// worker is the single-goroutine dispatch loop. The loop ends when the
// queue channel closes and is fully drained.
func (l *Logger) worker() {
	defer l.workerWg.Done()

	for rec := range l.queue.Records() {
		l.collector.TrackDequeued()
		if l.discarding.Load() {
			// Drain deadline passed: remaining records are dropped
			// and counted, per the shutdown contract.
			l.collector.TrackError("discard")
			continue
		}
		job := &deliveryJob{rec: rec}
		l.prepare(job)
		l.deliver(job)
	}
}

// sequence dequeues records and hands each one to the prepare pool and, in
// the same order, to the committer.
func (l *Logger) sequence(jobs, ordered chan *deliveryJob) {
	defer l.workerWg.Done()
	defer close(jobs)
	defer close(ordered)

	for rec := range l.queue.Records() {
		l.collector.TrackDequeued()
		if l.discarding.Load() {
			l.collector.TrackError("discard")
			continue
		}
		job := &deliveryJob{rec: rec, ready: make(chan struct{})}
		ordered <- job
		jobs <- job
	}
}

func (l *Logger) prepareWorker(jobs <-chan *deliveryJob) {
	defer l.workerWg.Done()
	for job := range jobs {
		l.prepare(job)
		close(job.ready)
	}
}

// commit performs handler writes in enqueue order, waiting for each job's
// prepare stage to finish before delivering it.
func (l *Logger) commit(ordered <-chan *deliveryJob) {
	defer l.workerWg.Done()
	for job := range ordered {
		<-job.ready
		l.deliver(job)
	}
}

// prepare runs one record through filter, redact, tag and format. The
// preparing goroutine is the sole owner of the record at this point.
func (l *Logger) prepare(job *deliveryJob) {
	rec := job.rec
	if rec.Level < l.GetLevel() || !l.global.Load().AllowRecord(rec) {
		return
	}

	if l.redactor != nil {
		// Redaction precedes tagging so the tag covers the text that
		// handlers actually receive.
		rec.Message = l.redactor.Redact(rec.Message)
	}
	rec.Tag = l.tagger.Tag(rec)

	for _, rt := range l.routes {
		if !rt.chain.AllowRecord(rec) {
			continue
		}
		data, err := rt.formatter.Format(rec)
		if err != nil {
			l.collector.TrackError("format")
			l.onError("format", rt.name, err)
			continue
		}
		job.outs = append(job.outs, routeOutput{rt: rt, data: data})
	}
}

// deliver writes a prepared record to its admitted routes. Handler failures
// are isolated: they are counted and reported, and never stop delivery to
// the other routes or to subsequent records.
func (l *Logger) deliver(job *deliveryJob) {
	for _, out := range job.outs {
		if _, err := out.rt.handler.Write(out.data); err != nil {
			l.collector.TrackError("write")
			l.onError("write", out.rt.name, err)
		}
	}

	// logs_processed counts records, not deliveries: one increment per
	// record that cleared the pipeline, independent of fan-out count and
	// of per-handler filtering.
	l.collector.TrackProcessed()
}
