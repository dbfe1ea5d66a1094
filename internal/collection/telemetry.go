package collection

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/louisbranch/pawprint/internal/collection"

type instruments struct {
	pagesLoaded   metric.Int64Counter
	staleDropped  metric.Int64Counter
	fetchFailures metric.Int64Counter
	confirmed     metric.Int64Counter
	rolledBack    metric.Int64Counter
}

var (
	instrumentsOnce   sync.Once
	sharedInstruments instruments
)

func loadInstruments() instruments {
	instrumentsOnce.Do(func() {
		meter := otel.Meter(instrumentationName)
		sharedInstruments = instruments{
			pagesLoaded:   newCounter(meter, "collection.pages_loaded", "Pages merged into a collection."),
			staleDropped:  newCounter(meter, "collection.stale_responses", "Page responses dropped for a superseded generation."),
			fetchFailures: newCounter(meter, "collection.fetch_failures", "Page requests that failed."),
			confirmed:     newCounter(meter, "collection.mutations_confirmed", "Optimistic mutations confirmed."),
			rolledBack:    newCounter(meter, "collection.mutations_rolled_back", "Optimistic mutations rolled back."),
		}
	})
	return sharedInstruments
}

func newCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		log.Printf("collection: create counter %s: %v", name, err)
		return noop.Int64Counter{}
	}
	return counter
}

func (i instruments) inc(ctx context.Context, counter metric.Int64Counter, collection string) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("collection", collection)))
}

func tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
