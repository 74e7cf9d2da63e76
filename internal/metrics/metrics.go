package metrics

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MessagesObserved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "firepit_messages_observed_total",
			Help: "Live messages pushed into channel caches",
		},
	)

	TicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "firepit_monitor_ticks_total",
			Help: "Monitor loop ticks across all bots",
		},
	)

	Decisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "firepit_decisions_total",
			Help: "Speak decisions by outcome",
		},
		[]string{"bot", "outcome"}, // "speak", "hold", "quota"
	)

	RepliesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "firepit_replies_sent_total",
			Help: "Replies sent by bot and reply type",
		},
		[]string{"bot", "type"},
	)

	FetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "firepit_history_fetch_failures_total",
			Help: "Channel history fetches that errored",
		},
	)

	SendFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "firepit_send_failures_total",
			Help: "Message sends that errored",
		},
	)
)

// Serve exposes /metrics on addr until ctx is done. No-op when addr is
// empty.
func Serve(ctx context.Context, addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[INFO] metrics listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("[ERR] metrics server: %v", err)
	}
}
