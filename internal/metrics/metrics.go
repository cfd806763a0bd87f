package metrics

import (
	"strconv"
	"sync"
	"time"

	"hotel/internal/events"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		},
		[]string{"route", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotel",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	reservationEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "reservation_events_total",
			Help:      "Reservation lifecycle events by type and resulting status.",
		},
		[]string{"event", "status"},
	)

	roomEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "room_events_total",
			Help:      "Room catalog changes by type.",
		},
		[]string{"event"},
	)

	bookedRevenue = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "reservation_revenue_total",
			Help:      "Sum of total price over created reservations.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, reservationEvents, roomEvents, bookedRevenue)
	})
}

// ObserveHTTP records one served request.
func ObserveHTTP(route string, code int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Subscribe counts domain events published on bus.
func Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.AllEvents, HandleEvent)
}

func HandleEvent(event *events.Event) error {
	switch event.Type {
	case events.EventReservationCreated, events.EventReservationStatusChanged:
		var p events.ReservationEventPayload
		if err := event.Decode(&p); err != nil {
			return err
		}
		reservationEvents.WithLabelValues(event.Type, p.Status).Inc()
		if event.Type == events.EventReservationCreated {
			bookedRevenue.Add(p.TotalPrice)
		}
	case events.EventRoomCreated, events.EventRoomUpdated, events.EventRoomDeleted:
		roomEvents.WithLabelValues(event.Type).Inc()
	}
	return nil
}
