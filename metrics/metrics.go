package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "localkart_registrations_total",
		Help: "User accounts created",
	})

	LoginsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "localkart_logins_total",
		Help: "Successful logins",
	})

	BookingsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "localkart_bookings_created_total",
		Help: "Bookings created",
	})

	BookingTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "localkart_booking_status_transitions_total",
		Help: "Booking status transitions applied",
	}, []string{"status"})

	RelayMessagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "localkart_relay_messages_total",
		Help: "Chat messages relayed",
	})
)

func Init() {
	prometheus.MustRegister(
		RegistrationsTotal,
		LoginsTotal,
		BookingsCreatedTotal,
		BookingTransitionsTotal,
		RelayMessagesTotal,
	)
}
