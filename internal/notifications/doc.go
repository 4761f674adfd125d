// Package notifications delivers analysis alerts via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. The daemon pushes an alert when an upload is flagged as
// manipulated or suspicious so operators hear about bad media without
// watching the report history.
//
// Extend this package if you need alternative transports; callers depend
// only on the Service interface.
package notifications
