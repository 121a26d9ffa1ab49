// Package tracelog forwards structured log records to OS-native trace
// facilities: ETW on Windows (via [github.com/Microsoft/go-winio/pkg/etw])
// and the user_events facility on Linux. [Logger] implements
// [log/slog.Handler] and doubles as a [github.com/sirupsen/logrus] hook via
// [Logger.Hook], so both facades share one provider registry, encoder, and
// sink path.
//
// A logger is bound to a default provider name at construction; records can
// redirect themselves to another provider with the [TargetKey] attribute,
// and providers are registered on first use and kept for the life of the
// process. When [WithCommonSchema] is set, every record additionally emits
// a Common Schema 4.0 envelope on the same provider for Microsoft telemetry
// pipelines.
//
// Runtime failures never surface to the logging call site: registration and
// write errors are counted in [Stats] and noted once per provider through
// logrus self-diagnostics.
package tracelog
