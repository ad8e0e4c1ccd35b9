// Package infra contains technical adapters such as the MQTT client, the
// metrics exporters and the Sentry monitor. These packages depend only on
// the interfaces defined in the core packages.
package infra
