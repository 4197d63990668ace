// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services depend only on domain, the port interfaces, the logger and
// golang.org/x/sync and golang.org/x/time for the index build.
package services
