// Package process provides the process-management capability.
//
// Core types:
//   - ProcessManager: spawns external processes (local, error-handling, fake)
//   - Utils: run policy and trace logging over a ProcessManager
//   - ShutdownHooks: cleanup work run once before the tool exits
//
// A nonzero exit is a normal Run result; an error means the process never
// ran. Utils.RunSync turns nonzero exits into errors on request.
package process
