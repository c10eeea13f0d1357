// Package model implements the HAP accessory data model.
//
// # Accessory Model Hierarchy
//
// The model is a 3-level hierarchy:
//
//	Accessory > Service > Characteristic
//
// An Accessory is implemented by a device driver and describes which
// characteristic operations it supports. Each Service groups a fixed set of
// characteristic kinds into one functional unit (e.g., a carbon dioxide
// sensor). A Characteristic is a single typed value that can be read,
// optionally written, and optionally observed for changes.
//
//	CarbonDioxideSensor
//	└── Service "Carbon Dioxide Sensor" (00000097)
//	    ├── Carbon Dioxide Detected (00000092)  enum  pr ev
//	    └── Carbon Dioxide Level    (00000093)  float pr ev
//
// # Identity and Format
//
// Every characteristic kind has a stable Identity (type UUID plus display
// name) and Format (value shape and constraints). Both are fixed per kind and
// shared by all instances; only the driver binding differs between instances.
//
// # Access
//
// Access flags are never set directly. They are derived from the binding
// supplied at construction:
//   - Read: a getter was given (always required)
//   - Write: a setter was given
//   - Notify: a subscribe/unsubscribe pair was given
//
// # Asynchronous Results
//
// Getters and setters return a Future which the driver resolves from its own
// goroutine. The model never blocks and enforces no timeout; callers bound the
// wait with a context when they Await the result.
package model
