// Package wire defines the CBOR wire format used to reach characteristics
// from outside the process.
//
// Messages use CBOR (RFC 8949) with integer keys for compactness.
// Characteristics are addressed by the short type of their service and
// their own short type (e.g., service "B7", characteristic "29"), which is
// unambiguous because an accessory carries at most one service per kind.
//
// # Message Types
//
//   - Request: controller to accessory (Read, Write, Subscribe, Unsubscribe, Discover)
//   - Response: accessory to controller, carrying a HAP status code
//   - Notification: accessory to controller, carrying a changed value
//
// Status codes follow the HAP characteristic status values (0 for success,
// -70402 and up for errors). StatusFromError maps model errors to them.
package wire
