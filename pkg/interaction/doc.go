// Package interaction connects controllers to an accessory's services.
//
// The interaction model defines five operations:
//
//   - Read: get the current value of a characteristic
//   - Write: set the value of a characteristic
//   - Subscribe / Unsubscribe: enable or disable change notifications
//   - Discover: list services and characteristics
//
// # Server Usage
//
// The Server dispatches requests to the characteristics of a set of
// services. Read and write timeouts are server configuration; the
// characteristics themselves never time out.
//
//	services, _ := fan.Services()
//	server, _ := interaction.NewServer(services,
//	    interaction.WithTimeouts(2*time.Second, 5*time.Second))
//
//	server.SetNotificationHandler(func(notif *wire.Notification) {
//	    // Send notification to client
//	})
//	response := server.HandleRequest(ctx, request)
//
// # Client Usage
//
// The Client provides a high-level API over any RequestSender:
//
//	client := interaction.Connect(server)
//	speed, err := client.Read(ctx, "B7", "29")
//	err = client.Write(ctx, "B7", "29", 75)
//
// A server holds at most one subscription per characteristic, matching the
// single callback slot of the characteristic itself.
package interaction
