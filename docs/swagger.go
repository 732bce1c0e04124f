package docs

// @title           Fitness Connect Booking API
// @version         1.0
// @description     Booking service for personal trainer sessions. Clients pick an exercise and a duration, get matched with a trainer, follow the trainer's arrival and chat with them. Session updates are streamed over WebSocket.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

// InstanceName is the swag instance the booking API is registered under
const InstanceName = "booking"
