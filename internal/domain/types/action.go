package types

const (
	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"
	ActionRabbitReconnected       = "rabbitmq_reconnection_success"

	ActionTrainerMatched  = "trainer_matched"
	ActionArrivalTick     = "arrival_tick"
	ActionTrainerGreeting = "trainer_greeting"
	ActionTrainerReply    = "trainer_reply"
	ActionSessionExpired  = "session_expired"
	ActionDispatchEvent   = "dispatch_event"
)
