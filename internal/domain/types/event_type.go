package types

type BookingEvent string

func (s BookingEvent) String() string {
	return string(s)
}

const (
	EventSessionRequested BookingEvent = "SESSION_REQUESTED"
	EventSelectionChanged BookingEvent = "SELECTION_CHANGED"
	EventSearchStarted    BookingEvent = "SEARCH_STARTED"
	EventTrainerMatched   BookingEvent = "TRAINER_MATCHED"
	EventTrainerAccepted  BookingEvent = "TRAINER_ACCEPTED"
	EventArrivalProgress  BookingEvent = "ARRIVAL_PROGRESS"
	EventTrainerArrived   BookingEvent = "TRAINER_ARRIVED"
	EventChatMessage      BookingEvent = "CHAT_MESSAGE"
	EventChatToggled      BookingEvent = "CHAT_TOGGLED"
	EventDraftUpdated     BookingEvent = "DRAFT_UPDATED"
	EventSessionCancelled BookingEvent = "SESSION_CANCELLED"

	// EventSnapshot is only sent to a websocket subscriber, never emitted by a session
	EventSnapshot BookingEvent = "SNAPSHOT"
)
