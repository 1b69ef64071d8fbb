package domain

// EventRecord is a club event as stored in the events collection. It is
// read-only from the client. The backend delivers the collection
// ordered ascending by EventDate; that ordering is a contract and no
// layer between the wire and the UI may re-sort it.
type EventRecord struct {
	ID          string `json:"id"`
	EventName   string `json:"eventName"`
	EventDate   string `json:"eventDate"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Club        string `json:"club,omitempty"`
}
