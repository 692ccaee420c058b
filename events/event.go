package events

import "reflect"

// Event is the interface that all replay events must implement.
type Event interface {
	EventName() string // Returns a unique name for the event type
}

// GetHandID reads the HandID field every replay event carries.
func GetHandID(event Event) string {
	val := reflect.ValueOf(event)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return ""
	}
	field := val.FieldByName("HandID")
	if field.IsValid() && field.Kind() == reflect.String {
		return field.String()
	}
	return ""
}
