package eventsub

import "github.com/stretchr/testify/mock"

// MatchCreateRequest creates a custom matcher for create request arguments in mocks
func MatchCreateRequest(matcher func(CreateRequest) bool) interface{} {
	return mock.MatchedBy(matcher)
}

// MatchNotification creates a custom matcher for notification arguments in mocks
func MatchNotification(matcher func(Notification) bool) interface{} {
	return mock.MatchedBy(matcher)
}
