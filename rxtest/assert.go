package rxtest

import (
	"fmt"
	"strings"

	"github.com/stretchr/testify/assert"
)

type tHelper interface {
	Helper()
}

// AssertMessages asserts the recorded messages match in order.
func AssertMessages[T any](t assert.TestingT, expected, actual []Recorded[T], msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	if MessagesEqual(expected, actual) {
		return true
	}

	if !assert.Equal(t, Render(expected), Render(actual), msgAndArgs...) {
		return false
	}

	return assert.Fail(t, "recorded values differ in type but render identically", msgAndArgs...)
}

// AssertSubscriptions asserts a hot source's subscription log matches in order.
func AssertSubscriptions(t assert.TestingT, expected, actual []Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	if len(expected) == 0 && len(actual) == 0 {
		return true
	}

	return assert.Equal(t, expected, actual, msgAndArgs...)
}

// Render formats a recording as a marble line, e.g. "next(1)@230 completed@400".
func Render[T any](messages []Recorded[T]) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, " ")
}

// RenderSubscriptions formats a subscription log, e.g. "(200, 400) (300, Infinite)".
func RenderSubscriptions(subscriptions []Subscription) string {
	parts := make([]string, 0, len(subscriptions))
	for _, s := range subscriptions {
		parts = append(parts, fmt.Sprint(s))
	}
	return strings.Join(parts, " ")
}
