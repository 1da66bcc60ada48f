// Package notify provides a minimal synchronous publish-subscribe channel.
//
// A [Channel] holds an ordered list of callbacks. [Channel.Publish] invokes
// every callback that was subscribed when the publish began, in subscription
// order, on the caller's goroutine. Subscribing or unsubscribing from inside a
// callback only affects later publishes.
//
// Channels are not safe for concurrent use. Callbacks should be fast: nothing
// protects the publisher from a slow subscriber, and a panicking subscriber
// unwinds through Publish to whoever triggered it.
package notify
