// Package canvas provides observers for graph mutations: an in-memory
// recorder, a structured logger, a socket.io mirror for a remote editor and a
// fan-out combinator. All of them turn graph callbacks into Event values.
package canvas
