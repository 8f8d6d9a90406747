// Package redisserver serves the RESP protocol over TCP.
//
// Each accepted connection runs in its own goroutine and keeps a pending
// buffer of unread bytes. Chunks read from the socket are appended to it and
// every complete frame is decoded, handed to the Handler and answered in
// order, so pipelined requests delivered in one read are all served. A frame
// split across reads stays in the buffer until the rest arrives.
//
// Supported commands: PING, ECHO, GET, SET.
//
// Any decode or command error closes the offending connection only. The
// listener and the other connections keep running.
package redisserver
