// Package main provides the entry point for respkv-cli.
//
// respkv-cli sends PING, ECHO, GET and SET to a respkv server, either one
// command per invocation or interactively:
//
//	respkv-cli -s 127.0.0.1:6379 set --ttl 1m session abc
//	respkv-cli -o json get session
//	respkv-cli            # starts the REPL
//
// Defaults come from ~/.respkv/cli.yaml, then RESPKV_* variables, then flags.
package main
