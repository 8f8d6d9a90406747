// Package connection talks RESP to a respkv server for respkv-cli.
//
//   - client.go: TCP client that writes requests and reads replies
//   - reply.go: reply reader for +, -, :, $-1 and $n replies
//   - manager.go: keeps one client open across REPL commands
package connection
