// Package proto implements the ledd line protocol.
//
// One command per line, terminated by '\n' ('\r' is ignored):
//
//	SET <0|1>
//	BLINK <count:1..100> <on_ms:10..60000> <off_ms:10..60000>
//	HOLD <duration_ms:10..600000>
//	PATTERN <repeat:1..50> <n:1..50> <d1> ... <dn>   (each di 10..60000)
//	STOP
//
// Replies are single lines prefixed "OK " or "ERR ". Asynchronous
// completion notices ("OK BLINK done" etc.) use the same reply framing
// but are emitted by the scheduler when a program finishes on its own.
//
// Validation is strict and incremental: every recognized command is
// checked token by token, so a PATTERN missing its third duration fails
// on exactly that duration, with a message naming the field. Malformed
// input never reaches the scheduler.
package proto
