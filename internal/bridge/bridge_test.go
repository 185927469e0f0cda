package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopics(t *testing.T) {
	assert.Equal(t, "ledd/cmd", CommandTopic("ledd"))
	assert.Equal(t, "ledd/reply", ReplyTopic("ledd"))
	assert.Equal(t, "ledd/status", StatusTopic("ledd"))
	assert.Equal(t, "bench/led/cmd", CommandTopic("bench/led"))
}

func TestNew_DefaultClientID(t *testing.T) {
	b := New("tcp://localhost:1883", "ledd", "", nil)
	assert.Equal(t, "ledd-ledd", b.clientID)

	b = New("tcp://localhost:1883", "ledd", "bench-7", nil)
	assert.Equal(t, "bench-7", b.clientID)
}
