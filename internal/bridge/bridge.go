// Package bridge relays the ledd line protocol over MQTT.
//
// The bridge is layered on top of the core: each message on the command
// topic is one command line in the same grammar the serial and TCP
// transports speak, and every reply or completion notice is published on
// the reply topic. Connection management is deliberately dumb -
// auto-reconnect with no state beyond connected/not connected.
package bridge

import (
	"context"
	"fmt"
	"log/slog"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/roach88/ledd/internal/controller"
)

const (
	availabilityOnline  = "online"
	availabilityOffline = "offline"
)

// CommandTopic returns the topic the bridge subscribes for command lines.
func CommandTopic(prefix string) string { return prefix + "/cmd" }

// ReplyTopic returns the topic replies and notices are published on.
func ReplyTopic(prefix string) string { return prefix + "/reply" }

// StatusTopic returns the retained availability topic.
func StatusTopic(prefix string) string { return prefix + "/status" }

// Bridge is the MQTT relay.
type Bridge struct {
	broker   string
	prefix   string
	clientID string
	ctrl     *controller.Controller
	client   mqtt.Client
}

// New creates a bridge for the given broker URL and topic prefix.
func New(broker, prefix, clientID string, ctrl *controller.Controller) *Bridge {
	if clientID == "" {
		clientID = "ledd-" + prefix
	}
	return &Bridge{broker: broker, prefix: prefix, clientID: clientID, ctrl: ctrl}
}

// Run connects and relays until ctx is cancelled. The paho client owns
// reconnection; on each (re)connect the bridge re-subscribes and marks
// itself online. The will marks it offline if the connection drops hard.
func (b *Bridge) Run(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(b.broker).
		SetClientID(b.clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetWill(StatusTopic(b.prefix), availabilityOffline, 1, true).
		SetOnConnectHandler(b.onConnect).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			slog.Warn("mqtt connection lost", "error", err)
		})

	b.client = mqtt.NewClient(opts)
	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to broker %s: %w", b.broker, token.Error())
	}

	detach := b.ctrl.AttachSink(func(line string) {
		b.client.Publish(ReplyTopic(b.prefix), 0, false, line)
	})
	defer detach()

	<-ctx.Done()
	b.client.Publish(StatusTopic(b.prefix), 1, true, availabilityOffline)
	b.client.Disconnect(250)
	slog.Info("mqtt bridge stopped")
	return nil
}

func (b *Bridge) onConnect(client mqtt.Client) {
	slog.Info("mqtt connected", "broker", b.broker)
	client.Publish(StatusTopic(b.prefix), 1, true, availabilityOnline)
	token := client.Subscribe(CommandTopic(b.prefix), 1, func(_ mqtt.Client, msg mqtt.Message) {
		line := append(msg.Payload(), '\n')
		b.ctrl.Feed(line)
	})
	if token.Wait() && token.Error() != nil {
		slog.Error("mqtt subscribe failed", "topic", CommandTopic(b.prefix), "error", token.Error())
	}
}
