package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robotalks/fpctl/pkg/comm/mqtt"
	"github.com/robotalks/fpctl/pkg/events"
)

//go-build: CGO_ENABLED=0

var (
	mqttURL = "mqtt://localhost:1883/fp/"
)

func init() {
	if val := os.Getenv("FPCTL_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

// describe formats a message from the events or state topic. An empty
// payload is the cleared state of a stopped or lost controller.
func describe(payload []byte) string {
	if len(payload) == 0 {
		return "offline"
	}
	ev, err := events.Decode(payload)
	if err != nil {
		return fmt.Sprintf("bad event: %v", err)
	}
	return fmt.Sprintf("[%s] %s", ev.Time().Format(time.RFC3339), ev.String())
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	defer q.Close()

	handler := mqtt.Handler(func(topic string, payload []byte) {
		log.Printf("%s: %s", topic, describe(payload))
	})
	for _, topic := range []string{"+/" + mqtt.EventsTopic, "+/" + mqtt.StateTopic} {
		sub := q.Sub(topic, handler)
		defer sub.Close()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
}
