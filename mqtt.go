package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// MQTT topic layout, under the configured prefix:
//
//	<prefix>/spin   (inbound)  payload: prize index, e.g. "2"
//	<prefix>/show   (inbound)  redraw the resting frame
//	<prefix>/done   (outbound) published once per completed spin
//	<prefix>/status (outbound) online/offline

func (app *App) onMQTTConnect() {
	prefix := app.cfg.topicPrefix()
	for _, t := range []string{prefix + "/spin", prefix + "/show"} {
		if err := app.mqtt.Subscribe(t); err != nil {
			log.Printf("MQTT subscribe: %v", err)
		}
	}
	app.mqtt.Publish(prefix+"/status", fmt.Sprintf(`{"node":"%s","status":"online"}`, app.cfg.ClientID))
}

func (app *App) onMQTTDisconnect() {
	log.Println("MQTT disconnected, spins remain available via event pipe")
}

func (app *App) onMQTTMessage(topic string, payload []byte) {
	prefix := app.cfg.topicPrefix()
	switch topic {
	case prefix + "/spin":
		prize, err := strconv.Atoi(strings.TrimSpace(string(payload)))
		if err != nil {
			log.Printf("MQTT spin: bad prize index %q", payload)
			return
		}
		app.spin(prize)
	case prefix + "/show":
		app.onRedraw()
	}
}
