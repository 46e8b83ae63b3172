package main

import (
	"prizewheel/eventpipe"
	"prizewheel/mqtt"
	"prizewheel/output"
	"prizewheel/wheel"
)

// Config is the main configuration structure for the prizewheel daemon.
type Config struct {
	// Wheel options: segments, palettes, fonts, geometry, durations
	Wheel wheel.Options `yaml:"wheel"`

	// Output sink configuration (GIF, PNG frames, framebuffer)
	Output output.Config `yaml:"output"`

	// MQTT connection settings for remote spin triggers
	MQTT mqtt.Config `yaml:"mqtt"`

	// Named pipe for local spin commands
	EventPipe eventpipe.Config `yaml:"event_pipe"`

	// General settings
	ClientID    string   `yaml:"client_id"`
	TopicPrefix string   `yaml:"topic_prefix"`
	FontDirs    []string `yaml:"font_dirs"`

	// ImageTimeoutSecs bounds each segment image load; 0 uses the
	// default.
	ImageTimeoutSecs int `yaml:"image_timeout_secs"`
}

// topicPrefix returns the configured MQTT topic prefix or the default.
func (c *Config) topicPrefix() string {
	if c.TopicPrefix == "" {
		return "prizewheel"
	}
	return c.TopicPrefix
}
