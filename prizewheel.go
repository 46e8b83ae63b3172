package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v2"

	"prizewheel/assets"
	"prizewheel/eventpipe"
	"prizewheel/mqtt"
	"prizewheel/output"
	"prizewheel/wheel"
)

var myBuild string

// App holds the daemon state and dependencies.
type App struct {
	cfg      *Config
	mqtt     *mqtt.Client
	wheel    *wheel.Wheel
	animator *wheel.Animator
	sink     output.Sink
	pipe     *eventpipe.EventPipe
}

func main() {
	fmt.Printf("prizewheel build %s\n", myBuild)

	cfgfile := flag.String("cfg", "prizewheel.cfg", "Config file")
	spinflag := flag.Int("spin", -1, "Spin once toward this prize index, then exit")
	flag.Parse()

	// Load configuration
	f, err := os.Open(*cfgfile)
	if err != nil {
		log.Fatalf("Open config: %v", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		log.Fatalf("Decode config: %v", err)
	}
	if len(cfg.Wheel.Segments) == 0 {
		log.Fatal("no wheel segments in config file")
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "prizewheel"
	}

	app := &App{cfg: &cfg}

	// Initialize output sinks
	app.sink, err = output.New(cfg.Output)
	if err != nil {
		log.Fatalf("Init output: %v", err)
	}

	// Build the wheel with its asset collaborators
	app.wheel = wheel.New(cfg.Wheel, wheel.Deps{
		Images: assets.NewImageLoader(time.Duration(cfg.ImageTimeoutSecs) * time.Second),
		Fonts:  assets.NewFontRegistry(cfg.FontDirs...),
		OnStop: app.onSpinStop,
		Redraw: app.onRedraw,
	})
	defer app.wheel.Close()
	app.animator = wheel.NewAnimator(app.wheel, app.sink)

	// One-shot mode: spin, render, exit. Useful for generating GIFs.
	if *spinflag >= 0 {
		// Give images and fonts a moment so the frames aren't blank.
		deadline := time.Now().Add(assets.DefaultImageTimeout)
		for !app.wheel.Visible() && time.Now().Before(deadline) {
			time.Sleep(50 * time.Millisecond)
		}
		if !app.wheel.Spin(*spinflag) {
			log.Fatalf("Spin %d rejected", *spinflag)
		}
		if err := app.animator.PlaySpin(); err != nil {
			log.Fatalf("Render spin: %v", err)
		}
		if err := app.sink.Close(); err != nil {
			log.Fatalf("Close output: %v", err)
		}
		return
	}

	// Initialize the event pipe if configured
	app.pipe, err = eventpipe.New(cfg.EventPipe, app.onPipeCommand)
	if err != nil {
		log.Fatalf("Init event pipe: %v", err)
	}
	if app.pipe != nil {
		go app.pipe.Start()
	}

	// Initialize MQTT
	app.mqtt, err = mqtt.New(cfg.MQTT, cfg.ClientID, mqtt.Handlers{
		OnConnect:    app.onMQTTConnect,
		OnDisconnect: app.onMQTTDisconnect,
		OnMessage:    app.onMQTTMessage,
	})
	if err != nil {
		log.Fatalf("Init MQTT: %v", err)
	}
	if err := app.mqtt.Connect(); err != nil {
		log.Fatalf("Connect MQTT: %v", err)
	}

	// First mount: settle onto the starting segment
	if err := app.animator.PlayInitial(); err != nil {
		log.Printf("Initial render: %v", err)
	}

	// Wait for shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("Shutting down")
	if app.pipe != nil {
		app.pipe.Close()
	}
	app.mqtt.Disconnect()
	if err := app.sink.Close(); err != nil {
		log.Printf("Close output: %v", err)
	}
}

// spin starts a spin and renders it. Rejected spins (already spinning,
// bad prize index) are logged and dropped.
func (app *App) spin(prize int) {
	if !app.wheel.Spin(prize) {
		log.Printf("Spin toward prize %d ignored", prize)
		return
	}
	go func() {
		if err := app.animator.PlaySpin(); err != nil {
			log.Printf("Render spin: %v", err)
		}
	}()
}

// onSpinStop runs once per completed spin.
func (app *App) onSpinStop() {
	log.Println("Spin finished")
	if app.mqtt != nil {
		app.mqtt.Publish(app.cfg.topicPrefix()+"/done", `{"status":"stopped"}`)
	}
}

// onRedraw runs when an image or font finished loading outside a spin.
func (app *App) onRedraw() {
	if app.wheel.Phase() == wheel.PhaseSpinning {
		// The running animation picks the change up on its next frame.
		return
	}
	if err := app.animator.Still(); err != nil {
		log.Printf("Redraw: %v", err)
	}
}

func (app *App) onPipeCommand(cmd eventpipe.Command) {
	switch cmd.Op {
	case eventpipe.OpSpin:
		app.spin(cmd.Prize)
	case eventpipe.OpShow:
		app.onRedraw()
	}
}
