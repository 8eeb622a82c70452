package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"picon/src/console"
	"picon/src/drivers/hostport"
	"picon/src/lib/clock"
	"picon/src/lib/trust"
	"picon/src/shell"
	"picon/src/shell/config"
)

var helpFlag = flag.Bool("h", false, "get usage info")
var configFlag = flag.String("c", "", "YAML config file")
var promptFlag = flag.String("p", "", "prompt (overrides config)")
var deviceFlag = flag.String("d", "", "serial device to serve on instead of this terminal (overrides config)")
var baudFlag = flag.Int("b", 0, "baud rate for -d (overrides config)")
var levelFlag = flag.String("l", "", "log level: none, error, warn, info, debug, stats (overrides config)")
var idleFlag = flag.Int("i", -1, "idle timeout in ms, 0 for none (overrides config)")
var quietFlag = flag.Bool("q", false, "do not print the path line before each command")

// how long an idle poll of the port sleeps
const pollWait = 2 * time.Millisecond

func main() {
	flag.Parse()
	if *helpFlag {
		usage()
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var port *hostport.Stream
	if cfg.Serial.Device != "" {
		port, err = hostport.OpenSerial(hostport.SerialConfig{
			Device: cfg.Serial.Device,
			Baud:   cfg.Serial.Baud,
		}, hostport.WithPollWait(pollWait))
	} else {
		port, err = hostport.OpenTTY("", hostport.WithPollWait(pollWait))
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer port.Close()

	clk := clock.NewHost()
	start := clk.Now()
	con := console.New(hostport.NewIdlePort(port, clk, uint64(cfg.ReadTimeoutMs)))
	logger := newLogger(cfg, con, port, os.Exit)
	sh := shell.New(con, cfg.Prompt,
		shell.WithPathEcho(cfg.PathEcho()),
		shell.WithLogger(logger))

	logger.Infof("serving on %s (log level %s)", where(cfg), logger.LevelToString())
	err = sh.Serve()
	logger.Statsf("session", "%d ms", clk.Now()-start)

	switch {
	case errors.Is(err, hostport.ErrIdle):
		con.Println("")
		con.Println("idle, goodbye")
	case errors.Is(err, io.EOF), errors.Is(err, hostport.ErrClosed):
	default:
		port.Close()
		log.Fatalf("console: %v", err)
	}
}

// newLogger logs through the console when the shell runs on this terminal:
// the terminal is raw, and the console puts the \r in front of each \n and
// keeps log lines from splitting console output.  On a serial line the
// terminal is untouched and stderr is fine.  Either way a fatal log closes
// the port first so the terminal is put back.
func newLogger(cfg *config.Config, con *console.Console, port io.Closer, exit func(int)) *trust.Logger {
	var out io.Writer = os.Stderr
	if cfg.Serial.Device == "" {
		out = con
	}
	logger := trust.NewLogger(out, func(code int) {
		port.Close()
		exit(code)
	})
	level, _ := trust.LevelUpTo(cfg.LogLevel) // checked by Validate
	logger.SetLevel(level)
	return logger
}

func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return nil, err
		}
	}
	if *promptFlag != "" {
		cfg.Prompt = *promptFlag
	}
	if *deviceFlag != "" {
		cfg.Serial.Device = *deviceFlag
	}
	if *baudFlag != 0 {
		cfg.Serial.Baud = *baudFlag
	}
	if *levelFlag != "" {
		cfg.LogLevel = *levelFlag
	}
	if *idleFlag >= 0 {
		cfg.ReadTimeoutMs = *idleFlag
	}
	if *quietFlag {
		off := false
		cfg.EchoPath = &off
	}
	config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func where(cfg *config.Config) string {
	if cfg.Serial.Device == "" {
		return "this terminal"
	}
	return fmt.Sprintf("%s at %d baud", cfg.Serial.Device, cfg.Serial.Baud)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: shellsim [flags]\n")
	fmt.Fprintf(os.Stderr, "runs the board's console shell on this terminal, or on a serial line with -d\n")
	flag.PrintDefaults()
	os.Exit(1)
}
