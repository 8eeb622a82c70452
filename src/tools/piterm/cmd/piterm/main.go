package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"picon/src/drivers/hostport"
	"picon/src/lib/trust"
	"picon/src/shell/config"
)

var helpFlag = flag.Bool("h", false, "get usage info")
var listFlag = flag.Bool("list", false, "list serial devices and exit")
var configFlag = flag.String("c", "", "YAML config file (only the serial section is used)")
var deviceFlag = flag.String("d", "", "serial device the board is on (overrides config)")
var baudFlag = flag.Int("b", 0, "baud rate (overrides config)")
var verbose = flag.Bool("v", false, "log connection details to stderr")

// ctrl-]
const escapeByte = 0x1d

func main() {
	flag.Parse()
	if *helpFlag {
		usage()
	}
	if *listFlag {
		ports, err := hostport.Ports()
		if err != nil {
			log.Fatalf("listing serial devices: %v", err)
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	cfg := &config.Config{}
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	if *deviceFlag != "" {
		cfg.Serial.Device = *deviceFlag
	}
	if *baudFlag != 0 {
		cfg.Serial.Baud = *baudFlag
	}
	if cfg.Serial.Device == "" {
		usage()
	}
	config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := trust.NewLogger(os.Stderr, os.Exit)
	if *verbose {
		logger.SetLevel(trust.ErrorMask | trust.WarnMask | trust.InfoMask)
	} else {
		logger.SetLevel(trust.ErrorMask | trust.WarnMask)
	}

	board, err := hostport.OpenSerial(hostport.SerialConfig{Device: cfg.Serial.Device, Baud: cfg.Serial.Baud})
	if err != nil {
		logger.Fatalf(1, "%v", err)
	}
	local, err := hostport.OpenTTY("")
	if err != nil {
		board.Close()
		logger.Fatalf(1, "%v", err)
	}
	logger.Infof("connected to %s at %d baud, ctrl-] to quit", cfg.Serial.Device, cfg.Serial.Baud)

	err = bridge(local, board)
	local.Close()
	board.Close()
	if err != nil {
		logger.Fatalf(1, "%v", err)
	}
}

// bridge copies the board's output to the terminal and the terminal's keys to
// the board until the escape byte is typed or either side fails.
func bridge(local, board *hostport.Stream) error {
	fromBoard := make(chan error, 1)
	go func() {
		_, err := io.Copy(local, board)
		fromBoard <- err
	}()

	keys := make(chan error, 1)
	go func() {
		keys <- forwardKeys(local, board)
	}()

	select {
	case err := <-fromBoard:
		if err == nil {
			err = errors.New("board closed the line")
		}
		return err
	case err := <-keys:
		return err
	}
}

// forwardKeys returns nil when the escape byte is read.
func forwardKeys(in io.ByteReader, out io.ByteWriter) error {
	for {
		b, err := in.ReadByte()
		if err != nil {
			return err
		}
		if b == escapeByte {
			return nil
		}
		if err := out.WriteByte(b); err != nil {
			return err
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: piterm -d <serial device> [flags]\n")
	flag.PrintDefaults()
	os.Exit(1)
}
